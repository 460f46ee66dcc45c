package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/stat"

	"lenia/internal/sims/lenia"
)

type paramSet struct {
	mu    float64
	sigma float64
}

func (p paramSet) String() string {
	return fmt.Sprintf("mu=%.3f sigma=%.4f", p.mu, p.sigma)
}

type scenarioResult struct {
	Mu        float64 `csv:"mu"`
	Sigma     float64 `csv:"sigma"`
	Outcome   string  `csv:"outcome"`
	FinalMean float64 `csv:"final_mean"`
	MeanStd   float64 `csv:"mean_std"`
	DiedAt    int     `csv:"died_at"`
}

func main() {
	steps := flag.Int("steps", 400, "ticks to simulate per scenario")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	species := flag.String("species", "orbium", "species whose growth parameters get swept")
	size := flag.Int("size", 128, "square grid side length")
	out := flag.String("out", "sweep.csv", "CSV output path")
	muMin := flag.Float64("mu-min", 0.05, "lowest growth center")
	muMax := flag.Float64("mu-max", 0.3, "highest growth center")
	muSteps := flag.Int("mu-steps", 11, "grid points along mu")
	sigmaMin := flag.Float64("sigma-min", 0.005, "lowest growth width")
	sigmaMax := flag.Float64("sigma-max", 0.05, "highest growth width")
	sigmaSteps := flag.Int("sigma-steps", 10, "grid points along sigma")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	baseCfg := lenia.DefaultConfig()
	baseCfg.Width = *size
	baseCfg.Height = *size
	baseCfg.Species = *species

	var sets []paramSet
	for i := 0; i < *muSteps; i++ {
		mu := lerp(*muMin, *muMax, i, *muSteps)
		for j := 0; j < *sigmaSteps; j++ {
			sets = append(sets, paramSet{mu: mu, sigma: lerp(*sigmaMin, *sigmaMax, j, *sigmaSteps)})
		}
	}

	slog.Info("sweep start", "sets", len(sets), "workers", *workers, "steps", *steps, "species", *species)

	jobs := make(chan paramSet)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for params := range jobs {
				res, err := runScenario(baseCfg, params, *steps)
				if err != nil {
					slog.Error("scenario failed", "params", params.String(), "err", err)
					continue
				}
				results <- res
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, params := range sets {
			jobs <- params
		}
		close(jobs)
	}()

	start := time.Now()
	var all []scenarioResult
	stable := 0
	for res := range results {
		all = append(all, res)
		if res.Outcome == "stable" {
			stable++
		}
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].Mu != all[j].Mu {
			return all[i].Mu < all[j].Mu
		}
		return all[i].Sigma < all[j].Sigma
	})

	if err := writeCSV(*out, all); err != nil {
		slog.Error("write results", "path", *out, "err", err)
		os.Exit(1)
	}

	slog.Info("sweep done",
		"elapsed", time.Since(start).Round(time.Millisecond),
		"stable", stable,
		"total", len(all),
		"out", *out)
}

func lerp(lo, hi float64, i, n int) float64 {
	if n <= 1 {
		return lo
	}
	return lo + (hi-lo)*float64(i)/float64(n-1)
}

func runScenario(base lenia.Config, params paramSet, steps int) (scenarioResult, error) {
	cfg := base
	world, err := lenia.NewWithConfig(cfg)
	if err != nil {
		return scenarioResult{}, err
	}
	world.Reset(1337)
	world.Clear()

	p := world.Params()
	p.Mu = params.mu
	p.Sigma = params.sigma
	if err := world.SetParameters(p); err != nil {
		return scenarioResult{}, err
	}
	if err := world.InjectTemplate("ring", 0.5, 0.5, 1.0); err != nil {
		return scenarioResult{}, err
	}

	res := scenarioResult{Mu: params.mu, Sigma: params.sigma, DiedAt: -1}
	window := steps / 4
	if window < 8 {
		window = 8
	}
	history := make([]float64, 0, steps)

	history = append(history, world.PopulationStats()[0])
	for step := 0; step < steps; step++ {
		world.Step()
		mean := world.PopulationStats()[0]
		history = append(history, mean)
		if mean < 1e-5 {
			res.DiedAt = step + 1
			break
		}
	}

	final := history[len(history)-1]
	res.FinalMean = final
	tail := history
	if len(tail) > window {
		tail = tail[len(tail)-window:]
	}
	res.MeanStd = stat.StdDev(tail, nil)

	switch {
	case res.DiedAt >= 0:
		res.Outcome = "died"
	case final > 0.45:
		res.Outcome = "saturated"
	case res.MeanStd < 0.02*final:
		res.Outcome = "stable"
	default:
		res.Outcome = "oscillating"
	}
	return res, nil
}

func writeCSV(path string, rows []scenarioResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gocsv.Marshal(rows, f)
}
