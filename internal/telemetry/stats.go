// Package telemetry aggregates per-tick population statistics into windows
// and writes them as CSV for offline analysis.
package telemetry

import (
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// maxChannels bounds the per-channel columns of a WindowStats row.
const maxChannels = 3

// WindowStats holds aggregated statistics for one window of ticks.
type WindowStats struct {
	WindowEnd int     `csv:"window_end"`
	SimTime   float64 `csv:"sim_time"`

	MeanA float64 `csv:"mean_a"`
	MeanB float64 `csv:"mean_b"`
	MeanC float64 `csv:"mean_c"`

	StdA float64 `csv:"std_a"`
	StdB float64 `csv:"std_b"`
	StdC float64 `csv:"std_c"`

	// CVA is the coefficient of variation of channel A over the window, a
	// cheap boom/bust indicator.
	CVA float64 `csv:"cv_a"`
}

// Collector accumulates per-tick mean densities and periodically reduces
// them into WindowStats.
type Collector struct {
	window  int
	tick    int
	simTime float64

	series  [maxChannels][]float64
	history [maxChannels][]float64
	maxHist int
}

// NewCollector creates a collector that closes a window every window ticks.
func NewCollector(window int) *Collector {
	if window <= 0 {
		window = 60
	}
	return &Collector{window: window, maxHist: 512}
}

// Record appends one tick's per-channel mean densities.
func (c *Collector) Record(tick int, simTime float64, means []float64) {
	c.tick = tick
	c.simTime = simTime
	for i := 0; i < maxChannels; i++ {
		v := 0.0
		if i < len(means) {
			v = means[i]
		}
		c.series[i] = append(c.series[i], v)
		c.history[i] = append(c.history[i], v)
		if len(c.history[i]) > c.maxHist {
			c.history[i] = c.history[i][1:]
		}
	}
}

// WindowReady reports whether a full window of samples is buffered.
func (c *Collector) WindowReady() bool {
	return len(c.series[0]) >= c.window
}

// Flush reduces the buffered window into stats and clears the buffer.
func (c *Collector) Flush() WindowStats {
	ws := WindowStats{WindowEnd: c.tick, SimTime: c.simTime}
	var means, stds [maxChannels]float64
	for i := 0; i < maxChannels; i++ {
		if len(c.series[i]) == 0 {
			continue
		}
		means[i] = stat.Mean(c.series[i], nil)
		stds[i] = stat.StdDev(c.series[i], nil)
		c.series[i] = c.series[i][:0]
	}
	ws.MeanA, ws.MeanB, ws.MeanC = means[0], means[1], means[2]
	ws.StdA, ws.StdB, ws.StdC = stds[0], stds[1], stds[2]
	if means[0] > 0 {
		ws.CVA = stds[0] / means[0]
	}
	slog.Debug("telemetry window",
		"window_end", ws.WindowEnd,
		"mean_a", ws.MeanA,
		"mean_b", ws.MeanB,
		"mean_c", ws.MeanC,
	)
	return ws
}

// History returns the retained mean-density series for one channel, oldest
// first. Used for sparkline overlays.
func (c *Collector) History(ch int) []float64 {
	if ch < 0 || ch >= maxChannels {
		return nil
	}
	return c.history[ch]
}
