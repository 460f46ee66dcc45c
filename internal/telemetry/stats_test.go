package telemetry

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCollectorWindowLifecycle(t *testing.T) {
	c := NewCollector(4)

	if c.WindowReady() {
		t.Fatal("fresh collector must not report a ready window")
	}
	for i := 1; i <= 3; i++ {
		c.Record(i, float64(i)*0.1, []float64{0.1, 0.2, 0.3})
	}
	if c.WindowReady() {
		t.Fatal("partial window must not be ready")
	}
	c.Record(4, 0.4, []float64{0.1, 0.2, 0.3})
	if !c.WindowReady() {
		t.Fatal("full window must be ready")
	}

	ws := c.Flush()
	if ws.WindowEnd != 4 {
		t.Fatalf("window end should track the last tick, got %d", ws.WindowEnd)
	}
	if math.Abs(ws.SimTime-0.4) > 1e-12 {
		t.Fatalf("sim time should track the last sample, got %g", ws.SimTime)
	}
	if math.Abs(ws.MeanA-0.1) > 1e-12 || math.Abs(ws.MeanB-0.2) > 1e-12 || math.Abs(ws.MeanC-0.3) > 1e-12 {
		t.Fatalf("constant series must average to themselves: %+v", ws)
	}
	if ws.StdA != 0 || ws.CVA != 0 {
		t.Fatalf("constant series must carry zero spread: %+v", ws)
	}

	if c.WindowReady() {
		t.Fatal("Flush must clear the buffered window")
	}
}

func TestCollectorStats(t *testing.T) {
	c := NewCollector(4)
	samples := []float64{0.1, 0.2, 0.3, 0.4}
	for i, v := range samples {
		c.Record(i+1, float64(i), []float64{v})
	}
	ws := c.Flush()

	if math.Abs(ws.MeanA-0.25) > 1e-12 {
		t.Fatalf("mean: want 0.25, got %g", ws.MeanA)
	}
	// Sample standard deviation of {0.1,0.2,0.3,0.4}.
	want := math.Sqrt((0.15*0.15 + 0.05*0.05 + 0.05*0.05 + 0.15*0.15) / 3)
	if math.Abs(ws.StdA-want) > 1e-12 {
		t.Fatalf("std: want %g, got %g", want, ws.StdA)
	}
	if math.Abs(ws.CVA-want/0.25) > 1e-12 {
		t.Fatalf("cv: want %g, got %g", want/0.25, ws.CVA)
	}
	// Missing channels fall back to zero.
	if ws.MeanB != 0 || ws.MeanC != 0 {
		t.Fatalf("absent channels must read zero: %+v", ws)
	}
}

func TestCollectorHistoryCap(t *testing.T) {
	c := NewCollector(10)
	for i := 0; i < 600; i++ {
		c.Record(i, 0, []float64{float64(i)})
		if c.WindowReady() {
			c.Flush()
		}
	}
	hist := c.History(0)
	if len(hist) != 512 {
		t.Fatalf("history must cap at 512 samples, got %d", len(hist))
	}
	if hist[len(hist)-1] != 599 {
		t.Fatalf("history must keep the newest samples, got tail %g", hist[len(hist)-1])
	}
	if c.History(-1) != nil || c.History(3) != nil {
		t.Fatal("out-of-range channels must return nil")
	}
}

func TestWriterDisabledWhenDirEmpty(t *testing.T) {
	w, err := NewWriter("")
	if err != nil {
		t.Fatalf("empty dir must disable output, got %v", err)
	}
	if w != nil {
		t.Fatal("disabled writer must be nil")
	}
	if err := w.Write(WindowStats{}); err != nil {
		t.Fatalf("nil writer must discard silently: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("nil writer must close silently: %v", err)
	}
}

func TestWriterEmitsHeaderOnce(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Write(WindowStats{WindowEnd: 60, SimTime: 6, MeanA: 0.12}); err != nil {
		t.Fatal(err)
	}
	if err := w.Write(WindowStats{WindowEnd: 120, SimTime: 12, MeanA: 0.15}); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatal(err)
	}
	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus two rows, got %d", len(rows))
	}
	if rows[0][0] != "window_end" || rows[0][1] != "sim_time" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	if rows[1][0] != "60" || rows[2][0] != "120" {
		t.Fatalf("rows must append in order: %v / %v", rows[1], rows[2])
	}
}
