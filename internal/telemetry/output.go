package telemetry

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// Writer appends WindowStats rows to a telemetry.csv inside an output
// directory. A nil Writer is valid and discards everything.
type Writer struct {
	file          *os.File
	headerWritten bool
}

// NewWriter creates the output directory and telemetry.csv. Returns nil if
// dir is empty (output disabled).
func NewWriter(dir string) (*Writer, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("telemetry: creating output directory: %w", err)
	}
	path := filepath.Join(dir, "telemetry.csv")
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("telemetry: creating %s: %w", path, err)
	}
	slog.Info("telemetry output enabled", "path", path)
	return &Writer{file: f}, nil
}

// Write appends one stats row; the first write emits the CSV header.
func (w *Writer) Write(stats WindowStats) error {
	if w == nil {
		return nil
	}
	records := []WindowStats{stats}
	if !w.headerWritten {
		if err := gocsv.Marshal(records, w.file); err != nil {
			return fmt.Errorf("telemetry: writing stats: %w", err)
		}
		w.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, w.file); err != nil {
		return fmt.Errorf("telemetry: writing stats: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying file.
func (w *Writer) Close() error {
	if w == nil || w.file == nil {
		return nil
	}
	return w.file.Close()
}
