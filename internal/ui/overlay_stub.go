//go:build !ebiten

package ui

import "lenia/internal/telemetry"

// Overlay is a no-op placeholder for headless builds.
type Overlay struct{}

func NewOverlay(*telemetry.Collector) *Overlay { return &Overlay{} }

func (o *Overlay) Toggle() {}

func (o *Overlay) Visible() bool { return false }
