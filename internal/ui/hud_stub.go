//go:build !ebiten

package ui

import "lenia/internal/core"

// HUD is a no-op placeholder for headless builds.
type HUD struct{}

func NewHUD(core.Sim, int) *HUD { return &HUD{} }

func (h *HUD) Update() {}

func (h *HUD) Width() int { return 0 }
