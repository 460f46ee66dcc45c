package lenia

import "lenia/internal/core"

// Parameters captures the current tunables for HUD display.
func (w *World) Parameters() core.ParameterSnapshot {
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				core.IntParam("w", "Width", w.cfg.Width),
				core.IntParam("h", "Height", w.cfg.Height),
				core.Int64Param("seed", "Seed", w.cfg.Seed),
				core.IntParam("ticks", "Ticks", w.ticks),
			},
		},
		{
			Name: "Species",
			Params: []core.Parameter{
				core.StringParam("species", "Species", w.cfg.Species),
				core.FloatParam("radius", "Kernel radius", w.params.R),
				core.FloatParam("time_scale", "Time scale", w.params.T),
				core.FloatParam("mu", "Growth center", w.params.Mu),
				core.FloatParam("sigma", "Growth width", w.params.Sigma),
			},
		},
		{
			Name: "Integration",
			Params: []core.Parameter{
				core.FloatParam("dt", "Integration step", w.cfg.DT),
				core.FloatParam("trail", "Trail factor", w.cfg.Trail),
				core.FloatParam("mutation_speed", "Mutation speed", w.cfg.MutationSpeed),
				core.BoolParam("mutation", "Mutation active", w.mutating),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the tunables adjustable from the HUD.
func (w *World) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "radius", Label: "Radius", Type: core.ParamTypeFloat, Step: 0.5, Min: 1, Max: 64, HasMin: true, HasMax: true},
		{Key: "time_scale", Label: "Time scale", Type: core.ParamTypeFloat, Step: 0.5, Min: 1, Max: 64, HasMin: true, HasMax: true},
		{Key: "mu", Label: "Mu", Type: core.ParamTypeFloat, Step: 0.005, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "sigma", Label: "Sigma", Type: core.ParamTypeFloat, Step: 0.001, Min: 0.001, Max: 0.2, HasMin: true, HasMax: true},
		{Key: "dt", Label: "dt", Type: core.ParamTypeFloat, Step: 0.1, Min: 0.1, Max: 4, HasMin: true, HasMax: true},
		{Key: "trail", Label: "Trail", Type: core.ParamTypeFloat, Step: 0.005, Min: 0.9, Max: 1, HasMin: true, HasMax: true},
	}
}

// SetFloatParameter updates one float tunable, rejecting values the update
// math cannot accept.
func (w *World) SetFloatParameter(key string, value float64) bool {
	switch key {
	case "radius":
		p := w.params.Clone()
		p.R = value
		return w.SetParameters(p) == nil
	case "time_scale":
		p := w.params.Clone()
		p.T = value
		return w.SetParameters(p) == nil
	case "mu":
		if value < 0 || value > 1 {
			return false
		}
		w.params.Mu = value
		w.base.Mu = value
		return true
	case "sigma":
		p := w.params.Clone()
		p.Sigma = value
		return w.SetParameters(p) == nil
	case "dt":
		if value <= 0 {
			return false
		}
		w.cfg.DT = value
		return true
	case "trail":
		if value <= 0 || value > 1 {
			return false
		}
		w.cfg.Trail = value
		return true
	case "mutation_speed":
		if value < 0 {
			return false
		}
		w.cfg.MutationSpeed = value
		return true
	}
	return false
}

// SetIntParameter updates one integer tunable.
func (w *World) SetIntParameter(key string, value int) bool {
	switch key {
	case "seed":
		w.cfg.Seed = int64(value)
		return true
	}
	return false
}
