package ecosystem

import (
	"fmt"

	"lenia/internal/core"
)

// Parameters captures the current tunables for HUD display.
func (w *World) Parameters() core.ParameterSnapshot {
	p := w.cfg.Params
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
			Name: "Interaction",
			Params: []core.Parameter{
				core.FloatParam("predation", "Predation strength", p.PredationStrength),
				core.FloatParam("benefit", "Benefit strength", p.BenefitStrength),
				core.FloatParam("benefit_factor", "Benefit factor", p.BenefitFactor),
				core.FloatParam("crowd_low", "Crowding low threshold", p.CrowdLow),
				core.FloatParam("crowd_high", "Crowding high threshold", p.CrowdHigh),
				core.FloatParam("crowd_coefficient", "Crowding coefficient", p.CrowdCoefficient),
				core.FloatParam("decay", "Decay per tick", p.Decay),
			},
		},
		{
			Name: "Integration",
			Params: []core.Parameter{
				core.FloatParam("dt", "Integration step", w.cfg.DT),
				core.FloatParam("mutation_speed", "Mutation speed", w.cfg.MutationSpeed),
				core.BoolParam("mutation", "Mutation active", w.mutating),
			},
		},
	}
	for c := 0; c < Channels; c++ {
		sp := w.params[c]
		groups = append(groups, core.ParameterGroup{
			Name: fmt.Sprintf("Species %d (%s)", c, w.info[c].Name),
			Params: []core.Parameter{
				core.FloatParam(fmt.Sprintf("radius_%d", c), "Kernel radius", sp.R),
				core.FloatParam(fmt.Sprintf("time_scale_%d", c), "Time scale", sp.T),
				core.FloatParam(fmt.Sprintf("mu_%d", c), "Growth center", sp.Mu),
				core.FloatParam(fmt.Sprintf("sigma_%d", c), "Growth width", sp.Sigma),
			},
		})
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the tunables adjustable from the HUD.
func (w *World) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "predation", Label: "Predation", Type: core.ParamTypeFloat, Step: 0.01, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "benefit", Label: "Benefit", Type: core.ParamTypeFloat, Step: 0.01, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "crowd_coefficient", Label: "Crowding", Type: core.ParamTypeFloat, Step: 0.01, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "decay", Label: "Decay", Type: core.ParamTypeFloat, Step: 0.0001, Min: 0.99, Max: 1, HasMin: true, HasMax: true},
		{Key: "dt", Label: "dt", Type: core.ParamTypeFloat, Step: 0.1, Min: 0.1, Max: 4, HasMin: true, HasMax: true},
	}
}

// SetFloatParameter updates one float tunable, rejecting values the update
// math cannot accept. Interaction changes rebuild the matrix immediately.
func (w *World) SetFloatParameter(key string, value float64) bool {
	switch key {
	case "predation":
		if value < 0 {
			return false
		}
		w.cfg.Params.PredationStrength = value
	case "benefit":
		if value < 0 {
			return false
		}
		w.cfg.Params.BenefitStrength = value
	case "benefit_factor":
		if value < 0 {
			return false
		}
		w.cfg.Params.BenefitFactor = value
	case "crowd_low":
		if value < 0 {
			return false
		}
		w.cfg.Params.CrowdLow = value
	case "crowd_high":
		if value < w.cfg.Params.CrowdLow {
			return false
		}
		w.cfg.Params.CrowdHigh = value
	case "crowd_coefficient":
		if value < 0 {
			return false
		}
		w.cfg.Params.CrowdCoefficient = value
	case "decay":
		if value <= 0 || value > 1 {
			return false
		}
		w.cfg.Params.Decay = value
	case "dt":
		if value <= 0 {
			return false
		}
		w.cfg.DT = value
	case "mutation_speed":
		if value < 0 {
			return false
		}
		w.cfg.MutationSpeed = value
	default:
		return false
	}
	w.rebuildMatrix()
	return true
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
