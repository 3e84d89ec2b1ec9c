package rate

import (
	"fmt"
)

// StepParams are the tunable constants of the fatigue model. All of
// them must be strictly positive.
type StepParams struct {
	BaseFatiguePerStep  float32 `yaml:"base_fatigue_per_step" json:"base_fatigue_per_step"`
	FatiguePerStepRatio float32 `yaml:"fatigue_per_step_ratio" json:"fatigue_per_step_ratio"`
	FatigueDistRatio    float32 `yaml:"fatigue_dist_ratio" json:"fatigue_dist_ratio"`
	FatigueDecayRate    float32 `yaml:"fatigue_decay_rate" json:"fatigue_decay_rate"`
	RestTimeAddConstant float32 `yaml:"rest_time_add_constant" json:"rest_time_add_constant"`
}

// NumStepParams is the length of StepParams.Slice.
const NumStepParams = 5

func DefaultStepParams() StepParams {
	return StepParams{
		BaseFatiguePerStep:  4.8647046,
		FatiguePerStepRatio: 32.294823,
		FatigueDistRatio:    1.6507491,
		FatigueDecayRate:    0.020347526,
		RestTimeAddConstant: 0.5731187,
	}
}

func StepParamsFromSlice(params []float32) (StepParams, error) {
	if len(params) != NumStepParams {
		return StepParams{}, fmt.Errorf("expected %v step params, got %v", NumStepParams, len(params))
	}
	return StepParams{
		BaseFatiguePerStep:  params[0],
		FatiguePerStepRatio: params[1],
		FatigueDistRatio:    params[2],
		FatigueDecayRate:    params[3],
		RestTimeAddConstant: params[4],
	}, nil
}

func (p StepParams) Slice() []float32 {
	return []float32{
		p.BaseFatiguePerStep,
		p.FatiguePerStepRatio,
		p.FatigueDistRatio,
		p.FatigueDecayRate,
		p.RestTimeAddConstant,
	}
}

var paramNames = [NumStepParams]string{
	"base_fatigue_per_step",
	"fatigue_per_step_ratio",
	"fatigue_dist_ratio",
	"fatigue_decay_rate",
	"rest_time_add_constant",
}

// Validate returns an error naming the first parameter that is not
// strictly positive.
func (p StepParams) Validate() error {
	for i, v := range p.Slice() {
		if !(v > 0) {
			return fmt.Errorf("%v must be positive, got %v", paramNames[i], v)
		}
	}
	return nil
}

// Clamp raises every parameter that is not strictly positive to eps.
// It reports whether anything changed.
func (p *StepParams) Clamp(eps float32) bool {
	s := p.Slice()
	changed := false
	for i := range s {
		if !(s[i] > 0) {
			s[i] = eps
			changed = true
		}
	}
	if changed {
		*p, _ = StepParamsFromSlice(s)
	}
	return changed
}
