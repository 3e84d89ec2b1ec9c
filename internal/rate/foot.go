package rate

import (
	"math"

	"git.lost.host/meutraa/stamina/internal/game"
	"github.com/sirupsen/logrus"
)

// FootFatigue is the accumulated fatigue of one foot. It decays
// exponentially while the foot rests and jumps on every step.
type FootFatigue struct {
	lastHit     game.Note
	stepped     bool
	lastFatigue float32
}

func fatigueAfterRest(prevFatigue, restTime float32, p *StepParams) float32 {
	if restTime < 0 {
		logrus.Panicf("negative rest time %v, a foot stepped back in time", restTime)
	}
	ratio := float32(math.Exp(float64(-restTime * p.FatigueDecayRate)))
	if !(ratio >= 0 && ratio <= 1) {
		logrus.Panicf("unexpected decay ratio %v for rest %v", ratio, restTime)
	}
	return prevFatigue * ratio
}

func fatigueAfterRestAndStep(lastFatigue, restTime, distance float32, p *StepParams) float32 {
	return fatigueAfterRest(lastFatigue, restTime, p) +
		p.FatiguePerStepRatio*(p.BaseFatiguePerStep+distance*p.FatigueDistRatio)/
			(p.RestTimeAddConstant+restTime)
}

func (f *FootFatigue) step(note game.Note, p *StepParams) {
	var rest, distance float32
	if f.stepped {
		rest = note.Time - f.lastHit.Time
		distance = note.Distance(f.lastHit)
	}
	f.lastFatigue = fatigueAfterRestAndStep(f.lastFatigue, rest, distance, p)
	f.lastHit = note
	f.stepped = true
}

// Fatigue projects the foot's fatigue forward to t without stepping.
func (f FootFatigue) Fatigue(t float32, p *StepParams) float32 {
	if !f.stepped {
		return 0
	}
	return fatigueAfterRest(f.lastFatigue, t-f.lastHit.Time, p)
}

// LastHit returns the last note this foot stepped on.
func (f FootFatigue) LastHit() (game.Note, bool) {
	return f.lastHit, f.stepped
}
