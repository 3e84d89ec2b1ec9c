package rate

import (
	"git.lost.host/meutraa/stamina/internal/game"
	"github.com/sirupsen/logrus"
)

type Foot int

const (
	Left Foot = iota
	Right
)

// Feet in the order children are generated.
var Feet = [...]Foot{Left, Right}

func (f Foot) String() string {
	switch f {
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "unknown"
}

func indexOf(f Foot) int {
	switch f {
	case Left:
		return 0
	case Right:
		return 1
	}
	logrus.Panicf("unknown foot %d", int(f))
	return -1
}

// State is a snapshot of both feet after some prefix of the chart has
// been assigned. States are values; Step returns a new one.
type State struct {
	feet       [2]FootFatigue
	curFatigue float32
	maxFatigue float32
}

// Step assigns note to foot. No foot may have stepped on a note later
// than this one.
func (s State) Step(foot Foot, note game.Note, p *StepParams) State {
	for i := range s.feet {
		if last, ok := s.feet[i].LastHit(); ok && last.Time > note.Time {
			logrus.Panicf("stepping an earlier note: %v after %v", note.Time, last.Time)
		}
	}
	s.feet[indexOf(foot)].step(note, p)
	s.curFatigue = 0
	for i := range s.feet {
		s.curFatigue += s.feet[i].Fatigue(note.Time, p)
	}
	// Ties keep the existing maximum.
	if s.curFatigue > s.maxFatigue {
		s.maxFatigue = s.curFatigue
	}
	return s
}

// Fatigue is the summed fatigue of both feet at the last note.
func (s State) Fatigue() float32 {
	return s.curFatigue
}

// MaxFatigue is the largest Fatigue seen on the way to this state.
func (s State) MaxFatigue() float32 {
	return s.maxFatigue
}

func (s State) FootFatigue(foot Foot) FootFatigue {
	return s.feet[indexOf(foot)]
}
