package rate

import (
	"git.lost.host/meutraa/stamina/internal/game"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultWindow is how many notes are looked ahead each round.
	DefaultWindow = 4
	// DefaultBeam is how many nodes survive each round.
	DefaultBeam = 4
	// RatingScale converts raw fatigue into a rating. It was picked to
	// put the calibration charts near their hand given meters.
	RatingScale float32 = 100
)

type Options struct {
	Window int
	Beam   int
	Scale  float32
}

func DefaultOptions() Options {
	return Options{
		Window: DefaultWindow,
		Beam:   DefaultBeam,
		Scale:  RatingScale,
	}
}

// Engine rates note sequences. It holds no state between calls and is
// safe for concurrent use.
type Engine struct {
	opts Options
}

// NewEngine fills any unset option from DefaultOptions.
func NewEngine(opts Options) *Engine {
	d := DefaultOptions()
	if opts.Window <= 0 {
		opts.Window = d.Window
	}
	if opts.Beam <= 0 {
		opts.Beam = d.Beam
	}
	if opts.Scale <= 0 {
		opts.Scale = d.Scale
	}
	return &Engine{opts: opts}
}

func (e *Engine) Options() Options {
	return e.opts
}

// Result is the full outcome of a search. Building the trajectory keeps
// one ancestor per note alive, so unlike Rate its memory grows with the
// chart.
type Result struct {
	Rating     float32
	MaxFatigue float32
	// Fatigue at each note along the hardest footing found
	Trajectory []float32
	Rounds     int
	PeakNodes  int
}

type searchResult struct {
	graph  *Graph
	best   int
	rounds int
	peak   int
}

func (e *Engine) search(notes []game.Note, p *StepParams, keepHistory bool) searchResult {
	if i := game.Ordered(notes); i >= 0 {
		logrus.Panicf("note %d at %v is earlier than the note before it at %v", i, notes[i].Time, notes[i-1].Time)
	}
	window, beam := e.opts.Window, e.opts.Beam

	g := NewGraph(beam<<window + beam)
	frontier := []int{g.AddRoot(State{})}
	s := searchResult{graph: g}

	// Each round looks window notes ahead but only commits to one
	for i := 0; len(notes)-i >= window; i++ {
		leaves := expand(g, frontier, notes[i:i+window], p)
		if g.Len() > s.peak {
			s.peak = g.Len()
		}
		keep := selectAncestors(g, leaves, window-1, beam)
		prune(g, frontier, keep)
		if !keepHistory {
			forget(g, keep)
		}
		frontier = keep
		s.rounds++
	}

	// Whatever is left is searched exhaustively
	leaves := expand(g, frontier, notes[s.rounds:], p)
	if g.Len() > s.peak {
		s.peak = g.Len()
	}

	s.best = leaves[0]
	for _, l := range leaves[1:] {
		if g.State(l).MaxFatigue() > g.State(s.best).MaxFatigue() {
			s.best = l
		}
	}

	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		logrus.WithFields(logrus.Fields{
			"notes":  len(notes),
			"rounds": s.rounds,
			"peak":   s.peak,
			"live":   g.Len(),
		}).Debug("search finished")
	}
	return s
}

// Rate returns the rating of the hardest footing found for notes, or
// 0 when there are no notes. Notes must be in time order.
func (e *Engine) Rate(notes []game.Note, p StepParams) float32 {
	if len(notes) == 0 {
		return 0
	}
	s := e.search(notes, &p, false)
	return s.graph.State(s.best).MaxFatigue() / e.opts.Scale
}

// Trajectory returns the fatigue at each note along the hardest
// footing found.
func (e *Engine) Trajectory(notes []game.Note, p StepParams) []float32 {
	return e.Result(notes, p).Trajectory
}

func (e *Engine) Result(notes []game.Note, p StepParams) Result {
	if len(notes) == 0 {
		return Result{Trajectory: []float32{}}
	}
	s := e.search(notes, &p, true)
	g := s.graph
	path := g.Path(s.best)
	trajectory := make([]float32, 0, len(notes))
	// path[0] is the root
	for _, h := range path[1:] {
		trajectory = append(trajectory, g.State(h).Fatigue())
	}
	maxFatigue := g.State(s.best).MaxFatigue()
	return Result{
		Rating:     maxFatigue / e.opts.Scale,
		MaxFatigue: maxFatigue,
		Trajectory: trajectory,
		Rounds:     s.rounds,
		PeakNodes:  s.peak,
	}
}

type TracePoint struct {
	Time    float32
	Fatigue float32
}

// Trace pairs the trajectory with note times, starting from (0, 0).
func (e *Engine) Trace(notes []game.Note, p StepParams) []TracePoint {
	return e.Result(notes, p).Trace(notes)
}

// Trace pairs the trajectory with the times of the notes it was
// searched from, starting from (0, 0).
func (r Result) Trace(notes []game.Note) []TracePoint {
	points := make([]TracePoint, 0, len(r.Trajectory)+1)
	points = append(points, TracePoint{})
	for i, f := range r.Trajectory {
		points = append(points, TracePoint{Time: notes[i].Time, Fatigue: f})
	}
	return points
}

var defaultEngine = NewEngine(DefaultOptions())

// Rate rates notes with the default engine.
func Rate(notes []game.Note, p StepParams) float32 {
	return defaultEngine.Rate(notes, p)
}

// Trajectory runs the default engine.
func Trajectory(notes []game.Note, p StepParams) []float32 {
	return defaultEngine.Trajectory(notes, p)
}

// Trace runs the default engine.
func Trace(notes []game.Note, p StepParams) []TracePoint {
	return defaultEngine.Trace(notes, p)
}
