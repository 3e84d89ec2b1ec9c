package game

import (
	"fmt"
)

type Chart struct {
	Title      string
	Artist     string
	Music      string // Audio path, relative to the simfile
	Difficulty Difficulty
	Notes      []Note
}

func (c *Chart) Description() string {
	if c.Difficulty.Name == "" {
		return c.Title
	}
	return fmt.Sprintf("%v (%v)", c.Title, c.Difficulty.Name)
}

// Duration is the time of the last note, in seconds.
func (c *Chart) Duration() float32 {
	if len(c.Notes) == 0 {
		return 0
	}
	return c.Notes[len(c.Notes)-1].Time
}

// Break fills for StreamWithBreak.
const (
	BreakSilent    = 0
	BreakEighths   = 8
	BreakSixteenth = 16
)

var (
	leftPanel  = Note{X: 0, Y: 1}
	rightPanel = Note{X: 2, Y: 1}
)

// Appends n notes spaced dt apart starting at t, alternating between
// the left and right panels, and returns the time after the last one.
func stream(notes []Note, t, dt float32, n int) ([]Note, float32) {
	for i := 0; i < n; i++ {
		p := leftPanel
		if i%2 == 1 {
			p = rightPanel
		}
		notes = append(notes, Note{X: p.X, Y: p.Y, Time: t})
		t += dt
	}
	return notes, t
}

// Unbroken is a 16th note stream of the given length.
func Unbroken(bpm float32, measures int, meter int) *Chart {
	notes, _ := stream(make([]Note, 0, measures*16), 0, 15/bpm, measures*16)
	return &Chart{
		Title:      fmt.Sprintf("%v@%v", measures, bpm),
		Difficulty: Difficulty{Type: "dance-single", Meter: meter, NKeys: 4},
		Notes:      notes,
	}
}

// StreamWithBreak is two 16th note streams separated by a break. The
// break is silent, or filled with 8ths or 16ths.
func StreamWithBreak(bpm float32, streamMeasures, breakMeasures int, fill int) *Chart {
	sixteenth := 15 / bpm
	notes := make([]Note, 0, 2*streamMeasures*16+breakMeasures*fill)
	notes, t := stream(notes, 0, sixteenth, streamMeasures*16)
	switch fill {
	case BreakSilent:
		t += sixteenth * float32(breakMeasures*16)
	case BreakEighths:
		notes, t = stream(notes, t, 2*sixteenth, breakMeasures*8)
	case BreakSixteenth:
		notes, t = stream(notes, t, sixteenth, breakMeasures*16)
	default:
		panic(fmt.Sprintf("unsupported break fill %v", fill))
	}
	notes, _ = stream(notes, t, sixteenth, streamMeasures*16)
	return &Chart{
		Title:      fmt.Sprintf("%v/%v/%v@%v", streamMeasures, breakMeasures, streamMeasures, bpm),
		Difficulty: Difficulty{Type: "dance-single", NKeys: 4},
		Notes:      notes,
	}
}

type preset struct {
	bpm      float32
	measures int
	meter    int
}

// Hand rated stamina ladder the default step parameters were fitted to.
var presets = []preset{
	{170, 96, 15}, {170, 128, 15}, {170, 192, 16}, {170, 256, 16}, {170, 384, 17}, {170, 512, 17},
	{180, 64, 15}, {180, 96, 15}, {180, 128, 16}, {180, 192, 16}, {180, 256, 17}, {180, 384, 17}, {180, 512, 18},
	{190, 48, 15}, {190, 64, 15}, {190, 96, 16}, {190, 128, 17}, {190, 192, 17}, {190, 256, 18}, {190, 384, 18}, {190, 512, 19},
	{200, 32, 15}, {200, 48, 15}, {200, 64, 16}, {200, 96, 17}, {200, 128, 17}, {200, 192, 18}, {200, 256, 19}, {200, 384, 19}, {200, 512, 20},
	{210, 32, 15}, {210, 48, 16}, {210, 64, 17}, {210, 96, 18}, {210, 128, 18}, {210, 192, 19}, {210, 256, 20}, {210, 384, 20}, {210, 512, 21},
	{220, 32, 16}, {220, 48, 17}, {220, 64, 18}, {220, 96, 19}, {220, 128, 19}, {220, 192, 20}, {220, 256, 21}, {220, 384, 22}, {220, 512, 22},
	{230, 32, 17}, {230, 48, 18}, {230, 64, 19}, {230, 96, 20}, {230, 128, 20}, {230, 192, 21}, {230, 256, 22}, {230, 384, 22}, {230, 512, 23},
}

// Presets returns the unbroken stream ladder, optionally only the
// 512 measure charts.
func Presets(onlyLongest bool) []*Chart {
	charts := []*Chart{}
	for _, p := range presets {
		if onlyLongest && p.measures != 512 {
			continue
		}
		charts = append(charts, Unbroken(p.bpm, p.measures, p.meter))
	}
	return charts
}
