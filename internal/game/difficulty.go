package game

import (
	"fmt"
)

type Difficulty struct {
	Type  string // dance-single, pump-double, ...
	Name  string
	Meter int
	NKeys uint8
}

// Chart types with a known pad layout. Anything else is skipped.
var NKeyMap = map[string]uint8{
	"dance-single":   4,
	"dance-double":   8,
	"pump-single":    5,
	"pump-double":    10,
	"techno-single9": 9,
}

// A pad layout maps a panel index within one pad to its position.
type layout struct {
	panels    int
	positions []Note
}

// Checked in order, so a 10 column chart is read as two pump pads
// rather than anything else.
var layouts = []layout{
	{panels: 4, positions: []Note{{X: 0, Y: 1}, {X: 1, Y: 0}, {X: 1, Y: 2}, {X: 2, Y: 1}}},
	{panels: 5, positions: []Note{{X: 0, Y: 0}, {X: 0, Y: 2}, {X: 1, Y: 1}, {X: 2, Y: 2}, {X: 2, Y: 0}}},
	{panels: 9, positions: []Note{
		{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2},
		{X: 1, Y: 0}, {X: 1, Y: 1}, {X: 1, Y: 2},
		{X: 2, Y: 2}, {X: 2, Y: 1}, {X: 2, Y: 0},
	}},
}

// PadSpacing is the horizontal offset between side by side pads.
const PadSpacing = 3

// ColumnPos returns the panel position of a chart column. Multi-pad
// charts place each pad PadSpacing units to the right of the last.
func ColumnPos(col, nCols int) (x, y float32, err error) {
	if col < 0 || col >= nCols {
		return 0, 0, fmt.Errorf("column %v out of range for %v columns", col, nCols)
	}
	for _, l := range layouts {
		if nCols%l.panels != 0 {
			continue
		}
		pad := col / l.panels
		p := l.positions[col%l.panels]
		return PadSpacing*float32(pad) + p.X, p.Y, nil
	}
	return 0, 0, fmt.Errorf("unsupported column count %v", nCols)
}
