package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnbroken(t *testing.T) {
	chart := Unbroken(120, 2, 42)
	require.Len(t, chart.Notes, 32)
	assert.Equal(t, 42, chart.Difficulty.Meter)
	assert.Equal(t, Note{X: 0, Y: 1, Time: 0}, chart.Notes[0])
	assert.Equal(t, Note{X: 2, Y: 1, Time: 0.125}, chart.Notes[1])
	assert.Equal(t, Note{X: 0, Y: 1, Time: 0.25}, chart.Notes[2])
	assert.Equal(t, -1, Ordered(chart.Notes))
}

func TestStreamWithBreak(t *testing.T) {
	silent := StreamWithBreak(200, 1, 8, BreakSilent)
	eighths := StreamWithBreak(200, 1, 8, BreakEighths)
	sixteenths := StreamWithBreak(200, 1, 8, BreakSixteenth)

	assert.Len(t, silent.Notes, 32)
	assert.Len(t, eighths.Notes, 32+64)
	assert.Len(t, sixteenths.Notes, 32+128)

	// All three resume at the same time
	assert.InDelta(t, silent.Duration(), eighths.Duration(), 1e-3)
	assert.InDelta(t, silent.Duration(), sixteenths.Duration(), 1e-3)

	for _, c := range []*Chart{silent, eighths, sixteenths} {
		assert.Equal(t, -1, Ordered(c.Notes), c.Title)
	}
	assert.Panics(t, func() { StreamWithBreak(200, 1, 1, 3) })
}

func TestPresets(t *testing.T) {
	assert.Len(t, Presets(false), len(presets))
	longest := Presets(true)
	assert.Len(t, longest, 7)
	for _, c := range longest {
		assert.Len(t, c.Notes, 512*16)
	}
}

func TestDescription(t *testing.T) {
	c := Chart{Title: "Song"}
	assert.Equal(t, "Song", c.Description())
	c.Difficulty.Name = "Challenge"
	assert.Equal(t, "Song (Challenge)", c.Description())
	assert.Equal(t, float32(0), c.Duration())
}

var columnTests = []struct {
	col, nCols int
	x, y       float32
}{
	{0, 4, 0, 1},
	{3, 4, 2, 1},
	{7, 8, 5, 1},
	{2, 5, 1, 1},
	{9, 10, 5, 0},
	{4, 9, 1, 1},
	{10, 18, 3, 1},
}

func TestColumnPos(t *testing.T) {
	for _, test := range columnTests {
		x, y, err := ColumnPos(test.col, test.nCols)
		require.NoError(t, err)
		assert.Equal(t, test.x, x, "col %v of %v", test.col, test.nCols)
		assert.Equal(t, test.y, y, "col %v of %v", test.col, test.nCols)
	}

	_, _, err := ColumnPos(0, 7)
	assert.Error(t, err)
	_, _, err = ColumnPos(4, 4)
	assert.Error(t, err)
}

func TestNoteDistance(t *testing.T) {
	a := Note{X: 0, Y: 0}
	b := Note{X: 3, Y: 4}
	assert.Equal(t, float32(5), a.Distance(b))
	assert.Equal(t, float32(0), a.Distance(a))
	assert.Equal(t, 1, Ordered([]Note{{Time: 1}, {Time: 0}}))
}
