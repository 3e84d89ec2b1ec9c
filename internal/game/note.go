package game

import (
	"math"
)

// Note is a single foot-activating event on the pad.
type Note struct {
	X, Y float32 // Panel position, in panel widths
	Time float32 // Seconds since the start of the chart
}

// Distance is the Euclidean distance between two panel positions.
func (n Note) Distance(o Note) float32 {
	dx := float64(n.X - o.X)
	dy := float64(n.Y - o.Y)
	return float32(math.Sqrt(dx*dx + dy*dy))
}

// Ordered reports the index of the first note that is earlier than
// the one before it, or -1 when the notes are in time order.
func Ordered(notes []Note) int {
	for i := 1; i < len(notes); i++ {
		if notes[i].Time < notes[i-1].Time {
			return i
		}
	}
	return -1
}
