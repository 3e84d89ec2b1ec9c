package render

import (
	"io"

	"git.lost.host/meutraa/stamina/internal/rate"
)

type Renderer interface {
	// Writes a table of ratings, one chart per row
	Table(w io.Writer, rows []Row) error
	// Writes a fatigue trace as time,fatigue CSV
	Trace(w io.Writer, points []rate.TracePoint) error
}

type Row struct {
	Rating     float32
	Meter      int
	Notes      int
	NPS        float64 // 0 when the song length is unknown
	Title      string
	Difficulty string
	Cached     bool
}
