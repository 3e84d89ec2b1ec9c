package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"git.lost.host/meutraa/stamina/internal/rate"
	"git.lost.host/meutraa/stamina/internal/theme"
	"golang.org/x/term"
)

// DefaultWidth is used when the output is not a terminal.
const DefaultWidth = 100

// Rating, meter, notes and nps columns with their separators.
const fixedWidth = 6 + 2 + 3 + 2 + 6 + 2 + 5 + 2

type DefaultRenderer struct {
	Theme  theme.Theme
	Width  int
	buffer strings.Builder
}

// NewDefaultRenderer sizes tables to f, and only colours them when f is
// a terminal.
func NewDefaultRenderer(f *os.File) *DefaultRenderer {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return &DefaultRenderer{Theme: &theme.DefaultTheme{Plain: true}, Width: DefaultWidth}
	}
	width, _, err := term.GetSize(fd)
	if nil != err || width <= fixedWidth {
		width = DefaultWidth
	}
	return &DefaultRenderer{Theme: &theme.DefaultTheme{}, Width: width}
}

// Cuts s to at most n runes.
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

func (r *DefaultRenderer) fill(cells ...string) {
	r.buffer.WriteString(strings.Join(cells, "  "))
	r.buffer.WriteString("\n")
}

func (r *DefaultRenderer) flush(w io.Writer) error {
	_, err := io.WriteString(w, r.buffer.String())
	r.buffer.Reset()
	return err
}

func (r *DefaultRenderer) Table(w io.Writer, rows []Row) error {
	width := r.Width
	if width <= fixedWidth {
		width = DefaultWidth
	}
	titleWidth := width - fixedWidth

	r.fill(
		r.Theme.RenderHeader("Rating"),
		r.Theme.RenderHeader("Lvl"),
		r.Theme.RenderHeader(" Notes"),
		r.Theme.RenderHeader("  NPS"),
		r.Theme.RenderHeader("Chart"),
	)
	for _, row := range rows {
		nps := "    -"
		if row.NPS > 0 {
			nps = fmt.Sprintf("%5.2f", row.NPS)
		}
		title := row.Title
		if row.Difficulty != "" {
			title = fmt.Sprintf("%v (%v)", row.Title, row.Difficulty)
		}
		if row.Cached {
			title += " *"
		}
		r.fill(
			r.Theme.RenderRating(row.Rating),
			r.Theme.RenderMeter(row.Meter),
			fmt.Sprintf("%6v", row.Notes),
			nps,
			truncate(title, titleWidth),
		)
	}
	return r.flush(w)
}

func (r *DefaultRenderer) Trace(w io.Writer, points []rate.TracePoint) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"time", "fatigue"}); nil != err {
		return err
	}
	for _, p := range points {
		record := []string{
			strconv.FormatFloat(float64(p.Time), 'f', -1, 32),
			strconv.FormatFloat(float64(p.Fatigue), 'f', -1, 32),
		}
		if err := cw.Write(record); nil != err {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SortRows orders rows by a column. Ratings and meters sort hardest
// first, titles and note counts ascending.
func SortRows(rows []Row, by string) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		switch by {
		case "meter":
			return a.Meter > b.Meter
		case "title":
			return a.Title < b.Title
		case "notes":
			return a.Notes < b.Notes
		default:
			return a.Rating > b.Rating
		}
	})
}
