package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"git.lost.host/meutraa/stamina/internal/game"
	"github.com/sirupsen/logrus"
)

type DefaultParser struct{}

// 0: No note
// 1: Normal note
// 2: Hold head
// 3: Hold/Roll tail
// 4: Roll head
// M: Mine (or other negative note)
// L: Lift note
// F: Fake note
func isNoteLine(l string) bool {
	if l == "" {
		return false
	}
	for _, c := range l {
		switch c {
		case '0', '1', '2', '3', '4', 'M', 'L', 'F':
		default:
			return false
		}
	}
	return true
}

// Only these need a foot on the panel.
func isStep(c byte) bool {
	return c == '1' || c == '2' || c == '4' || c == 'L'
}

// lines walks the meaningful lines of a simfile, with comments and
// blank lines removed.
type lines struct {
	idx   int
	lines []string
}

func newLines(s string) *lines {
	s = strings.ReplaceAll(s, "\r", "")
	ls := []string{}
	for _, l := range strings.Split(s, "\n") {
		if i := strings.Index(l, "//"); i >= 0 {
			l = l[:i]
		}
		l = strings.TrimSpace(l)
		if l != "" {
			ls = append(ls, l)
		}
	}
	return &lines{lines: ls}
}

func (l *lines) peek() (string, bool) {
	if l.idx >= len(l.lines) {
		return "", false
	}
	return l.lines[l.idx], true
}

func (l *lines) next() (string, bool) {
	s, ok := l.peek()
	if ok {
		l.idx++
	}
	return s, ok
}

// Reads a tag value, which runs until a line ends with ';'.
func (l *lines) tag(first string) (name, value string, err error) {
	name, value, _ = strings.Cut(strings.TrimPrefix(first, "#"), ":")
	for !strings.HasSuffix(value, ";") {
		s, ok := l.next()
		if !ok {
			return name, "", fmt.Errorf("unterminated #%v tag", name)
		}
		value += s
	}
	return name, strings.TrimSuffix(value, ";"), nil
}

func (p *DefaultParser) Parse(file string) ([]*game.Chart, error) {
	data, err := os.ReadFile(file)
	if nil != err {
		return nil, fmt.Errorf("unable to read simfile: %w", err)
	}

	name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	charts, err := p.ParseString(name, string(data))
	if nil != err {
		return nil, fmt.Errorf("unable to parse %v: %w", file, err)
	}
	logrus.WithFields(logrus.Fields{
		"file":   file,
		"charts": len(charts),
	}).Debug("parsed simfile")
	return charts, nil
}

// ParseString parses simfile contents. name is used as the title when
// the simfile has no #TITLE.
func (p *DefaultParser) ParseString(name, s string) ([]*game.Chart, error) {
	ls := newLines(s)
	meta := map[string]string{}
	var tempo bpms

	charts := []*game.Chart{}
	for {
		l, ok := ls.next()
		if !ok {
			break
		}

		switch {
		case strings.HasPrefix(l, "#NOTES:"):
			if nil == tempo {
				return nil, ErrNoBPMs
			}
			chart, err := p.parseChart(ls, strings.TrimPrefix(l, "#NOTES:"), tempo)
			if nil != err {
				return nil, fmt.Errorf("chart %v: %w", len(charts)+1, err)
			}
			if nil == chart {
				continue
			}
			chart.Title = meta["TITLE"]
			if chart.Title == "" {
				chart.Title = name
			}
			chart.Artist = meta["ARTIST"]
			chart.Music = meta["MUSIC"]
			charts = append(charts, chart)
		case strings.HasPrefix(l, "#"):
			tag, value, err := ls.tag(l)
			if nil != err {
				return nil, err
			}
			tag = strings.ToUpper(tag)
			meta[tag] = strings.TrimSpace(value)
			if tag == "BPMS" {
				if tempo, err = parseBPMs(value); nil != err {
					return nil, fmt.Errorf("unable to parse #BPMS: %w", err)
				}
			}
		case isNoteLine(l):
			return nil, ErrUnexpectedNotes
		}
	}

	if nil == tempo {
		return nil, ErrNoBPMs
	}
	return charts, nil
}

// Reads the colon terminated header fields of a #NOTES section and then
// its measures. Returns a nil chart for types without a known layout.
func (p *DefaultParser) parseChart(ls *lines, rest string, tempo bpms) (*game.Chart, error) {
	header := []string{}
	if rest = strings.TrimSpace(rest); rest != "" {
		for _, field := range strings.Split(strings.TrimSuffix(rest, ":"), ":") {
			header = append(header, strings.TrimSpace(field))
		}
	}
	for {
		l, ok := ls.peek()
		if !ok || !strings.HasSuffix(l, ":") {
			break
		}
		ls.next()
		header = append(header, strings.TrimSpace(strings.TrimSuffix(l, ":")))
	}

	difficulty := game.Difficulty{}
	field := func(i int) string {
		if i < len(header) {
			return header[i]
		}
		return ""
	}
	difficulty.Type = field(0)
	difficulty.Name = field(2)
	if meter := field(3); meter != "" {
		m, err := strconv.Atoi(meter)
		if nil != err {
			logrus.WithField("meter", meter).Warn("unable to parse meter")
		}
		difficulty.Meter = m
	}

	notes, cols, err := p.parseMeasures(ls, tempo)
	if nil != err {
		return nil, err
	}

	if difficulty.Type != "" {
		nKeys, ok := game.NKeyMap[difficulty.Type]
		if !ok {
			logrus.WithField("type", difficulty.Type).Debug("skipping chart type")
			return nil, nil
		}
		difficulty.NKeys = nKeys
	} else {
		difficulty.NKeys = uint8(cols)
	}

	return &game.Chart{
		Difficulty: difficulty,
		Notes:      notes,
	}, nil
}

// Measures are blocks of note lines separated by ',' and ended by ';'.
// Row i of n in measure m falls at measure m + i/n.
func (p *DefaultParser) parseMeasures(ls *lines, tempo bpms) ([]game.Note, int, error) {
	if l, ok := ls.peek(); !ok || !isNoteLine(l) {
		return nil, 0, fmt.Errorf("expected notes, got %q", l)
	}

	notes := []game.Note{}
	cols := 0
	for measure := 0; ; measure++ {
		rows := []string{}
		for {
			l, ok := ls.peek()
			if !ok {
				return nil, 0, fmt.Errorf("measure %v is not terminated", measure)
			}
			if !isNoteLine(l) {
				break
			}
			ls.next()
			rows = append(rows, l)
		}

		for i, row := range rows {
			cols = len(row)
			t := tempo.measureToTime(float32(measure) + float32(i)/float32(len(rows)))
			for col := 0; col < len(row); col++ {
				if !isStep(row[col]) {
					continue
				}
				x, y, err := game.ColumnPos(col, len(row))
				if nil != err {
					return nil, 0, fmt.Errorf("measure %v: %w", measure, err)
				}
				notes = append(notes, game.Note{X: x, Y: y, Time: t})
			}
		}

		separator, _ := ls.next()
		switch separator {
		case ";":
			return notes, cols, nil
		case ",":
		default:
			return nil, 0, fmt.Errorf("expected ',' or ';' after measure %v, got %q", measure, separator)
		}
	}
}
