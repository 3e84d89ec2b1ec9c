package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"git.lost.host/meutraa/stamina/internal/audio"
	"git.lost.host/meutraa/stamina/internal/game"
	"git.lost.host/meutraa/stamina/internal/parser"
	"github.com/sirupsen/logrus"
)

// A chart and the simfile it came from, empty for presets.
type chartFile struct {
	file  string
	chart *game.Chart
}

// Collects every .sm file under paths.
func findSimfiles(paths []string) ([]string, error) {
	files := []string{}
	for _, root := range paths {
		if err := filepath.Walk(root, func(p string, info os.FileInfo, err error) error {
			if nil != err {
				return err
			}
			if !info.IsDir() && strings.EqualFold(filepath.Ext(info.Name()), ".sm") {
				files = append(files, p)
			}
			return nil
		}); nil != err {
			return nil, fmt.Errorf("unable to walk %v: %w", root, err)
		}
	}
	return files, nil
}

// Simfiles that fail to parse are logged and skipped.
func loadCharts(psr parser.Parser, paths []string, presets []*game.Chart) ([]chartFile, error) {
	files, err := findSimfiles(paths)
	if nil != err {
		return nil, err
	}

	charts := []chartFile{}
	for _, file := range files {
		cs, err := psr.Parse(file)
		if nil != err {
			logrus.WithError(err).WithField("file", file).Warn("skipping simfile")
			continue
		}
		for _, c := range cs {
			charts = append(charts, chartFile{file: file, chart: c})
		}
	}
	for _, c := range presets {
		charts = append(charts, chartFile{chart: c})
	}
	return charts, nil
}

func secondsToDuration(s float32) time.Duration {
	return time.Duration(float64(s) * float64(time.Second))
}

// songLengths looks up the audio length of each simfile's song once.
type songLengths map[string]float64

func (s songLengths) nps(c chartFile) float64 {
	if c.file == "" {
		return audio.NotesPerSecond(len(c.chart.Notes), secondsToDuration(c.chart.Duration()))
	}
	if c.chart.Music == "" {
		return 0
	}
	path := filepath.Join(filepath.Dir(c.file), c.chart.Music)
	seconds, ok := s[path]
	if !ok {
		length, err := audio.Length(path)
		if nil != err {
			logrus.WithError(err).WithField("music", path).Debug("unknown song length")
		}
		seconds = length.Seconds()
		s[path] = seconds
	}
	if seconds <= 0 {
		return 0
	}
	return float64(len(c.chart.Notes)) / seconds
}
