package parser

import (
	"fmt"
	"strconv"
	"strings"
)

type bpmChange struct {
	beat float32
	bpm  float32
}

type bpms []bpmChange

// Reads a #BPMS value, a comma separated list of beat=bpm pairs.
func parseBPMs(value string) (bpms, error) {
	changes := bpms{}
	for _, pair := range strings.Split(value, ",") {
		pair = strings.TrimSpace(pair)
		as := strings.Split(pair, "=")
		if len(as) != 2 {
			return nil, fmt.Errorf("expected beat=bpm, got %q", pair)
		}
		beat, err := strconv.ParseFloat(strings.TrimSpace(as[0]), 32)
		if nil != err {
			return nil, fmt.Errorf("unable to parse beat in %q: %w", pair, err)
		}
		bpm, err := strconv.ParseFloat(strings.TrimSpace(as[1]), 32)
		if nil != err {
			return nil, fmt.Errorf("unable to parse bpm in %q: %w", pair, err)
		}
		if bpm <= 0 {
			return nil, fmt.Errorf("bpm must be positive in %q", pair)
		}
		changes = append(changes, bpmChange{beat: float32(beat), bpm: float32(bpm)})
	}
	return changes, nil
}

func intervalTime(bpm, beats float32) float32 {
	return 60 / bpm * beats
}

// beatToTime walks the bpm changes up to beat. Anything before the first
// change plays at the first listed bpm.
func (b bpms) beatToTime(beat float32) float32 {
	if len(b) == 0 {
		return 0
	}
	lastBeat, lastBPM := float32(0), b[0].bpm
	seconds := float32(0)
	for _, c := range b {
		if beat <= c.beat {
			break
		}
		seconds += intervalTime(lastBPM, c.beat-lastBeat)
		lastBeat, lastBPM = c.beat, c.bpm
	}
	return seconds + intervalTime(lastBPM, beat-lastBeat)
}

// Four beats to a measure.
func (b bpms) measureToTime(measure float32) float32 {
	return b.beatToTime(measure * 4)
}
