package theme

import (
	"fmt"
	"math"
)

type Color struct {
	R, G, B uint8
}

// DefaultTheme colours output with 24 bit terminal escapes. A Plain
// theme returns text unchanged, for pipes and files.
type DefaultTheme struct {
	Plain bool
}

func (t *DefaultTheme) paint(c Color, s string) string {
	if t.Plain {
		return s
	}
	return fmt.Sprintf("\033[38;2;%v;%v;%vm%v\033[0m", c.R, c.G, c.B, s)
}

func (t *DefaultTheme) RenderRating(rating float32) string {
	return t.paint(GetRatingColor(rating), fmt.Sprintf("%6.2f", rating))
}

func (t *DefaultTheme) RenderMeter(meter int) string {
	return t.paint(GetRatingColor(float32(meter)), fmt.Sprintf("%3v", meter))
}

func (t *DefaultTheme) RenderHeader(title string) string {
	if t.Plain {
		return title
	}
	return "\033[1m" + title + "\033[0m"
}

var (
	// Lowest rating of each band
	ratingColors = map[int]Color{
		0:  {0, 236, 128},   // green
		5:  {0, 118, 236},   // blue
		9:  {236, 195, 0},   // yellow
		11: {236, 128, 0},   // orange
		13: {236, 30, 0},    // red
		15: {236, 0, 106},   // pink
		17: {106, 0, 236},   // purple
		20: {255, 255, 255}, // white
	}
	bands = [...]int{20, 17, 15, 13, 11, 9, 5, 0}
)

func GetRatingColor(rating float32) Color {
	r := int(math.Floor(float64(rating)))
	for _, b := range bands {
		if r >= b {
			return ratingColors[b]
		}
	}
	return ratingColors[0]
}
