package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetRatingColor(t *testing.T) {
	tests := map[float32]Color{
		-1:    ratingColors[0],
		0:     ratingColors[0],
		4.99:  ratingColors[0],
		5:     ratingColors[5],
		12.5:  ratingColors[11],
		13:    ratingColors[13],
		19.99: ratingColors[17],
		35:    ratingColors[20],
	}
	for rating, expected := range tests {
		assert.Equal(t, expected, GetRatingColor(rating), "rating %v", rating)
	}
}

func TestRender(t *testing.T) {
	plain := &DefaultTheme{Plain: true}
	assert.Equal(t, " 12.35", plain.RenderRating(12.346))
	assert.Equal(t, " 12", plain.RenderMeter(12))
	assert.Equal(t, "Rating", plain.RenderHeader("Rating"))

	var th Theme = &DefaultTheme{}
	assert.Equal(t, "\033[38;2;236;30;0m 13.00\033[0m", th.RenderRating(13))
	assert.Equal(t, "\033[38;2;0;236;128m  1\033[0m", th.RenderMeter(1))
	assert.Equal(t, "\033[1mRating\033[0m", th.RenderHeader("Rating"))
}
