package store

import (
	"path/filepath"
	"testing"
	"time"

	"git.lost.host/meutraa/stamina/internal/game"
	"git.lost.host/meutraa/stamina/internal/rate"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *DefaultStore {
	t.Helper()
	s := NewDefaultStore(filepath.Join(t.TempDir(), "ratings.db"))
	require.NoError(t, s.Init())
	t.Cleanup(s.Deinit)
	return s
}

func TestHashChart(t *testing.T) {
	a := game.Unbroken(200, 16, 12)
	b := game.Unbroken(200, 16, 13)
	b.Title = "renamed"
	c := game.Unbroken(201, 16, 12)
	d := game.Unbroken(200, 17, 12)

	assert.Equal(t, HashChart(a), HashChart(b))
	assert.NotEqual(t, HashChart(a), HashChart(c))
	assert.NotEqual(t, HashChart(a), HashChart(d))

	double := game.Unbroken(200, 16, 12)
	double.Difficulty.NKeys = 8
	assert.NotEqual(t, HashChart(a), HashChart(double))
}

func TestRatings(t *testing.T) {
	s := newStore(t)
	chart := game.Unbroken(180, 32, 12)
	other := game.Unbroken(190, 32, 13)
	p := rate.DefaultStepParams()

	ratings, err := s.LoadRatings(chart)
	require.NoError(t, err)
	assert.Empty(t, ratings)

	_, ok, err := s.Cached(chart, p)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SaveRating(chart, p, 11.5))
	tweaked := p
	tweaked.FatigueDecayRate *= 2
	require.NoError(t, s.SaveRating(chart, tweaked, 9.25))
	require.NoError(t, s.SaveRating(other, p, 12.75))

	ratings, err = s.LoadRatings(chart)
	require.NoError(t, err)
	require.Len(t, ratings, 2)
	assert.Equal(t, float32(9.25), ratings[0].Rating)
	assert.Equal(t, tweaked, ratings[0].Params)
	assert.Equal(t, float32(11.5), ratings[1].Rating)
	assert.Equal(t, p, ratings[1].Params)
	assert.Equal(t, chart.Title, ratings[1].Title)
	assert.Equal(t, 12, ratings[1].Meter)
	assert.Equal(t, len(chart.Notes), ratings[1].NoteCount)
	assert.Equal(t, HashChart(chart), ratings[1].Sum)
	assert.WithinDuration(t, time.Now(), ratings[1].RatedAt, time.Minute)

	rating, ok, err := s.Cached(chart, p)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, float32(11.5), rating)

	rating, ok, err = s.Cached(chart, tweaked)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, float32(9.25), rating)

	history, err := s.History()
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, float32(12.75), history[0].Rating)
}

func TestFits(t *testing.T) {
	s := newStore(t)

	_, err := s.LatestFit()
	assert.ErrorIs(t, err, ErrNoFit)

	first := FitRun{
		ID:         uuid.New(),
		Charts:     57,
		Iterations: 100,
		Seed:       1,
		Error:      0.75,
		Params:     rate.DefaultStepParams(),
		FinishedAt: time.Unix(1000, 0),
	}
	require.NoError(t, s.SaveFit(first))

	second := first
	second.ID = uuid.Nil
	second.Error = 0.5
	second.FinishedAt = time.Time{}
	require.NoError(t, s.SaveFit(second))

	latest, err := s.LatestFit()
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, latest.ID)
	assert.NotEqual(t, first.ID, latest.ID)
	assert.Equal(t, float32(0.5), latest.Error)
	assert.Equal(t, first.Params, latest.Params)
	assert.Equal(t, 57, latest.Charts)
	assert.Equal(t, int64(1), latest.Seed)
	assert.True(t, latest.FinishedAt.After(first.FinishedAt))
}

func TestReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ratings.db")
	chart := game.Unbroken(180, 32, 12)

	s := NewDefaultStore(path)
	require.NoError(t, s.Init())
	require.NoError(t, s.SaveRating(chart, rate.DefaultStepParams(), 10))
	s.Deinit()
	s.Deinit()

	s = NewDefaultStore(path)
	require.NoError(t, s.Init())
	defer s.Deinit()
	ratings, err := s.LoadRatings(chart)
	require.NoError(t, err)
	assert.Len(t, ratings, 1)
}
