package fit

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"git.lost.host/meutraa/stamina/internal/game"
	"git.lost.host/meutraa/stamina/internal/rate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func charts() []*game.Chart {
	return []*game.Chart{
		game.Unbroken(150, 2, 1),
		game.Unbroken(180, 4, 3),
		game.Unbroken(210, 4, 6),
	}
}

func TestTarget(t *testing.T) {
	assert.Equal(t, float32(12.5), Target(game.Unbroken(200, 16, 12)))
}

func TestError(t *testing.T) {
	ctx := context.Background()
	p := rate.DefaultStepParams()

	_, err := Error(ctx, nil, p, Options{})
	assert.ErrorIs(t, err, ErrNoCharts)

	c := game.Unbroken(180, 4, 3)
	e, err := Error(ctx, []*game.Chart{c}, p, Options{})
	require.NoError(t, err)
	expected := math.Abs(float64(rate.Rate(c.Notes, p) - Target(c)))
	assert.InDelta(t, expected, e, 1e-5)

	all := charts()
	sum := 0.0
	for _, c := range all {
		d := float64(rate.Rate(c.Notes, p) - Target(c))
		sum += d * d
	}
	e, err = Error(ctx, all, p, Options{Workers: 1})
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(sum/3), e, 1e-5)
}

func TestPerturb(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	p := rate.StepParams{
		BaseFatiguePerStep:  0.001,
		FatiguePerStepRatio: 0.001,
		FatigueDistRatio:    0.001,
		FatigueDecayRate:    0.001,
		RestTimeAddConstant: 0.001,
	}
	for i := 0; i < 200; i++ {
		p = perturb(rng, p)
		require.NoError(t, p.Validate())
	}
}

func TestHillClimb(t *testing.T) {
	ctx := context.Background()
	start := rate.DefaultStepParams()
	opts := Options{Iterations: 20, Seed: 3}

	res, err := HillClimb(ctx, charts(), start, opts)
	require.NoError(t, err)
	assert.Equal(t, 20, res.Iterations)
	assert.LessOrEqual(t, res.Error, res.StartError)
	assert.NoError(t, res.Params.Validate())
	if res.Improvements == 0 {
		assert.Equal(t, start, res.Params)
	} else {
		assert.Less(t, res.Error, res.StartError)
	}

	e, err := Error(ctx, charts(), res.Params, opts)
	require.NoError(t, err)
	assert.Equal(t, res.Error, e)

	again, err := HillClimb(ctx, charts(), start, opts)
	require.NoError(t, err)
	assert.Equal(t, res, again)
}

func TestHillClimbCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := HillClimb(ctx, charts(), rate.DefaultStepParams(), Options{Iterations: 5})
	assert.ErrorIs(t, err, context.Canceled)

	_, err = HillClimb(context.Background(), nil, rate.DefaultStepParams(), Options{Iterations: 5})
	assert.ErrorIs(t, err, ErrNoCharts)
}
