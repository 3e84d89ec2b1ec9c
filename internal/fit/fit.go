package fit

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"

	"git.lost.host/meutraa/stamina/internal/game"
	"git.lost.host/meutraa/stamina/internal/rate"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// MinParam is what a non-positive parameter is raised to after a
// perturbation.
const MinParam float32 = 0.0001

var ErrNoCharts = errors.New("no charts to fit against")

type Options struct {
	Iterations int
	Seed       int64
	// Workers bounds how many charts are rated at once, 0 is unbounded
	Workers int
	Engine  *rate.Engine
}

type Result struct {
	Params       rate.StepParams
	Error        float32
	StartError   float32
	Iterations   int
	Improvements int
}

// Target is the rating a chart should get. Meters are whole numbers, so
// a chart rated anywhere in [meter, meter+1) is on target.
func Target(c *game.Chart) float32 {
	return float32(c.Difficulty.Meter) + 0.5
}

// Error is the root mean square distance of each chart's rating from its
// target.
func Error(ctx context.Context, charts []*game.Chart, p rate.StepParams, opts Options) (float32, error) {
	if len(charts) == 0 {
		return 0, ErrNoCharts
	}
	engine := opts.Engine
	if nil == engine {
		engine = rate.NewEngine(rate.DefaultOptions())
	}

	ratings := make([]float32, len(charts))
	g, ctx := errgroup.WithContext(ctx)
	if opts.Workers > 0 {
		g.SetLimit(opts.Workers)
	}
	for i, c := range charts {
		g.Go(func() error {
			if err := ctx.Err(); nil != err {
				return err
			}
			ratings[i] = engine.Rate(c.Notes, p)
			return nil
		})
	}
	if err := g.Wait(); nil != err {
		return 0, err
	}

	sum := lo.Sum(lo.Map(ratings, func(r float32, i int) float64 {
		d := float64(r - Target(charts[i]))
		return d * d
	}))
	return float32(math.Sqrt(sum / float64(len(charts)))), nil
}

// Each parameter is either scaled by up to 2x or shifted by up to 1.
func perturb(rng *rand.Rand, p rate.StepParams) rate.StepParams {
	s := p.Slice()
	for i := range s {
		if rng.Intn(2) == 0 {
			s[i] *= rng.Float32() * 2
		} else {
			s[i] += rng.Float32()*2 - 1
		}
	}
	next, _ := rate.StepParamsFromSlice(s)
	next.Clamp(MinParam)
	return next
}

// HillClimb repeatedly perturbs the best params found so far and keeps
// the perturbation when it lowers the error. Cancelling ctx stops the
// climb and returns the best params so far along with the context error.
func HillClimb(ctx context.Context, charts []*game.Chart, start rate.StepParams, opts Options) (Result, error) {
	start.Clamp(MinParam)
	best, err := Error(ctx, charts, start, opts)
	if nil != err {
		return Result{}, fmt.Errorf("unable to rate starting params: %w", err)
	}
	res := Result{Params: start, Error: best, StartError: best}
	logrus.WithFields(logrus.Fields{
		"charts": len(charts),
		"error":  best,
	}).Info("starting fit")

	rng := rand.New(rand.NewSource(opts.Seed))
	for ; res.Iterations < opts.Iterations; res.Iterations++ {
		if err := ctx.Err(); nil != err {
			return res, err
		}
		candidate := perturb(rng, res.Params)
		e, err := Error(ctx, charts, candidate, opts)
		if nil != err {
			return res, err
		}
		if e < res.Error {
			res.Params, res.Error = candidate, e
			res.Improvements++
			logrus.WithFields(logrus.Fields{
				"iteration": res.Iterations,
				"error":     e,
				"params":    candidate.Slice(),
			}).Info("fit improved")
		}
	}
	return res, nil
}
