package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"

	"git.lost.host/meutraa/stamina/internal/config"
	"git.lost.host/meutraa/stamina/internal/fit"
	"git.lost.host/meutraa/stamina/internal/game"
	"git.lost.host/meutraa/stamina/internal/parser"
	"git.lost.host/meutraa/stamina/internal/rate"
	"git.lost.host/meutraa/stamina/internal/render"
	"git.lost.host/meutraa/stamina/internal/store"
	"github.com/eiannone/keyboard"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func openStore() (store.Store, error) {
	var s store.Store = store.NewDefaultStore(*config.Database)
	if err := s.Init(); nil != err {
		return nil, fmt.Errorf("unable to open rating history: %w", err)
	}
	return s, nil
}

func rateCharts(ctx context.Context) error {
	var psr parser.Parser = &parser.DefaultParser{}
	var r render.Renderer = render.NewDefaultRenderer(os.Stdout)

	params, err := config.LoadParams(*config.Params)
	if nil != err {
		return err
	}
	engine := rate.NewEngine(config.Options())

	presets := []*game.Chart{}
	if *config.RatePresets {
		presets = game.Presets(false)
	}
	charts, err := loadCharts(psr, *config.RatePaths, presets)
	if nil != err {
		return err
	}
	if len(charts) == 0 {
		return errors.New("no charts found, give simfiles, directories or --presets")
	}

	var db store.Store
	ratings := make([]float32, len(charts))
	cached := make([]bool, len(charts))
	if *config.RateCache {
		if db, err = openStore(); nil != err {
			return err
		}
		defer db.Deinit()
		for i, c := range charts {
			if ratings[i], cached[i], err = db.Cached(c.chart, params); nil != err {
				return err
			}
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, c := range charts {
		if cached[i] {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); nil != err {
				return err
			}
			ratings[i] = engine.Rate(c.chart.Notes, params)
			logrus.WithFields(logrus.Fields{
				"chart":  c.chart.Description(),
				"rating": ratings[i],
			}).Debug("rated chart")
			return nil
		})
	}
	if err := g.Wait(); nil != err {
		return err
	}

	if nil != db {
		for i, c := range charts {
			if cached[i] {
				continue
			}
			if err := db.SaveRating(c.chart, params, ratings[i]); nil != err {
				return err
			}
		}
	}

	lengths := songLengths{}
	rows := lo.Map(charts, func(c chartFile, i int) render.Row {
		return render.Row{
			Rating:     ratings[i],
			Meter:      c.chart.Difficulty.Meter,
			Notes:      len(c.chart.Notes),
			NPS:        lengths.nps(c),
			Title:      c.chart.Title,
			Difficulty: c.chart.Difficulty.Name,
			Cached:     cached[i],
		}
	})
	render.SortRows(rows, *config.RateSort)
	return r.Table(os.Stdout, rows)
}

// Lists the charts and reads a single digit choice, as there is no
// --chart to pick one.
func pickChart(charts []*game.Chart) (int, error) {
	if len(charts) == 1 {
		return 0, nil
	}
	if len(charts) > 10 {
		return 0, fmt.Errorf("%v charts to choose from, pick one with --chart", len(charts))
	}

	keyChannel, err := keyboard.GetKeys(1)
	if nil != err {
		return 0, fmt.Errorf("unable to open keyboard: %w", err)
	}
	defer func() {
		if err := keyboard.Close(); nil != err {
			logrus.WithError(err).Warn("unable to close keyboard")
		}
	}()

	for i, c := range charts {
		fmt.Fprintf(os.Stderr, "%2v) %3v  %5v  %v\n", i, c.Difficulty.Meter, len(c.Notes), c.Description())
	}
	key := <-keyChannel
	if nil != key.Err {
		return 0, key.Err
	}
	index, err := strconv.Atoi(string(key.Rune))
	if nil != err || index >= len(charts) {
		return 0, fmt.Errorf("no chart %q", key.Rune)
	}
	return index, nil
}

func traceChart() error {
	var psr parser.Parser = &parser.DefaultParser{}
	var r render.Renderer = render.NewDefaultRenderer(os.Stdout)

	params, err := config.LoadParams(*config.Params)
	if nil != err {
		return err
	}
	charts, err := psr.Parse(*config.TraceFile)
	if nil != err {
		return err
	}
	if len(charts) == 0 {
		return fmt.Errorf("no charts in %v", *config.TraceFile)
	}

	index := *config.TraceChart
	if index < 0 {
		if index, err = pickChart(charts); nil != err {
			return err
		}
	}
	if index >= len(charts) {
		return fmt.Errorf("chart %v out of range, %v has %v", index, *config.TraceFile, len(charts))
	}
	chart := charts[index]

	out := os.Stdout
	if *config.TraceOut != "" {
		if out, err = os.Create(*config.TraceOut); nil != err {
			return fmt.Errorf("unable to create trace file: %w", err)
		}
		defer out.Close()
	}

	res := rate.NewEngine(config.Options()).Result(chart.Notes, params)
	logrus.WithFields(logrus.Fields{
		"chart":  chart.Description(),
		"rating": res.Rating,
		"rounds": res.Rounds,
		"peak":   res.PeakNodes,
	}).Info("traced chart")

	return r.Trace(out, res.Trace(chart.Notes))
}

func fitParams(ctx context.Context) error {
	var psr parser.Parser = &parser.DefaultParser{}

	start, err := config.LoadParams(*config.Params)
	if nil != err {
		return err
	}
	presets := []*game.Chart{}
	if *config.FitPresets {
		presets = game.Presets(*config.FitLongest)
	}
	files, err := loadCharts(psr, *config.FitPaths, presets)
	if nil != err {
		return err
	}
	// Charts without a meter have nothing to fit to
	charts := lo.FilterMap(files, func(c chartFile, _ int) (*game.Chart, bool) {
		return c.chart, c.chart.Difficulty.Meter > 0
	})

	opts := fit.Options{
		Iterations: *config.FitIterations,
		Seed:       *config.FitSeed,
		Workers:    *config.FitWorkers,
		Engine:     rate.NewEngine(config.Options()),
	}
	res, err := fit.HillClimb(ctx, charts, start, opts)
	if errors.Is(err, context.Canceled) && nil == res.Params.Validate() {
		logrus.WithField("iterations", res.Iterations).Warn("fit interrupted, keeping the best params so far")
	} else if nil != err {
		return err
	}

	fmt.Printf("error %.4f -> %.4f after %v iterations (%v improvements)\n", res.StartError, res.Error, res.Iterations, res.Improvements)
	for i, v := range res.Params.Slice() {
		fmt.Printf("  %-24v %v\n", paramLabels[i], v)
	}

	if *config.FitOut != "" {
		if err := config.SaveParams(*config.FitOut, res.Params); nil != err {
			return err
		}
	}

	db, err := openStore()
	if nil != err {
		return err
	}
	defer db.Deinit()
	return db.SaveFit(store.FitRun{
		ID:         uuid.New(),
		Charts:     len(charts),
		Iterations: res.Iterations,
		Seed:       opts.Seed,
		Error:      res.Error,
		Params:     res.Params,
	})
}

var paramLabels = [rate.NumStepParams]string{
	"base fatigue per step",
	"fatigue per step ratio",
	"fatigue distance ratio",
	"fatigue decay rate",
	"rest time constant",
}

func showHistory() error {
	var r render.Renderer = render.NewDefaultRenderer(os.Stdout)

	db, err := openStore()
	if nil != err {
		return err
	}
	defer db.Deinit()

	history, err := db.History()
	if nil != err {
		return err
	}
	if limit := *config.HistoryLimit; limit >= 0 && len(history) > limit {
		history = history[:limit]
	}
	rows := lo.Map(history, func(h store.Rating, _ int) render.Row {
		return render.Row{
			Rating:     h.Rating,
			Meter:      h.Meter,
			Notes:      h.NoteCount,
			Title:      h.Title,
			Difficulty: h.Difficulty,
		}
	})
	if err := r.Table(os.Stdout, rows); nil != err {
		return err
	}

	run, err := db.LatestFit()
	if errors.Is(err, store.ErrNoFit) {
		fmt.Println("no fit recorded")
		return nil
	} else if nil != err {
		return err
	}
	fmt.Printf("latest fit %v at %v: error %.4f over %v charts, params %v\n",
		run.ID, run.FinishedAt.Format("2006-01-02 15:04"), run.Error, run.Charts, run.Params.Slice())
	return nil
}
