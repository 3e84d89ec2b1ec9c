package store

import (
	"errors"
	"time"

	"git.lost.host/meutraa/stamina/internal/game"
	"git.lost.host/meutraa/stamina/internal/rate"
	"github.com/google/uuid"
)

var ErrNoFit = errors.New("no fit has been recorded")

type Store interface {
	Init() error
	Deinit()

	// Save the rating of a chart under the params it was rated with
	SaveRating(chart *game.Chart, params rate.StepParams, rating float32) error

	// Load up previous ratings for the chart, newest first
	LoadRatings(chart *game.Chart) ([]Rating, error)

	// Cached returns the newest rating made with exactly these params
	Cached(chart *game.Chart, params rate.StepParams) (float32, bool, error)

	// Every stored rating, newest first
	History() ([]Rating, error)

	SaveFit(run FitRun) error
	LatestFit() (FitRun, error)
}

type Rating struct {
	Sum        string
	Title      string
	Difficulty string
	Meter      int
	NoteCount  int
	Rating     float32
	Params     rate.StepParams
	RatedAt    time.Time
}

type FitRun struct {
	ID         uuid.UUID
	Charts     int
	Iterations int
	Seed       int64
	Error      float32
	Params     rate.StepParams
	FinishedAt time.Time
}
