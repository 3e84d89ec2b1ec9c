package store

import (
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"git.lost.host/meutraa/stamina/internal/game"
	"git.lost.host/meutraa/stamina/internal/rate"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

type DefaultStore struct {
	Path string
	db   *sql.DB
}

func NewDefaultStore(path string) *DefaultStore {
	return &DefaultStore{Path: path}
}

func (s *DefaultStore) Init() error {
	db, err := sql.Open("sqlite3", s.Path)
	if nil != err {
		return fmt.Errorf("unable to open %v: %w", s.Path, err)
	}

	initStatement := `
	create table if not exists ratings
	  (
		  id integer not null primary key,
		  sum text not null,
		  title text,
		  difficulty text,
		  meter integer,
		  notes integer,
		  rating real,
		  params text,
		  rated_at integer
	  );
	create index if not exists ratings_sum on ratings(sum);
	create table if not exists fits
	  (
		  id text not null primary key,
		  charts integer,
		  iterations integer,
		  seed integer,
		  error real,
		  params text,
		  finished_at integer
	  );
	`
	if _, err = db.Exec(initStatement); nil != err {
		db.Close()
		return fmt.Errorf("unable to create tables: %w", err)
	}

	s.db = db
	return nil
}

func (s *DefaultStore) Deinit() {
	if nil != s.db {
		s.db.Close()
		s.db = nil
	}
}

// HashChart identifies a chart by its pad layout and notes, so the same
// chart found in two simfiles shares its ratings.
func HashChart(c *game.Chart) string {
	h := sha256.New()
	h.Write([]byte{c.Difficulty.NKeys})
	buf := make([]byte, 4)
	for _, n := range c.Notes {
		for _, f := range []float32{n.X, n.Y, n.Time} {
			binary.LittleEndian.PutUint32(buf, math.Float32bits(f))
			h.Write(buf)
		}
	}
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

func marshalParams(p rate.StepParams) (string, error) {
	data, err := json.Marshal(p)
	if nil != err {
		return "", fmt.Errorf("unable to marshal params: %w", err)
	}
	return string(data), nil
}

func (s *DefaultStore) SaveRating(c *game.Chart, params rate.StepParams, rating float32) error {
	data, err := marshalParams(params)
	if nil != err {
		return err
	}
	_, err = s.db.Exec(
		"insert into ratings(sum, title, difficulty, meter, notes, rating, params, rated_at) values(?, ?, ?, ?, ?, ?, ?, ?)",
		HashChart(c), c.Title, c.Difficulty.Name, c.Difficulty.Meter, len(c.Notes), rating, data, time.Now().UnixNano(),
	)
	if nil != err {
		return fmt.Errorf("unable to save rating: %w", err)
	}
	return nil
}

const ratingColumns = "sum, title, difficulty, meter, notes, rating, params, rated_at"

func (s *DefaultStore) queryRatings(query string, args ...any) ([]Rating, error) {
	rows, err := s.db.Query(query, args...)
	if nil != err {
		return nil, fmt.Errorf("unable to load ratings: %w", err)
	}
	defer rows.Close()

	ratings := []Rating{}
	for rows.Next() {
		var r Rating
		var params string
		var ratedAt int64
		if err := rows.Scan(&r.Sum, &r.Title, &r.Difficulty, &r.Meter, &r.NoteCount, &r.Rating, &params, &ratedAt); nil != err {
			return nil, fmt.Errorf("unable to read rating: %w", err)
		}
		if err := json.Unmarshal([]byte(params), &r.Params); nil != err {
			logrus.WithError(err).WithField("sum", r.Sum).Warn("unable to unmarshal rating params")
			continue
		}
		r.RatedAt = time.Unix(0, ratedAt)
		ratings = append(ratings, r)
	}
	return ratings, rows.Err()
}

func (s *DefaultStore) LoadRatings(c *game.Chart) ([]Rating, error) {
	return s.queryRatings("select "+ratingColumns+" from ratings where sum = ? order by id desc", HashChart(c))
}

func (s *DefaultStore) History() ([]Rating, error) {
	return s.queryRatings("select " + ratingColumns + " from ratings order by id desc")
}

func (s *DefaultStore) Cached(c *game.Chart, params rate.StepParams) (float32, bool, error) {
	data, err := marshalParams(params)
	if nil != err {
		return 0, false, err
	}
	var rating float32
	err = s.db.QueryRow(
		"select rating from ratings where sum = ? and params = ? order by id desc limit 1",
		HashChart(c), data,
	).Scan(&rating)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if nil != err {
		return 0, false, fmt.Errorf("unable to load cached rating: %w", err)
	}
	return rating, true, nil
}

func (s *DefaultStore) SaveFit(run FitRun) error {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	if run.FinishedAt.IsZero() {
		run.FinishedAt = time.Now()
	}
	data, err := marshalParams(run.Params)
	if nil != err {
		return err
	}
	_, err = s.db.Exec(
		"insert into fits(id, charts, iterations, seed, error, params, finished_at) values(?, ?, ?, ?, ?, ?, ?)",
		run.ID.String(), run.Charts, run.Iterations, run.Seed, run.Error, data, run.FinishedAt.UnixNano(),
	)
	if nil != err {
		return fmt.Errorf("unable to save fit: %w", err)
	}
	return nil
}

func (s *DefaultStore) LatestFit() (FitRun, error) {
	var run FitRun
	var id, params string
	var finishedAt int64
	err := s.db.QueryRow(
		"select id, charts, iterations, seed, error, params, finished_at from fits order by finished_at desc limit 1",
	).Scan(&id, &run.Charts, &run.Iterations, &run.Seed, &run.Error, &params, &finishedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return run, ErrNoFit
	}
	if nil != err {
		return run, fmt.Errorf("unable to load fit: %w", err)
	}
	if run.ID, err = uuid.Parse(id); nil != err {
		return run, fmt.Errorf("unable to parse fit id %q: %w", id, err)
	}
	if err = json.Unmarshal([]byte(params), &run.Params); nil != err {
		return run, fmt.Errorf("unable to unmarshal fit params: %w", err)
	}
	run.FinishedAt = time.Unix(0, finishedAt)
	return run, nil
}
