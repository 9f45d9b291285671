// Package store records finished games.
//
// Only game outcomes are kept; solver state never outlives its game.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned by Get for an unknown ID.
var ErrNotFound = errors.New("not found")

// Result is one finished game.
type Result struct {
	ID        string    `json:"id"`
	Mode      string    `json:"mode"`
	Backend   string    `json:"backend"`
	Date      string    `json:"date,omitempty"` // daily puzzles only, YYYY-MM-DD
	Target    string    `json:"target,omitempty"`
	Guesses   []string  `json:"guesses"`
	State     string    `json:"state"`
	Reason    string    `json:"reason"`
	ElapsedMs int64     `json:"elapsedMs"`
	CreatedAt time.Time `json:"createdAt"`
}

// Solved reports whether the game ended with the target found.
func (r Result) Solved() bool { return r.State == "solved" }

// Summary aggregates every stored result.
type Summary struct {
	Games          int         `json:"games"`
	Solved         int         `json:"solved"`
	AverageGuesses float64     `json:"averageGuesses"` // over solved games
	Distribution   map[int]int `json:"distribution"`   // guesses -> solved games
}

// Store defines the persistence interface for game results.
type Store interface {
	// Save assigns ID and CreatedAt when empty, then persists r.
	Save(ctx context.Context, r *Result) error
	Get(ctx context.Context, id string) (Result, error)
	// Results lists the newest results first.
	Results(ctx context.Context, limit int) ([]Result, error)
	// Daily ranks the daily results of date by guesses, then time.
	Daily(ctx context.Context, date string, limit int) ([]Result, error)
	Summary(ctx context.Context) (Summary, error)
	Close() error
}

const defaultLimit = 20

func prepare(r *Result) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	if r.Guesses == nil {
		r.Guesses = []string{}
	}
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	return limit
}
