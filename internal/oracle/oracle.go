// Package oracle provides the puzzles a solver plays against.
//
// An Oracle scores guesses against a target it keeps to itself. Remote
// oracles call the public Wordle API; local oracles score in process.
package oracle

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/robalobadob/wordle-solver/internal/daily"
	"github.com/robalobadob/wordle-solver/internal/game"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// Oracle scores a guess against a hidden target.
type Oracle interface {
	Submit(ctx context.Context, guess words.Word) (game.Feedback, error)
}

var (
	// ErrRejected is returned when the remote API answers with a non-2xx status.
	ErrRejected = errors.New("oracle rejected guess")
	// ErrUnknownMode is returned by Select for an unrecognized mode.
	ErrUnknownMode = errors.New("unknown oracle mode")
)

// Mode names which puzzle an oracle serves.
type Mode string

const (
	ModeDaily  Mode = "daily"
	ModeRandom Mode = "random"
	ModeWord   Mode = "word"
)

// ParseMode accepts daily, random or word.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeDaily, ModeRandom, ModeWord:
		return m, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownMode, s)
}

// Options configures Select.
type Options struct {
	Offline bool

	// remote
	BaseURL string
	Client  Doer
	RPS     float64

	// local
	Answers *words.Vocabulary
	Salt    string
	Date    time.Time

	Seed   int64
	Target string
}

// Select builds the oracle for mode once, at game setup.
func Select(mode Mode, opts Options) (Oracle, error) {
	var target words.Word
	if mode == ModeWord {
		w, err := words.Parse(opts.Target)
		if err != nil {
			return nil, fmt.Errorf("target: %w", err)
		}
		target = w
	}

	if !opts.Offline {
		rc := Remote{BaseURL: opts.BaseURL, Client: opts.Client, RPS: opts.RPS}
		switch mode {
		case ModeDaily:
			return NewDaily(rc), nil
		case ModeRandom:
			return NewRandom(rc, opts.Seed), nil
		case ModeWord:
			return NewWord(rc, target), nil
		}
		return nil, fmt.Errorf("%w %q", ErrUnknownMode, mode)
	}

	switch mode {
	case ModeDaily:
		date := opts.Date
		if date.IsZero() {
			date = time.Now()
		}
		return LocalDaily(date, opts.Salt, opts.Answers)
	case ModeRandom:
		return LocalRandom(opts.Seed, opts.Answers)
	case ModeWord:
		return NewLocal(target), nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownMode, mode)
}

// DailyTarget returns the offline daily answer for date.
func DailyTarget(date time.Time, salt string, answers *words.Vocabulary) (words.Word, error) {
	if answers == nil || answers.Len() == 0 {
		return words.Word{}, words.ErrEmptyVocabulary
	}
	return answers.At(daily.WordIndex(date, salt, answers.Len())), nil
}
