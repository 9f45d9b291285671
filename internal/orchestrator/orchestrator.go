// Package orchestrator drives one game: opening guesses first, then solver
// candidates, until the puzzle is solved or the turn budget runs out.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-solver/internal/constraint"
	"github.com/robalobadob/wordle-solver/internal/game"
	"github.com/robalobadob/wordle-solver/internal/opening"
	"github.com/robalobadob/wordle-solver/internal/oracle"
	"github.com/robalobadob/wordle-solver/internal/session"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// DefaultMaxTurns is the usual Wordle budget.
const DefaultMaxTurns = 6

// ErrTerminal is returned when a finished game is asked to continue.
var ErrTerminal = errors.New("game is over")

// State is the orchestrator's position in the game.
type State string

const (
	Opening State = "opening"
	Solving State = "solving"
	Solved  State = "solved"
	Failed  State = "failed"
)

// Terminal reports whether no further guesses will be made.
func (s State) Terminal() bool { return s == Solved || s == Failed }

// Reason says why a game ended.
type Reason string

const (
	ReasonSolved        Reason = "solved"
	ReasonContradiction Reason = "contradiction"
	ReasonExhausted     Reason = "exhausted"
	ReasonTimeout       Reason = "timeout"
	ReasonMaxTurns      Reason = "max_turns"
	ReasonOracle        Reason = "oracle"
	ReasonCanceled      Reason = "canceled"
)

// Config tunes one game.
type Config struct {
	// MaxTurns caps guesses, openers included. Zero means DefaultMaxTurns.
	MaxTurns int
	Opening  opening.Sequence
}

// Result summarizes a finished (or abandoned) game.
type Result struct {
	State   State
	Reason  Reason
	Turns   []game.Turn
	Err     error
	Elapsed time.Duration
}

// Guesses lists the submitted words in order.
func (r *Result) Guesses() []string {
	out := make([]string, len(r.Turns))
	for i, t := range r.Turns {
		out[i] = t.Guess.String()
	}
	return out
}

// Orchestrator runs the turn loop for a single game. It owns its session
// exclusively; use one Orchestrator per game.
type Orchestrator struct {
	oracle oracle.Oracle
	vocab  *words.Vocabulary
	sess   *session.Session
	cfg    Config

	state  State
	reason Reason
	err    error
	turns  []game.Turn
	start  time.Time
}

// New prepares a game. o may be nil when turns are fed through Observe by
// hand and Run is never called.
func New(o oracle.Oracle, vocab *words.Vocabulary, sess *session.Session, cfg Config) *Orchestrator {
	if cfg.MaxTurns <= 0 {
		cfg.MaxTurns = DefaultMaxTurns
	}
	orc := &Orchestrator{
		oracle: o,
		vocab:  vocab,
		sess:   sess,
		cfg:    cfg,
		start:  time.Now(),
	}
	orc.state = orc.phase()
	return orc
}

// State is the current position in the game.
func (o *Orchestrator) State() State { return o.state }

// Reason says why the game ended; empty while it runs.
func (o *Orchestrator) Reason() Reason { return o.reason }

// Err is the error that ended the game, if any.
func (o *Orchestrator) Err() error { return o.err }

// Turns returns a copy of the turns so far.
func (o *Orchestrator) Turns() []game.Turn { return append([]game.Turn(nil), o.turns...) }

// Session is the constraint session the game owns.
func (o *Orchestrator) Session() *session.Session { return o.sess }

// Result snapshots the game so far.
func (o *Orchestrator) Result() *Result {
	return &Result{
		State:   o.state,
		Reason:  o.reason,
		Turns:   o.Turns(),
		Err:     o.err,
		Elapsed: time.Since(o.start),
	}
}

func (o *Orchestrator) phase() State {
	if len(o.turns) < o.cfg.Opening.Len() {
		return Opening
	}
	return Solving
}

// Next returns the guess for the current turn. A solver failure ends the game
// and is returned; cancellation of ctx is returned without changing state.
func (o *Orchestrator) Next(ctx context.Context) (words.Word, error) {
	if o.state.Terminal() {
		return words.Word{}, ErrTerminal
	}
	if o.state == Opening {
		if w, ok := o.cfg.Opening.Guess(len(o.turns)); ok {
			return w, nil
		}
	}
	w, err := o.sess.NextCandidate(ctx, o.vocab)
	if err != nil {
		// a canceled caller leaves the game as it was
		if ctx.Err() == nil {
			o.fail(ctx, err)
		}
		return words.Word{}, err
	}
	return w, nil
}

// Observe records a scored turn, feeds its constraints to the session and
// advances the state. Malformed feedback is rejected without touching the
// game.
func (o *Orchestrator) Observe(turn game.Turn) error {
	if o.state.Terminal() {
		return ErrTerminal
	}
	if !turn.Guess.Valid() {
		return fmt.Errorf("guess %q: %w", turn.Guess, words.ErrInvalidWord)
	}
	if err := turn.Feedback.Validate(); err != nil {
		return err
	}

	o.turns = append(o.turns, turn)
	if turn.Feedback.Solved() {
		o.finish(Solved, ReasonSolved, nil)
		return nil
	}
	if err := o.sess.Add(constraint.Encode(turn)...); err != nil {
		o.fail(context.Background(), err)
		return err
	}
	if len(o.turns) >= o.cfg.MaxTurns {
		o.finish(Failed, ReasonMaxTurns, nil)
		return nil
	}
	o.state = o.phase()
	return nil
}

// Run plays until a terminal state. The returned error equals Result.Err.
func (o *Orchestrator) Run(ctx context.Context) (*Result, error) {
	if o.oracle == nil {
		return nil, errors.New("orchestrator: no oracle")
	}
	for !o.state.Terminal() {
		if err := ctx.Err(); err != nil {
			o.fail(ctx, err)
			break
		}
		guess, err := o.Next(ctx)
		if err != nil {
			if !o.state.Terminal() {
				o.fail(ctx, err)
			}
			break
		}
		fb, err := o.oracle.Submit(ctx, guess)
		if err != nil {
			o.fail(ctx, fmt.Errorf("submit %s: %w", guess, err))
			break
		}
		turn := game.Turn{Guess: guess, Feedback: fb}
		if err := o.Observe(turn); err != nil {
			if !o.state.Terminal() {
				o.fail(ctx, err)
			}
			break
		}
		o.logTurn(turn)
	}
	res := o.Result()
	log.Info().
		Str("state", string(res.State)).
		Str("reason", string(res.Reason)).
		Strs("guesses", res.Guesses()).
		Dur("elapsed", res.Elapsed).
		Msg("game over")
	return res, res.Err
}

func (o *Orchestrator) logTurn(t game.Turn) {
	ev := log.Debug()
	if !ev.Enabled() {
		return
	}
	ev.Int("turn", len(o.turns)).
		Str("guess", t.Guess.String()).
		Str("feedback", t.Feedback.String()).
		Str("state", string(o.state)).
		Int("candidates", o.sess.Candidates(o.vocab)).
		Msg("turn")
}

func (o *Orchestrator) finish(st State, r Reason, err error) {
	o.state, o.reason, o.err = st, r, err
}

// fail ends the game, classifying err.
func (o *Orchestrator) fail(ctx context.Context, err error) {
	var (
		ce *session.ContradictionError
		nc *session.NoCandidateError
	)
	switch {
	case errors.As(err, &ce):
		o.finish(Failed, ReasonContradiction, err)
	case errors.As(err, &nc) && nc.Reason == session.ReasonTimeout:
		o.finish(Failed, ReasonTimeout, err)
	case errors.As(err, &nc):
		o.finish(Failed, ReasonExhausted, err)
	case ctx.Err() != nil || errors.Is(err, context.Canceled):
		o.finish(Failed, ReasonCanceled, err)
	default:
		o.finish(Failed, ReasonOracle, err)
	}
}
