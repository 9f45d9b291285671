// Package session holds the per-game constraint context.
//
// A Session owns the accumulated ConstraintState of one game and a solving
// backend. It is not safe for concurrent use; run one Session per game.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-solver/internal/constraint"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// DefaultTimeout bounds a single candidate query.
const DefaultTimeout = 10 * time.Second

// Solver is the capability a solving backend provides.
//
// Add extends the backend's constraint set. Model returns a word from vocab
// satisfying every constraint added so far, or ErrUnsatisfiable. Backends
// must honor ctx cancellation in Model.
type Solver interface {
	Add(cs ...constraint.Constraint) error
	Model(ctx context.Context, vocab *words.Vocabulary) (words.Word, error)
	Close() error
}

// Option configures a Session.
type Option func(*Session)

// WithTimeout bounds each NextCandidate call. Zero or negative disables the
// bound.
func WithTimeout(d time.Duration) Option {
	return func(s *Session) { s.timeout = d }
}

// Session is the incremental solver context of one game.
type Session struct {
	solver  Solver
	state   *constraint.State
	timeout time.Duration
	closed  bool
}

// New starts an empty session on top of solver. The session takes ownership
// of solver and closes it in Close.
func New(solver Solver, opts ...Option) *Session {
	s := &Session{
		solver:  solver,
		state:   constraint.NewState(),
		timeout: DefaultTimeout,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Add extends the accumulated constraints with cs.
//
// When the result would be unsatisfiable over all five-letter strings, Add
// returns a *ContradictionError and the session is unchanged.
func (s *Session) Add(cs ...constraint.Constraint) error {
	if s.closed {
		return ErrClosed
	}
	if len(cs) == 0 {
		return nil
	}
	next := s.state.Clone()
	next.Apply(cs...)
	if !next.Satisfiable() {
		return &ContradictionError{
			Added:   append([]constraint.Constraint(nil), cs...),
			History: s.state.Constraints(),
		}
	}
	if err := s.solver.Add(cs...); err != nil {
		return fmt.Errorf("solver add: %w", err)
	}
	s.state = next
	return nil
}

// NextCandidate returns a word of vocab satisfying every constraint added so
// far. It fails with *NoCandidateError when there is none or the query runs
// past the session timeout. Cancellation of ctx is returned as ctx.Err().
func (s *Session) NextCandidate(ctx context.Context, vocab *words.Vocabulary) (words.Word, error) {
	if s.closed {
		return words.Word{}, ErrClosed
	}
	if vocab == nil || vocab.Len() == 0 {
		return words.Word{}, &NoCandidateError{Reason: ReasonExhausted, Err: words.ErrEmptyVocabulary}
	}

	qctx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		qctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	w, err := s.solver.Model(qctx, vocab)
	switch {
	case err == nil:
	case ctx.Err() != nil:
		return words.Word{}, ctx.Err()
	case errors.Is(err, ErrUnsatisfiable):
		return words.Word{}, &NoCandidateError{Reason: ReasonExhausted, Err: err}
	case errors.Is(err, context.DeadlineExceeded):
		return words.Word{}, &NoCandidateError{Reason: ReasonTimeout, Err: err}
	default:
		return words.Word{}, fmt.Errorf("solver model: %w", err)
	}

	if !vocab.Contains(w) || !s.state.Matches(w) {
		return words.Word{}, fmt.Errorf("solver model: %s does not satisfy the session", w)
	}
	log.Debug().
		Str("candidate", w.String()).
		Int("constraints", len(s.state.Constraints())).
		Dur("took", time.Since(start)).
		Msg("candidate")
	return w, nil
}

// Candidates counts the words of vocab matching the accumulated constraints.
func (s *Session) Candidates(vocab *words.Vocabulary) int {
	if vocab == nil {
		return 0
	}
	n := 0
	for i := 0; i < vocab.Len(); i++ {
		if s.state.Matches(vocab.At(i)) {
			n++
		}
	}
	return n
}

// Constraints returns the accumulated constraints in the order added.
func (s *Session) Constraints() []constraint.Constraint { return s.state.Constraints() }

// Matches reports whether w is consistent with every constraint so far.
func (s *Session) Matches(w words.Word) bool { return s.state.Matches(w) }

// Close releases the backend. Further calls are no-ops.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.solver.Close()
}
