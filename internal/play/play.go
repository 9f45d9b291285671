// Package play wires one game together: a fresh solver backend, its session
// and an orchestrator. Commands and HTTP handlers share it.
package play

import (
	"time"

	"github.com/robalobadob/wordle-solver/internal/opening"
	"github.com/robalobadob/wordle-solver/internal/oracle"
	"github.com/robalobadob/wordle-solver/internal/orchestrator"
	"github.com/robalobadob/wordle-solver/internal/session"
	"github.com/robalobadob/wordle-solver/internal/solver"
	"github.com/robalobadob/wordle-solver/internal/store"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// Setup holds what every game of a process has in common.
type Setup struct {
	Backend       string
	Vocab         *words.Vocabulary
	Opening       opening.Sequence
	MaxTurns      int
	SolverTimeout time.Duration
}

// Start builds a game against o, which may be nil for hand-fed feedback.
// The caller closes the orchestrator's session when done.
func (s Setup) Start(o oracle.Oracle) (*orchestrator.Orchestrator, error) {
	if s.Vocab == nil || s.Vocab.Len() == 0 {
		return nil, words.ErrEmptyVocabulary
	}
	backend, err := solver.New(s.Backend)
	if err != nil {
		return nil, err
	}
	var opts []session.Option
	if s.SolverTimeout > 0 {
		opts = append(opts, session.WithTimeout(s.SolverTimeout))
	}
	return orchestrator.New(o, s.Vocab, session.New(backend, opts...), orchestrator.Config{
		MaxTurns: s.MaxTurns,
		Opening:  s.Opening,
	}), nil
}

// BackendName reports the backend Start uses.
func (s Setup) BackendName() string {
	if s.Backend == "" {
		return solver.Default
	}
	return s.Backend
}

// Meta labels a recorded game.
type Meta struct {
	Mode    string
	Backend string
	Date    string
	Target  string
}

// Record turns a finished game into a storable result.
func Record(m Meta, res *orchestrator.Result) *store.Result {
	return &store.Result{
		Mode:      m.Mode,
		Backend:   m.Backend,
		Date:      m.Date,
		Target:    m.Target,
		Guesses:   res.Guesses(),
		State:     string(res.State),
		Reason:    string(res.Reason),
		ElapsedMs: res.Elapsed.Milliseconds(),
	}
}
