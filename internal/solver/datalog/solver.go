package datalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/mangle/analysis"
	"github.com/google/mangle/ast"
	_ "github.com/google/mangle/builtin"
	mengine "github.com/google/mangle/engine"
	"github.com/google/mangle/factstore"
	"github.com/google/mangle/parse"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-solver/internal/constraint"
	"github.com/robalobadob/wordle-solver/internal/session"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// Name is the backend name used by the solver factory.
const Name = "datalog"

var candidateSym = ast.PredicateSym{Symbol: "candidate", Arity: 1}

// Solver re-evaluates the compiled program against the vocabulary on every
// Model call.
type Solver struct {
	cs     []constraint.Constraint
	closed bool
}

var _ session.Solver = (*Solver)(nil)

// New returns a solver with no constraints.
func New() *Solver { return &Solver{} }

// Add records constraints for the next Model call.
func (s *Solver) Add(cs ...constraint.Constraint) error {
	if s.closed {
		return session.ErrClosed
	}
	s.cs = append(s.cs, cs...)
	return nil
}

// Model evaluates the program and returns the preferred candidate.
// Evaluation runs in its own goroutine so that ctx can abandon it. The engine
// has no cancellation hook: an abandoned evaluation keeps running until it
// finishes and its result is dropped.
func (s *Solver) Model(ctx context.Context, vocab *words.Vocabulary) (words.Word, error) {
	if s.closed {
		return words.Word{}, session.ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return words.Word{}, err
	}
	src := Program(s.cs)
	unit, err := parse.Unit(strings.NewReader(src))
	if err != nil {
		return words.Word{}, fmt.Errorf("parse program: %w", err)
	}
	info, err := analysis.AnalyzeOneUnit(unit, nil)
	if err != nil {
		return words.Word{}, fmt.Errorf("analyze program: %w", err)
	}

	type result struct {
		best  words.Word
		found bool
		err   error
	}
	done := make(chan result, 1)
	start := time.Now()

	go func() {
		store := factstore.NewSimpleInMemoryStore()
		load(store, vocab)
		if _, err := mengine.EvalProgramWithStats(info, store); err != nil {
			done <- result{err: fmt.Errorf("evaluate program: %w", err)}
			return
		}
		var r result
		r.err = store.GetFacts(ast.NewQuery(candidateSym), func(a ast.Atom) error {
			c, ok := a.Args[0].(ast.Constant)
			if !ok {
				return fmt.Errorf("candidate: unexpected term %v", a.Args[0])
			}
			w, err := words.Parse(c.Symbol)
			if err != nil {
				return err
			}
			if !r.found || words.Preferred(w, r.best) {
				r.best, r.found = w, true
			}
			return nil
		})
		done <- r
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return words.Word{}, r.err
		}
		log.Debug().
			Int("rules", len(unit.Clauses)).
			Dur("took", time.Since(start)).
			Msg("datalog evaluated")
		if !r.found {
			return words.Word{}, session.ErrUnsatisfiable
		}
		return r.best, nil
	case <-ctx.Done():
		return words.Word{}, fmt.Errorf("datalog evaluation abandoned after %v: %w", time.Since(start), ctx.Err())
	}
}

func load(store factstore.FactStore, vocab *words.Vocabulary) {
	for i := 0; i < vocab.Len(); i++ {
		w := vocab.At(i)
		ws := ast.String(w.String())
		store.Add(ast.NewAtom("word", ws))
		var counts [words.AlphabetSize]int
		for p, c := range w {
			store.Add(ast.NewAtom("at", ws, ast.Number(int64(p)), ast.String(string(c))))
			counts[words.Index(c)]++
		}
		for l, n := range counts {
			if n > 0 {
				store.Add(ast.NewAtom("tally", ws, ast.String(string(words.Letter(l))), ast.Number(int64(n))))
			}
		}
	}
}

// Close drops the constraints. Model and Add fail with session.ErrClosed
// afterwards.
func (s *Solver) Close() error {
	s.closed = true
	s.cs = nil
	return nil
}
