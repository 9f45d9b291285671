package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/robalobadob/wordle-solver/internal/constraint"
)

// ErrUnsatisfiable is returned by a Solver when no vocabulary word satisfies
// the constraints it holds.
var ErrUnsatisfiable = errors.New("unsatisfiable")

// ErrClosed is returned when a closed session is used.
var ErrClosed = errors.New("session closed")

// ContradictionError reports that a batch of constraints cannot hold together
// with those already accumulated. The session is left as it was before the
// batch.
type ContradictionError struct {
	Added   []constraint.Constraint
	History []constraint.Constraint
}

func (e *ContradictionError) Error() string {
	parts := make([]string, len(e.Added))
	for i, c := range e.Added {
		parts[i] = c.String()
	}
	return fmt.Sprintf("contradiction: [%s] conflicts with %d earlier constraints",
		strings.Join(parts, " "), len(e.History))
}

// Reason explains why no candidate was produced.
type Reason string

const (
	ReasonExhausted Reason = "exhausted"
	ReasonTimeout   Reason = "timeout"
)

// NoCandidateError reports that the solver produced no word.
type NoCandidateError struct {
	Reason Reason
	Err    error
}

func (e *NoCandidateError) Error() string {
	if e.Err == nil {
		return "no candidate: " + string(e.Reason)
	}
	return "no candidate: " + string(e.Reason) + ": " + e.Err.Error()
}

func (e *NoCandidateError) Unwrap() error { return e.Err }
