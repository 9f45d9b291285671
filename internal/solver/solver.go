// Package solver selects a constraint solving backend by name.
package solver

import (
	"errors"
	"fmt"
	"strings"

	"github.com/robalobadob/wordle-solver/internal/session"
	"github.com/robalobadob/wordle-solver/internal/solver/bitindex"
	"github.com/robalobadob/wordle-solver/internal/solver/datalog"
)

// Default is used when no backend is named.
const Default = bitindex.Name

var ErrUnknownBackend = errors.New("unknown solver backend")

// Names lists the available backends.
func Names() []string { return []string{bitindex.Name, datalog.Name} }

// New returns a fresh backend instance. Each game needs its own.
func New(name string) (session.Solver, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", bitindex.Name:
		return bitindex.New(), nil
	case datalog.Name:
		return datalog.New(), nil
	}
	return nil, fmt.Errorf("%w %q (want one of %s)", ErrUnknownBackend, name, strings.Join(Names(), ", "))
}

// Factory builds a backend per game.
type Factory func() (session.Solver, error)

// FactoryFor binds New to name, failing early on unknown names.
func FactoryFor(name string) (Factory, error) {
	if _, err := New(name); err != nil {
		return nil, err
	}
	return func() (session.Solver, error) { return New(name) }, nil
}
