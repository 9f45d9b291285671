package bitindex

import (
	"context"

	"github.com/bits-and-blooms/bitset"

	"github.com/robalobadob/wordle-solver/internal/constraint"
	"github.com/robalobadob/wordle-solver/internal/session"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// Name is the backend name used by the solver factory.
const Name = "bitindex"

type view struct {
	ix      *Index
	live    *bitset.BitSet
	applied int
}

// Solver narrows a live set per vocabulary as constraints arrive. Indexes
// are built lazily on the first Model call for a vocabulary and kept until
// Close.
type Solver struct {
	cs    []constraint.Constraint
	views map[*words.Vocabulary]*view
}

var _ session.Solver = (*Solver)(nil)

// New returns an empty solver with no indexes built yet.
func New() *Solver {
	return &Solver{views: make(map[*words.Vocabulary]*view)}
}

// Add queues constraints; they are applied on the next Model call.
func (s *Solver) Add(cs ...constraint.Constraint) error {
	s.cs = append(s.cs, cs...)
	return nil
}

// Model returns the preferred vocabulary word satisfying every constraint.
func (s *Solver) Model(ctx context.Context, vocab *words.Vocabulary) (words.Word, error) {
	if s.views == nil {
		return words.Word{}, session.ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return words.Word{}, err
	}
	v, ok := s.views[vocab]
	if !ok {
		ix := Build(vocab)
		v = &view{ix: ix, live: ix.All()}
		s.views[vocab] = v
	}
	for ; v.applied < len(s.cs); v.applied++ {
		v.ix.Narrow(v.live, s.cs[v.applied])
	}
	if err := ctx.Err(); err != nil {
		return words.Word{}, err
	}
	w, ok := v.ix.Best(v.live)
	if !ok {
		return words.Word{}, session.ErrUnsatisfiable
	}
	return w, nil
}

// Close drops every index. Model fails with session.ErrClosed afterwards.
func (s *Solver) Close() error {
	s.views = nil
	return nil
}
