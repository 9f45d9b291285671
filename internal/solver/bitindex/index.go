// Package bitindex solves constraints over a vocabulary with precomputed
// bitsets, one bit per vocabulary word.
package bitindex

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/robalobadob/wordle-solver/internal/constraint"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// Index holds, for one vocabulary, the set of words with each letter at each
// position and the set of words holding each letter at least n times.
type Index struct {
	vocab   *words.Vocabulary
	all     *bitset.BitSet
	at      [words.Length][words.AlphabetSize]*bitset.BitSet
	atLeast [words.AlphabetSize][words.Length + 1]*bitset.BitSet
}

// Build indexes vocab.
func Build(vocab *words.Vocabulary) *Index {
	n := uint(vocab.Len())
	ix := &Index{vocab: vocab, all: bitset.New(n)}
	for p := range ix.at {
		for l := range ix.at[p] {
			ix.at[p][l] = bitset.New(n)
		}
	}
	for l := range ix.atLeast {
		for k := range ix.atLeast[l] {
			ix.atLeast[l][k] = bitset.New(n)
		}
	}

	for i := 0; i < vocab.Len(); i++ {
		w := vocab.At(i)
		bit := uint(i)
		ix.all.Set(bit)
		var counts [words.AlphabetSize]int
		for p, c := range w {
			l := words.Index(c)
			ix.at[p][l].Set(bit)
			counts[l]++
		}
		for l, c := range counts {
			for k := 0; k <= c; k++ {
				ix.atLeast[l][k].Set(bit)
			}
		}
	}
	return ix
}

// All returns a fresh set holding every vocabulary word.
func (ix *Index) All() *bitset.BitSet { return ix.all.Clone() }

// Narrow removes from live every word violating c.
func (ix *Index) Narrow(live *bitset.BitSet, c constraint.Constraint) {
	if !c.Valid() {
		return
	}
	l := words.Index(c.Letter)
	switch c.Kind {
	case constraint.Fixed:
		live.InPlaceIntersection(ix.at[c.Pos][l])
	case constraint.Forbid:
		live.InPlaceDifference(ix.at[c.Pos][l])
	case constraint.AtLeast:
		live.InPlaceIntersection(ix.atLeast[l][c.N])
	case constraint.AtMost:
		if c.N < words.Length {
			live.InPlaceDifference(ix.atLeast[l][c.N+1])
		}
	}
}

// Words lists the vocabulary words in live, in vocabulary order.
func (ix *Index) Words(live *bitset.BitSet) []words.Word {
	out := make([]words.Word, 0, live.Count())
	for i, ok := live.NextSet(0); ok; i, ok = live.NextSet(i + 1) {
		out = append(out, ix.vocab.At(int(i)))
	}
	return out
}

// Best returns the preferred word in live.
func (ix *Index) Best(live *bitset.BitSet) (words.Word, bool) {
	var best words.Word
	found := false
	for i, ok := live.NextSet(0); ok; i, ok = live.NextSet(i + 1) {
		w := ix.vocab.At(int(i))
		if !found || words.Preferred(w, best) {
			best, found = w, true
		}
	}
	return best, found
}
