// Package opening supplies fixed first guesses that ignore feedback.
package opening

import (
	"github.com/robalobadob/wordle-solver/internal/words"
)

// Norvig's four openers cover 20 distinct letters.
var Norvig = []string{"handy", "swift", "glove", "crump"}

// Sequence is an ordered list of opening guesses.
type Sequence struct {
	list []words.Word
}

// New parses list. An empty list yields an empty Sequence that defers to
// the solver from the first turn.
func New(list ...string) (Sequence, error) {
	out := make([]words.Word, 0, len(list))
	for _, s := range list {
		w, err := words.Parse(s)
		if err != nil {
			return Sequence{}, err
		}
		out = append(out, w)
	}
	return Sequence{list: out}, nil
}

// Default returns the Norvig sequence.
func Default() Sequence {
	seq, err := New(Norvig...)
	if err != nil {
		panic(err)
	}
	return seq
}

// Len is the number of opening turns.
func (s Sequence) Len() int { return len(s.list) }

// Guess returns the opener for a zero-based turn, or false once exhausted.
func (s Sequence) Guess(turn int) (words.Word, bool) {
	if turn < 0 || turn >= len(s.list) {
		return words.Word{}, false
	}
	return s.list[turn], true
}

// Words returns a copy of the sequence.
func (s Sequence) Words() []words.Word {
	return append([]words.Word(nil), s.list...)
}
