package constraint

import (
	"github.com/robalobadob/wordle-solver/internal/words"
)

const allLetters = uint32(1)<<words.AlphabetSize - 1

// State is the conjunction of every constraint applied so far.
//
// It is kept in propagated form: one allowed-letter bitmask per position and a
// [min, max] occurrence range per letter. Constraints are only ever added.
type State struct {
	domain  [words.Length]uint32
	min     [words.AlphabetSize]int
	max     [words.AlphabetSize]int
	history []Constraint
}

// NewState returns the unconstrained state: every word is allowed.
func NewState() *State {
	s := &State{}
	for p := range s.domain {
		s.domain[p] = allLetters
	}
	for l := range s.max {
		s.max[l] = words.Length
	}
	return s
}

// Apply narrows s by cs. Invalid constraints are ignored.
func (s *State) Apply(cs ...Constraint) {
	for _, c := range cs {
		if !c.Valid() {
			continue
		}
		l := words.Index(c.Letter)
		switch c.Kind {
		case Fixed:
			s.domain[c.Pos] &= 1 << l
		case Forbid:
			s.domain[c.Pos] &^= 1 << l
		case AtLeast:
			if c.N > s.min[l] {
				s.min[l] = c.N
			}
		case AtMost:
			if c.N < s.max[l] {
				s.max[l] = c.N
			}
		}
		s.history = append(s.history, c)
	}
}

// Clone returns an independent copy of s.
func (s *State) Clone() *State {
	c := *s
	c.history = append([]Constraint(nil), s.history...)
	return &c
}

// Constraints returns every constraint applied so far, in order.
func (s *State) Constraints() []Constraint {
	return append([]Constraint(nil), s.history...)
}

// Allowed reports whether letter may appear at pos.
func (s *State) Allowed(pos int, letter byte) bool {
	return s.domain[pos]&(1<<words.Index(letter)) != 0
}

// Bounds returns the occurrence range for letter.
func (s *State) Bounds(letter byte) (min, max int) {
	l := words.Index(letter)
	return s.min[l], s.max[l]
}

// Matches reports whether w satisfies every applied constraint.
func (s *State) Matches(w words.Word) bool {
	var counts [words.AlphabetSize]int
	for p, c := range w {
		l := words.Index(c)
		if l < 0 || l >= words.AlphabetSize || s.domain[p]&(1<<l) == 0 {
			return false
		}
		counts[l]++
	}
	for l := range counts {
		if counts[l] < s.min[l] || counts[l] > s.max[l] {
			return false
		}
	}
	return true
}

// Satisfiable reports whether any five-letter string over a–z satisfies s.
// The vocabulary plays no part here.
func (s *State) Satisfiable() bool {
	_, ok := s.Witness()
	return ok
}

// Witness returns some string satisfying s, searching letters in order.
func (s *State) Witness() (words.Word, bool) {
	var w words.Word
	need := 0
	for l := range s.min {
		if s.min[l] > s.max[l] {
			return w, false
		}
		need += s.min[l]
	}
	if need > words.Length {
		return w, false
	}
	for p := range s.domain {
		if s.domain[p] == 0 {
			return w, false
		}
	}
	var counts [words.AlphabetSize]int
	if !s.search(0, &counts, &w) {
		return words.Word{}, false
	}
	return w, true
}

func (s *State) search(pos int, counts *[words.AlphabetSize]int, w *words.Word) bool {
	remaining := words.Length - pos
	need := 0
	for l := range s.min {
		d := s.min[l] - counts[l]
		if d <= 0 {
			continue
		}
		need += d
		slots := 0
		for q := pos; q < words.Length; q++ {
			if s.domain[q]&(1<<l) != 0 {
				slots++
			}
		}
		if slots < d {
			return false
		}
	}
	if need > remaining {
		return false
	}
	if remaining == 0 {
		return true
	}

	for l := 0; l < words.AlphabetSize; l++ {
		if s.domain[pos]&(1<<l) == 0 || counts[l] >= s.max[l] {
			continue
		}
		// every remaining slot is owed to a letter still below its minimum
		if need == remaining && counts[l] >= s.min[l] {
			continue
		}
		counts[l]++
		w[pos] = words.Letter(l)
		if s.search(pos+1, counts, w) {
			return true
		}
		counts[l]--
	}
	return false
}
