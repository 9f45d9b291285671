// Package constraint turns guess feedback into logical restrictions on the
// unknown target word and tracks their conjunction.
package constraint

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/robalobadob/wordle-solver/internal/words"
)

// Kind identifies the shape of a Constraint.
type Kind uint8

const (
	// Fixed: the target has Letter at Pos.
	Fixed Kind = iota + 1
	// Forbid: the target does not have Letter at Pos.
	Forbid
	// AtLeast: Letter occurs at least N times in the target.
	AtLeast
	// AtMost: Letter occurs at most N times in the target. N == 0 means absent.
	AtMost
)

func (k Kind) String() string {
	switch k {
	case Fixed:
		return "fixed"
	case Forbid:
		return "forbid"
	case AtLeast:
		return "at_least"
	case AtMost:
		return "at_most"
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Constraint is a single restriction over the five target letters.
// Pos is meaningful for Fixed and Forbid, N for AtLeast and AtMost.
type Constraint struct {
	Kind   Kind
	Pos    int
	Letter byte
	N      int
}

// FixedAt pins letter to pos.
func FixedAt(pos int, letter byte) Constraint {
	return Constraint{Kind: Fixed, Pos: pos, Letter: letter}
}

// ForbidAt keeps letter out of pos.
func ForbidAt(pos int, letter byte) Constraint {
	return Constraint{Kind: Forbid, Pos: pos, Letter: letter}
}

// MinCount requires at least n copies of letter.
func MinCount(letter byte, n int) Constraint {
	return Constraint{Kind: AtLeast, Letter: letter, N: n}
}

// MaxCount allows at most n copies of letter; zero means absent.
func MaxCount(letter byte, n int) Constraint {
	return Constraint{Kind: AtMost, Letter: letter, N: n}
}

// String renders c in a compact notation: p4=e, p2!=a, #a>=1, #e<=1.
func (c Constraint) String() string {
	switch c.Kind {
	case Fixed:
		return fmt.Sprintf("p%d=%c", c.Pos, c.Letter)
	case Forbid:
		return fmt.Sprintf("p%d!=%c", c.Pos, c.Letter)
	case AtLeast:
		return fmt.Sprintf("#%c>=%d", c.Letter, c.N)
	case AtMost:
		return fmt.Sprintf("#%c<=%d", c.Letter, c.N)
	}
	return c.Kind.String()
}

// Holds reports whether w satisfies c.
func (c Constraint) Holds(w words.Word) bool {
	switch c.Kind {
	case Fixed:
		return w[c.Pos] == c.Letter
	case Forbid:
		return w[c.Pos] != c.Letter
	case AtLeast:
		return w.Count(c.Letter) >= c.N
	case AtMost:
		return w.Count(c.Letter) <= c.N
	}
	return false
}

// Valid reports whether c refers to a real position, letter and count.
func (c Constraint) Valid() bool {
	if c.Letter < 'a' || c.Letter > 'z' {
		return false
	}
	switch c.Kind {
	case Fixed, Forbid:
		return c.Pos >= 0 && c.Pos < words.Length
	case AtLeast, AtMost:
		return c.N >= 0 && c.N <= words.Length
	}
	return false
}

// HoldsAll reports whether w satisfies every constraint in cs.
func HoldsAll(cs []Constraint, w words.Word) bool {
	for _, c := range cs {
		if !c.Holds(w) {
			return false
		}
	}
	return true
}

// normalize de-duplicates cs and orders it by kind, position, letter, count.
func normalize(cs []Constraint) []Constraint {
	seen := make(map[Constraint]struct{}, len(cs))
	out := cs[:0]
	for _, c := range cs {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		if a.Pos != b.Pos {
			return a.Pos < b.Pos
		}
		if a.Letter != b.Letter {
			return a.Letter < b.Letter
		}
		return a.N < b.N
	})
	return out
}
