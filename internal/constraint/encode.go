package constraint

import (
	"github.com/robalobadob/wordle-solver/internal/game"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// Encode converts one turn into constraints that every word consistent with
// that turn's feedback satisfies.
//
// Per position p holding letter l, with k = number of Correct+Present marks on
// l in the same guess:
//
//	Correct  p=l
//	Present  p!=l, #l>=k
//	Absent   #l<=k and p!=l when k > 0, otherwise #l<=0
//
// A repeated letter marked Absent only caps the count, so the target is never
// eliminated when the guess holds more copies of a letter than the target.
// The feedback must already be validated.
func Encode(turn game.Turn) []Constraint {
	var marked [words.AlphabetSize]int
	for i, m := range turn.Feedback {
		if m == game.Correct || m == game.Present {
			marked[words.Index(turn.Guess[i])]++
		}
	}

	out := make([]Constraint, 0, 2*words.Length)
	for p, m := range turn.Feedback {
		l := turn.Guess[p]
		k := marked[words.Index(l)]
		switch m {
		case game.Correct:
			out = append(out, FixedAt(p, l))
		case game.Present:
			out = append(out, ForbidAt(p, l), MinCount(l, k))
		case game.Absent:
			if k > 0 {
				out = append(out, ForbidAt(p, l), MaxCount(l, k))
			} else {
				out = append(out, MaxCount(l, 0))
			}
		}
	}
	return normalize(out)
}

// EncodeAll concatenates the constraints of every turn.
func EncodeAll(turns []game.Turn) []Constraint {
	var out []Constraint
	for _, t := range turns {
		out = append(out, Encode(t)...)
	}
	return normalize(out)
}
