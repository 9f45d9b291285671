// Package datalog solves constraints declaratively with the Mangle Datalog
// engine.
//
// The vocabulary is loaded as extensional facts:
//
//	word(W).        W is a vocabulary word
//	at(W, P, L).    W has letter L at position P
//	tally(W, L, N). W holds letter L exactly N > 0 times
//
// Every constraint compiles to one rule deriving rejected(W), and the answer
// set is candidate(W) :- word(W), !rejected(W).
package datalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/robalobadob/wordle-solver/internal/constraint"
)

const header = `Decl word(W).
Decl at(W, P, L).
Decl tally(W, L, N).
Decl rejected(W).
Decl candidate(W).
candidate(W) :- word(W), !rejected(W).
`

// Program renders the Mangle source for cs.
func Program(cs []constraint.Constraint) string {
	var b strings.Builder
	b.WriteString(header)

	helpers := map[string]constraint.Constraint{}
	var rules []string
	seen := map[string]bool{}
	add := func(r string) {
		if !seen[r] {
			seen[r] = true
			rules = append(rules, r)
		}
	}

	for _, c := range cs {
		if !c.Valid() {
			continue
		}
		switch c.Kind {
		case constraint.Fixed:
			add(fmt.Sprintf("rejected(W) :- word(W), !at(W, %d, %q).", c.Pos, string(c.Letter)))
		case constraint.Forbid:
			add(fmt.Sprintf("rejected(W) :- at(W, %d, %q).", c.Pos, string(c.Letter)))
		case constraint.AtLeast:
			if c.N == 0 {
				continue
			}
			name := minName(c)
			helpers[name] = c
			add(fmt.Sprintf("rejected(W) :- word(W), !%s(W).", name))
		case constraint.AtMost:
			add(fmt.Sprintf("rejected(W) :- tally(W, %q, N), N > %d.", string(c.Letter), c.N))
		}
	}

	names := make([]string, 0, len(helpers))
	for n := range helpers {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		c := helpers[n]
		fmt.Fprintf(&b, "Decl %s(W).\n", n)
		fmt.Fprintf(&b, "%s(W) :- tally(W, %q, N), N >= %d.\n", n, string(c.Letter), c.N)
	}
	for _, r := range rules {
		b.WriteString(r)
		b.WriteByte('\n')
	}
	return b.String()
}

func minName(c constraint.Constraint) string {
	return fmt.Sprintf("min_%c_%d", c.Letter, c.N)
}
