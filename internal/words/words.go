// internal/words/words.go
//
// Word model shared by every other package.
//
//   - Word is an immutable five-letter value over a–z.
//   - Preferred is the tie-break rule applied by all solver backends.
package words

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// Length is the number of letters in every word.
	Length = 5
	// AlphabetSize is the number of letters a word may draw from.
	AlphabetSize = 26
)

// ErrInvalidWord is returned when a string is not exactly Length letters a–z.
var ErrInvalidWord = errors.New("invalid word")

// Word is a five-letter lowercase word. The zero value is not a valid word.
type Word [Length]byte

// Parse normalizes s (trim, lowercase) and validates it as a Word.
func Parse(s string) (Word, error) {
	var w Word
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != Length || !isAlpha(s) {
		return w, fmt.Errorf("%w: %q", ErrInvalidWord, s)
	}
	copy(w[:], s)
	return w, nil
}

// MustParse is Parse for constants; it panics on invalid input.
func MustParse(s string) Word {
	w, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return w
}

func (w Word) String() string { return string(w[:]) }

// Valid reports whether every letter of w is in a–z.
func (w Word) Valid() bool { return isAlpha(string(w[:])) }

// Count returns how many times letter occurs in w.
func (w Word) Count(letter byte) int {
	n := 0
	for _, c := range w {
		if c == letter {
			n++
		}
	}
	return n
}

// Distinct returns the number of different letters in w.
func (w Word) Distinct() int {
	var seen uint32
	n := 0
	for _, c := range w {
		bit := uint32(1) << Index(c)
		if seen&bit == 0 {
			seen |= bit
			n++
		}
	}
	return n
}

// maxRepeat returns the highest occurrence count of any letter in w.
func (w Word) maxRepeat() int {
	var counts [AlphabetSize]int
	most := 0
	for _, c := range w {
		i := Index(c)
		counts[i]++
		if counts[i] > most {
			most = counts[i]
		}
	}
	return most
}

// Preferred reports whether a should be guessed before b when both satisfy
// the current constraints.
//
// Order: words without repeated letters first, then words using no letter more
// than twice, then lexicographic.
func Preferred(a, b Word) bool {
	ra, rb := a.Distinct() == Length, b.Distinct() == Length
	if ra != rb {
		return ra
	}
	ta, tb := a.maxRepeat() <= 2, b.maxRepeat() <= 2
	if ta != tb {
		return ta
	}
	return a.String() < b.String()
}

// Index maps a lowercase ASCII letter to 0..25.
// Assumes inputs are validated to a–z elsewhere.
func Index(c byte) int { return int(c - 'a') }

// Letter is the inverse of Index.
func Letter(i int) byte { return byte('a' + i) }

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}
