// internal/game/types.go
//
// Core type definitions for feedback and puzzles.
// Defines:
//   - Mark: per-letter result of a guess (correct/present/absent).
//   - Feedback: the five marks for one guess, aligned by position.
//   - Turn: an immutable (guess, feedback) record.
//   - Game: state for a single target-holding puzzle.

package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/robalobadob/wordle-solver/internal/words"
)

// ErrMalformedFeedback is returned for feedback of the wrong length or with an
// unknown tag. Malformed feedback never reaches the constraint encoder.
var ErrMalformedFeedback = errors.New("malformed feedback")

// Mark represents the evaluation result for a single letter in a guess.
// Possible values:
//   - "correct": letter is in the target at this position.
//   - "present": letter is in the target but at another position.
//   - "absent":  letter is not in the target, or every copy is already accounted for.
type Mark string

const (
	Correct Mark = "correct"
	Present Mark = "present"
	Absent  Mark = "absent"
)

// ParseMark converts an API tag into a Mark.
func ParseMark(s string) (Mark, error) {
	switch m := Mark(strings.ToLower(strings.TrimSpace(s))); m {
	case Correct, Present, Absent:
		return m, nil
	}
	return "", fmt.Errorf("%w: unknown tag %q", ErrMalformedFeedback, s)
}

// Feedback holds one Mark per position of a guess.
type Feedback [words.Length]Mark

// ParseFeedback reads compact feedback such as "bbygg", "..YGG" or "00122".
//
// Accepted codes per letter:
//
//	correct: g G 2
//	present: y Y 1
//	absent:  b B x X - . 0
func ParseFeedback(s string) (Feedback, error) {
	var fb Feedback
	s = strings.TrimSpace(s)
	if len(s) != words.Length {
		return fb, fmt.Errorf("%w: want %d marks, got %d", ErrMalformedFeedback, words.Length, len(s))
	}
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'g', 'G', '2':
			fb[i] = Correct
		case 'y', 'Y', '1':
			fb[i] = Present
		case 'b', 'B', 'x', 'X', '-', '.', '0':
			fb[i] = Absent
		default:
			return fb, fmt.Errorf("%w: unknown mark %q at position %d", ErrMalformedFeedback, s[i], i)
		}
	}
	return fb, nil
}

// Validate checks that every position carries a known Mark.
func (f Feedback) Validate() error {
	for i, m := range f {
		switch m {
		case Correct, Present, Absent:
		default:
			return fmt.Errorf("%w: position %d has tag %q", ErrMalformedFeedback, i, m)
		}
	}
	return nil
}

// Solved reports whether every position is Correct.
func (f Feedback) Solved() bool {
	for _, m := range f {
		if m != Correct {
			return false
		}
	}
	return true
}

// String renders f as G (correct), Y (present) and . (absent).
func (f Feedback) String() string {
	b := make([]byte, len(f))
	for i, m := range f {
		switch m {
		case Correct:
			b[i] = 'G'
		case Present:
			b[i] = 'Y'
		case Absent:
			b[i] = '.'
		default:
			b[i] = '?'
		}
	}
	return string(b)
}

// Turn is one submitted guess and the feedback it received.
type Turn struct {
	Guess    words.Word
	Feedback Feedback
}

func (t Turn) String() string { return t.Guess.String() + " " + t.Feedback.String() }

// Status is the coarse state of a Game.
type Status string

const (
	StatusPlaying Status = "playing"
	StatusWon     Status = "won"
	StatusLost    Status = "lost"
)

// Game holds the state of a single target-holding puzzle.
type Game struct {
	ID       string     // Unique game identifier (random hex string).
	Target   words.Word // The solution word.
	Rows     int        // Maximum number of guesses allowed (0 means unlimited).
	Turns    []Turn     // Guesses made so far with their feedback.
	Finished bool       // True once the game is over (won or lost).
	Won      bool       // True if the game was finished with a win.
}
