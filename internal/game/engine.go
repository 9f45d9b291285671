// internal/game/engine.go
//
// Target-holding puzzle engine. Backs the offline oracle and serves as the
// reference scoring rule in tests.
// Responsibilities:
//   - Create games for a known target.
//   - Score guesses using the classic two-pass Wordle algorithm.
//   - Track state transitions: playing → won/lost.
package game

import (
	"crypto/rand"
	"encoding/hex"
	"errors"

	"github.com/robalobadob/wordle-solver/internal/words"
)

// ErrFinished is returned when a guess is applied to a finished game.
var ErrFinished = errors.New("game finished")

// New constructs a game for target. rows caps the number of guesses; 0 means
// the caller enforces its own limit.
func New(target words.Word, rows int) *Game {
	return &Game{
		ID:     randomID(),
		Target: target,
		Rows:   rows,
	}
}

// ApplyGuess scores a guess and records it, mutating the game state.
//
// State transitions:
//   - If all tiles are Correct → Finished = true, Won = true.
//   - Else if the number of guesses reaches g.Rows → Finished = true (loss).
func (g *Game) ApplyGuess(guess words.Word) (Feedback, Status, error) {
	if g.Finished {
		return Feedback{}, g.Status(), ErrFinished
	}
	if !guess.Valid() {
		return Feedback{}, g.Status(), words.ErrInvalidWord
	}

	fb := Score(g.Target, guess)
	g.Turns = append(g.Turns, Turn{Guess: guess, Feedback: fb})

	if fb.Solved() {
		g.Finished, g.Won = true, true
	} else if g.Rows > 0 && len(g.Turns) >= g.Rows {
		g.Finished = true
	}
	return fb, g.Status(), nil
}

// Status reports the coarse state of the game.
func (g *Game) Status() Status {
	if g.Finished {
		if g.Won {
			return StatusWon
		}
		return StatusLost
	}
	return StatusPlaying
}

// Score implements the standard Wordle two-pass scoring algorithm.
//
// Pass 1:
//   - Mark exact matches as Correct.
//   - Count remaining (non-correct) target letters.
//
// Pass 2:
//   - For each non-correct guess letter: if there is remaining count for that
//     letter, mark Present and decrement the count; otherwise mark Absent.
//
// This ensures correct behavior with repeated letters in both target and guess.
func Score(target, guess words.Word) Feedback {
	var res Feedback
	var counts [words.AlphabetSize]int

	for i := 0; i < words.Length; i++ {
		if guess[i] == target[i] {
			res[i] = Correct
		} else {
			counts[words.Index(target[i])]++
		}
	}

	for i := 0; i < words.Length; i++ {
		if res[i] == Correct {
			continue
		}
		j := words.Index(guess[i])
		if counts[j] > 0 {
			res[i] = Present
			counts[j]--
		} else {
			res[i] = Absent
		}
	}
	return res
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
