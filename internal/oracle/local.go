package oracle

import (
	"context"
	"math/rand"
	"time"

	"github.com/robalobadob/wordle-solver/internal/game"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// Local scores guesses in process against a known target.
type Local struct {
	g *game.Game
}

// NewLocal starts an unlimited game on target. The orchestrator enforces the
// turn limit.
func NewLocal(target words.Word) *Local {
	return &Local{g: game.New(target, 0)}
}

// LocalDaily plays the offline answer of the day.
func LocalDaily(date time.Time, salt string, answers *words.Vocabulary) (*Local, error) {
	target, err := DailyTarget(date, salt, answers)
	if err != nil {
		return nil, err
	}
	return NewLocal(target), nil
}

// LocalRandom draws a target from answers with a seeded generator, so the
// same seed gives the same puzzle.
func LocalRandom(seed int64, answers *words.Vocabulary) (*Local, error) {
	if answers == nil || answers.Len() == 0 {
		return nil, words.ErrEmptyVocabulary
	}
	r := rand.New(rand.NewSource(seed))
	return NewLocal(answers.At(r.Intn(answers.Len()))), nil
}

func (l *Local) Submit(ctx context.Context, guess words.Word) (game.Feedback, error) {
	if err := ctx.Err(); err != nil {
		return game.Feedback{}, err
	}
	fb, _, err := l.g.ApplyGuess(guess)
	return fb, err
}

// Target reveals the hidden word, for reporting after the game.
func (l *Local) Target() words.Word { return l.g.Target }
