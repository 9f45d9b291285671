package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle-solver/internal/words"
)

func TestScore(t *testing.T) {
	cases := []struct {
		target, guess, want string
	}{
		{"crane", "crane", "GGGGG"},
		{"crane", "slate", "..G.G"},
		{"crane", "react", "YYGY."},
		{"erase", "speed", "Y.YY."},
		// one E in target: only the first non-correct E is present
		{"crane", "speed", "..Y.."},
		{"abbey", "babes", "YYGG."},
		// green consumes the copy before any yellow
		{"hello", "lolly", ".YGG."},
		{"apple", "zzzzz", "....."},
	}
	for _, c := range cases {
		got := Score(words.MustParse(c.target), words.MustParse(c.guess))
		assert.Equal(t, c.want, got.String(), "target=%s guess=%s", c.target, c.guess)
	}
}

func TestParseFeedback(t *testing.T) {
	fb, err := ParseFeedback("bbygg")
	require.NoError(t, err)
	assert.Equal(t, Feedback{Absent, Absent, Present, Correct, Correct}, fb)

	fb, err = ParseFeedback("..YGG")
	require.NoError(t, err)
	assert.Equal(t, "..YGG", fb.String())

	fb, err = ParseFeedback("00122")
	require.NoError(t, err)
	assert.Equal(t, "..YGG", fb.String())

	for _, bad := range []string{"", "bbyg", "bbyggg", "bbyqg"} {
		_, err := ParseFeedback(bad)
		assert.ErrorIs(t, err, ErrMalformedFeedback, bad)
	}
}

func TestParseMarkAndValidate(t *testing.T) {
	m, err := ParseMark(" Correct ")
	require.NoError(t, err)
	assert.Equal(t, Correct, m)

	_, err = ParseMark("maybe")
	assert.ErrorIs(t, err, ErrMalformedFeedback)

	assert.NoError(t, Feedback{Correct, Present, Absent, Absent, Absent}.Validate())
	assert.ErrorIs(t, Feedback{Correct, "", Absent, Absent, Absent}.Validate(), ErrMalformedFeedback)
	assert.ErrorIs(t, Feedback{}.Validate(), ErrMalformedFeedback)
}

func TestApplyGuess_WinLose(t *testing.T) {
	g := New(words.MustParse("crane"), 2)
	fb, st, err := g.ApplyGuess(words.MustParse("slate"))
	require.NoError(t, err)
	assert.Equal(t, "..G.G", fb.String())
	assert.Equal(t, StatusPlaying, st)

	fb, st, err = g.ApplyGuess(words.MustParse("crane"))
	require.NoError(t, err)
	assert.True(t, fb.Solved())
	assert.Equal(t, StatusWon, st)

	_, _, err = g.ApplyGuess(words.MustParse("crane"))
	assert.ErrorIs(t, err, ErrFinished)

	lost := New(words.MustParse("crane"), 1)
	_, st, err = lost.ApplyGuess(words.MustParse("slate"))
	require.NoError(t, err)
	assert.Equal(t, StatusLost, st)
	assert.Len(t, lost.Turns, 1)
	assert.Len(t, lost.ID, 16)
}

func TestApplyGuess_Unlimited(t *testing.T) {
	g := New(words.MustParse("crane"), 0)
	for i := 0; i < 10; i++ {
		_, st, err := g.ApplyGuess(words.MustParse("slate"))
		require.NoError(t, err)
		assert.Equal(t, StatusPlaying, st)
	}
	_, _, err := g.ApplyGuess(words.Word{})
	assert.ErrorIs(t, err, words.ErrInvalidWord)
}
