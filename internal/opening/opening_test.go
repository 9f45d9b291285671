package opening

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle-solver/internal/words"
)

func TestDefault(t *testing.T) {
	seq := Default()
	require.Equal(t, 4, seq.Len())

	seen := map[byte]bool{}
	for i, want := range Norvig {
		w, ok := seq.Guess(i)
		require.True(t, ok)
		assert.Equal(t, want, w.String())
		for _, c := range w {
			seen[c] = true
		}
	}
	assert.Len(t, seen, 20)

	_, ok := seq.Guess(4)
	assert.False(t, ok)
	_, ok = seq.Guess(-1)
	assert.False(t, ok)

	// same answers on every call
	assert.Equal(t, Default().Words(), seq.Words())
}

func TestNew(t *testing.T) {
	seq, err := New()
	require.NoError(t, err)
	assert.Zero(t, seq.Len())

	_, err = New("slate", "toolong")
	assert.ErrorIs(t, err, words.ErrInvalidWord)

	seq, err = New("SLATE")
	require.NoError(t, err)
	w, _ := seq.Guess(0)
	assert.Equal(t, "slate", w.String())
}
