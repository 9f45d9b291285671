package bitindex

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle-solver/internal/constraint"
	"github.com/robalobadob/wordle-solver/internal/words"
)

func names(ws []words.Word) []string {
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = w.String()
	}
	return out
}

func TestNarrow(t *testing.T) {
	vocab := words.MustVocabulary("speed", "erase", "crane", "sheep", "geese", "slate")
	ix := Build(vocab)

	live := ix.All()
	ix.Narrow(live, constraint.MinCount('e', 2))
	assert.Equal(t, []string{"erase", "geese", "sheep", "speed"}, names(ix.Words(live)))

	ix.Narrow(live, constraint.MaxCount('e', 2))
	assert.Equal(t, []string{"erase", "sheep", "speed"}, names(ix.Words(live)))

	ix.Narrow(live, constraint.FixedAt(0, 's'))
	ix.Narrow(live, constraint.ForbidAt(1, 'h'))
	assert.Equal(t, []string{"speed"}, names(ix.Words(live)))

	ix.Narrow(live, constraint.MaxCount('d', 0))
	_, ok := ix.Best(live)
	assert.False(t, ok)

	// the index itself is untouched
	assert.Equal(t, uint(vocab.Len()), ix.All().Count())
}

func TestBestPrefersDistinctLetters(t *testing.T) {
	vocab := words.MustVocabulary("aahed", "eerie", "crane", "sheep")
	ix := Build(vocab)
	w, ok := ix.Best(ix.All())
	require.True(t, ok)
	assert.Equal(t, "crane", w.String())

	live := ix.All()
	ix.Narrow(live, constraint.MaxCount('c', 0))
	w, _ = ix.Best(live)
	assert.Equal(t, "aahed", w.String())
}

func TestSolverIncremental(t *testing.T) {
	small := words.MustVocabulary("crane", "slate", "crump")
	s := New()
	require.NoError(t, s.Add(constraint.FixedAt(0, 'c')))
	w, err := s.Model(context.Background(), small)
	require.NoError(t, err)
	assert.Equal(t, "crane", w.String())

	require.NoError(t, s.Add(constraint.MaxCount('a', 0)))
	w, err = s.Model(context.Background(), small)
	require.NoError(t, err)
	assert.Equal(t, "crump", w.String())
	assert.Equal(t, 2, s.views[small].applied)

	// a second vocabulary gets its own view with the full history
	other := words.MustVocabulary("cloud", "crane")
	w, err = s.Model(context.Background(), other)
	require.NoError(t, err)
	assert.Equal(t, "cloud", w.String())
	require.NoError(t, s.Close())
}
