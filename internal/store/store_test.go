package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()
	sq, err := OpenSQLite(filepath.Join(t.TempDir(), "data", "results.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sq.Close() })
	return map[string]Store{"memory": NewMemoryStore(), "sqlite": sq}
}

func TestStore_SaveGet(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			r := &Result{Mode: "word", Backend: "bitindex", Target: "crane",
				Guesses: []string{"handy", "crane"}, State: "solved", Reason: "solved", ElapsedMs: 12}
			require.NoError(t, s.Save(ctx, r))
			assert.Len(t, r.ID, 36)
			assert.False(t, r.CreatedAt.IsZero())

			got, err := s.Get(ctx, r.ID)
			require.NoError(t, err)
			assert.Equal(t, r.Guesses, got.Guesses)
			assert.Equal(t, "crane", got.Target)
			assert.Equal(t, r.CreatedAt.UnixMilli(), got.CreatedAt.UnixMilli())
			assert.True(t, got.Solved())

			_, err = s.Get(ctx, "missing")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStore_ResultsAndSummary(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			seed := []Result{
				{ID: "a", Mode: "daily", Date: "2024-03-01", Guesses: []string{"handy", "swift", "glove", "crump", "crane"}, State: "solved", ElapsedMs: 5},
				{ID: "b", Mode: "daily", Date: "2024-03-01", Guesses: []string{"handy", "swift", "glove", "crump", "brace"}, State: "solved", ElapsedMs: 3},
				{ID: "c", Mode: "daily", Date: "2024-03-01", Guesses: []string{"slate", "crane"}, State: "solved", ElapsedMs: 9},
				{ID: "d", Mode: "daily", Date: "2024-03-01", Guesses: []string{"handy"}, State: "failed", Reason: "max_turns"},
				{ID: "e", Mode: "random", Guesses: []string{"handy", "swift"}, State: "solved"},
				{ID: "f", Mode: "daily", Date: "2024-03-02", Guesses: []string{"crane"}, State: "solved"},
			}
			for i := range seed {
				seed[i].CreatedAt = base.Add(time.Duration(i) * time.Minute)
				require.NoError(t, s.Save(ctx, &seed[i]))
			}

			latest, err := s.Results(ctx, 2)
			require.NoError(t, err)
			require.Len(t, latest, 2)
			assert.Equal(t, "f", latest[0].ID)
			assert.Equal(t, "e", latest[1].ID)

			all, err := s.Results(ctx, 0)
			require.NoError(t, err)
			assert.Len(t, all, 6)

			board, err := s.Daily(ctx, "2024-03-01", 10)
			require.NoError(t, err)
			ids := make([]string, len(board))
			for i, r := range board {
				ids[i] = r.ID
			}
			assert.Equal(t, []string{"c", "b", "a"}, ids)

			sum, err := s.Summary(ctx)
			require.NoError(t, err)
			assert.Equal(t, 6, sum.Games)
			assert.Equal(t, 5, sum.Solved)
			assert.InDelta(t, 15.0/5.0, sum.AverageGuesses, 1e-9)
			assert.Equal(t, map[int]int{1: 1, 2: 2, 5: 2}, sum.Distribution)
		})
	}
}

func TestSQLite_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "results.db")

	s, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, &Result{ID: "x", Mode: "word", State: "failed"}))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Get(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, []string{}, got.Guesses)

	sum, err := s.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Games)
	assert.Zero(t, sum.AverageGuesses)
}
