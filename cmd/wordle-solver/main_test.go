package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle-solver/internal/session"
	"github.com/robalobadob/wordle-solver/internal/solver"
	"github.com/robalobadob/wordle-solver/internal/store"
)

// run executes the command tree with args and stdin, returning stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "warn")
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSolve_OfflineWord(t *testing.T) {
	out, err := run(t, "", "solve", "word", "--offline", "--target", "crane", "--max-turns", "20")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Equal(t, " 1  handy  .YY..", lines[0])
	assert.Contains(t, lines[len(lines)-2], "crane  GGGGG")
	assert.True(t, strings.HasPrefix(lines[len(lines)-1], "solved in "))
}

func TestSolve_SavesToDatabase(t *testing.T) {
	db := filepath.Join(t.TempDir(), "results.db")
	_, err := run(t, "", "solve", "random", "--offline", "--seed", "3", "--max-turns", "20", "--db", db, "--backend", "datalog")
	require.NoError(t, err)

	st, err := store.OpenSQLite(db)
	require.NoError(t, err)
	defer st.Close()
	rows, err := st.Results(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "random", rows[0].Mode)
	assert.Equal(t, "datalog", rows[0].Backend)
	assert.True(t, rows[0].Solved())
	assert.Equal(t, rows[0].Target, rows[0].Guesses[len(rows[0].Guesses)-1])
}

func TestSolve_Errors(t *testing.T) {
	_, err := run(t, "", "solve", "word", "--offline", "--target", "crane", "--backend", "z3")
	assert.ErrorIs(t, err, solver.ErrUnknownBackend)

	_, err = run(t, "", "solve", "hourly")
	assert.Error(t, err)

	_, err = run(t, "", "solve", "word", "--offline", "--target", "crane", "--max-turns", "1")
	assert.EqualError(t, err, "not solved: max_turns")
}

func TestSimulate(t *testing.T) {
	out, err := run(t, "", "simulate", "--targets", "crane,jelly,swift", "--workers", "2", "--max-turns", "20")
	require.NoError(t, err)
	assert.Contains(t, out, "games: 3, solved: 3")
	assert.Contains(t, out, "best: 2 (swift)")
	assert.Contains(t, out, "not-in-6:")
}

func TestAssist(t *testing.T) {
	out, err := run(t, "bad\ncrane ggggg\n", "assist")
	require.NoError(t, err)
	assert.Contains(t, out, "try handy")
	assert.Contains(t, out, "malformed feedback")
	assert.Contains(t, out, "solved in 1 guesses")
}

func TestAssist_FollowsSuggestions(t *testing.T) {
	// target "swift": handy scores all grey, then swift is suggested
	out, err := run(t, "bbbbb\nggggg\n", "assist")
	require.NoError(t, err)
	assert.Contains(t, out, "try swift")
	assert.Contains(t, out, " 2  swift  GGGGG")
}

func TestAssist_Contradiction(t *testing.T) {
	_, err := run(t, "crane ggbbb\ncrown bbbbb\n", "assist", "--opening=")
	var ce *session.ContradictionError
	assert.ErrorAs(t, err, &ce)

	_, err = run(t, "crane ggbbb\n", "assist")
	assert.EqualError(t, err, "input closed before the game ended")
}
