package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle-solver/internal/game"
	"github.com/robalobadob/wordle-solver/internal/opening"
	"github.com/robalobadob/wordle-solver/internal/oracle"
	"github.com/robalobadob/wordle-solver/internal/play"
	"github.com/robalobadob/wordle-solver/internal/store"
	"github.com/robalobadob/wordle-solver/internal/words"
)

func newServer(t *testing.T) (*Server, *words.Lists) {
	t.Helper()
	return newServerWith(t, opening.Default())
}

func newServerWith(t *testing.T, seq opening.Sequence) (*Server, *words.Lists) {
	t.Helper()
	lists, err := words.Load(words.Source{})
	require.NoError(t, err)
	st := store.NewMemoryStore()
	t.Cleanup(func() { _ = st.Close() })
	s := New(st, lists, Options{
		Play: play.Setup{Vocab: lists.Allowed, Opening: seq, MaxTurns: 20},
		Salt: "test-salt",
	})
	return s, lists
}

// do sends one request and decodes the JSON answer into out, if given.
func do(t *testing.T, s *Server, method, path, body string, out any) int {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	if out != nil {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
	}
	return rec.Code
}

// doCanceled sends a request whose client has already gone away.
func doCanceled(t *testing.T, s *Server, method, path, body string, out any) int {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	ctx, cancel := context.WithCancel(req.Context())
	cancel()
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req.WithContext(ctx))
	if out != nil {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
	}
	return rec.Code
}

func TestDiagnostics(t *testing.T) {
	s, lists := newServer(t)

	var health map[string]bool
	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/health", "", &health))
	assert.True(t, health["ok"])

	var counts map[string]int
	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/debug/words", "", &counts))
	assert.Equal(t, lists.Answers.Len(), counts["answers"])
	assert.Equal(t, lists.Allowed.Len(), counts["allowed"])

	var nf map[string]string
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/nope", "", &nf))
	assert.Equal(t, "not_found", nf["error"])
}

func TestSolve_WordIsStored(t *testing.T) {
	s, _ := newServer(t)

	var res solveRes
	code := do(t, s, http.MethodPost, "/solve", `{"mode":"word","target":"crane","backend":"datalog"}`, &res)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "solved", res.Result.State)
	assert.Equal(t, "crane", res.Result.Target)
	assert.Equal(t, "datalog", res.Result.Backend)
	require.NotEmpty(t, res.Turns)
	assert.Equal(t, "handy", res.Turns[0].Guess)
	assert.Equal(t, "GGGGG", res.Turns[len(res.Turns)-1].Feedback)
	assert.Len(t, res.Result.Guesses, len(res.Turns))

	var got store.Result
	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/results/"+res.Result.ID, "", &got))
	assert.Equal(t, res.Result.Guesses, got.Guesses)

	var list []store.Result
	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/results?limit=5", "", &list))
	assert.Len(t, list, 1)

	var sum store.Summary
	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/results/summary", "", &sum))
	assert.Equal(t, 1, sum.Games)
	assert.Equal(t, 1, sum.Solved)

	var nf map[string]string
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/results/missing", "", &nf))
}

func TestSolve_DailyAndLeaderboard(t *testing.T) {
	s, lists := newServer(t)

	var res solveRes
	require.Equal(t, http.StatusOK, do(t, s, http.MethodPost, "/solve", `{"mode":"daily","date":"2024-03-01"}`, &res))
	want, err := oracle.DailyTarget(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), "test-salt", lists.Answers)
	require.NoError(t, err)
	assert.Equal(t, want.String(), res.Result.Target)
	assert.Equal(t, "2024-03-01", res.Result.Date)
	assert.Equal(t, "solved", res.Result.State)

	var lb lbRes
	require.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/daily/leaderboard?date=2024-03-01", "", &lb))
	require.Len(t, lb.Top, 1)
	assert.Equal(t, res.Result.ID, lb.Top[0].ID)

	require.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/daily/leaderboard?date=2024-03-02", "", &lb))
	assert.Empty(t, lb.Top)

	var bad map[string]string
	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodGet, "/daily/leaderboard?date=march", "", &bad))
}

func TestSolve_RandomSeedIsReproducible(t *testing.T) {
	s, _ := newServer(t)
	var a, b solveRes
	require.Equal(t, http.StatusOK, do(t, s, http.MethodPost, "/solve", `{"mode":"random","seed":7}`, &a))
	require.Equal(t, http.StatusOK, do(t, s, http.MethodPost, "/solve", `{"mode":"random","seed":7}`, &b))
	assert.Equal(t, a.Result.Target, b.Result.Target)
	assert.Equal(t, a.Result.Guesses, b.Result.Guesses)
	assert.NotEqual(t, a.Result.ID, b.Result.ID)
}

func TestSolve_BadRequests(t *testing.T) {
	s, _ := newServer(t)
	for name, body := range map[string]string{
		"json":    `{`,
		"mode":    `{"mode":"hourly"}`,
		"backend": `{"mode":"random","backend":"z3"}`,
		"target":  `{"mode":"word","target":"cr4ne"}`,
		"unknown": `{"mode":"word","target":"zzzzz"}`,
		"date":    `{"mode":"daily","date":"01/03/2024"}`,
	} {
		t.Run(name, func(t *testing.T) {
			var e map[string]string
			assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodPost, "/solve", body, &e))
			assert.NotEmpty(t, e["error"])
		})
	}
}

func TestAssist_PlaysToSolved(t *testing.T) {
	s, _ := newServer(t)
	target := words.MustParse("crane")

	var res assistRes
	require.Equal(t, http.StatusCreated, do(t, s, http.MethodPost, "/assist", "", &res))
	assert.Equal(t, "opening", res.State)
	assert.Equal(t, "handy", res.Suggestion)
	assert.Positive(t, res.Candidates)
	id := res.ID

	for i := 0; i < 20 && res.State != "solved"; i++ {
		fb := game.Score(target, words.MustParse(res.Suggestion))
		body := `{"feedback":"` + fb.String() + `"}`
		res = assistRes{}
		require.Equal(t, http.StatusOK, do(t, s, http.MethodPost, "/assist/"+id+"/feedback", body, &res))
	}
	assert.Equal(t, "solved", res.State)
	assert.Empty(t, res.Suggestion)
	assert.Equal(t, "crane", res.Turns[len(res.Turns)-1].Guess)

	var again assistRes
	require.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/assist/"+id, "", &again))
	assert.Equal(t, res.Turns, again.Turns)

	var e map[string]string
	assert.Equal(t, http.StatusConflict,
		do(t, s, http.MethodPost, "/assist/"+id+"/feedback", `{"guess":"crane","feedback":"ggggg"}`, &e))

	var list []store.Result
	require.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/results", "", &list))
	require.Len(t, list, 1)
	assert.Equal(t, "assist", list[0].Mode)
	assert.Equal(t, "crane", list[0].Target)
}

func TestAssist_MalformedChangesNothing(t *testing.T) {
	s, _ := newServer(t)
	var res assistRes
	require.Equal(t, http.StatusCreated, do(t, s, http.MethodPost, "/assist", `{"backend":"datalog"}`, &res))

	var e map[string]string
	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodPost, "/assist/"+res.ID+"/feedback", `{"feedback":"gg"}`, &e))
	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodPost, "/assist/"+res.ID+"/feedback", `{"guess":"no","feedback":"ggggg"}`, &e))

	var after assistRes
	require.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/assist/"+res.ID, "", &after))
	assert.Empty(t, after.Turns)
	assert.Equal(t, res.Suggestion, after.Suggestion)

	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/assist/unknown", "", &e))
	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodPost, "/assist", `{"backend":"z3"}`, &e))
}

func TestAssist_ContradictionFailsGame(t *testing.T) {
	s, _ := newServer(t)
	var res assistRes
	require.Equal(t, http.StatusCreated, do(t, s, http.MethodPost, "/assist", "", &res))
	path := "/assist/" + res.ID + "/feedback"

	require.Equal(t, http.StatusOK, do(t, s, http.MethodPost, path, `{"guess":"crane","feedback":"ggbbb"}`, &res))
	assert.Equal(t, "opening", res.State)

	res = assistRes{ID: res.ID}
	require.Equal(t, http.StatusOK, do(t, s, http.MethodPost, path, `{"guess":"crown","feedback":"bbbbb"}`, &res))
	assert.Equal(t, "failed", res.State)
	assert.Equal(t, "contradiction", res.Reason)
	assert.NotEmpty(t, res.Error)
	assert.Len(t, res.Turns, 2)

	var ok map[string]bool
	assert.Equal(t, http.StatusOK, do(t, s, http.MethodDelete, "/assist/"+res.ID, "", &ok))
	var e map[string]string
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/assist/"+res.ID, "", &e))
}

func TestAssist_CanceledRequestKeepsGame(t *testing.T) {
	seq, err := opening.New()
	require.NoError(t, err)
	s, _ := newServerWith(t, seq)

	// start opens a game and reports crane with a request canceled mid-flight.
	start := func() string {
		var res assistRes
		require.Equal(t, http.StatusCreated, do(t, s, http.MethodPost, "/assist", "", &res))
		require.Equal(t, "solving", res.State)
		id := res.ID
		res = assistRes{}
		require.Equal(t, http.StatusOK,
			doCanceled(t, s, http.MethodPost, "/assist/"+id+"/feedback", `{"guess":"crane","feedback":"bbbbb"}`, &res))
		assert.Equal(t, "solving", res.State)
		assert.Empty(t, res.Reason)
		assert.Empty(t, res.Error)
		assert.Empty(t, res.Suggestion)
		return id
	}

	id := start()
	var got assistRes
	require.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/assist/"+id, "", &got))
	assert.Equal(t, "solving", got.State)
	assert.NotEmpty(t, got.Suggestion)

	// feedback without a guess answers a freshly computed suggestion
	id = start()
	got = assistRes{}
	require.Equal(t, http.StatusOK, do(t, s, http.MethodPost, "/assist/"+id+"/feedback", `{"feedback":"bbbbb"}`, &got))
	require.Len(t, got.Turns, 2)
	assert.NotEqual(t, "crane", got.Turns[1].Guess)

	var list []store.Result
	require.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/results", "", &list))
	assert.Empty(t, list)
}

func TestAssist_FinishedAndIdleGamesExpire(t *testing.T) {
	s, _ := newServer(t)
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s.assist.now = func() time.Time { return now }

	var done, open assistRes
	require.Equal(t, http.StatusCreated, do(t, s, http.MethodPost, "/assist", "", &done))
	require.Equal(t, http.StatusOK,
		do(t, s, http.MethodPost, "/assist/"+done.ID+"/feedback", `{"guess":"crane","feedback":"ggggg"}`, &done))
	require.Equal(t, "solved", done.State)
	require.Equal(t, http.StatusCreated, do(t, s, http.MethodPost, "/assist", "", &open))

	// finished games stay readable for a while
	now = now.Add(keepFinished / 2)
	var e map[string]string
	var got assistRes
	require.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/assist/"+done.ID, "", &got))

	now = now.Add(keepFinished + time.Minute)
	require.Equal(t, http.StatusCreated, do(t, s, http.MethodPost, "/assist", "", &assistRes{}))
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/assist/"+done.ID, "", &e))
	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/assist/"+open.ID, "", &got))

	now = now.Add(keepIdle + time.Minute)
	require.Equal(t, http.StatusCreated, do(t, s, http.MethodPost, "/assist", "", &assistRes{}))
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/assist/"+open.ID, "", &e))
	assert.Len(t, s.assist.games, 1)

	// the solved game was recorded before it expired
	var list []store.Result
	require.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/results", "", &list))
	assert.Len(t, list, 1)
}
