// internal/httpserver/routes_assist.go
//
// HTTP routes for assisted play: a human plays Wordle elsewhere and reports
// each feedback; the server answers with the next suggested guess.
//   - POST   /assist               → start a game, returns the first suggestion
//   - POST   /assist/{id}/feedback → report feedback for a guess
//   - GET    /assist/{id}          → current game state
//   - DELETE /assist/{id}          → drop a game
//
// Games are held in memory and recorded to the store once they end. Finished
// games stay readable for a while; abandoned ones are dropped after a day idle.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-solver/internal/game"
	"github.com/robalobadob/wordle-solver/internal/orchestrator"
	"github.com/robalobadob/wordle-solver/internal/play"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// assistGame is one game in progress. mu serializes requests for it.
type assistGame struct {
	mu       sync.Mutex
	id       string
	backend  string
	orc      *orchestrator.Orchestrator
	next     words.Word
	hasNext  bool
	recorded bool

	seen atomic.Int64 // unix nanos of the last request
	over atomic.Bool  // set once the result is recorded
}

const (
	keepFinished = 10 * time.Minute
	keepIdle     = 24 * time.Hour
)

// assistRegistry maps game IDs to games.
type assistRegistry struct {
	mu    sync.Mutex
	games map[string]*assistGame
	now   func() time.Time
}

func newAssistRegistry() *assistRegistry {
	return &assistRegistry{games: make(map[string]*assistGame), now: time.Now}
}

// put adds g and drops expired games.
func (a *assistRegistry) put(g *assistGame) {
	a.mu.Lock()
	g.seen.Store(a.now().UnixNano())
	a.games[g.id] = g
	expired := a.expiredLocked()
	a.mu.Unlock()

	for _, old := range expired {
		old.mu.Lock()
		_ = old.orc.Session().Close()
		old.mu.Unlock()
	}
	if len(expired) > 0 {
		log.Debug().Int("count", len(expired)).Msg("assist games evicted")
	}
}

// expiredLocked removes and returns finished games older than keepFinished
// and games idle for keepIdle.
func (a *assistRegistry) expiredLocked() []*assistGame {
	now := a.now().UnixNano()
	var out []*assistGame
	for id, g := range a.games {
		idle := time.Duration(now - g.seen.Load())
		if idle > keepIdle || (g.over.Load() && idle > keepFinished) {
			delete(a.games, id)
			out = append(out, g)
		}
	}
	return out
}

func (a *assistRegistry) get(id string) (*assistGame, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	g, ok := a.games[id]
	if ok {
		g.seen.Store(a.now().UnixNano())
	}
	return g, ok
}

func (a *assistRegistry) remove(id string) (*assistGame, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	g, ok := a.games[id]
	delete(a.games, id)
	return g, ok
}

// mountAssist registers all /assist routes.
func (s *Server) mountAssist(r chi.Router) {
	r.Route("/assist", func(r chi.Router) {
		r.Post("/", s.handleAssistNew)
		r.Get("/{id}", s.handleAssistGet)
		r.Delete("/{id}", s.handleAssistDelete)
		r.Post("/{id}/feedback", s.handleAssistFeedback)
	})
}

type assistNewReq struct {
	Backend string `json:"backend"`
}

type assistFeedbackReq struct {
	Guess    string `json:"guess"` // defaults to the last suggestion
	Feedback string `json:"feedback"`
}

type assistRes struct {
	ID         string    `json:"id"`
	State      string    `json:"state"`
	Reason     string    `json:"reason,omitempty"`
	Suggestion string    `json:"suggestion,omitempty"`
	Candidates int       `json:"candidates"`
	Turns      []turnRes `json:"turns"`
	Error      string    `json:"error,omitempty"`
}

// snapshot must be called with g.mu held.
func (s *Server) snapshot(g *assistGame) assistRes {
	res := assistRes{
		ID:         g.id,
		State:      string(g.orc.State()),
		Reason:     string(g.orc.Reason()),
		Candidates: g.orc.Session().Candidates(s.opts.Play.Vocab),
		Turns:      turns(g.orc.Turns()),
	}
	if g.hasNext {
		res.Suggestion = g.next.String()
	}
	if err := g.orc.Err(); err != nil {
		res.Error = err.Error()
	}
	return res
}

// advance computes the next suggestion, or records the game once it is over.
// A canceled request leaves the game without a suggestion; resume retries.
// Must be called with g.mu held.
func (s *Server) advance(r *http.Request, g *assistGame) {
	g.hasNext = false
	if !g.orc.State().Terminal() {
		if next, err := g.orc.Next(r.Context()); err == nil {
			g.next, g.hasNext = next, true
		}
	}
	if !g.orc.State().Terminal() || g.recorded {
		return
	}
	g.recorded = true
	res := g.orc.Result()
	rec := play.Record(play.Meta{Mode: "assist", Backend: g.backend}, res)
	if res.State == orchestrator.Solved && len(res.Turns) > 0 {
		rec.Target = res.Turns[len(res.Turns)-1].Guess.String()
	}
	if err := s.store.Save(context.WithoutCancel(r.Context()), rec); err != nil {
		log.Warn().Err(err).Str("assistId", g.id).Msg("save assist result")
	}
	_ = g.orc.Session().Close()
	g.over.Store(true)
}

// resume recomputes a suggestion lost to an earlier canceled request.
// Must be called with g.mu held.
func (s *Server) resume(r *http.Request, g *assistGame) {
	if !g.hasNext && !g.orc.State().Terminal() {
		s.advance(r, g)
	}
}

// handleAssistNew starts a game and suggests the first guess.
func (s *Server) handleAssistNew(w http.ResponseWriter, r *http.Request) {
	var req assistNewReq
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_json")
			return
		}
	}
	ps, err := s.setup(req.Backend)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	orc, err := ps.Start(nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	g := &assistGame{id: uuid.NewString(), backend: ps.BackendName(), orc: orc}
	g.mu.Lock()
	defer g.mu.Unlock()
	s.advance(r, g)
	s.assist.put(g)
	writeJSON(w, http.StatusCreated, s.snapshot(g))
}

func (s *Server) handleAssistGet(w http.ResponseWriter, r *http.Request) {
	g, ok := s.assist.get(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	s.resume(r, g)
	writeJSON(w, http.StatusOK, s.snapshot(g))
}

func (s *Server) handleAssistDelete(w http.ResponseWriter, r *http.Request) {
	g, ok := s.assist.remove(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	g.mu.Lock()
	_ = g.orc.Session().Close()
	g.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// handleAssistFeedback applies one reported feedback.
//   - Malformed feedback or an unknown guess is rejected and changes nothing.
//   - Feedback that contradicts earlier turns ends the game as failed.
//   - Reporting on a finished game is a conflict.
func (s *Server) handleAssistFeedback(w http.ResponseWriter, r *http.Request) {
	g, ok := s.assist.get(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	var req assistFeedbackReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	fb, err := game.ParseFeedback(req.Feedback)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	var guess words.Word
	if req.Guess != "" {
		if guess, err = words.Parse(req.Guess); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	} else {
		s.resume(r, g)
		if !g.hasNext {
			writeError(w, http.StatusConflict, "no suggestion to answer")
			return
		}
		guess = g.next
	}

	err = g.orc.Observe(game.Turn{Guess: guess, Feedback: fb})
	switch {
	case errors.Is(err, orchestrator.ErrTerminal):
		writeError(w, http.StatusConflict, err.Error())
		return
	case err != nil && !g.orc.State().Terminal():
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.advance(r, g)
	writeJSON(w, http.StatusOK, s.snapshot(g))
}
