package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-solver/internal/daily"
	"github.com/robalobadob/wordle-solver/internal/game"
	"github.com/robalobadob/wordle-solver/internal/oracle"
	"github.com/robalobadob/wordle-solver/internal/play"
	"github.com/robalobadob/wordle-solver/internal/solver"
	"github.com/robalobadob/wordle-solver/internal/store"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// solveReq is the payload for POST /solve. Every game is played offline.
type solveReq struct {
	Mode    string `json:"mode"`   // daily | random | word (default random)
	Target  string `json:"target"` // word mode only
	Seed    *int64 `json:"seed"`   // random mode; omitted means time-based
	Date    string `json:"date"`   // daily mode, YYYY-MM-DD; empty means today
	Backend string `json:"backend"`
}

type solveRes struct {
	Result store.Result `json:"result"`
	Turns  []turnRes    `json:"turns"`
}

// setup applies a per-request backend override.
func (s *Server) setup(backend string) (play.Setup, error) {
	ps := s.opts.Play
	if backend != "" {
		if _, err := solver.FactoryFor(backend); err != nil {
			return ps, err
		}
		ps.Backend = backend
	}
	return ps, nil
}

// handleSolve plays a full game against a local oracle and stores the result.
func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if req.Mode == "" {
		req.Mode = string(oracle.ModeRandom)
	}
	mode, err := oracle.ParseMode(req.Mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	ps, err := s.setup(req.Backend)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	opts := oracle.Options{Offline: true, Answers: s.lists.Answers, Salt: s.opts.Salt, Target: req.Target}
	meta := play.Meta{Mode: string(mode), Backend: ps.BackendName()}
	switch mode {
	case oracle.ModeDaily:
		date, err := daily.ParseDate(req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_date")
			return
		}
		opts.Date = date
		meta.Date = daily.DateKey(date)
	case oracle.ModeRandom:
		opts.Seed = time.Now().UnixNano()
		if req.Seed != nil {
			opts.Seed = *req.Seed
		}
	case oracle.ModeWord:
		target, err := words.Parse(req.Target)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if !ps.Vocab.Contains(target) {
			writeError(w, http.StatusBadRequest, "target not in word list")
			return
		}
	}

	o, err := oracle.Select(mode, opts)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	orc, err := ps.Start(o)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer orc.Session().Close()

	res, _ := orc.Run(r.Context())
	if r.Context().Err() != nil {
		writeError(w, http.StatusServiceUnavailable, "canceled")
		return
	}
	if local, ok := o.(*oracle.Local); ok {
		meta.Target = local.Target().String()
	}

	rec := play.Record(meta, res)
	if err := s.store.Save(r.Context(), rec); err != nil {
		log.Error().Err(err).Msg("save result")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	writeJSON(w, http.StatusOK, solveRes{Result: *rec, Turns: turns(res.Turns)})
}

func turns(ts []game.Turn) []turnRes {
	out := make([]turnRes, len(ts))
	for i, t := range ts {
		out[i] = turnRes{Guess: t.Guess.String(), Feedback: t.Feedback.String()}
	}
	return out
}
