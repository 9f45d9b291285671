package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/time/rate"

	"github.com/robalobadob/wordle-solver/internal/game"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// DefaultBaseURL is the public Wordle API.
const DefaultBaseURL = "https://wordle.votee.dev:8000"

// Doer is the part of *http.Client the remote oracle needs.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Remote holds the settings shared by the remote oracles.
type Remote struct {
	BaseURL string
	Client  Doer
	// RPS caps outgoing requests per second. Zero means unlimited.
	RPS float64
}

// SlotResult is one element of the API's guess response.
type SlotResult struct {
	Slot   int    `json:"slot"`
	Guess  string `json:"guess"`
	Result string `json:"result"`
}

// HTTP submits guesses to the remote API.
type HTTP struct {
	endpoint string
	query    url.Values
	client   Doer
	limiter  *rate.Limiter
}

// NewDaily plays today's puzzle: GET /daily?guess=.
func NewDaily(rc Remote) *HTTP {
	return newHTTP(rc, "/daily", nil)
}

// NewRandom plays the seeded random puzzle: GET /random?guess=&seed=.
func NewRandom(rc Remote, seed int64) *HTTP {
	return newHTTP(rc, "/random", url.Values{"seed": {strconv.FormatInt(seed, 10)}})
}

// NewWord plays against a known target: GET /word/{target}?guess=.
func NewWord(rc Remote, target words.Word) *HTTP {
	return newHTTP(rc, "/word/"+url.PathEscape(target.String()), nil)
}

func newHTTP(rc Remote, path string, query url.Values) *HTTP {
	base := strings.TrimRight(rc.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	client := rc.Client
	if client == nil {
		client = http.DefaultClient
	}
	limit := rate.Inf
	if rc.RPS > 0 {
		limit = rate.Limit(rc.RPS)
	}
	if query == nil {
		query = url.Values{}
	}
	return &HTTP{
		endpoint: base + path,
		query:    query,
		client:   client,
		limiter:  rate.NewLimiter(limit, 1),
	}
}

// Submit sends guess and validates the response before returning it.
func (h *HTTP) Submit(ctx context.Context, guess words.Word) (game.Feedback, error) {
	if err := h.limiter.Wait(ctx); err != nil {
		return game.Feedback{}, err
	}

	q := url.Values{}
	for k, v := range h.query {
		q[k] = v
	}
	q.Set("guess", guess.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return game.Feedback{}, fmt.Errorf("build guess request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return game.Feedback{}, fmt.Errorf("guess request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return game.Feedback{}, fmt.Errorf("%w: %s: %s", ErrRejected, resp.Status, strings.TrimSpace(string(body)))
	}

	var rows []SlotResult
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return game.Feedback{}, fmt.Errorf("%w: decode response: %v", game.ErrMalformedFeedback, err)
	}
	return DecodeFeedback(guess, rows)
}

// DecodeFeedback checks that rows describe exactly the five letters of guess
// and converts them to Feedback.
func DecodeFeedback(guess words.Word, rows []SlotResult) (game.Feedback, error) {
	var fb game.Feedback
	if len(rows) != words.Length {
		return fb, fmt.Errorf("%w: want %d slots, got %d", game.ErrMalformedFeedback, words.Length, len(rows))
	}
	var seen [words.Length]bool
	for _, r := range rows {
		if r.Slot < 0 || r.Slot >= words.Length {
			return fb, fmt.Errorf("%w: slot %d out of range", game.ErrMalformedFeedback, r.Slot)
		}
		if seen[r.Slot] {
			return fb, fmt.Errorf("%w: slot %d repeated", game.ErrMalformedFeedback, r.Slot)
		}
		seen[r.Slot] = true
		if !strings.EqualFold(r.Guess, string(guess[r.Slot])) {
			return fb, fmt.Errorf("%w: slot %d echoes %q, sent %q", game.ErrMalformedFeedback, r.Slot, r.Guess, guess[r.Slot])
		}
		m, err := game.ParseMark(r.Result)
		if err != nil {
			return fb, err
		}
		fb[r.Slot] = m
	}
	return fb, nil
}
