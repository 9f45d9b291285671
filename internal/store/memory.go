package store

import (
	"context"
	"sort"
	"sync"
)

// memory is an in-memory Store. State is lost when the process restarts.
type memory struct {
	mu      sync.RWMutex
	results map[string]Result
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{results: make(map[string]Result)}
}

func (m *memory) Save(ctx context.Context, r *Result) error {
	prepare(r)
	cp := *r
	cp.Guesses = append([]string(nil), r.Guesses...)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[r.ID] = cp
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (Result, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.results[id]; ok {
		return r, nil
	}
	return Result{}, ErrNotFound
}

func (m *memory) sorted(keep func(Result) bool, less func(a, b Result) bool) []Result {
	m.mu.RLock()
	out := make([]Result, 0, len(m.results))
	for _, r := range m.results {
		if keep(r) {
			out = append(out, r)
		}
	}
	m.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func (m *memory) Results(ctx context.Context, limit int) ([]Result, error) {
	out := m.sorted(func(Result) bool { return true }, func(a, b Result) bool {
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return head(out, clampLimit(limit)), nil
}

func (m *memory) Daily(ctx context.Context, date string, limit int) ([]Result, error) {
	out := m.sorted(func(r Result) bool {
		return r.Mode == "daily" && r.Date == date && r.Solved()
	}, func(a, b Result) bool {
		if len(a.Guesses) != len(b.Guesses) {
			return len(a.Guesses) < len(b.Guesses)
		}
		if a.ElapsedMs != b.ElapsedMs {
			return a.ElapsedMs < b.ElapsedMs
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
	return head(out, clampLimit(limit)), nil
}

func (m *memory) Summary(ctx context.Context) (Summary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := Summary{Distribution: map[int]int{}}
	total := 0
	for _, r := range m.results {
		s.Games++
		if r.Solved() {
			s.Solved++
			total += len(r.Guesses)
			s.Distribution[len(r.Guesses)]++
		}
	}
	if s.Solved > 0 {
		s.AverageGuesses = float64(total) / float64(s.Solved)
	}
	return s, nil
}

func (m *memory) Close() error { return nil }

func head(rs []Result, n int) []Result {
	if len(rs) > n {
		return rs[:n]
	}
	return rs
}
