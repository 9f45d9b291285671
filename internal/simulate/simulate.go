// Package simulate plays many offline games concurrently and summarizes how
// the solver fares.
package simulate

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"
	"golang.org/x/exp/constraints"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle-solver/internal/opening"
	"github.com/robalobadob/wordle-solver/internal/oracle"
	"github.com/robalobadob/wordle-solver/internal/orchestrator"
	"github.com/robalobadob/wordle-solver/internal/session"
	"github.com/robalobadob/wordle-solver/internal/solver"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// Config describes one simulation.
type Config struct {
	Backend string
	Vocab   *words.Vocabulary
	Opening opening.Sequence

	MaxTurns      int
	SolverTimeout time.Duration
	// Workers caps concurrent games; zero means one per target.
	Workers int
	// Cutoff is the N of the not-in-N metric; zero means MaxTurns.
	Cutoff int
}

// Outcome is the result of one target.
type Outcome struct {
	Target words.Word
	Result *orchestrator.Result
}

// Guesses counts the submitted words.
func (o Outcome) Guesses() int { return len(o.Result.Turns) }

// Solved reports whether the target was found.
func (o Outcome) Solved() bool { return o.Result.State == orchestrator.Solved }

// Report aggregates a simulation.
type Report struct {
	Outcomes     []Outcome
	Solved       int
	Distribution map[int]int
	Failures     map[orchestrator.Reason]int

	Worst   Metric
	Best    Metric
	Average float64
	NotInN  float64
	Cutoff  int
	Elapsed time.Duration
}

// Metric is an extreme value and the targets that reach it.
type Metric struct {
	Name  string
	Value int
	Words []string
}

func (m Metric) String() string {
	return fmt.Sprintf("%s: %d (%s)", m.Name, m.Value, strings.Join(m.Words, " "))
}

// Run plays every target in its own game with its own session. Game failures
// are part of the report; only setup errors are returned.
func Run(ctx context.Context, cfg Config, targets []words.Word) (*Report, error) {
	if cfg.Vocab == nil || cfg.Vocab.Len() == 0 {
		return nil, words.ErrEmptyVocabulary
	}
	if cfg.MaxTurns <= 0 {
		cfg.MaxTurns = orchestrator.DefaultMaxTurns
	}
	if cfg.Cutoff <= 0 {
		cfg.Cutoff = cfg.MaxTurns
	}
	factory, err := solver.FactoryFor(cfg.Backend)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	outcomes := make([]Outcome, len(targets))
	g, gctx := errgroup.WithContext(ctx)
	if cfg.Workers > 0 {
		g.SetLimit(cfg.Workers)
	}
	for i, target := range targets {
		i, target := i, target
		g.Go(func() error {
			backend, err := factory()
			if err != nil {
				return err
			}
			var opts []session.Option
			if cfg.SolverTimeout > 0 {
				opts = append(opts, session.WithTimeout(cfg.SolverTimeout))
			}
			sess := session.New(backend, opts...)
			defer sess.Close()

			orc := orchestrator.New(oracle.NewLocal(target), cfg.Vocab, sess, orchestrator.Config{
				MaxTurns: cfg.MaxTurns,
				Opening:  cfg.Opening,
			})
			res, _ := orc.Run(gctx)
			outcomes[i] = Outcome{Target: target, Result: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(outcomes, func(i, j int) bool { return outcomes[i].Target.String() < outcomes[j].Target.String() })
	return summarize(outcomes, cfg, time.Since(start)), nil
}

func summarize(outs []Outcome, cfg Config, elapsed time.Duration) *Report {
	r := &Report{
		Outcomes:     outs,
		Distribution: map[int]int{},
		Failures:     map[orchestrator.Reason]int{},
		Cutoff:       cfg.Cutoff,
		Elapsed:      elapsed,
	}
	solved := lo.Filter(outs, func(o Outcome, _ int) bool { return o.Solved() })
	r.Solved = len(solved)
	for _, o := range outs {
		if o.Solved() {
			r.Distribution[o.Guesses()]++
		} else {
			r.Failures[o.Result.Reason]++
		}
	}
	if len(outs) == 0 {
		return r
	}

	// an unsolved game counts as one turn past the budget
	cost := func(o Outcome) int {
		if o.Solved() {
			return o.Guesses()
		}
		return cfg.MaxTurns + 1
	}
	v, ws := worstBy(outs, cost)
	r.Worst = Metric{Name: "worst", Value: v, Words: ws}
	v, ws = worstBy(outs, func(o Outcome) int { return -cost(o) })
	r.Best = Metric{Name: "best", Value: -v, Words: ws}

	r.Average = mean(lo.Map(solved, func(o Outcome, _ int) int { return o.Guesses() }))
	missed := lo.CountBy(outs, func(o Outcome) bool { return !o.Solved() || o.Guesses() > cfg.Cutoff })
	r.NotInN = 100 * float64(missed) / float64(len(outs))
	return r
}

// worstBy finds the highest badness and every target sharing it.
func worstBy[T constraints.Ordered](outs []Outcome, badness func(Outcome) T) (T, []string) {
	var worst T
	var worstWords []string
	for i, o := range outs {
		b := badness(o)
		switch {
		case i == 0 || worst < b:
			worst, worstWords = b, []string{o.Target.String()}
		case worst == b:
			worstWords = append(worstWords, o.Target.String())
		}
	}
	sort.Strings(worstWords)
	return worst, worstWords
}

func mean[T constraints.Integer | constraints.Float](xs []T) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += float64(x)
	}
	return sum / float64(len(xs))
}

// Lines renders the report for a terminal.
func (r *Report) Lines() []string {
	out := []string{
		fmt.Sprintf("games: %d, solved: %d", len(r.Outcomes), r.Solved),
		r.Worst.String(),
		r.Best.String(),
		fmt.Sprintf("average: %.3f", r.Average),
		fmt.Sprintf("not-in-%d: %.2f%%", r.Cutoff, r.NotInN),
	}
	keys := lo.Keys(r.Distribution)
	sort.Ints(keys)
	for _, k := range keys {
		out = append(out, fmt.Sprintf("%2d: %d", k, r.Distribution[k]))
	}
	reasons := lo.Keys(r.Failures)
	sort.Slice(reasons, func(i, j int) bool { return reasons[i] < reasons[j] })
	for _, k := range reasons {
		out = append(out, fmt.Sprintf("failed %s: %d", k, r.Failures[k]))
	}
	out = append(out, fmt.Sprintf("elapsed: %s", r.Elapsed.Round(time.Millisecond)))
	return out
}
