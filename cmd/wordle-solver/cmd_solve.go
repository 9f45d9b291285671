package main

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle-solver/internal/daily"
	"github.com/robalobadob/wordle-solver/internal/oracle"
	"github.com/robalobadob/wordle-solver/internal/orchestrator"
	"github.com/robalobadob/wordle-solver/internal/play"
	"github.com/robalobadob/wordle-solver/internal/store"
)

type solveFlags struct {
	offline bool
	target  string
	seed    int64
	date    string
}

func (a *app) solveCmd() *cobra.Command {
	var f solveFlags
	cmd := &cobra.Command{
		Use:   "solve [daily|random|word]",
		Short: "Play one puzzle",
		Long: `Plays one puzzle to the end and prints every turn.

By default guesses go to the public Wordle API. With --offline the puzzle is
scored locally: daily picks the answer of --date, random draws from the
answer list with --seed, word plays against --target.`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(oracle.ModeDaily), string(oracle.ModeRandom), string(oracle.ModeWord)},
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := oracle.ModeDaily
			if len(args) == 1 {
				m, err := oracle.ParseMode(args[0])
				if err != nil {
					return err
				}
				mode = m
			}
			if mode == oracle.ModeRandom && !cmd.Flags().Changed("seed") {
				f.seed = time.Now().UnixNano()
			}
			return a.runSolve(cmd, mode, f)
		},
	}
	cmd.Flags().BoolVar(&f.offline, "offline", false, "score locally instead of calling the API")
	cmd.Flags().StringVar(&f.target, "target", "", "target word (word mode)")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "puzzle seed (random mode)")
	cmd.Flags().StringVar(&f.date, "date", "", "puzzle date YYYY-MM-DD (offline daily mode)")
	return cmd
}

func (a *app) runSolve(cmd *cobra.Command, mode oracle.Mode, f solveFlags) error {
	date, err := daily.ParseDate(f.date)
	if err != nil {
		return err
	}
	o, err := oracle.Select(mode, oracle.Options{
		Offline: f.offline,
		BaseURL: a.cfg.APIURL,
		Client:  &http.Client{Timeout: a.cfg.HTTPTimeout},
		RPS:     a.cfg.APIRPS,
		Answers: a.lists.Answers,
		Salt:    a.cfg.DailySalt,
		Date:    date,
		Seed:    f.seed,
		Target:  f.target,
	})
	if err != nil {
		return err
	}

	ps := a.setup()
	orc, err := ps.Start(o)
	if err != nil {
		return err
	}
	defer orc.Session().Close()

	res, runErr := orc.Run(cmd.Context())
	printResult(cmd.OutOrStdout(), res)

	meta := play.Meta{Mode: string(mode), Backend: ps.BackendName()}
	switch mode {
	case oracle.ModeDaily:
		meta.Date = daily.DateKey(date)
	case oracle.ModeWord:
		meta.Target = f.target
	}
	if local, ok := o.(*oracle.Local); ok {
		meta.Target = local.Target().String()
	}
	a.save(cmd, play.Record(meta, res))

	if runErr != nil {
		return runErr
	}
	if res.State != orchestrator.Solved {
		return fmt.Errorf("not solved: %s", res.Reason)
	}
	return nil
}

// printResult writes one line per turn and a closing summary.
func printResult(w io.Writer, res *orchestrator.Result) {
	for i, t := range res.Turns {
		fmt.Fprintf(w, "%2d  %s  %s\n", i+1, t.Guess, t.Feedback)
	}
	if res.State == orchestrator.Solved {
		fmt.Fprintf(w, "solved in %d guesses (%s)\n", len(res.Turns), res.Elapsed.Round(time.Millisecond))
		return
	}
	fmt.Fprintf(w, "failed: %s after %d guesses\n", res.Reason, len(res.Turns))
}

// save records a result when a database is configured.
func (a *app) save(cmd *cobra.Command, rec *store.Result) {
	if a.cfg.DBPath == "" {
		return
	}
	st, err := a.openStore()
	if err != nil {
		log.Warn().Err(err).Msg("open result store")
		return
	}
	defer st.Close()
	if err := st.Save(cmd.Context(), rec); err != nil {
		log.Warn().Err(err).Msg("save result")
		return
	}
	log.Debug().Str("id", rec.ID).Msg("result saved")
}
