package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle-solver/internal/simulate"
	"github.com/robalobadob/wordle-solver/internal/words"
)

func (a *app) simulateCmd() *cobra.Command {
	var (
		limit   int
		workers int
		cutoff  int
		targets []string
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Play every answer offline and report metrics",
		Long: `Plays one offline game per answer word, concurrently, each with its own
solver session, then prints worst, best, average, not-in-N and the guess
distribution.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list := a.lists.Answers.Words()
			if len(targets) > 0 {
				list = list[:0:0]
				for _, s := range targets {
					w, err := words.Parse(s)
					if err != nil {
						return err
					}
					list = append(list, w)
				}
			}
			if limit > 0 && limit < len(list) {
				list = list[:limit]
			}

			ps := a.setup()
			rep, err := simulate.Run(cmd.Context(), simulate.Config{
				Backend:       ps.BackendName(),
				Vocab:         ps.Vocab,
				Opening:       ps.Opening,
				MaxTurns:      ps.MaxTurns,
				SolverTimeout: ps.SolverTimeout,
				Workers:       workers,
				Cutoff:        cutoff,
			}, list)
			if err != nil {
				return err
			}
			for _, line := range rep.Lines() {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "play only the first n targets")
	cmd.Flags().IntVar(&workers, "workers", 8, "concurrent games")
	cmd.Flags().IntVar(&cutoff, "cutoff", 6, "N of the not-in-N metric")
	cmd.Flags().StringSliceVar(&targets, "targets", nil, "play these words instead of the answer list")
	return cmd
}
