package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle-solver/internal/game"
	"github.com/robalobadob/wordle-solver/internal/orchestrator"
	"github.com/robalobadob/wordle-solver/internal/play"
	"github.com/robalobadob/wordle-solver/internal/words"
)

func (a *app) assistCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "assist",
		Short: "Suggest guesses for a game played elsewhere",
		Long: `Suggests a guess, then reads the feedback you got for it, one line per turn.

Feedback is five marks: g (green), y (yellow), b (grey); "..YGG" and "00122"
work too. Prefix a word to report a different guess than the suggestion:

  crane bbygg`,
		Args: cobra.NoArgs,
		RunE: a.runAssist,
	}
}

func (a *app) runAssist(cmd *cobra.Command, _ []string) error {
	ps := a.setup()
	orc, err := ps.Start(nil)
	if err != nil {
		return err
	}
	defer orc.Session().Close()

	out := cmd.OutOrStdout()
	in := bufio.NewScanner(cmd.InOrStdin())
	for !orc.State().Terminal() {
		guess, err := orc.Next(cmd.Context())
		if err != nil {
			if !orc.State().Terminal() {
				return err
			}
			break
		}
		fmt.Fprintf(out, "try %s (%d candidates)\n", guess, orc.Session().Candidates(ps.Vocab))

		for {
			fmt.Fprint(out, "> ")
			if !in.Scan() {
				if err := in.Err(); err != nil {
					return err
				}
				return errors.New("input closed before the game ended")
			}
			turn, err := parseTurn(in.Text(), guess)
			if err == nil {
				err = orc.Observe(turn)
			}
			if err != nil && !orc.State().Terminal() {
				fmt.Fprintf(out, "%v\n", err)
				continue
			}
			break
		}
	}

	res := orc.Result()
	printResult(out, res)
	meta := play.Meta{Mode: "assist", Backend: ps.BackendName()}
	if res.State == orchestrator.Solved {
		meta.Target = res.Turns[len(res.Turns)-1].Guess.String()
	}
	a.save(cmd, play.Record(meta, res))
	return res.Err
}

// parseTurn reads "FEEDBACK" or "WORD FEEDBACK".
func parseTurn(line string, suggested words.Word) (game.Turn, error) {
	fields := strings.Fields(line)
	turn := game.Turn{Guess: suggested}
	switch len(fields) {
	case 1:
	case 2:
		w, err := words.Parse(fields[0])
		if err != nil {
			return turn, err
		}
		turn.Guess = w
	default:
		return turn, errors.New(`want "FEEDBACK" or "WORD FEEDBACK"`)
	}
	fb, err := game.ParseFeedback(fields[len(fields)-1])
	if err != nil {
		return turn, err
	}
	turn.Feedback = fb
	return turn, nil
}
