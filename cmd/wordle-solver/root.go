package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle-solver/internal/config"
	"github.com/robalobadob/wordle-solver/internal/opening"
	"github.com/robalobadob/wordle-solver/internal/play"
	"github.com/robalobadob/wordle-solver/internal/store"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// app is the state shared by every command of one invocation.
type app struct {
	cfg   config.Config
	lists *words.Lists
	seq   opening.Sequence

	// persistent flags
	backend   string
	maxTurns  int
	logLevel  string
	logFormat string
	dbPath    string
	openers   []string
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "wordle-solver",
		Short: "Solve Wordle puzzles with a constraint solver",
		Long: `wordle-solver plays Wordle by turning each feedback into constraints
and asking a solver backend for a word that satisfies all of them.

It opens with fixed guesses (handy, swift, glove, crump by default),
then always guesses a word consistent with everything seen so far.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.init,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.backend, "backend", "", "solver backend: bitindex or datalog (SOLVER_BACKEND)")
	pf.IntVar(&a.maxTurns, "max-turns", 0, "guess budget, openers included (MAX_TURNS)")
	pf.StringVar(&a.logLevel, "log-level", "", "log level (LOG_LEVEL)")
	pf.StringVar(&a.logFormat, "log-format", "", "json or console (LOG_FORMAT)")
	pf.StringVar(&a.dbPath, "db", "", "sqlite file for results (DB_PATH)")
	pf.StringSliceVar(&a.openers, "opening", opening.Norvig, "opening guesses; pass --opening= for none")

	root.AddCommand(a.solveCmd(), a.simulateCmd(), a.assistCmd(), a.serveCmd())
	return root
}

// init loads config, applies flag overrides, sets up logging and loads the
// word lists.
func (a *app) init(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("backend") {
		cfg.SolverBackend = a.backend
	}
	if flags.Changed("max-turns") {
		cfg.MaxTurns = a.maxTurns
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = a.logFormat
	}
	if flags.Changed("db") {
		cfg.DBPath = a.dbPath
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	config.SetupLogging(cfg, cmd.ErrOrStderr())

	if a.lists, err = words.Load(cfg.WordSource()); err != nil {
		return fmt.Errorf("load word lists: %w", err)
	}
	if a.seq, err = opening.New(a.openers...); err != nil {
		return fmt.Errorf("opening: %w", err)
	}
	return nil
}

func (a *app) setup() play.Setup {
	return play.Setup{
		Backend:       a.cfg.SolverBackend,
		Vocab:         a.lists.Allowed,
		Opening:       a.seq,
		MaxTurns:      a.cfg.MaxTurns,
		SolverTimeout: a.cfg.SolverTimeout,
	}
}

// openStore picks sqlite when a path is configured, memory otherwise.
func (a *app) openStore() (store.Store, error) {
	if a.cfg.DBPath == "" {
		return store.NewMemoryStore(), nil
	}
	return store.OpenSQLite(a.cfg.DBPath)
}
