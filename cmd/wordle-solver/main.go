// cmd/wordle-solver/main.go
//
// Entry point for the solver CLI.
// Commands:
//   - solve [daily|random|word] → play one puzzle, remote API by default
//   - simulate                  → play every answer offline and report metrics
//   - assist                    → suggest guesses for a game played elsewhere
//   - serve                     → HTTP API
//
// Settings come from the environment (and a .env file); flags override them.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		log.Debug().Err(err).Msg("command failed")
		stop()
		os.Exit(1)
	}
}
