// Package config reads process settings from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/robalobadob/wordle-solver/internal/words"
)

// Config holds every setting the commands share. CLI flags override it.
type Config struct {
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	MaxTurns      int           `env:"MAX_TURNS" envDefault:"6"`
	SolverBackend string        `env:"SOLVER_BACKEND" envDefault:"bitindex"`
	SolverTimeout time.Duration `env:"SOLVER_TIMEOUT" envDefault:"10s"`

	APIURL      string        `env:"API_URL" envDefault:"https://wordle.votee.dev:8000"`
	APIRPS      float64       `env:"API_RPS" envDefault:"2"`
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"10s"`

	AnswersFile string `env:"WORDS_ANSWERS_FILE"`
	AllowedFile string `env:"WORDS_ALLOWED_FILE"`
	DailySalt   string `env:"DAILY_SALT" envDefault:"wordle-solver"`

	// DBPath selects the sqlite result store; empty keeps results in memory.
	DBPath string `env:"DB_PATH"`
	Port   string `env:"PORT" envDefault:"5175"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses and validates the environment.
func Load() (Config, error) {
	var c Config
	if err := ParseEnv(&c); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects settings no command can run with.
func (c Config) Validate() error {
	var errs []error
	if c.MaxTurns < 1 {
		errs = append(errs, fmt.Errorf("MAX_TURNS must be positive, got %d", c.MaxTurns))
	}
	if c.SolverTimeout < 0 {
		errs = append(errs, fmt.Errorf("SOLVER_TIMEOUT must not be negative, got %s", c.SolverTimeout))
	}
	if c.APIRPS < 0 {
		errs = append(errs, fmt.Errorf("API_RPS must not be negative, got %v", c.APIRPS))
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.LogFormat))
	}
	return errors.Join(errs...)
}

// WordSource names the word files to load, if any.
func (c Config) WordSource() words.Source {
	return words.Source{AnswersFile: c.AnswersFile, AllowedFile: c.AllowedFile}
}
