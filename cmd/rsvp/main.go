// Package main is an interactive terminal front end for the rsvp-api wizard.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/linesmerrill/rsvp-api/client"
	"github.com/linesmerrill/rsvp-api/logging"
)

// Config holds the terminal front end configuration
type Config struct {
	Server  string        `env:"RSVP_SERVER" envDefault:"http://localhost:3000"`
	Timeout time.Duration `env:"RSVP_TIMEOUT" envDefault:"15s"`
	Verbose bool          `env:"RSVP_VERBOSE"`
}

// ParseConfig loads environment defaults and then lets flags override them
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Server, "server", cfg.Server, "base URL of the rsvp-api")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "timeout for each request")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "log requests to stderr")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if cfg.Server == "" {
		return Config{}, errors.New("server URL is required")
	}
	return cfg, nil
}

func main() {
	cfg, err := ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse flags: %v\n", err)
		os.Exit(2)
	}
	logger := logging.New(os.Stderr, cfg.Verbose)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend := client.New(cfg.Server, client.WithLogger(logger))
	t := NewTerminal(os.Stdin, os.Stdout, cfg.Timeout)
	if err := t.Run(ctx, backend); err != nil && !errors.Is(err, io.EOF) {
		logger.Errorw("rsvp wizard stopped", "error", err)
		os.Exit(1)
	}
}
