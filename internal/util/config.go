package util

import (
	"fmt"
	"iter"
	"os"
)

// Config holds runtime settings and flags. It is built once from the
// command line and environment and not mutated afterwards.
type Config struct {
	Query       string
	Path        string
	IgnoreCase  bool
	DSN         string // sqlite path for search history
	Theme       string
	Interactive bool
}

// FromEnv returns a Config seeded from the environment. IGNORE_CASE
// enables case folding by presence, not value.
func FromEnv() Config {
	cfg := Config{Theme: os.Getenv("LINEGREP_THEME")}
	if _, ok := os.LookupEnv("IGNORE_CASE"); ok {
		cfg.IgnoreCase = true
	}
	cfg.DSN = os.Getenv("LINEGREP_DSN")
	if cfg.DSN == "" {
		cfg.DSN = os.Getenv("DATABASE_URL")
	}
	return cfg
}

// FromArgs builds a Config by consuming the argument sequence: the first
// token is the query, the second the file path. The program name must not
// be part of the sequence. Environment values are overlaid first, so flag
// handling in the caller can still win.
func FromArgs(args iter.Seq[string]) (Config, error) {
	next, stop := iter.Pull(args)
	defer stop()

	cfg := FromEnv()

	query, ok := next()
	if !ok {
		return Config{}, fmt.Errorf("didn't get a query string")
	}
	path, ok := next()
	if !ok {
		return Config{}, fmt.Errorf("didn't get a file path")
	}
	cfg.Query = query
	cfg.Path = path
	return cfg, nil
}
