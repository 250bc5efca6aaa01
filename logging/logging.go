// Package logging builds the zerolog.Logger the pipeline and its host use,
// grounded on spikey979-junior_goling_v2's internal/logger package: a
// package-level Init(Options) that picks console-pretty vs. JSON output and
// a level, trimmed here to the console/JSON writer choice (this host has no
// log-shipping backend to forward to).
package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Options configures the process-wide logger.
type Options struct {
	// Level is a zerolog level name (debug, info, warn, error). Empty
	// defaults to info.
	Level string

	// Pretty selects zerolog's human-readable ConsoleWriter over
	// newline-delimited JSON, matching how a developer runs the CLI
	// interactively versus how a service scrapes its logs.
	Pretty bool
}

// New builds a zerolog.Logger writing to stderr per opts, so stdout stays
// free for the classification report a caller may pipe elsewhere.
func New(opts Options) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	lvl, err := zerolog.ParseLevel(opts.Level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	if opts.Pretty {
		cw := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
		return zerolog.New(cw).Level(lvl).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
}
