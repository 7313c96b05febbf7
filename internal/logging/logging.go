// Package logging builds the zerolog loggers used by the binaries.
package logging

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/kumarlokesh/prefix-tree/internal/config"
)

// New returns a logger writing to w at the configured level and format.
func New(cfg config.LogConfig, w io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("failed to parse log level: %w", err)
	}

	out := w
	switch cfg.Format {
	case config.FormatJSON:
	case config.FormatConsole, "":
		out = zerolog.ConsoleWriter{Out: w, NoColor: true}
	default:
		return zerolog.Nop(), fmt.Errorf("unknown log format: %q", cfg.Format)
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}
