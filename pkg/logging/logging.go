// Package logging configures the global zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// NewWriter returns a writer for the given format: "plain" for console
// output, "json" for raw JSON lines.
func NewWriter(w io.Writer, format string) (io.Writer, error) {
	switch format {
	case "plain", "":
		return zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}, nil
	case "json":
		return w, nil
	default:
		return nil, fmt.Errorf("unsupported log format %q", format)
	}
}

// Setup installs a global logger writing to stderr.
func Setup(level, format string) error {
	return SetupWith(os.Stderr, level, format)
}

// SetupWith installs a global logger writing to w.
func SetupWith(w io.Writer, level, format string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	out, err := NewWriter(w, format)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	return nil
}
