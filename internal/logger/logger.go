// Package logger builds the application logger. The terminal belongs to
// the TUI, so logs go to a file (or nowhere when none is configured).
package logger

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// New returns a logger writing to the given file. An empty path disables
// logging entirely. The returned closer flushes the file on shutdown.
func New(path, level string) (zerolog.Logger, func() error, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	if path == "" {
		return zerolog.Nop(), func() error { return nil }, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Logger{}, nil, errors.Wrap(err, "create log dir")
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Logger{}, nil, errors.Wrap(err, "open log file")
	}

	log := zerolog.New(f).Level(lvl).With().Timestamp().Logger()
	return log, f.Close, nil
}
