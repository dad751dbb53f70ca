package shared

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/rs/zerolog"

	"github.com/lox/fairplay/internal/audit"
)

// SetupLogger configures the diagnostics logger. With a file it logs there;
// otherwise it logs to stderr in debug mode and is silent in normal play so
// the game output stays readable. The returned func closes the file.
func SetupLogger(level, file string, debug bool) (*log.Logger, func() error, error) {
	if debug {
		level = "debug"
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var (
		w       io.Writer = io.Discard
		closeFn           = func() error { return nil }
	)
	switch {
	case file != "":
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w, closeFn = f, f.Close
	case debug:
		w = os.Stderr
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "fairplay",
	})
	return logger, closeFn, nil
}

// SetupAudit opens the JSON audit trail at path, or returns a nil Recorder
// (which discards events) when path is empty.
func SetupAudit(path string) (*audit.Recorder, error) {
	if path == "" {
		return nil, nil
	}
	zerolog.TimeFieldFormat = time.RFC3339Nano
	return audit.Open(path)
}
