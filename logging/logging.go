package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Options configures the session logger
type Options struct {
	// Level is one of trace, debug, info, warn, error; empty is info
	Level string
	// File receives log output; empty discards unless Out is set
	File string
	// Console selects human-readable output instead of JSON
	Console bool
	// Session tags every entry; empty generates a random id
	Session string
	// Out overrides File
	Out io.Writer
}

// ParseLevel maps a level name to zerolog, case-insensitive
func ParseLevel(s string) (zerolog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return zerolog.TraceLevel, nil
	case "DEBUG":
		return zerolog.DebugLevel, nil
	case "INFO", "":
		return zerolog.InfoLevel, nil
	case "WARN":
		return zerolog.WarnLevel, nil
	case "ERROR":
		return zerolog.ErrorLevel, nil
	case "DISABLED", "OFF":
		return zerolog.Disabled, nil
	}
	return zerolog.NoLevel, fmt.Errorf("unknown log level %q", s)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New builds the logger; the closer releases the log file, if any
// The terminal belongs to the sandbox, so nothing is ever written to stdout
func New(opts Options) (zerolog.Logger, io.Closer, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}

	out := opts.Out
	var closer io.Closer = nopCloser{}
	if out == nil {
		if opts.File == "" {
			return zerolog.Nop(), closer, nil
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return zerolog.Nop(), closer, fmt.Errorf("failed to open log file: %w", err)
		}
		out, closer = f, f
	}

	if opts.Console {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		}
	}

	session := opts.Session
	if session == "" {
		session = uuid.NewString()
	}

	logger := zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("session", session).
		Logger()

	return logger, closer, nil
}
