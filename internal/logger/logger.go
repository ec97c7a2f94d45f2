package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var root *zerolog.Logger

// ParseLevel maps "debug", "info", "warn" and "error" to a zerolog level.
// Anything else is treated as info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Init sets up the process logger. When file is not empty the output goes
// to both stderr and the file.
func Init(level string, file string) error {
	var output io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}

	if file != "" {
		f, err := os.OpenFile(file, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		output = zerolog.MultiLevelWriter(output, f)
	}

	l := zerolog.New(output).Level(ParseLevel(level)).With().Timestamp().Logger()
	root = &l
	return nil
}

// Get returns the process logger, or a discarding one before Init.
func Get() zerolog.Logger {
	if root == nil {
		return zerolog.Nop()
	}
	return *root
}
