// Package notify is the sink for user-facing review notifications.
package notify

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Notifier receives review-blocking errors and type-change warnings.
type Notifier interface {
	Error(msg string)
	Warning(msg string)
}

// NewLogger creates the structured logger the CLI runs with.
func NewLogger() zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(output).With().Timestamp().Logger()
}

// Log is a Notifier backed by a zerolog logger.
type Log struct {
	log zerolog.Logger
}

// NewLog creates a logger-backed Notifier.
func NewLog(log zerolog.Logger) *Log {
	return &Log{log: log}
}

func (l *Log) Error(msg string) { l.log.Error().Msg(msg) }

func (l *Log) Warning(msg string) { l.log.Warn().Msg(msg) }

// Recorder collects notifications; used in tests.
type Recorder struct {
	Errors   []string
	Warnings []string
}

func (r *Recorder) Error(msg string) { r.Errors = append(r.Errors, msg) }

func (r *Recorder) Warning(msg string) { r.Warnings = append(r.Warnings, msg) }
