// Package log configures the process-wide zerolog logger.
package log

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global logger. format is "json" or "console";
// level is parsed with zerolog.ParseLevel and falls back to info.
func Setup(w io.Writer, level, format string) {
	if w == nil {
		w = os.Stderr
	}
	if strings.EqualFold(format, "console") {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	}

	log.Logger = zerolog.New(w).With().Timestamp().Str("service", "showtimes").Logger()
	SetLevel(ParseLevel(level))
}

// ParseLevel parses a level name, returning info for unknown names.
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

func SetLevel(lvl zerolog.Level) {
	zerolog.SetGlobalLevel(lvl)
}

// Logger returns the global logger for structured fields.
func Logger() *zerolog.Logger {
	return &log.Logger
}

func Debug(msg string) {
	log.Debug().Msg(msg)
}

func Warn(msg string) {
	log.Warn().Msg(msg)
}

func Info(msg string) {
	log.Info().Msg(msg)
}

func Error(msg string) {
	log.Error().Msg(msg)
}

func Fatal(msg string) {
	log.Fatal().Msg(msg)
}
