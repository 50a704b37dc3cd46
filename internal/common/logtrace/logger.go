// Package logtrace provides logging utilities for relgate.
// It integrates with zerolog for structured logging on stderr so the
// gate report on stdout stays machine-readable.
package logtrace

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger initializes the global logger with Unix timestamp format.
// Configures zerolog to output to stderr with timestamps. The level
// defaults to warn so a normal gate run prints only the report; set
// RELGATE_LOG_LEVEL to a zerolog level name to see evaluation traces.
func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

	level := zerolog.WarnLevel
	if s := os.Getenv("RELGATE_LOG_LEVEL"); s != "" {
		if parsed, err := zerolog.ParseLevel(s); err == nil {
			level = parsed
		}
	}
	zerolog.SetGlobalLevel(level)
}
