package config

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetupLogging configures the global logger. Development gets a console
// writer at debug; production gets JSON at info. level overrides both.
func SetupLogging(env, level string) {
	zerolog.SetGlobalLevel(parseLevel(env, level))
	log.Logger = zerolog.New(output(env)).With().Timestamp().Logger()
}

func parseLevel(env, level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	}
	if env == EnvDevelopment {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}

func output(env string) io.Writer {
	if env == EnvDevelopment {
		return zerolog.ConsoleWriter{Out: os.Stderr}
	}
	return os.Stdout
}
