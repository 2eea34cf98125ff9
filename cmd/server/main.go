package main

import (
	"errors"
	"os"

	"github.com/rs/zerolog/log"

	"io-link/internal/app/server"
	"io-link/internal/config"
)

func main() {
	// The environment is read directly because config loading may fail.
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = os.Getenv("NODE_ENV")
	}
	config.SetupLogging(env, os.Getenv("LOG_LEVEL"))

	cfg, err := config.Load()
	if err != nil {
		var cerr *config.ConfigError
		if errors.As(err, &cerr) {
			for _, issue := range cerr.Issues {
				log.Error().Str("issue", issue).Msg("invalid config")
			}
		} else {
			log.Error().Err(err).Msg("load config")
		}
		os.Exit(1)
	}
	config.SetupLogging(cfg.Environment, cfg.LogLevel)

	if err := server.Run(cfg); err != nil {
		log.Fatal().Err(err).Msg("server crashed")
	}
}
