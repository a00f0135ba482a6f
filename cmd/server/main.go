package main

import (
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/madukisp/oris-vagas/internal/server"
	"github.com/madukisp/oris-vagas/pkg/config"
)

func main() {
	_ = godotenv.Load()

	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load("")
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Str("log_level", cfg.LogLevel).Msg("config")
	}
	log = log.Level(level)

	h, err := server.NewHandlerWithOptions(server.HandlerOptions{
		Config: cfg,
		Log:    log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("handler")
	}

	log.Info().Str("addr", cfg.HTTPAddr).Msg("listening")
	if err := http.ListenAndServe(cfg.HTTPAddr, h); err != nil {
		log.Fatal().Err(err).Msg("serve")
	}
}
