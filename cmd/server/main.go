package main

import (
	"context"
	"net/http"
	"os"

	"github.com/jonboulle/clockwork"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/iplsim/auction-backend/internal/config"
	"github.com/iplsim/auction-backend/internal/httpapi"
	"github.com/iplsim/auction-backend/internal/hub"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := config.Load()

	ctx := context.Background()
	h := hub.NewHub(ctx, clockwork.NewRealClock())

	handler := httpapi.SetupRoutes(h, cfg.Auction)
	handler = cors.AllowAll().Handler(handler)

	log.Info().Str("addr", cfg.Addr).Msg("auction server listening")
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
