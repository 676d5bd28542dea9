package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iplsim/auction-backend/internal/auction"
	"github.com/iplsim/auction-backend/internal/hub"
	"github.com/iplsim/auction-backend/internal/ws"
)

func SetupRoutes(h *hub.Hub, cfg auction.Settings) http.Handler {
	r := chi.NewRouter()

	r.Post("/rooms", CreateRoom(h, cfg))
	r.Get("/healthz", Healthz)
	r.Get("/ws", ws.Handler(h, cfg))
	return r
}
