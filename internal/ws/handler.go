package ws

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/rs/zerolog/log"

	"github.com/iplsim/auction-backend/internal/auction"
	"github.com/iplsim/auction-backend/internal/hub"
	"github.com/iplsim/auction-backend/internal/room"
	"github.com/iplsim/auction-backend/internal/types"
)

func Handler(h *hub.Hub, cfg auction.Settings) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if !validCode(code) {
			http.Error(w, "missing or malformed code", http.StatusBadRequest)
			return
		}

		// A join to an unknown code brings the room into existence.
		reply := make(chan *room.Room, 1)
		h.Inbox() <- hub.EnsureRoom{Code: code, State: auction.NewState(code, cfg), Reply: reply}
		rm := <-reply
		if rm == nil {
			http.Error(w, "room unavailable", http.StatusInternalServerError)
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true, // CORS is enforced by the outer middleware
		})
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		out := make(chan types.ServerMessage, 16)
		clientID := randID(6)

		rm.Inbox() <- room.Join{ClientID: clientID, Outbox: out}
		defer func() { rm.Inbox() <- room.Leave{ClientID: clientID} }()

		// Writer goroutine
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for frame := range out {
				payload, err := json.Marshal(frame)
				if err != nil {
					continue
				}
				ctx, cancel := context.WithTimeout(writeCtx, 3*time.Second)
				_ = conn.Write(ctx, websocket.MessageText, payload)
				cancel()
			}
		}()

		// Reader loop. Intents are fire-and-forget; rejections surface
		// only as the absence of a state change.
		for {
			_, data, err := conn.Read(r.Context())
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					return
				}
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				_ = conn.Write(r.Context(), websocket.MessageText,
					[]byte(`{"type":"error","error":"bad json"}`))
				continue
			}

			cmd, ok := types.ToCommand(cm)
			if !ok {
				log.Debug().Str("room", code).Str("type", cm.Type).Msg("unknown intent")
				continue
			}

			rm.Inbox() <- room.FromClient{ClientID: clientID, Cmd: cmd}
		}
	}
}

// validCode keeps malformed room codes from ever reaching a room actor.
func validCode(code string) bool {
	if len(code) < 4 || len(code) > 8 {
		return false
	}
	for _, c := range code {
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}

func randID(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}
