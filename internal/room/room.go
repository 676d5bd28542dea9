package room

import (
	"context"
	"errors"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/iplsim/auction-backend/internal/auction"
	"github.com/iplsim/auction-backend/internal/types"
)

type Msg interface{ isRoomMsg() }

// FromClient carries a client intent. ClientID lets the room route an
// explicit error frame (SlotTaken) back to just the sender.
type FromClient struct {
	ClientID string
	Cmd      auction.Command
}

func (FromClient) isRoomMsg() {}

type Join struct {
	ClientID string
	Outbox   chan types.ServerMessage // where this client receives frames
}

func (Join) isRoomMsg() {}

type Leave struct{ ClientID string }

func (Leave) isRoomMsg() {}

type Shutdown struct{}

func (Shutdown) isRoomMsg() {}

type GetState struct {
	Reply chan View
}

func (GetState) isRoomMsg() {}

type View struct {
	Version    int
	NumClients int
	State      auction.State
}

// Room owns one auction's authoritative state. All intents and both
// internal timers are serialized through a single goroutine, so state is
// never touched concurrently.
type Room struct {
	code    string
	inbox   chan Msg
	state   auction.State
	version int
	clients map[string]chan types.ServerMessage

	clock  clockwork.Clock
	ticker clockwork.Ticker
	dwell  clockwork.Timer

	ctx    context.Context
	cancel context.CancelFunc
}

func NewRoom(parent context.Context, code string, initial auction.State, clock clockwork.Clock) *Room {
	ctx, cancel := context.WithCancel(parent)

	r := &Room{
		code:    code,
		inbox:   make(chan Msg, 64),
		state:   initial,
		clients: make(map[string]chan types.ServerMessage),
		clock:   clock,
		ctx:     ctx,
		cancel:  cancel,
	}

	go r.loop()
	return r
}

// Inbox exposes the message channel to the WS layer and tests.
func (r *Room) Inbox() chan<- Msg { return r.inbox }

func (r *Room) loop() {
	// Rooms normally begin in LOBBY, but tests may seed one mid-round.
	switch r.state.Status {
	case auction.StatusAuction:
		r.ticker = r.clock.NewTicker(time.Second)
	case auction.StatusRoundEnd:
		r.armDwell()
	}

	for {
		select {
		case <-r.ctx.Done():
			r.shutdown()
			return

		case m := <-r.inbox:
			if r.handle(m) {
				return
			}

		case <-r.tickChan():
			// Intents already in flight when the tick lands apply
			// first, so a bid racing the zero-check wins.
			if r.drainIntents() {
				return
			}
			r.apply("", auction.Command{Type: auction.CmdTick, At: r.clock.Now()})

		case <-r.dwellChan():
			r.dwell = nil
			r.apply("", auction.Command{Type: auction.CmdAdvance, At: r.clock.Now()})
		}
	}
}

// handle processes one message; true means the loop must exit.
func (r *Room) handle(m Msg) bool {
	switch msg := m.(type) {
	case Join:
		r.clients[msg.ClientID] = msg.Outbox
		msg.Outbox <- r.snapshotFrame()

	case Leave:
		// The franchise slot stays claimed; only the delivery channel
		// goes away.
		delete(r.clients, msg.ClientID)

	case FromClient:
		msg.Cmd.At = r.clock.Now()
		r.apply(msg.ClientID, msg.Cmd)

	case GetState:
		// test-only: reflect internal state without data races
		msg.Reply <- View{Version: r.version, NumClients: len(r.clients), State: r.state}

	case Shutdown:
		r.shutdown()
		return true
	}
	return false
}

// drainIntents empties the inbox before an internal tick is applied.
func (r *Room) drainIntents() bool {
	for {
		select {
		case m := <-r.inbox:
			if r.handle(m) {
				return true
			}
		default:
			return false
		}
	}
}

func (r *Room) apply(clientID string, cmd auction.Command) {
	events, next, err := auction.Apply(r.state, cmd)
	if err != nil {
		if errors.Is(err, auction.ErrSlotTaken) && clientID != "" {
			if out, ok := r.clients[clientID]; ok {
				r.send(clientID, out, types.ServerMessage{Type: types.FrameError, Error: err.Error()})
			}
		}
		// Every other rejection is silent: no state change, no broadcast.
		return
	}
	r.state = next

	tickOnly := false
	for _, ev := range events {
		switch ev.Type {
		case auction.EvtTick:
			tickOnly = true
			remaining := ev.Remaining
			r.broadcast(types.ServerMessage{Type: types.FrameTick, Remaining: &remaining})
		case auction.EvtRoundResolved:
			r.stopTicker()
			r.armDwell()
		case auction.EvtCompleted:
			r.stopTicker()
			log.Info().Str("room", r.code).Msg("auction complete")
		}
	}

	if !tickOnly {
		r.version++
		r.broadcast(r.snapshotFrame())
	}

	// Side-channel frames follow the snapshot they belong to.
	for _, ev := range events {
		switch ev.Type {
		case auction.EvtSound:
			r.broadcast(types.ServerMessage{Type: types.FrameSound, Cue: ev.Cue})
		case auction.EvtChat:
			r.broadcast(types.ServerMessage{Type: types.FrameChat, Message: ev.Message})
		}
	}

	if r.state.Status == auction.StatusAuction && r.ticker == nil {
		r.ticker = r.clock.NewTicker(time.Second)
	}
}

func (r *Room) snapshotFrame() types.ServerMessage {
	st := r.state
	return types.ServerMessage{Type: types.FrameState, Version: r.version, State: &st}
}

func (r *Room) tickChan() <-chan time.Time {
	if r.ticker == nil {
		return nil
	}
	return r.ticker.Chan()
}

func (r *Room) dwellChan() <-chan time.Time {
	if r.dwell == nil {
		return nil
	}
	return r.dwell.Chan()
}

func (r *Room) stopTicker() {
	if r.ticker != nil {
		r.ticker.Stop()
		r.ticker = nil
	}
}

func (r *Room) armDwell() {
	if r.dwell == nil {
		r.dwell = r.clock.NewTimer(auction.DwellSeconds * time.Second)
	}
}

func (r *Room) shutdown() {
	r.stopTicker()
	if r.dwell != nil {
		r.dwell.Stop()
		r.dwell = nil
	}
	for id, ch := range r.clients {
		close(ch)
		delete(r.clients, id)
	}
	r.cancel()
}

func (r *Room) broadcast(frame types.ServerMessage) {
	for id, ch := range r.clients {
		r.send(id, ch, frame)
	}
}

func (r *Room) send(id string, ch chan types.ServerMessage, frame types.ServerMessage) {
	select {
	case ch <- frame:
		// ok
	default:
		// Client is slow/full - drop them.
		log.Debug().Str("room", r.code).Str("client", id).Msg("dropping slow client")
		close(ch)
		delete(r.clients, id)
	}
}
