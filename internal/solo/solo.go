// Package solo is the detached fallback: when the auction service is
// unreachable, a client runs the very same transition function locally,
// with synthetic rival bidders standing in for the other managers. Rules
// live in internal/auction; this package is only the local shell.
package solo

import (
	"context"
	"math/rand"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/iplsim/auction-backend/internal/auction"
	"github.com/iplsim/auction-backend/internal/types"
)

type View struct {
	Version int
	State   auction.State
}

// Engine drives one detached room. Commands and both timers are
// serialized through a single goroutine, same as the server-side room.
type Engine struct {
	userTeam string
	inbox    chan auction.Command
	views    chan chan View
	frames   chan types.ServerMessage
	state    auction.State
	version  int

	clock  clockwork.Clock
	rng    *rand.Rand
	store  *Store
	ticker clockwork.Ticker
	dwell  clockwork.Timer

	ctx    context.Context
	cancel context.CancelFunc
}

// botBidChance is the per-tick probability that some rival franchise
// raises by the minimum increment.
const botBidChance = 0.2

// NewEngine restores the room snapshot for code if one exists, otherwise
// seeds a fresh room, then claims userTeam for userName. The rng seeds
// the synthetic bidders; fix it in tests for exact sequences.
func NewEngine(parent context.Context, code, userTeam, userName string, cfg auction.Settings, clock clockwork.Clock, rng *rand.Rand, store *Store) (*Engine, error) {
	st, found, err := store.Load(code)
	if err != nil {
		return nil, err
	}
	if !found {
		st = auction.NewState(code, cfg)
	}

	ctx, cancel := context.WithCancel(parent)
	e := &Engine{
		userTeam: userTeam,
		inbox:    make(chan auction.Command, 64),
		views:    make(chan chan View),
		frames:   make(chan types.ServerMessage, 64),
		state:    st,
		clock:    clock,
		rng:      rng,
		store:    store,
		ctx:      ctx,
		cancel:   cancel,
	}

	// Claim the user's slot up front. A snapshot where someone else holds
	// it is left alone, same as a rejected join.
	if _, next, err := auction.Apply(e.state, auction.Command{
		Type: auction.CmdJoin, FranchiseID: userTeam, Name: userName, At: clock.Now(),
	}); err == nil {
		e.state = next
	}
	if err := e.store.Save(e.state); err != nil {
		cancel()
		return nil, err
	}

	go e.loop()
	return e, nil
}

// Frames delivers the same frame stream a server room would broadcast.
func (e *Engine) Frames() <-chan types.ServerMessage { return e.frames }

// Start requests the LOBBY -> AUCTION transition. The engine sends it on
// behalf of the user's franchise, so a restored room hosted by someone
// else still refuses it.
func (e *Engine) Start() { e.send(auction.Command{Type: auction.CmdStart, FranchiseID: e.userTeam}) }
func (e *Engine) TogglePause() { e.send(auction.Command{Type: auction.CmdTogglePause}) }

func (e *Engine) PlaceBid(franchiseID string, amount int) {
	e.send(auction.Command{Type: auction.CmdBid, FranchiseID: franchiseID, Amount: amount})
}

func (e *Engine) UpdateSettings(minIncrement, timerSeconds *int) {
	e.send(auction.Command{
		Type:         auction.CmdUpdateSettings,
		FranchiseID:  e.userTeam,
		MinIncrement: minIncrement,
		TimerSeconds: timerSeconds,
	})
}

func (e *Engine) Chat(sender, text string) {
	e.send(auction.Command{Type: auction.CmdChat, FranchiseID: e.userTeam, Sender: sender, Text: text})
}

// Snapshot returns the current state without racing the loop.
func (e *Engine) Snapshot() View {
	reply := make(chan View, 1)
	select {
	case e.views <- reply:
		return <-reply
	case <-e.ctx.Done():
		return View{}
	}
}

func (e *Engine) Stop() { e.cancel() }

func (e *Engine) send(cmd auction.Command) {
	select {
	case e.inbox <- cmd:
	case <-e.ctx.Done():
	}
}

func (e *Engine) loop() {
	// A restored snapshot may already be mid-round.
	switch e.state.Status {
	case auction.StatusAuction:
		e.ticker = e.clock.NewTicker(time.Second)
	case auction.StatusRoundEnd:
		e.dwell = e.clock.NewTimer(auction.DwellSeconds * time.Second)
	}

	for {
		select {
		case <-e.ctx.Done():
			e.shutdown()
			return

		case cmd := <-e.inbox:
			cmd.At = e.clock.Now()
			e.apply(cmd)

		case reply := <-e.views:
			reply <- View{Version: e.version, State: e.state}

		case <-e.tickChan():
			e.apply(auction.Command{Type: auction.CmdTick, At: e.clock.Now()})
			e.maybeBotBid()

		case <-e.dwellChan():
			e.dwell = nil
			e.apply(auction.Command{Type: auction.CmdAdvance, At: e.clock.Now()})
		}
	}
}

func (e *Engine) apply(cmd auction.Command) {
	events, next, err := auction.Apply(e.state, cmd)
	if err != nil {
		return // same silent-drop contract as the server path
	}
	e.state = next
	if err := e.store.Save(e.state); err != nil {
		log.Warn().Err(err).Str("room", e.state.RoomID).Msg("snapshot save failed")
	}

	tickOnly := false
	for _, ev := range events {
		switch ev.Type {
		case auction.EvtTick:
			tickOnly = true
			remaining := ev.Remaining
			e.emit(types.ServerMessage{Type: types.FrameTick, Remaining: &remaining})
		case auction.EvtRoundResolved:
			e.stopTicker()
			if e.dwell == nil {
				e.dwell = e.clock.NewTimer(auction.DwellSeconds * time.Second)
			}
		case auction.EvtCompleted:
			e.stopTicker()
		}
	}

	if !tickOnly {
		e.version++
		st := e.state
		e.emit(types.ServerMessage{Type: types.FrameState, Version: e.version, State: &st})
	}

	for _, ev := range events {
		switch ev.Type {
		case auction.EvtSound:
			e.emit(types.ServerMessage{Type: types.FrameSound, Cue: ev.Cue})
		case auction.EvtChat:
			e.emit(types.ServerMessage{Type: types.FrameChat, Message: ev.Message})
		}
	}

	if e.state.Status == auction.StatusAuction && e.ticker == nil {
		e.ticker = e.clock.NewTicker(time.Second)
	}
}

// maybeBotBid lets a rival franchise raise by the minimum increment with
// fixed probability per tick.
func (e *Engine) maybeBotBid() {
	if e.state.Status != auction.StatusAuction || e.state.IsPaused {
		return
	}
	if e.rng.Float64() >= botBidChance {
		return
	}

	amount := auction.RequiredBid(e.state)
	var candidates []string
	for _, f := range auction.Franchises {
		if f.ID == e.userTeam || f.ID == e.state.CurrentBidder {
			continue
		}
		if auction.ValidateBid(e.state, f.ID, amount) == nil {
			candidates = append(candidates, f.ID)
		}
	}
	if len(candidates) == 0 {
		return
	}

	bidder := candidates[e.rng.Intn(len(candidates))]
	e.apply(auction.Command{Type: auction.CmdBid, FranchiseID: bidder, Amount: amount, At: e.clock.Now()})
}

func (e *Engine) emit(frame types.ServerMessage) {
	select {
	case e.frames <- frame:
	default:
		// UI fell behind; the next snapshot supersedes anything dropped.
	}
}

func (e *Engine) tickChan() <-chan time.Time {
	if e.ticker == nil {
		return nil
	}
	return e.ticker.Chan()
}

func (e *Engine) dwellChan() <-chan time.Time {
	if e.dwell == nil {
		return nil
	}
	return e.dwell.Chan()
}

func (e *Engine) stopTicker() {
	if e.ticker != nil {
		e.ticker.Stop()
		e.ticker = nil
	}
}

func (e *Engine) shutdown() {
	e.stopTicker()
	if e.dwell != nil {
		e.dwell.Stop()
		e.dwell = nil
	}
	close(e.frames)
}
