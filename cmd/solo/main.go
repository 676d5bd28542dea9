// Command solo runs the detached auction engine in a terminal: the same
// rules as the server, with synthetic rival bidders, for when no
// authoritative service is reachable.
package main

import (
	"bufio"
	"context"
	"flag"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/iplsim/auction-backend/internal/config"
	"github.com/iplsim/auction-backend/internal/solo"
	"github.com/iplsim/auction-backend/internal/types"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	code := flag.String("code", "SOLO01", "room code (snapshot key)")
	team := flag.String("team", "CSK", "franchise to manage")
	name := flag.String("name", "manager", "display name")
	flag.Parse()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	engine, err := solo.NewEngine(ctx, *code, *team, *name, cfg.Auction,
		clockwork.NewRealClock(), rng, solo.NewStore(cfg.SoloDataDir))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start detached engine")
	}
	defer engine.Stop()

	go func() {
		for frame := range engine.Frames() {
			switch frame.Type {
			case types.FrameState:
				st := frame.State
				log.Info().
					Str("status", string(st.Status)).
					Int("player", st.CurrentPlayerIndex).
					Int("bid", st.CurrentBid).
					Str("bidder", st.CurrentBidder).
					Msg("state")
			case types.FrameTick:
				log.Info().Int("remaining", *frame.Remaining).Msg("tick")
			case types.FrameSound:
				log.Info().Str("cue", string(frame.Cue)).Msg("cue")
			case types.FrameChat:
				log.Info().Str("from", frame.Message.Sender).Str("text", frame.Message.Text).Msg("chat")
			}
		}
	}()

	log.Info().Str("room", *code).Str("team", *team).
		Msg("detached mode: start | bid <amount> | pause | chat <text> | quit")

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "start":
			engine.Start()
		case "bid":
			if len(fields) != 2 {
				log.Warn().Msg("usage: bid <amount>")
				continue
			}
			amount, err := strconv.Atoi(fields[1])
			if err != nil {
				log.Warn().Str("amount", fields[1]).Msg("not a number")
				continue
			}
			engine.PlaceBid(*team, amount)
		case "pause":
			engine.TogglePause()
		case "chat":
			engine.Chat(*name, strings.Join(fields[1:], " "))
		case "quit":
			return
		default:
			log.Warn().Str("cmd", fields[0]).Msg("unknown command")
		}
	}
}
