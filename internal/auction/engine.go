package auction

import (
	"time"

	"github.com/google/uuid"
)

type CommandType string

const (
	CmdJoin           CommandType = "Join"
	CmdStart          CommandType = "Start"
	CmdBid            CommandType = "Bid"
	CmdTogglePause    CommandType = "TogglePause"
	CmdUpdateSettings CommandType = "UpdateSettings"
	CmdChat           CommandType = "Chat"

	// Internally originated: the per-second clock step and the
	// end-of-dwell advance. Clients never send these.
	CmdTick    CommandType = "Tick"
	CmdAdvance CommandType = "Advance"
)

type Command struct {
	Type        CommandType
	FranchiseID string
	Name        string // join: display name
	Amount      int    // bid
	Sender      string // chat
	Text        string // chat

	// settings; nil means leave unchanged
	MinIncrement *int
	TimerSeconds *int

	// At stamps activity and chat records. Shells set it from their
	// clock so the reducer stays deterministic.
	At time.Time
}

type Cue string

const (
	CueBid    Cue = "bid"
	CueSold   Cue = "sold"
	CueUnsold Cue = "unsold"
	CueTimer  Cue = "timer"
)

type EventType string

const (
	EvtSound         EventType = "Sound"
	EvtChat          EventType = "Chat"
	EvtTick          EventType = "Tick"
	EvtRoundResolved EventType = "RoundResolved"
	EvtCompleted     EventType = "Completed"
)

type Event struct {
	Type      EventType
	Cue       Cue
	Message   *Message
	Remaining int
}

// Apply is the single transition function for a room. The server path and
// the detached solo engine both call it, so the rules cannot drift.
// On error the returned state is the input unchanged; shells treat every
// error except ErrSlotTaken as a silent drop.
func Apply(s State, cmd Command) ([]Event, State, error) {
	switch cmd.Type {
	case CmdJoin:
		return applyJoin(s, cmd)
	case CmdStart:
		return applyStart(s, cmd)
	case CmdBid:
		return applyBid(s, cmd)
	case CmdTogglePause:
		ns := s.clone()
		ns.IsPaused = !ns.IsPaused
		return nil, ns, nil
	case CmdUpdateSettings:
		return applySettings(s, cmd)
	case CmdChat:
		return applyChat(s, cmd)
	case CmdTick:
		return applyTick(s, cmd)
	case CmdAdvance:
		return applyAdvance(s)
	default:
		return nil, s, ErrBadStatus
	}
}

func applyJoin(s State, cmd Command) ([]Event, State, error) {
	team, ok := s.Teams[cmd.FranchiseID]
	if !ok {
		return nil, s, ErrUnknownFranchise
	}
	if team.JoinedBy != "" && team.JoinedBy != cmd.Name {
		return nil, s, ErrSlotTaken
	}

	ns := s.clone()
	if ns.HostID == "" {
		ns.HostID = cmd.FranchiseID
	}
	ns.Teams[cmd.FranchiseID].JoinedBy = cmd.Name
	return nil, ns, nil
}

func applyStart(s State, cmd Command) ([]Event, State, error) {
	if s.Status != StatusLobby {
		return nil, s, ErrBadStatus
	}
	if cmd.FranchiseID != s.HostID {
		return nil, s, ErrNotHost
	}

	ns := s.clone()
	ns.Status = StatusAuction
	ns.Timer = ns.TimerDuration
	return nil, ns, nil
}

func applyBid(s State, cmd Command) ([]Event, State, error) {
	if err := ValidateBid(s, cmd.FranchiseID, cmd.Amount); err != nil {
		return nil, s, err
	}

	ns := s.clone()
	ns.CurrentBid = cmd.Amount
	ns.CurrentBidder = cmd.FranchiseID
	ns.Timer = ns.TimerDuration // full reset, not an extension
	ns.pushActivity(ActivityRecord{
		ID:        uuid.NewString(),
		Type:      ActivityBid,
		TeamID:    cmd.FranchiseID,
		Amount:    cmd.Amount,
		Timestamp: cmd.At.UnixMilli(),
	})
	return []Event{{Type: EvtSound, Cue: CueBid}}, ns, nil
}

func applySettings(s State, cmd Command) ([]Event, State, error) {
	if cmd.FranchiseID != s.HostID {
		return nil, s, ErrNotHost
	}
	if cmd.MinIncrement == nil && cmd.TimerSeconds == nil {
		return nil, s, ErrBadStatus
	}

	ns := s.clone()
	if cmd.MinIncrement != nil && *cmd.MinIncrement > 0 {
		ns.MinIncrement = *cmd.MinIncrement
	}
	if cmd.TimerSeconds != nil && *cmd.TimerSeconds > 0 {
		ns.TimerDuration = *cmd.TimerSeconds
		// applies to an in-progress clock as well
		if ns.Status == StatusLobby || ns.Status == StatusAuction {
			ns.Timer = *cmd.TimerSeconds
		}
	}
	return nil, ns, nil
}

func applyChat(s State, cmd Command) ([]Event, State, error) {
	if _, ok := s.Teams[cmd.FranchiseID]; !ok {
		return nil, s, ErrUnknownFranchise
	}
	if cmd.Text == "" {
		return nil, s, ErrBadStatus
	}

	ns := s.clone()
	msg := Message{
		ID:        uuid.NewString(),
		Sender:    cmd.Sender,
		TeamID:    cmd.FranchiseID,
		Text:      cmd.Text,
		Timestamp: cmd.At.UnixMilli(),
	}
	ns.pushMessage(msg)
	return []Event{{Type: EvtChat, Message: &msg}}, ns, nil
}

func applyTick(s State, cmd Command) ([]Event, State, error) {
	if s.Status != StatusAuction {
		return nil, s, ErrBadStatus
	}
	if s.IsPaused {
		return nil, s, ErrPaused
	}

	ns := s.clone()
	ns.Timer--
	if ns.Timer > 0 {
		events := []Event{{Type: EvtTick, Remaining: ns.Timer}}
		if ns.Timer == warningMark(ns.TimerDuration) {
			events = append(events, Event{Type: EvtSound, Cue: CueTimer})
		}
		return events, ns, nil
	}

	ns.Timer = 0
	return resolveRound(ns, cmd)
}

// resolveRound settles the current player once the clock hits zero.
// Callers guarantee status is AUCTION and ns is already a private copy.
func resolveRound(ns State, cmd Command) ([]Event, State, error) {
	player, ok := ns.CurrentPlayer()
	if !ok {
		return nil, ns, ErrCompleted
	}

	events := []Event{{Type: EvtRoundResolved}}
	if ns.CurrentBidder != "" {
		winner := ns.Teams[ns.CurrentBidder]
		winner.Purse -= ns.CurrentBid
		winner.Squad = append(winner.Squad, player)
		if player.Overseas {
			winner.OverseasCount++
		}

		ns.LastSoldInfo = &RoundOutcome{
			PlayerName: player.Name,
			TeamID:     ns.CurrentBidder,
			Amount:     ns.CurrentBid,
			Status:     ActivitySold,
		}
		ns.pushActivity(ActivityRecord{
			ID:         uuid.NewString(),
			Type:       ActivitySold,
			TeamID:     ns.CurrentBidder,
			PlayerName: player.Name,
			Amount:     ns.CurrentBid,
			Timestamp:  cmd.At.UnixMilli(),
		})
		events = append(events, Event{Type: EvtSound, Cue: CueSold})
	} else {
		ns.UnsoldPlayers = append(ns.UnsoldPlayers, player.ID)
		ns.LastSoldInfo = &RoundOutcome{
			PlayerName: player.Name,
			Status:     ActivityUnsold,
		}
		ns.pushActivity(ActivityRecord{
			ID:         uuid.NewString(),
			Type:       ActivityUnsold,
			PlayerName: player.Name,
			Timestamp:  cmd.At.UnixMilli(),
		})
		events = append(events, Event{Type: EvtSound, Cue: CueUnsold})
	}

	ns.Status = StatusRoundEnd
	return events, ns, nil
}

// applyAdvance moves to the next player after the dwell period.
func applyAdvance(s State) ([]Event, State, error) {
	if s.Status != StatusRoundEnd {
		return nil, s, ErrBadStatus
	}

	ns := s.clone()
	ns.LastSoldInfo = nil
	ns.CurrentPlayerIndex++

	if ns.CurrentPlayerIndex >= len(ns.Pool) {
		ns.Status = StatusResults
		return []Event{{Type: EvtCompleted}}, ns, nil
	}

	ns.Status = StatusAuction
	ns.CurrentBid = ns.Pool[ns.CurrentPlayerIndex].BasePrice
	ns.CurrentBidder = ""
	ns.Timer = ns.TimerDuration
	return nil, ns, nil
}
