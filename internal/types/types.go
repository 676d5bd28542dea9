// Package types holds the JSON frames exchanged with clients. The same
// frames come out of the server broadcast path and the detached solo
// engine, so a client renders both identically.
package types

import "github.com/iplsim/auction-backend/internal/auction"

// Client -> room intents.
const (
	IntentJoin           = "join"
	IntentStart          = "start"
	IntentBid            = "bid"
	IntentPauseToggle    = "pause-toggle"
	IntentUpdateSettings = "update-settings"
	IntentChat           = "chat"
)

type ClientMessage struct {
	Type         string `json:"type"`
	FranchiseID  string `json:"franchiseId,omitempty"`
	Name         string `json:"name,omitempty"`
	Amount       int    `json:"amount,omitempty"`
	Sender       string `json:"sender,omitempty"`
	Text         string `json:"text,omitempty"`
	MinIncrement *int   `json:"minIncrement,omitempty"`
	TimerSeconds *int   `json:"timerSeconds,omitempty"`
}

// Room -> client frames.
const (
	FrameState = "state-updated"
	FrameTick  = "timer-tick"
	FrameSound = "sound-cue"
	FrameChat  = "chat-message"
	FrameError = "error"
)

type ServerMessage struct {
	Type      string           `json:"type"`
	Version   int              `json:"version,omitempty"`
	State     *auction.State   `json:"state,omitempty"`
	Remaining *int             `json:"remaining,omitempty"`
	Cue       auction.Cue      `json:"cue,omitempty"`
	Message   *auction.Message `json:"message,omitempty"`
	Error     string           `json:"error,omitempty"`
}

// ToCommand maps a client frame onto an engine command. The bool is false
// for frames that are not valid intents.
func ToCommand(m ClientMessage) (auction.Command, bool) {
	switch m.Type {
	case IntentJoin:
		return auction.Command{Type: auction.CmdJoin, FranchiseID: m.FranchiseID, Name: m.Name}, true
	case IntentStart:
		return auction.Command{Type: auction.CmdStart, FranchiseID: m.FranchiseID}, true
	case IntentBid:
		return auction.Command{Type: auction.CmdBid, FranchiseID: m.FranchiseID, Amount: m.Amount}, true
	case IntentPauseToggle:
		return auction.Command{Type: auction.CmdTogglePause}, true
	case IntentUpdateSettings:
		return auction.Command{
			Type:         auction.CmdUpdateSettings,
			FranchiseID:  m.FranchiseID,
			MinIncrement: m.MinIncrement,
			TimerSeconds: m.TimerSeconds,
		}, true
	case IntentChat:
		return auction.Command{Type: auction.CmdChat, FranchiseID: m.FranchiseID, Sender: m.Sender, Text: m.Text}, true
	default:
		return auction.Command{}, false
	}
}
