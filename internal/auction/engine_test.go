package auction

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func mustApply(t *testing.T, s State, cmd Command) ([]Event, State) {
	t.Helper()
	events, next, err := Apply(s, cmd)
	if err != nil {
		t.Fatalf("Apply(%s): unexpected error: %v", cmd.Type, err)
	}
	return events, next
}

func wantErr(t *testing.T, s State, cmd Command, want error) {
	t.Helper()
	_, next, err := Apply(s, cmd)
	if !errors.Is(err, want) {
		t.Fatalf("Apply(%s): want %v, got %v", cmd.Type, want, err)
	}
	if next.CurrentBid != s.CurrentBid || next.CurrentBidder != s.CurrentBidder ||
		next.Status != s.Status || len(next.Activity) != len(s.Activity) {
		t.Fatalf("Apply(%s): rejected command changed state", cmd.Type)
	}
}

func hasEvent(events []Event, typ EventType) bool {
	for _, ev := range events {
		if ev.Type == typ {
			return true
		}
	}
	return false
}

func hasCue(events []Event, cue Cue) bool {
	for _, ev := range events {
		if ev.Type == EvtSound && ev.Cue == cue {
			return true
		}
	}
	return false
}

func TestJoinClaimsSlotAndHost(t *testing.T) {
	s := NewStateWithPool("TEST01", testSettings(), testPool())

	_, s = mustApply(t, s, Command{Type: CmdJoin, FranchiseID: "CSK", Name: "alice"})
	if s.HostID != "CSK" {
		t.Fatalf("first join should claim host, got %q", s.HostID)
	}
	if got := s.Teams["CSK"].JoinedBy; got != "alice" {
		t.Fatalf("slot claimant: want alice, got %q", got)
	}

	// re-join with the same name is idempotent
	_, again := mustApply(t, s, Command{Type: CmdJoin, FranchiseID: "CSK", Name: "alice"})
	if again.Teams["CSK"].JoinedBy != "alice" || again.HostID != "CSK" {
		t.Fatalf("re-join changed claim: %+v", again.Teams["CSK"])
	}
	if len(again.Activity) != 0 {
		t.Fatalf("re-join must not add activity, got %d records", len(again.Activity))
	}

	wantErr(t, s, Command{Type: CmdJoin, FranchiseID: "CSK", Name: "bob"}, ErrSlotTaken)
	wantErr(t, s, Command{Type: CmdJoin, FranchiseID: "XYZ", Name: "bob"}, ErrUnknownFranchise)

	_, s = mustApply(t, s, Command{Type: CmdJoin, FranchiseID: "MI", Name: "bob"})
	if s.HostID != "CSK" {
		t.Fatalf("second join must not steal host, got %q", s.HostID)
	}
}

func TestStartIsHostOnly(t *testing.T) {
	s := NewStateWithPool("TEST01", testSettings(), testPool())
	_, s = mustApply(t, s, Command{Type: CmdJoin, FranchiseID: "CSK", Name: "alice"})
	_, s = mustApply(t, s, Command{Type: CmdJoin, FranchiseID: "MI", Name: "bob"})

	wantErr(t, s, Command{Type: CmdStart, FranchiseID: "MI"}, ErrNotHost)

	_, s = mustApply(t, s, Command{Type: CmdStart, FranchiseID: "CSK"})
	if s.Status != StatusAuction {
		t.Fatalf("want AUCTION, got %s", s.Status)
	}
	if s.Timer != s.TimerDuration {
		t.Fatalf("start should arm a full clock, got %d", s.Timer)
	}

	wantErr(t, s, Command{Type: CmdStart, FranchiseID: "CSK"}, ErrBadStatus)
}

func TestAcceptedBidResetsClock(t *testing.T) {
	s := liveState(testPool())

	// run the clock down a bit first
	_, s = mustApply(t, s, Command{Type: CmdTick})
	_, s = mustApply(t, s, Command{Type: CmdTick})
	if s.Timer != 13 {
		t.Fatalf("want timer 13 after two ticks, got %d", s.Timer)
	}

	events, s := mustApply(t, s, Command{Type: CmdBid, FranchiseID: "CSK", Amount: 200, At: time.UnixMilli(1000)})
	if s.CurrentBid != 200 || s.CurrentBidder != "CSK" {
		t.Fatalf("bid not applied: bid=%d bidder=%q", s.CurrentBid, s.CurrentBidder)
	}
	if s.Timer != s.TimerDuration {
		t.Fatalf("accepted bid must fully reset the clock, got %d", s.Timer)
	}
	if !hasCue(events, CueBid) {
		t.Fatalf("want bid cue, got %+v", events)
	}
	if len(s.Activity) != 1 || s.Activity[0].Type != ActivityBid || s.Activity[0].Amount != 200 {
		t.Fatalf("want BID activity first, got %+v", s.Activity)
	}

	// the leader cannot raise its own bid
	wantErr(t, s, Command{Type: CmdBid, FranchiseID: "CSK", Amount: 210}, ErrSelfOutbid)
}

func TestTickWarningCueFiresOnceAtMark(t *testing.T) {
	s := liveState(testPool()) // duration 15 -> mark at 5
	warned := 0
	for s.Timer > 1 {
		events, next := mustApply(t, s, Command{Type: CmdTick})
		if hasCue(events, CueTimer) {
			warned++
			if next.Timer != 5 {
				t.Fatalf("warning cue at remaining=%d, want 5", next.Timer)
			}
		}
		s = next
	}
	if warned != 1 {
		t.Fatalf("want exactly one warning cue, got %d", warned)
	}
}

func TestRoundResolvesUnsold(t *testing.T) {
	s := liveState(testPool())

	var events []Event
	for i := 0; i < s.TimerDuration; i++ {
		events, s = mustApply(t, s, Command{Type: CmdTick})
	}

	if s.Status != StatusRoundEnd {
		t.Fatalf("want ROUND_END, got %s", s.Status)
	}
	if !hasEvent(events, EvtRoundResolved) || !hasCue(events, CueUnsold) {
		t.Fatalf("want resolution with unsold cue, got %+v", events)
	}
	if len(s.UnsoldPlayers) != 1 || s.UnsoldPlayers[0] != 1 {
		t.Fatalf("want player 1 unsold, got %v", s.UnsoldPlayers)
	}
	if s.LastSoldInfo == nil || s.LastSoldInfo.Status != ActivityUnsold {
		t.Fatalf("want UNSOLD outcome, got %+v", s.LastSoldInfo)
	}
	for id, team := range s.Teams {
		if team.Purse != 12000 || len(team.Squad) != 0 {
			t.Fatalf("unsold round must not touch %s: %+v", id, team)
		}
	}
}

func TestRoundResolvesSoldWithExactPurse(t *testing.T) {
	pool := testPool()
	s := NewStateWithPool("TEST01", Settings{StartingPurse: 300, TimerSeconds: 15, MinIncrement: 50}, pool)
	s.Status = StatusAuction
	s.HostID = "CSK"

	_, s = mustApply(t, s, Command{Type: CmdBid, FranchiseID: "CSK", Amount: 300})

	var events []Event
	for s.Status == StatusAuction {
		events, s = mustApply(t, s, Command{Type: CmdTick})
	}

	csk := s.Teams["CSK"]
	if csk.Purse != 0 {
		t.Fatalf("want purse 0 after buying at full purse, got %d", csk.Purse)
	}
	if len(csk.Squad) != 1 || csk.Squad[0].ID != pool[0].ID {
		t.Fatalf("want %s in squad, got %+v", pool[0].Name, csk.Squad)
	}
	if s.LastSoldInfo == nil || s.LastSoldInfo.Status != ActivitySold || s.LastSoldInfo.Amount != 300 {
		t.Fatalf("want SOLD at 300, got %+v", s.LastSoldInfo)
	}
	if !hasCue(events, CueSold) {
		t.Fatalf("want sold cue, got %+v", events)
	}
}

func TestOverseasCountIncrementsOnSale(t *testing.T) {
	s := liveState(testPool())
	s.CurrentPlayerIndex = 1 // Travis Head, overseas
	s.CurrentBid = 150

	_, s = mustApply(t, s, Command{Type: CmdBid, FranchiseID: "MI", Amount: 150})
	for s.Status == StatusAuction {
		_, s = mustApply(t, s, Command{Type: CmdTick})
	}

	if got := s.Teams["MI"].OverseasCount; got != 1 {
		t.Fatalf("want overseas count 1, got %d", got)
	}
}

func TestAdvanceMovesToNextPlayer(t *testing.T) {
	pool := testPool()
	s := liveState(pool)
	for s.Status == StatusAuction {
		_, s = mustApply(t, s, Command{Type: CmdTick})
	}

	_, s = mustApply(t, s, Command{Type: CmdAdvance})
	if s.Status != StatusAuction {
		t.Fatalf("want AUCTION after dwell, got %s", s.Status)
	}
	if s.CurrentPlayerIndex != 1 {
		t.Fatalf("want index 1, got %d", s.CurrentPlayerIndex)
	}
	if s.CurrentBid != pool[1].BasePrice || s.CurrentBidder != "" {
		t.Fatalf("next round not reset: bid=%d bidder=%q", s.CurrentBid, s.CurrentBidder)
	}
	if s.Timer != s.TimerDuration {
		t.Fatalf("next round clock not reset: %d", s.Timer)
	}
	if s.LastSoldInfo != nil {
		t.Fatalf("outcome should clear at round start, got %+v", s.LastSoldInfo)
	}
}

func TestPoolExhaustionReachesResults(t *testing.T) {
	pool := testPool()[:1]
	s := liveState(pool)
	for s.Status == StatusAuction {
		_, s = mustApply(t, s, Command{Type: CmdTick})
	}

	events, s := mustApply(t, s, Command{Type: CmdAdvance})
	if s.Status != StatusResults {
		t.Fatalf("want RESULTS, got %s", s.Status)
	}
	if !hasEvent(events, EvtCompleted) {
		t.Fatalf("want completion event, got %+v", events)
	}

	// RESULTS is terminal
	wantErr(t, s, Command{Type: CmdAdvance}, ErrBadStatus)
	wantErr(t, s, Command{Type: CmdTick}, ErrBadStatus)
	wantErr(t, s, Command{Type: CmdBid, FranchiseID: "MI", Amount: 500}, ErrBadStatus)
}

func TestPauseFreezesClockAndBids(t *testing.T) {
	s := liveState(testPool())
	_, s = mustApply(t, s, Command{Type: CmdTick})
	frozen := s.Timer

	_, s = mustApply(t, s, Command{Type: CmdTogglePause})
	if !s.IsPaused {
		t.Fatalf("want paused")
	}
	wantErr(t, s, Command{Type: CmdTick}, ErrPaused)
	wantErr(t, s, Command{Type: CmdBid, FranchiseID: "MI", Amount: 200}, ErrPaused)

	_, s = mustApply(t, s, Command{Type: CmdTogglePause})
	_, s = mustApply(t, s, Command{Type: CmdTick})
	if s.Timer != frozen-1 {
		t.Fatalf("resume must continue from %d, got %d", frozen, s.Timer+1)
	}
}

func TestUpdateSettingsHostOnly(t *testing.T) {
	s := liveState(testPool())
	inc, dur := 100, 30

	wantErr(t, s, Command{Type: CmdUpdateSettings, FranchiseID: "MI", MinIncrement: &inc}, ErrNotHost)

	_, s = mustApply(t, s, Command{Type: CmdUpdateSettings, FranchiseID: "CSK", MinIncrement: &inc, TimerSeconds: &dur})
	if s.MinIncrement != 100 || s.TimerDuration != 30 {
		t.Fatalf("settings not applied: inc=%d dur=%d", s.MinIncrement, s.TimerDuration)
	}
	if s.Timer != 30 {
		t.Fatalf("new duration should reset the in-progress clock, got %d", s.Timer)
	}
}

func TestChatAppendsAndCaps(t *testing.T) {
	s := NewStateWithPool("TEST01", testSettings(), testPool())

	var events []Event
	for i := 0; i < messageCap+5; i++ {
		events, s = mustApply(t, s, Command{
			Type: CmdChat, FranchiseID: "CSK", Sender: "alice", Text: fmt.Sprintf("msg %d", i),
		})
	}

	if len(s.Messages) != messageCap {
		t.Fatalf("want %d messages, got %d", messageCap, len(s.Messages))
	}
	if got := s.Messages[len(s.Messages)-1].Text; got != fmt.Sprintf("msg %d", messageCap+4) {
		t.Fatalf("newest message lost: %q", got)
	}
	if !hasEvent(events, EvtChat) {
		t.Fatalf("want chat event, got %+v", events)
	}

	wantErr(t, s, Command{Type: CmdChat, FranchiseID: "XYZ", Sender: "x", Text: "hi"}, ErrUnknownFranchise)
}

func TestActivityLogCapped(t *testing.T) {
	s := liveState(testPool())
	bidders := []string{"CSK", "MI"}
	amount := 200
	for i := 0; i < activityCap+10; i++ {
		_, s = mustApply(t, s, Command{Type: CmdBid, FranchiseID: bidders[i%2], Amount: amount})
		amount += s.MinIncrement
	}
	if len(s.Activity) != activityCap {
		t.Fatalf("want %d records, got %d", activityCap, len(s.Activity))
	}
	if s.Activity[0].Amount <= s.Activity[1].Amount {
		t.Fatalf("log must be newest-first: %+v", s.Activity[:2])
	}
}

// TestInvariantsOverFullAuction drives a whole auction and checks the
// global invariants afterwards: purse bounds, squad and overseas caps,
// no double-sold players, monotonic index.
func TestInvariantsOverFullAuction(t *testing.T) {
	pool := Players[:6]
	s := NewStateWithPool("TEST01", Settings{StartingPurse: 500, TimerSeconds: 5, MinIncrement: 50}, pool)
	_, s = mustApply(t, s, Command{Type: CmdJoin, FranchiseID: "CSK", Name: "alice"})
	_, s = mustApply(t, s, Command{Type: CmdStart, FranchiseID: "CSK"})

	bidders := []string{"CSK", "MI", "RCB", "KKR"}
	lastIndex := 0
	for round := 0; s.Status != StatusResults; round++ {
		if s.CurrentPlayerIndex < lastIndex {
			t.Fatalf("player index went backwards: %d -> %d", lastIndex, s.CurrentPlayerIndex)
		}
		lastIndex = s.CurrentPlayerIndex

		// some rounds contested, some silent
		if round%2 == 0 {
			bidder := bidders[round%len(bidders)]
			if _, next, err := Apply(s, Command{Type: CmdBid, FranchiseID: bidder, Amount: RequiredBid(s)}); err == nil {
				s = next
			}
		}
		for s.Status == StatusAuction {
			_, s = mustApply(t, s, Command{Type: CmdTick})
		}
		_, s = mustApply(t, s, Command{Type: CmdAdvance})
	}

	sold := map[int]string{}
	for id, team := range s.Teams {
		if team.Purse < 0 || team.Purse > 500 {
			t.Fatalf("%s purse out of bounds: %d", id, team.Purse)
		}
		if len(team.Squad) > SquadCap {
			t.Fatalf("%s squad over cap: %d", id, len(team.Squad))
		}
		if team.OverseasCount > OverseasCap {
			t.Fatalf("%s overseas over cap: %d", id, team.OverseasCount)
		}
		for _, p := range team.Squad {
			if owner, dup := sold[p.ID]; dup {
				t.Fatalf("player %d sold to both %s and %s", p.ID, owner, id)
			}
			sold[p.ID] = id
		}
	}
	if len(sold)+len(s.UnsoldPlayers) != len(pool) {
		t.Fatalf("players lost: %d sold + %d unsold != %d", len(sold), len(s.UnsoldPlayers), len(pool))
	}
}
