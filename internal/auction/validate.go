package auction

import "errors"

var (
	ErrUnknownFranchise  = errors.New("unknown franchise")
	ErrSlotTaken         = errors.New("franchise already claimed by another manager")
	ErrNotHost           = errors.New("only the host may do that")
	ErrBadStatus         = errors.New("not allowed in current status")
	ErrPaused            = errors.New("auction is paused")
	ErrSelfOutbid        = errors.New("already the highest bidder")
	ErrBidTooLow         = errors.New("bid below required minimum")
	ErrInsufficientPurse = errors.New("insufficient purse")
	ErrSquadFull         = errors.New("squad is full")
	ErrOverseasFull      = errors.New("overseas quota reached")
	ErrCompleted         = errors.New("auction already completed")
)

// RequiredBid is the floor for the next acceptable bid: the base price
// while no one leads, current bid plus the increment once someone does.
func RequiredBid(s State) int {
	if s.CurrentBidder != "" {
		return s.CurrentBid + s.MinIncrement
	}
	return s.CurrentBid
}

// ValidateBid applies the bid rules in order and reports the first
// violation. It never mutates state.
func ValidateBid(s State, franchiseID string, amount int) error {
	team, ok := s.Teams[franchiseID]
	if !ok {
		return ErrUnknownFranchise
	}
	if s.Status != StatusAuction {
		return ErrBadStatus
	}
	if s.IsPaused {
		return ErrPaused
	}
	if s.CurrentBidder == franchiseID {
		return ErrSelfOutbid
	}
	if amount < RequiredBid(s) {
		return ErrBidTooLow
	}
	if team.Purse < amount {
		return ErrInsufficientPurse
	}
	if len(team.Squad) >= SquadCap {
		return ErrSquadFull
	}
	player, ok := s.CurrentPlayer()
	if !ok {
		return ErrCompleted
	}
	if player.Overseas && team.OverseasCount >= OverseasCap {
		return ErrOverseasFull
	}
	return nil
}
