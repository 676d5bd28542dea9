package auction

type Status string

const (
	StatusLobby    Status = "LOBBY"
	StatusAuction  Status = "AUCTION"
	StatusRoundEnd Status = "ROUND_END"
	StatusResults  Status = "RESULTS"
)

// Mode is a display label only; it never changes the rules.
type Mode string

const (
	ModeMega Mode = "MEGA"
	ModeMock Mode = "MOCK"
)

const (
	SquadCap    = 25
	OverseasCap = 8

	// DwellSeconds is how long a resolved round stays on screen before
	// the next player comes up.
	DwellSeconds = 3

	activityCap = 50
	messageCap  = 100
)

type ActivityType string

const (
	ActivityBid    ActivityType = "BID"
	ActivitySold   ActivityType = "SOLD"
	ActivityUnsold ActivityType = "UNSOLD"
)

type ActivityRecord struct {
	ID         string       `json:"id"`
	Type       ActivityType `json:"type"`
	TeamID     string       `json:"teamId,omitempty"`
	PlayerName string       `json:"playerName,omitempty"`
	Amount     int          `json:"amount,omitempty"`
	Timestamp  int64        `json:"timestamp"`
}

type Message struct {
	ID        string `json:"id"`
	Sender    string `json:"sender"`
	TeamID    string `json:"teamId"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

// RoundOutcome is the banner shown between rounds. TeamID is empty for
// an unsold player.
type RoundOutcome struct {
	PlayerName string       `json:"playerName"`
	TeamID     string       `json:"teamId"`
	Amount     int          `json:"amount"`
	Status     ActivityType `json:"status"` // SOLD | UNSOLD
}

// FranchiseState is one franchise's live position in a room. Mutated only
// by round resolution and join.
type FranchiseState struct {
	ID            string   `json:"id"`
	Purse         int      `json:"purse"`
	Squad         []Player `json:"squad"`
	OverseasCount int      `json:"overseasCount"`
	JoinedBy      string   `json:"joinedBy,omitempty"`
}

type Settings struct {
	StartingPurse int
	TimerSeconds  int
	MinIncrement  int
}

func DefaultSettings() Settings {
	return Settings{StartingPurse: 12000, TimerSeconds: 15, MinIncrement: 25}
}

// State is the aggregate root for one room. It is the wire snapshot, the
// solo-mode persistence record, and the value threaded through Apply.
type State struct {
	RoomID             string                     `json:"roomId"`
	HostID             string                     `json:"hostId"`
	Status             Status                     `json:"status"`
	Mode               Mode                       `json:"mode"`
	CurrentPlayerIndex int                        `json:"currentPlayerIndex"`
	CurrentBid         int                        `json:"currentBid"`
	CurrentBidder      string                     `json:"currentBidder"` // empty = no leader
	Timer              int                        `json:"timer"`
	TimerDuration      int                        `json:"timerDuration"`
	MinIncrement       int                        `json:"minIncrement"`
	IsPaused           bool                       `json:"isPaused"`
	Activity           []ActivityRecord           `json:"activity"`
	Messages           []Message                  `json:"messages"`
	Teams              map[string]*FranchiseState `json:"teams"`
	UnsoldPlayers      []int                      `json:"unsoldPlayers"`
	LastSoldInfo       *RoundOutcome              `json:"lastSoldInfo"`

	// Pool is the ordered auction pool. It is static config, not part of
	// the snapshot; restore paths must re-attach it.
	Pool []Player `json:"-"`
}

func NewState(roomID string, cfg Settings) State {
	return NewStateWithPool(roomID, cfg, Players)
}

func NewStateWithPool(roomID string, cfg Settings, pool []Player) State {
	teams := make(map[string]*FranchiseState, len(Franchises))
	for _, f := range Franchises {
		teams[f.ID] = &FranchiseState{ID: f.ID, Purse: cfg.StartingPurse, Squad: []Player{}}
	}

	s := State{
		RoomID:        roomID,
		Status:        StatusLobby,
		Mode:          ModeMega,
		Timer:         cfg.TimerSeconds,
		TimerDuration: cfg.TimerSeconds,
		MinIncrement:  cfg.MinIncrement,
		Activity:      []ActivityRecord{},
		Messages:      []Message{},
		Teams:         teams,
		UnsoldPlayers: []int{},
		Pool:          pool,
	}
	if len(pool) > 0 {
		s.CurrentBid = pool[0].BasePrice
	}
	return s
}

// CurrentPlayer returns the player on the block, or false once the pool
// is exhausted.
func (s State) CurrentPlayer() (Player, bool) {
	if s.CurrentPlayerIndex < 0 || s.CurrentPlayerIndex >= len(s.Pool) {
		return Player{}, false
	}
	return s.Pool[s.CurrentPlayerIndex], true
}

// clone deep-copies everything Apply may touch so the reducer never
// aliases its input.
func (s State) clone() State {
	ns := s

	ns.Teams = make(map[string]*FranchiseState, len(s.Teams))
	for id, fs := range s.Teams {
		cp := *fs
		cp.Squad = append([]Player(nil), fs.Squad...)
		ns.Teams[id] = &cp
	}

	ns.Activity = append([]ActivityRecord(nil), s.Activity...)
	ns.Messages = append([]Message(nil), s.Messages...)
	ns.UnsoldPlayers = append([]int(nil), s.UnsoldPlayers...)
	if s.LastSoldInfo != nil {
		cp := *s.LastSoldInfo
		ns.LastSoldInfo = &cp
	}
	return ns
}

func (s *State) pushActivity(rec ActivityRecord) {
	s.Activity = append([]ActivityRecord{rec}, s.Activity...)
	if len(s.Activity) > activityCap {
		s.Activity = s.Activity[:activityCap]
	}
}

func (s *State) pushMessage(msg Message) {
	s.Messages = append(s.Messages, msg)
	if len(s.Messages) > messageCap {
		s.Messages = s.Messages[len(s.Messages)-messageCap:]
	}
}

// warningMark is the remaining-seconds value at which the countdown cue
// plays. Longer rounds warn a beat earlier.
func warningMark(duration int) int {
	if duration > 20 {
		return 6
	}
	return 5
}
