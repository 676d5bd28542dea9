package hub

import (
	"context"
	"testing"

	"github.com/jonboulle/clockwork"

	"github.com/iplsim/auction-backend/internal/auction"
	"github.com/iplsim/auction-backend/internal/room"
)

func TestHub_Create_Get_SamePointer(t *testing.T) {
	ctx := context.Background()
	h := NewHub(ctx, clockwork.NewFakeClock())
	reply := make(chan *room.Room, 1)

	state := auction.NewState("ZED123", auction.DefaultSettings())
	h.Inbox() <- CreateRoom{Code: "ZED123", State: state, Reply: reply}
	r1 := <-reply

	h.Inbox() <- GetRoom{Code: "ZED123", Reply: reply}
	r2 := <-reply

	if r1 == nil || r2 == nil || r1 != r2 {
		t.Fatalf("expected same room pointer")
	}
}

func TestHub_EnsureCreatesLazily(t *testing.T) {
	ctx := context.Background()
	h := NewHub(ctx, clockwork.NewFakeClock())
	reply := make(chan *room.Room, 1)

	h.Inbox() <- GetRoom{Code: "NEW001", Reply: reply}
	if r := <-reply; r != nil {
		t.Fatalf("unknown code should return nil, got %v", r)
	}

	h.Inbox() <- EnsureRoom{Code: "NEW001", State: auction.NewState("NEW001", auction.DefaultSettings()), Reply: reply}
	r1 := <-reply
	if r1 == nil {
		t.Fatalf("ensure should create the room")
	}

	// a second ensure reuses the existing room
	h.Inbox() <- EnsureRoom{Code: "NEW001", State: auction.NewState("NEW001", auction.DefaultSettings()), Reply: reply}
	if r2 := <-reply; r2 != r1 {
		t.Fatalf("ensure must not replace an existing room")
	}
}
