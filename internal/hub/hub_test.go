package hub

import (
	"context"
	"testing"
	"time"

	"github.com/DoyleJ11/innings-scorer/internal/engine"
	"github.com/DoyleJ11/innings-scorer/internal/lobby"
)

func TestHub_Create_Get_SamePointer(t *testing.T) {
	ctx := context.Background()
	h := NewHub(ctx, nil)
	reply := make(chan *lobby.Lobby, 1)

	state := engine.NewState(engine.DefaultLineup)
	h.Inbox() <- CreateLobby{Code: "ZED123", State: state, Reply: reply}
	lb1 := <-reply

	h.Inbox() <- GetLobby{Code: "ZED123", Reply: reply}
	lb2 := <-reply

	if lb1 == nil || lb2 == nil || lb1 != lb2 {
		t.Fatalf("expected same lobby pointer")
	}
	if lb3 := h.Lookup(ctx, "ZED123"); lb3 != lb1 {
		t.Fatalf("Lookup: expected same lobby pointer")
	}
}

func TestHub_Ensure_KeepsExistingInnings(t *testing.T) {
	ctx := context.Background()
	h := NewHub(ctx, nil)
	reply := make(chan *lobby.Lobby, 1)

	h.Inbox() <- EnsureLobby{Code: "ABC", State: engine.NewState(engine.Lineup{A: "Kohli", B: "Gill"}), Reply: reply}
	lb1 := <-reply
	h.Inbox() <- EnsureLobby{Code: "ABC", State: engine.NewState(engine.DefaultLineup), Reply: reply}
	lb2 := <-reply

	if lb1 != lb2 {
		t.Fatalf("expected EnsureLobby to return the existing lobby")
	}
	view, err := lb2.View(ctx)
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if view.State.Batters[engine.SlotA].Name != "Kohli" {
		t.Fatalf("expected original openers, got %+v", view.State.Batters)
	}
}

func TestHub_Remove_ShutsLobbyDown(t *testing.T) {
	ctx := context.Background()
	h := NewHub(ctx, nil)
	reply := make(chan *lobby.Lobby, 1)

	h.Inbox() <- CreateLobby{Code: "GONE", State: engine.NewState(engine.DefaultLineup), Reply: reply}
	lb := <-reply

	h.Inbox() <- RemoveLobby{Code: "GONE"}

	select {
	case <-lb.Done():
	case <-time.After(500 * time.Millisecond):
		t.Fatalf("removed lobby did not stop")
	}
	if got := h.Lookup(ctx, "GONE"); got != nil {
		t.Fatalf("expected nil after removal")
	}
}

func TestHub_Shutdown_StopsLobbies(t *testing.T) {
	ctx := context.Background()
	h := NewHub(ctx, nil)
	reply := make(chan *lobby.Lobby, 1)

	h.Inbox() <- CreateLobby{Code: "ONE", State: engine.NewState(engine.DefaultLineup), Reply: reply}
	lb := <-reply

	count := make(chan int, 1)
	h.Inbox() <- CountLobbies{Reply: count}
	if n := <-count; n != 1 {
		t.Fatalf("want 1 lobby, got %d", n)
	}

	h.Inbox() <- ShutdownHub{}

	for _, done := range []<-chan struct{}{h.Done(), lb.Done()} {
		select {
		case <-done:
		case <-time.After(500 * time.Millisecond):
			t.Fatalf("hub shutdown did not stop everything")
		}
	}
	if got := h.Lookup(ctx, "ONE"); got != nil {
		t.Fatalf("expected nil lookup on a stopped hub")
	}
}

func TestHub_Remove_StoppedLobbyWithFullInbox(t *testing.T) {
	ctx := context.Background()
	h := NewHub(ctx, nil)
	reply := make(chan *lobby.Lobby, 1)

	h.Inbox() <- CreateLobby{Code: "DEAD", State: engine.NewState(engine.DefaultLineup), Reply: reply}
	lb := <-reply

	lb.Inbox() <- lobby.Shutdown{}
	select {
	case <-lb.Done():
	case <-time.After(500 * time.Millisecond):
		t.Fatalf("lobby did not stop")
	}
	// Nobody drains the inbox any more; fill it up.
	for full := false; !full; {
		select {
		case lb.Inbox() <- lobby.GetState{Reply: make(chan lobby.View, 1)}:
		default:
			full = true
		}
	}

	h.Inbox() <- RemoveLobby{Code: "DEAD"}

	count := make(chan int, 1)
	h.Inbox() <- CountLobbies{Reply: count}
	select {
	case n := <-count:
		if n != 0 {
			t.Fatalf("want 0 lobbies, got %d", n)
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatalf("hub stalled removing a stopped lobby")
	}
}
