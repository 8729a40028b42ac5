package ws

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/soleverett/focusroom/internal/domain"
)

func TestJoinCreatesRoomWithDefaultName(t *testing.T) {
	r := NewRegistry()

	r.Join("r1", "conn-a")

	participants := r.Participants("r1")
	if len(participants) != 1 {
		t.Fatalf("expected 1 participant, got %d", len(participants))
	}
	if participants[0].Username != domain.DefaultUsername("conn-a") {
		t.Errorf("expected default username, got %q", participants[0].Username)
	}

	// Re-joining is idempotent and keeps a chosen name.
	if err := r.Rename("r1", "conn-a", "alice"); err != nil {
		t.Fatalf("unexpected rename error: %v", err)
	}
	r.Join("r1", "conn-a")
	if got := r.Participants("r1")[0].Username; got != "alice" {
		t.Errorf("re-join must not reset the name, got %q", got)
	}
	if r.Count("r1") != 1 {
		t.Errorf("expected count 1 after re-join, got %d", r.Count("r1"))
	}
}

func TestRename(t *testing.T) {
	r := NewRegistry()
	r.Join("r1", "conn-a")

	if err := r.Rename("r1", "conn-a", "  "); err != domain.ErrEmptyUsername {
		t.Errorf("expected ErrEmptyUsername, got %v", err)
	}
	if got := r.Participants("r1")[0].Username; got != domain.DefaultUsername("conn-a") {
		t.Errorf("roster must be unchanged after rejected rename, got %q", got)
	}

	if err := r.Rename("nope", "conn-a", "alice"); err != ErrRoomNotFound {
		t.Errorf("expected ErrRoomNotFound, got %v", err)
	}
	if err := r.Rename("r1", "conn-b", "alice"); err != ErrParticipantNotFound {
		t.Errorf("expected ErrParticipantNotFound, got %v", err)
	}
}

func TestLeaveEvictsEmptyRoom(t *testing.T) {
	fc := clockwork.NewFakeClock()
	r := NewRegistry()

	r.Join("r1", "conn-a")
	r.Join("r1", "conn-b")

	timer, _ := domain.NewTimer(fc.Now(), 1000, domain.ModeFocus)
	r.SetTimer("r1", timer)

	removed, closed := r.Leave("r1", "conn-a")
	if !removed || closed {
		t.Fatalf("expected removed=true closed=false, got %v/%v", removed, closed)
	}

	removed, closed = r.Leave("r1", "conn-b")
	if !removed || !closed {
		t.Fatalf("expected removed=true closed=true, got %v/%v", removed, closed)
	}
	if r.Len() != 0 {
		t.Fatalf("expected registry empty after last leave, got %d rooms", r.Len())
	}

	// A later join recreates the room fresh, with no timer.
	r.Join("r1", "conn-c")
	if r.GetTimer("r1") != nil {
		t.Error("recreated room must not inherit the old timer")
	}

	// Leaving twice, or leaving a room never joined, is a no-op.
	if removed, _ := r.Leave("r1", "conn-b"); removed {
		t.Error("expected removed=false for unknown participant")
	}
	if removed, _ := r.Leave("ghost", "conn-c"); removed {
		t.Error("expected removed=false for unknown room")
	}
}

func TestSetTimerReplaces(t *testing.T) {
	fc := clockwork.NewFakeClock()
	r := NewRegistry()
	r.Join("r1", "conn-a")

	first, _ := domain.NewTimer(fc.Now(), 1000, domain.ModeFocus)
	r.SetTimer("r1", first)

	fc.Advance(100 * time.Millisecond)
	second, _ := domain.NewTimer(fc.Now(), 2000, domain.ModeBreak)
	r.SetTimer("r1", second)

	got := r.GetTimer("r1")
	if got.DurationMs != 2000 || got.Mode != domain.ModeBreak {
		t.Errorf("expected the second timer to win, got %d/%s", got.DurationMs, got.Mode)
	}
}

func TestClearTimerPrunesParticipantlessRoom(t *testing.T) {
	fc := clockwork.NewFakeClock()
	r := NewRegistry()

	timer, _ := domain.NewTimer(fc.Now(), 1000, domain.ModeFocus)
	r.SetTimer("lonely", timer)
	if r.Len() != 1 {
		t.Fatalf("expected 1 room, got %d", r.Len())
	}

	r.ClearTimer("lonely")
	if r.Len() != 0 {
		t.Errorf("room with no timer and no participants must be evicted, got %d rooms", r.Len())
	}
}

func TestAvailableRoomsSortedByOccupancy(t *testing.T) {
	r := NewRegistry()

	r.Join("quiet", "c1")
	r.Join("busy", "c2")
	r.Join("busy", "c3")
	r.Join("busy", "c4")
	r.Join("mid", "c5")
	r.Join("mid", "c6")

	rooms := r.AvailableRooms()
	if len(rooms) != 3 {
		t.Fatalf("expected 3 rooms, got %d", len(rooms))
	}

	wantOrder := []string{"busy", "mid", "quiet"}
	wantCounts := []int{3, 2, 1}
	for i, info := range rooms {
		if info.RoomID != wantOrder[i] || info.ParticipantCount != wantCounts[i] {
			t.Errorf("position %d: expected %s/%d, got %s/%d",
				i, wantOrder[i], wantCounts[i], info.RoomID, info.ParticipantCount)
		}
	}
}
