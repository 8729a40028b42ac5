package domain

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

func TestNewTimerValidation(t *testing.T) {
	fc := clockwork.NewFakeClock()

	if _, err := NewTimer(fc.Now(), 0, ModeFocus); err != ErrInvalidDuration {
		t.Fatalf("expected ErrInvalidDuration for zero duration, got %v", err)
	}
	if _, err := NewTimer(fc.Now(), -5, ModeFocus); err != ErrInvalidDuration {
		t.Fatalf("expected ErrInvalidDuration for negative duration, got %v", err)
	}
	if _, err := NewTimer(fc.Now(), 1000, TimerMode("nap")); err != ErrInvalidMode {
		t.Fatalf("expected ErrInvalidMode, got %v", err)
	}

	timer, err := NewTimer(fc.Now(), 1000, ModeBreak)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if timer.Start != fc.Now().UnixMilli() {
		t.Errorf("expected start %d, got %d", fc.Now().UnixMilli(), timer.Start)
	}
	if timer.Paused() {
		t.Error("fresh timer should not be paused")
	}
}

// Pausing for D ms must not cost the countdown anything: remaining
// immediately after resume equals remaining at the moment of pause.
func TestPauseResumeIsLossFree(t *testing.T) {
	fc := clockwork.NewFakeClock()

	timer, err := NewTimer(fc.Now(), 1000, ModeFocus)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	timer = timer.TogglePause(fc.Now()) // pause immediately
	if !timer.Paused() {
		t.Fatal("timer should be paused")
	}

	fc.Advance(400 * time.Millisecond)
	timer = timer.TogglePause(fc.Now()) // resume

	if timer.Paused() {
		t.Fatal("timer should be running after resume")
	}
	if got := timer.Remaining(fc.Now()); got != 1000 {
		t.Errorf("expected 1000ms remaining after resume, got %d", got)
	}
}

func TestTogglePauseLeavesReceiverUntouched(t *testing.T) {
	fc := clockwork.NewFakeClock()

	running, _ := NewTimer(fc.Now(), 1000, ModeFocus)

	paused := running.TogglePause(fc.Now())
	if running.Paused() {
		t.Error("pausing must not modify the original timer")
	}
	if !paused.Paused() {
		t.Error("expected the returned timer to be paused")
	}

	fc.Advance(400 * time.Millisecond)
	resumed := paused.TogglePause(fc.Now())
	if !paused.Paused() {
		t.Error("resuming must not modify the paused timer")
	}
	if resumed.Paused() {
		t.Error("expected the returned timer to be running")
	}
}

func TestPauseFreezesRemaining(t *testing.T) {
	fc := clockwork.NewFakeClock()

	timer, _ := NewTimer(fc.Now(), 1000, ModeFocus)

	fc.Advance(300 * time.Millisecond)
	timer = timer.TogglePause(fc.Now())

	fc.Advance(10 * time.Second)
	if got := timer.Remaining(fc.Now()); got != 700 {
		t.Errorf("expected remaining frozen at 700ms while paused, got %d", got)
	}
}

func TestRestartDiscardsElapsedAndPausedTime(t *testing.T) {
	fc := clockwork.NewFakeClock()

	timer, _ := NewTimer(fc.Now(), 1500, ModeBreak)

	fc.Advance(600 * time.Millisecond)
	timer = timer.TogglePause(fc.Now())
	fc.Advance(5 * time.Second)

	restarted := timer.Restarted(fc.Now())

	if restarted.Paused() {
		t.Error("restarted timer should not be paused")
	}
	if restarted.DurationMs != 1500 || restarted.Mode != ModeBreak {
		t.Errorf("restart must preserve duration and mode, got %d/%s", restarted.DurationMs, restarted.Mode)
	}
	if got := restarted.Remaining(fc.Now()); got != 1500 {
		t.Errorf("expected full duration remaining after restart, got %d", got)
	}
}

func TestRemainingNeverNegative(t *testing.T) {
	fc := clockwork.NewFakeClock()

	timer, _ := NewTimer(fc.Now(), 100, ModeFocus)
	fc.Advance(time.Minute)

	if got := timer.Remaining(fc.Now()); got != 0 {
		t.Errorf("expected 0 remaining on an expired timer, got %d", got)
	}
}

func TestStatus(t *testing.T) {
	fc := clockwork.NewFakeClock()

	if got := Status(fc.Now(), nil); got != StatusIdle {
		t.Errorf("expected idle for nil timer, got %s", got)
	}

	timer, _ := NewTimer(fc.Now(), 1000, ModeFocus)
	if got := Status(fc.Now(), timer); got != StatusRunning {
		t.Errorf("expected running, got %s", got)
	}

	timer = timer.TogglePause(fc.Now())
	if got := Status(fc.Now(), timer); got != StatusPaused {
		t.Errorf("expected paused, got %s", got)
	}
	timer = timer.TogglePause(fc.Now())

	fc.Advance(2 * time.Second)
	if got := Status(fc.Now(), timer); got != StatusExpired {
		t.Errorf("expected expired, got %s", got)
	}
}
