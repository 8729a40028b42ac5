package domain

import (
	"errors"
	"time"
)

var (
	ErrNoTimer         = errors.New("no timer running")
	ErrInvalidDuration = errors.New("duration must be positive")
	ErrInvalidMode     = errors.New("invalid timer mode")
)

type TimerMode string

const (
	ModeFocus TimerMode = "focus"
	ModeBreak TimerMode = "break"
)

func (m TimerMode) Valid() bool {
	return m == ModeFocus || m == ModeBreak
}

type TimerStatus string

const (
	StatusIdle    TimerStatus = "idle"
	StatusRunning TimerStatus = "running"
	StatusPaused  TimerStatus = "paused"
	StatusExpired TimerStatus = "expired"
)

// Timer is the authoritative countdown record for a room. All instants are
// epoch milliseconds so the struct marshals directly onto the wire. The
// server never ticks a timer; remaining time is derived from Start whenever
// someone asks.
type Timer struct {
	Start      int64     `json:"start"`
	DurationMs int64     `json:"durationMs"`
	Mode       TimerMode `json:"mode"`
	PausedAt   *int64    `json:"pausedAt,omitempty"`
}

func NewTimer(now time.Time, durationMs int64, mode TimerMode) (*Timer, error) {
	if durationMs <= 0 {
		return nil, ErrInvalidDuration
	}
	if !mode.Valid() {
		return nil, ErrInvalidMode
	}
	return &Timer{
		Start:      now.UnixMilli(),
		DurationMs: durationMs,
		Mode:       mode,
	}, nil
}

func (t *Timer) Paused() bool {
	return t.PausedAt != nil
}

// TogglePause returns a copy of the timer, paused if it was running or
// resumed if it was paused. Resuming shifts Start forward by the whole pause
// span so the remaining time after resume equals the remaining time at the
// moment of pause. The receiver is never modified: a stored timer is
// replaced wholesale on every transition, so snapshots already handed out
// keep the state they were broadcast with.
func (t *Timer) TogglePause(now time.Time) *Timer {
	next := *t
	if next.PausedAt != nil {
		next.Start += now.UnixMilli() - *next.PausedAt
		next.PausedAt = nil
		return &next
	}
	pausedAt := now.UnixMilli()
	next.PausedAt = &pausedAt
	return &next
}

// Restarted returns a fresh timer with the same duration and mode, started
// at now. Elapsed and paused time are discarded.
func (t *Timer) Restarted(now time.Time) *Timer {
	return &Timer{
		Start:      now.UnixMilli(),
		DurationMs: t.DurationMs,
		Mode:       t.Mode,
	}
}

// Remaining reports the milliseconds left on the countdown, never negative.
func (t *Timer) Remaining(now time.Time) int64 {
	var elapsed int64
	if t.PausedAt != nil {
		elapsed = *t.PausedAt - t.Start
	} else {
		elapsed = now.UnixMilli() - t.Start
	}

	remaining := t.DurationMs - elapsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Status derives the observable state of a timer at the given instant.
// Expiry is a property each observer computes locally; the stored timer
// stays as-is until an explicit restart, end, or replacement start.
func Status(now time.Time, t *Timer) TimerStatus {
	switch {
	case t == nil:
		return StatusIdle
	case t.PausedAt != nil:
		return StatusPaused
	case t.Remaining(now) <= 0:
		return StatusExpired
	default:
		return StatusRunning
	}
}
