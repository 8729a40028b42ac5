package domain

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

const MaxUsernameLength = 30

var (
	ErrEmptyUsername   = errors.New("username must not be empty")
	ErrUsernameTooLong = fmt.Errorf("username must be no more than %d characters", MaxUsernameLength)
)

// Participant is one live connection's entry in a room roster.
type Participant struct {
	ConnID   string `json:"connId"`
	Username string `json:"username"`
}

// DefaultUsername derives the fallback display name shown until a
// participant renames themselves.
func DefaultUsername(connID string) string {
	short := connID
	if len(short) > 6 {
		short = short[:6]
	}
	return "User " + short
}

// NewUsername normalizes an explicitly chosen display name. Unlike the
// join path, which silently falls back to DefaultUsername, an explicit
// rename is strict: empty-after-trim and over-length names are rejected.
func NewUsername(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", ErrEmptyUsername
	}
	if utf8.RuneCountInString(name) > MaxUsernameLength {
		return "", ErrUsernameTooLong
	}
	return name, nil
}
