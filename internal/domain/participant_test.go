package domain

import (
	"strings"
	"testing"
)

func TestDefaultUsername(t *testing.T) {
	if got := DefaultUsername("a1b2c3d4e5"); got != "User a1b2c3" {
		t.Errorf("expected %q, got %q", "User a1b2c3", got)
	}
	// Short ids are used whole.
	if got := DefaultUsername("ab"); got != "User ab" {
		t.Errorf("expected %q, got %q", "User ab", got)
	}
}

func TestNewUsername(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"plain", "alice", "alice", nil},
		{"trimmed", "  bob  ", "bob", nil},
		{"empty", "", "", ErrEmptyUsername},
		{"whitespace only", "   ", "", ErrEmptyUsername},
		{"max length", strings.Repeat("x", 30), strings.Repeat("x", 30), nil},
		{"too long", strings.Repeat("x", 31), "", ErrUsernameTooLong},
		// The 30-char bound counts characters, not bytes.
		{"multibyte", strings.Repeat("集", 30), strings.Repeat("集", 30), nil},
		{"multibyte too long", strings.Repeat("集", 31), "", ErrUsernameTooLong},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NewUsername(tc.input)
			if err != tc.wantErr {
				t.Fatalf("expected error %v, got %v", tc.wantErr, err)
			}
			if got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
