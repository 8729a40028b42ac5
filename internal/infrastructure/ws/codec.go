package ws

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/soleverett/focusroom/internal/domain"
	"github.com/soleverett/focusroom/internal/infrastructure/validate"
)

// Envelope is the wire shape of every message in both directions:
// a named event plus a structured payload.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func DecodeEnvelope(raw []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("malformed message: %w", err)
	}
	if env.Type == "" {
		return nil, errors.New("missing event type")
	}
	return &env, nil
}

var (
	roomField = validate.Field("room", validate.Required())

	usernameField = validate.Field("username",
		validate.LengthBetween(1, domain.MaxUsernameLength))
)

type payload interface {
	Validate() error
}

func decode(data json.RawMessage, dst payload) error {
	if len(data) == 0 {
		return errors.New("missing payload")
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("malformed payload: %w", err)
	}
	return dst.Validate()
}

// RoomPayload covers join, pause, restart and end, which all address a
// room and nothing else.
type RoomPayload struct {
	Room string `json:"room"`
}

func (p *RoomPayload) Validate() error {
	return roomField(p.Room)
}

type RenamePayload struct {
	Room     string `json:"room"`
	Username string `json:"username"`
}

func (p *RenamePayload) Validate() error {
	if err := roomField(p.Room); err != nil {
		return err
	}
	return usernameField(strings.TrimSpace(p.Username))
}

type StartPayload struct {
	Room       string           `json:"room"`
	DurationMs int64            `json:"durationMs"`
	Mode       domain.TimerMode `json:"mode"`
}

func (p *StartPayload) Validate() error {
	if err := roomField(p.Room); err != nil {
		return err
	}
	if p.DurationMs <= 0 {
		return fmt.Errorf("durationMs: %w", domain.ErrInvalidDuration)
	}
	return validate.Field("mode",
		validate.OneOf(string(domain.ModeFocus), string(domain.ModeBreak)))(string(p.Mode))
}
