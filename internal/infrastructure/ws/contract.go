package ws

import (
	"github.com/soleverett/focusroom/internal/domain"
)

type Message struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Payload structs
type SyncPayload struct {
	Room  string        `json:"room"`
	Timer *domain.Timer `json:"timer"`
	// Participants is only populated on the private join snapshot.
	Participants int `json:"participants,omitempty"`
}

type ParticipantsPayload struct {
	Room         string               `json:"room"`
	Participants []domain.Participant `json:"participants"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

func NewSync(room string, timer *domain.Timer) *Message {
	return &Message{
		Type: EventSync,
		Data: SyncPayload{
			Room:  room,
			Timer: timer,
		},
	}
}

func NewJoinSync(room string, timer *domain.Timer, participants int) *Message {
	return &Message{
		Type: EventSync,
		Data: SyncPayload{
			Room:         room,
			Timer:        timer,
			Participants: participants,
		},
	}
}

func NewParticipants(room string, participants []domain.Participant) *Message {
	return &Message{
		Type: EventParticipants,
		Data: ParticipantsPayload{
			Room:         room,
			Participants: participants,
		},
	}
}

func NewError(message string) *Message {
	return &Message{
		Type: EventError,
		Data: ErrorPayload{
			Message: message,
		},
	}
}
