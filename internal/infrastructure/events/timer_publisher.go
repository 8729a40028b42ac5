package events

import (
	"context"
	"encoding/json"

	"github.com/soleverett/focusroom/internal/domain"
	"github.com/soleverett/focusroom/internal/infrastructure/messaging"
)

type timerEventData struct {
	Room  string        `json:"room"`
	Timer *domain.Timer `json:"timer,omitempty"`
}

// TimerPublisher mirrors room lifecycle onto the message bus so other
// services (stats, notifications) can react without joining the socket
// protocol.
type TimerPublisher struct {
	rabbitmq *messaging.RabbitMQ
}

func NewTimerPublisher(rabbitmq *messaging.RabbitMQ) *TimerPublisher {
	return &TimerPublisher{
		rabbitmq: rabbitmq,
	}
}

func (p *TimerPublisher) PublishTimerStarted(ctx context.Context, room string, timer domain.Timer) error {
	body, err := json.Marshal(timerEventData{Room: room, Timer: &timer})
	if err != nil {
		return err
	}

	return p.rabbitmq.PublishMessage(ctx, messaging.EventTimerStarted, body)
}

func (p *TimerPublisher) PublishTimerEnded(ctx context.Context, room string) error {
	body, err := json.Marshal(timerEventData{Room: room})
	if err != nil {
		return err
	}

	return p.rabbitmq.PublishMessage(ctx, messaging.EventTimerEnded, body)
}

func (p *TimerPublisher) PublishRoomClosed(ctx context.Context, room string) error {
	body, err := json.Marshal(timerEventData{Room: room})
	if err != nil {
		return err
	}

	return p.rabbitmq.PublishMessage(ctx, messaging.EventRoomClosed, body)
}
