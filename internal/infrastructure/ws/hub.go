package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/soleverett/focusroom/internal/domain"
	"github.com/soleverett/focusroom/internal/infrastructure/logging"
	"github.com/soleverett/focusroom/internal/infrastructure/metrics"
)

// Publisher mirrors room lifecycle onto an external bus. Implementations
// must tolerate broker hiccups; the hub treats publish errors as log-only.
type Publisher interface {
	PublishTimerStarted(ctx context.Context, room string, timer domain.Timer) error
	PublishTimerEnded(ctx context.Context, room string) error
	PublishRoomClosed(ctx context.Context, room string) error
}

type command struct {
	client *Client
	env    *Envelope
}

type Options struct {
	ClientBuffer   int
	CommandBuffer  int
	AllowedOrigins []string
	Publisher      Publisher
}

// Hub serializes all state mutation onto a single goroutine: register,
// unregister and every room command flow through its channels, so two
// commands for the same room can never interleave mid-transition.
type Hub struct {
	registry     *Registry
	clock        clockwork.Clock
	logger       logging.Logger
	publisher    Publisher
	upgrader     websocket.Upgrader
	clientBuffer int

	register   chan *Client
	unregister chan *Client
	commands   chan *command
	clients    map[string]*Client
}

func NewHub(registry *Registry, clock clockwork.Clock, logger logging.Logger, opts Options) *Hub {
	if opts.ClientBuffer <= 0 {
		opts.ClientBuffer = 64
	}
	if opts.CommandBuffer <= 0 {
		opts.CommandBuffer = 256
	}

	return &Hub{
		registry:     registry,
		clock:        clock,
		logger:       logger,
		publisher:    opts.Publisher,
		upgrader:     newUpgrader(opts.AllowedOrigins),
		clientBuffer: opts.ClientBuffer,
		register:     make(chan *Client),
		unregister:   make(chan *Client),
		commands:     make(chan *command, opts.CommandBuffer),
		clients:      make(map[string]*Client),
	}
}

func newUpgrader(allowedOrigins []string) websocket.Upgrader {
	allowAll := len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, "*")

	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if allowAll {
				return true
			}
			origin := r.Header.Get("Origin")
			// Non-browser clients send no Origin header.
			return origin == "" || slices.Contains(allowedOrigins, origin)
		},
	}
}

func (h *Hub) Upgrade(w http.ResponseWriter, r *http.Request) (*websocket.Conn, error) {
	return h.upgrader.Upgrade(w, r, nil)
}

// NewClient wraps an upgraded connection with a fresh connection id.
func (h *Hub) NewClient(conn *websocket.Conn) *Client {
	return NewClient(conn, uuid.NewString(), h.clientBuffer)
}

func (h *Hub) Register() chan<- *Client {
	return h.register
}

func (h *Hub) Unregister() chan<- *Client {
	return h.unregister
}

func (h *Hub) Run() {
	for {
		select {
		case cl := <-h.register:
			h.clients[cl.ID] = cl
			metrics.OpenConnections.Inc()
			h.logger.Info(logging.WebSocket, logging.Connect, "client connected",
				map[logging.ExtraKey]any{logging.ConnID: cl.ID})

		case cl := <-h.unregister:
			if _, ok := h.clients[cl.ID]; !ok {
				continue
			}
			delete(h.clients, cl.ID)
			for roomID := range cl.rooms {
				h.leaveRoom(cl, roomID)
			}
			close(cl.Message)
			metrics.OpenConnections.Dec()
			metrics.LiveRooms.Set(float64(h.registry.Len()))
			h.logger.Info(logging.WebSocket, logging.Disconnect, "client disconnected",
				map[logging.ExtraKey]any{logging.ConnID: cl.ID})

		case cmd := <-h.commands:
			h.handleCommand(cmd)
		}
	}
}

func (h *Hub) handleCommand(cmd *command) {
	metrics.CommandsTotal.WithLabelValues(cmd.env.Type).Inc()

	var err error
	switch cmd.env.Type {
	case EventJoin:
		err = h.handleJoin(cmd.client, cmd.env.Data)
	case EventRename:
		err = h.handleRename(cmd.client, cmd.env.Data)
	case EventStart:
		err = h.handleStart(cmd.env.Data)
	case EventPause:
		err = h.handlePause(cmd.env.Data)
	case EventRestart:
		err = h.handleRestart(cmd.env.Data)
	case EventEnd:
		err = h.handleEnd(cmd.env.Data)
	default:
		err = fmt.Errorf("unknown event: %s", cmd.env.Type)
	}

	if err != nil {
		metrics.CommandErrorsTotal.WithLabelValues(cmd.env.Type).Inc()
		h.sendTo(cmd.client, NewError(err.Error()))
		h.logger.Warn(logging.Validation, logging.Command, "command rejected",
			map[logging.ExtraKey]any{
				logging.ConnID:       cmd.client.ID,
				logging.EventType:    cmd.env.Type,
				logging.ErrorMessage: err.Error(),
			})
	}
}

func (h *Hub) handleJoin(c *Client, data json.RawMessage) error {
	var p RoomPayload
	if err := decode(data, &p); err != nil {
		return err
	}

	h.registry.Join(p.Room, c.ID)
	c.rooms[p.Room] = struct{}{}
	metrics.LiveRooms.Set(float64(h.registry.Len()))

	// Private snapshot first, so the joiner never waits for someone else's
	// action to learn the current state.
	h.sendTo(c, NewJoinSync(p.Room, h.registry.GetTimer(p.Room), h.registry.Count(p.Room)))
	h.broadcastParticipants(p.Room)

	h.logger.Info(logging.Roster, logging.Command, "participant joined",
		map[logging.ExtraKey]any{logging.ConnID: c.ID, logging.RoomID: p.Room})
	return nil
}

func (h *Hub) handleRename(c *Client, data json.RawMessage) error {
	var p RenamePayload
	if err := decode(data, &p); err != nil {
		return err
	}

	if err := h.registry.Rename(p.Room, c.ID, p.Username); err != nil {
		return err
	}

	h.broadcastParticipants(p.Room)
	return nil
}

func (h *Hub) handleStart(data json.RawMessage) error {
	var p StartPayload
	if err := decode(data, &p); err != nil {
		return err
	}

	timer, err := domain.NewTimer(h.clock.Now(), p.DurationMs, p.Mode)
	if err != nil {
		return err
	}

	// Replaces any existing timer; start doubles as "switch mode".
	h.registry.SetTimer(p.Room, timer)
	h.broadcastToRoom(p.Room, NewSync(p.Room, timer))
	h.publishTimerStarted(p.Room, *timer)

	h.logger.Info(logging.Timer, logging.Command, "timer started",
		map[logging.ExtraKey]any{logging.RoomID: p.Room})
	return nil
}

func (h *Hub) handlePause(data json.RawMessage) error {
	var p RoomPayload
	if err := decode(data, &p); err != nil {
		return err
	}

	timer := h.registry.GetTimer(p.Room)
	if timer == nil {
		return domain.ErrNoTimer
	}

	toggled := timer.TogglePause(h.clock.Now())
	h.registry.SetTimer(p.Room, toggled)
	h.broadcastToRoom(p.Room, NewSync(p.Room, toggled))
	return nil
}

func (h *Hub) handleRestart(data json.RawMessage) error {
	var p RoomPayload
	if err := decode(data, &p); err != nil {
		return err
	}

	timer := h.registry.GetTimer(p.Room)
	if timer == nil {
		return domain.ErrNoTimer
	}

	restarted := timer.Restarted(h.clock.Now())
	h.registry.SetTimer(p.Room, restarted)
	h.broadcastToRoom(p.Room, NewSync(p.Room, restarted))
	return nil
}

func (h *Hub) handleEnd(data json.RawMessage) error {
	var p RoomPayload
	if err := decode(data, &p); err != nil {
		return err
	}

	if h.registry.GetTimer(p.Room) == nil {
		return domain.ErrNoTimer
	}

	h.registry.ClearTimer(p.Room)
	h.broadcastToRoom(p.Room, NewSync(p.Room, nil))
	h.publishTimerEnded(p.Room)

	h.logger.Info(logging.Timer, logging.Command, "timer ended",
		map[logging.ExtraKey]any{logging.RoomID: p.Room})
	return nil
}

func (h *Hub) leaveRoom(c *Client, roomID string) {
	removed, closed := h.registry.Leave(roomID, c.ID)
	delete(c.rooms, roomID)
	if !removed {
		return
	}

	if closed {
		h.publishRoomClosed(roomID)
		return
	}
	h.broadcastParticipants(roomID)
}

func (h *Hub) broadcastParticipants(roomID string) {
	h.broadcastToRoom(roomID, NewParticipants(roomID, h.registry.Participants(roomID)))
}

func (h *Hub) broadcastToRoom(roomID string, msg *Message) {
	for _, p := range h.registry.Participants(roomID) {
		cl, ok := h.clients[p.ConnID]
		if !ok {
			continue
		}
		h.sendTo(cl, msg)
	}
	metrics.BroadcastsTotal.Inc()
}

func (h *Hub) sendTo(c *Client, msg *Message) {
	select {
	case c.Message <- msg:
	default:
		// Client is too slow – drop the message
		metrics.DroppedMessagesTotal.Inc()
		h.logger.Warn(logging.WebSocket, logging.Broadcast, "client buffer full, dropping message",
			map[logging.ExtraKey]any{logging.ConnID: c.ID})
	}
}

func (h *Hub) publishTimerStarted(room string, timer domain.Timer) {
	if h.publisher == nil {
		return
	}
	if err := h.publisher.PublishTimerStarted(context.Background(), room, timer); err != nil {
		h.logger.Error(logging.RabbitMQ, logging.Publish, "failed to publish timer started",
			map[logging.ExtraKey]any{logging.RoomID: room, logging.ErrorMessage: err.Error()})
	}
}

func (h *Hub) publishTimerEnded(room string) {
	if h.publisher == nil {
		return
	}
	if err := h.publisher.PublishTimerEnded(context.Background(), room); err != nil {
		h.logger.Error(logging.RabbitMQ, logging.Publish, "failed to publish timer ended",
			map[logging.ExtraKey]any{logging.RoomID: room, logging.ErrorMessage: err.Error()})
	}
}

func (h *Hub) publishRoomClosed(room string) {
	if h.publisher == nil {
		return
	}
	if err := h.publisher.PublishRoomClosed(context.Background(), room); err != nil {
		h.logger.Error(logging.RabbitMQ, logging.Publish, "failed to publish room closed",
			map[logging.ExtraKey]any{logging.RoomID: room, logging.ErrorMessage: err.Error()})
	}
}
