package messaging

// Routing keys for room lifecycle events.
const (
	EventTimerStarted = "timer.started"
	EventTimerEnded   = "timer.ended"
	EventRoomClosed   = "room.closed"
)
