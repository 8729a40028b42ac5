package ws

// Inbound commands.
const (
	EventJoin    = "join"
	EventRename  = "rename"
	EventStart   = "start"
	EventPause   = "pause"
	EventRestart = "restart"
	EventEnd     = "end"
)

// Outbound notifications.
const (
	EventSync         = "sync"
	EventParticipants = "participants"
	EventError        = "error"
)
