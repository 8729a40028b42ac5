package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OpenConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "focusroom_open_connections",
		Help: "Number of websocket connections currently open.",
	})

	LiveRooms = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "focusroom_live_rooms",
		Help: "Number of rooms with at least one participant.",
	})

	CommandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "focusroom_commands_total",
		Help: "Inbound socket commands processed, by event type.",
	}, []string{"type"})

	CommandErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "focusroom_command_errors_total",
		Help: "Commands rejected with a private error, by event type.",
	}, []string{"type"})

	BroadcastsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "focusroom_broadcasts_total",
		Help: "Room-wide notifications fanned out to clients.",
	})

	DroppedMessagesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "focusroom_dropped_messages_total",
		Help: "Outbound messages dropped because a client buffer was full.",
	})
)
