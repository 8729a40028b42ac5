package rooms

import (
	"log"
	"net/http"

	"github.com/soleverett/focusroom/internal/infrastructure/json"
	"github.com/soleverett/focusroom/internal/infrastructure/ws"
)

type Handler struct {
	hub      *ws.Hub
	registry *ws.Registry
}

func NewHandler(hub *ws.Hub, registry *ws.Registry) *Handler {
	return &Handler{
		hub:      hub,
		registry: registry,
	}
}

// ListRoomsHandler returns every room with at least one participant,
// busiest first. This is the side-channel "available rooms" view; it never
// touches the socket protocol.
func (h *Handler) ListRoomsHandler(w http.ResponseWriter, r *http.Request) {
	resp := availableRoomsResponse{
		Rooms: h.registry.AvailableRooms(),
	}
	if resp.Rooms == nil {
		resp.Rooms = []ws.RoomInfo{}
	}
	json.Write(w, http.StatusOK, resp)
}

// ConnectHandler upgrades the request to a websocket and hands the
// connection to the hub. Rooms are joined through the socket protocol
// afterwards, not through the URL.
func (h *Handler) ConnectHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := h.hub.Upgrade(w, r)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	client := h.hub.NewClient(conn)
	h.hub.Register() <- client

	go client.WritePump()
	go client.ReadPump(h.hub)
}
