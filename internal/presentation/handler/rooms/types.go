package rooms

import "github.com/soleverett/focusroom/internal/infrastructure/ws"

type availableRoomsResponse struct {
	Rooms []ws.RoomInfo `json:"rooms"`
}
