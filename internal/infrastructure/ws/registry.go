package ws

import (
	"errors"
	"sort"
	"sync"

	"github.com/soleverett/focusroom/internal/domain"
)

var (
	ErrRoomNotFound        = errors.New("room not found")
	ErrParticipantNotFound = errors.New("not a participant of this room")
)

// Room bundles the single timer and the roster that share a room key.
type Room struct {
	ID           string
	Timer        *domain.Timer
	participants map[string]*domain.Participant
}

type RoomInfo struct {
	RoomID           string `json:"roomId"`
	ParticipantCount int    `json:"participantCount"`
}

// Registry owns every live room. It is mutated from the hub goroutine and
// read concurrently by the HTTP listing endpoint, hence the RWMutex.
// Rooms are created on first use and evicted as soon as their roster
// empties, so the map is bounded by current occupancy.
type Registry struct {
	rooms map[string]*Room
	mu    sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{
		rooms: make(map[string]*Room),
	}
}

// getOrCreate must be called with the write lock held.
func (r *Registry) getOrCreate(roomID string) *Room {
	room, ok := r.rooms[roomID]
	if !ok {
		room = &Room{
			ID:           roomID,
			participants: make(map[string]*domain.Participant),
		}
		r.rooms[roomID] = room
	}
	return room
}

// Join adds the connection to the room roster with the default display
// name, creating the room if needed. Re-joining is idempotent and keeps
// any name chosen earlier.
func (r *Registry) Join(roomID, connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room := r.getOrCreate(roomID)
	if _, exists := room.participants[connID]; !exists {
		room.participants[connID] = &domain.Participant{
			ConnID:   connID,
			Username: domain.DefaultUsername(connID),
		}
	}
}

// Rename sets the display name of an existing roster entry. The raw name
// is normalized by the domain rules: trimmed, non-empty, at most 30 chars.
func (r *Registry) Rename(roomID, connID, rawName string) error {
	name, err := domain.NewUsername(rawName)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[roomID]
	if !ok {
		return ErrRoomNotFound
	}
	p, ok := room.participants[connID]
	if !ok {
		return ErrParticipantNotFound
	}

	p.Username = name
	return nil
}

// Leave removes the roster entry and evicts the whole room once the roster
// is empty. It reports whether the entry existed and whether the room was
// evicted.
func (r *Registry) Leave(roomID, connID string) (removed, closed bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[roomID]
	if !ok {
		return false, false
	}
	if _, ok := room.participants[connID]; !ok {
		return false, false
	}

	delete(room.participants, connID)
	if len(room.participants) == 0 {
		delete(r.rooms, roomID)
		return true, true
	}
	return true, false
}

func (r *Registry) GetTimer(roomID string) *domain.Timer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[roomID]
	if !ok {
		return nil
	}
	return room.Timer
}

// SetTimer stores the room's timer, replacing any existing one. The room
// is created on demand so the operation is total over room keys.
func (r *Registry) SetTimer(roomID string, t *domain.Timer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.getOrCreate(roomID).Timer = t
}

// ClearTimer deletes the room's timer. A room that ends up with neither a
// timer nor participants is evicted.
func (r *Registry) ClearTimer(roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[roomID]
	if !ok {
		return
	}
	room.Timer = nil
	if len(room.participants) == 0 {
		delete(r.rooms, roomID)
	}
}

func (r *Registry) Participants(roomID string) []domain.Participant {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[roomID]
	if !ok {
		return nil
	}

	list := make([]domain.Participant, 0, len(room.participants))
	for _, p := range room.participants {
		list = append(list, *p)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].ConnID < list[j].ConnID
	})
	return list
}

func (r *Registry) Count(roomID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[roomID]
	if !ok {
		return 0
	}
	return len(room.participants)
}

// Len reports the number of live rooms.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}

// AvailableRooms lists every room with at least one participant, busiest
// first. Ties break on room id so the order is stable.
func (r *Registry) AvailableRooms() []RoomInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rooms := make([]RoomInfo, 0, len(r.rooms))
	for id, room := range r.rooms {
		if len(room.participants) == 0 {
			continue
		}
		rooms = append(rooms, RoomInfo{
			RoomID:           id,
			ParticipantCount: len(room.participants),
		})
	}
	sort.Slice(rooms, func(i, j int) bool {
		if rooms[i].ParticipantCount != rooms[j].ParticipantCount {
			return rooms[i].ParticipantCount > rooms[j].ParticipantCount
		}
		return rooms[i].RoomID < rooms[j].RoomID
	})
	return rooms
}
