package memory

import (
	"log/slog"
	"sync"
	"time"

	"github.com/paroles-live/paroles/internal/application/constant"
	"github.com/paroles-live/paroles/internal/application/metric"
	"github.com/paroles-live/paroles/internal/domain/models"
)

const (
	// roomExpiry is how long an idle room survives before the reaper
	// removes it.
	roomExpiry = 2 * time.Hour

	// activeWindow is how recently a client must have polled for the
	// room to count as active in listings.
	activeWindow = 30 * time.Second
)

// RoomRepository is the shared game state between the control client
// and the overlay client, keyed by room code. Rooms are created
// implicitly on first update and only ever live in memory.
type RoomRepository interface {
	// GetState returns the room's state map, or a minimal default for
	// an unknown room. Never an error.
	GetState(roomID string) map[string]any

	// UpdateState shallow-merges patch into the room's state, creating
	// the room if needed, and stamps room_id and timestamp.
	UpdateState(roomID string, patch map[string]any)

	// Exists reports whether the room currently holds state.
	Exists(roomID string) bool

	// ListActive snapshots every room with its derived active flag.
	ListActive() []models.RoomInfo

	// ReapExpired drops rooms idle longer than the expiry threshold and
	// returns how many were removed. It runs opportunistically on the
	// listing path, not on a timer.
	ReapExpired() int
}

type room struct {
	state        map[string]any
	lastActivity time.Time
}

type roomRepository struct {
	rooms map[string]*room
	mu    sync.Mutex

	now func() time.Time
}

func NewRoomRepository() RoomRepository {
	return &roomRepository{
		rooms: make(map[string]*room),
		now:   time.Now,
	}
}

func (r *roomRepository) GetState(roomID string) map[string]any {
	roomID = models.NormalizeRoomID(roomID)

	r.mu.Lock()
	defer r.mu.Unlock()

	rm, ok := r.rooms[roomID]
	if !ok {
		return map[string]any{"song_id": nil, "room_id": roomID}
	}

	// Copy so callers never share the map with concurrent updates.
	state := make(map[string]any, len(rm.state))
	for k, v := range rm.state {
		state[k] = v
	}

	return state
}

func (r *roomRepository) UpdateState(roomID string, patch map[string]any) {
	roomID = models.NormalizeRoomID(roomID)
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	rm, ok := r.rooms[roomID]
	if !ok {
		rm = &room{state: make(map[string]any)}
		r.rooms[roomID] = rm

		metric.SetGameRooms(len(r.rooms))
	}

	for k, v := range patch {
		rm.state[k] = v
	}
	rm.state["room_id"] = roomID
	rm.state["timestamp"] = float64(now.UnixMilli()) / 1000
	rm.lastActivity = now
}

func (r *roomRepository) Exists(roomID string) bool {
	roomID = models.NormalizeRoomID(roomID)

	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.rooms[roomID]

	return ok
}

func (r *roomRepository) ListActive() []models.RoomInfo {
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	infos := make([]models.RoomInfo, 0, len(r.rooms))
	for id, rm := range r.rooms {
		infos = append(infos, models.RoomInfo{
			RoomID: id,
			Song:   stateString(rm.state, "song_title"),
			Artist: stateString(rm.state, "song_artist"),
			Active: now.Sub(rm.lastActivity) < activeWindow,
		})
	}

	return infos
}

func (r *roomRepository) ReapExpired() int {
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	reaped := 0
	for id, rm := range r.rooms {
		if now.Sub(rm.lastActivity) > roomExpiry {
			delete(r.rooms, id)
			reaped++

			slog.Info("room expired", slog.String(constant.RoomID, id))
		}
	}

	if reaped > 0 {
		metric.SetGameRooms(len(r.rooms))
	}

	return reaped
}

func stateString(state map[string]any, key string) string {
	if s, ok := state[key].(string); ok {
		return s
	}

	return ""
}
