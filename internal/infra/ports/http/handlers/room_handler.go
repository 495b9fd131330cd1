package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/paroles-live/paroles/internal/domain/models"
	"github.com/paroles-live/paroles/internal/infra/adapters/memory"
	"github.com/paroles-live/paroles/internal/infra/ports/http/dto"
)

type RoomHandler struct {
	rooms memory.RoomRepository
}

func NewRoomHandler(rooms memory.RoomRepository) *RoomHandler {
	return &RoomHandler{rooms: rooms}
}

// GetState is what the overlay client polls. Unknown rooms return a
// minimal default state, never an error.
func (h *RoomHandler) GetState(c echo.Context) error {
	roomID, ok := roomParam(c)
	if !ok {
		return missingRoom(c)
	}

	return c.JSON(http.StatusOK, h.rooms.GetState(roomID))
}

// UpdateState is what the control client pushes. The JSON body is
// shallow-merged into the room's state.
func (h *RoomHandler) UpdateState(c echo.Context) error {
	roomID, ok := roomParam(c)
	if !ok {
		return missingRoom(c)
	}

	var patch map[string]any
	if err := json.NewDecoder(c.Request().Body).Decode(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid JSON body"})
	}

	h.rooms.UpdateState(roomID, patch)

	return c.JSON(http.StatusOK, dto.UpdateStateResponse{OK: true})
}

// List reaps expired rooms, then snapshots the rest.
func (h *RoomHandler) List(c echo.Context) error {
	h.rooms.ReapExpired()

	return c.JSON(http.StatusOK, dto.RoomListResponse{Rooms: h.rooms.ListActive()})
}

// Check reports whether a room code is already in use.
func (h *RoomHandler) Check(c echo.Context) error {
	roomID, ok := roomParam(c)
	if !ok {
		return missingRoom(c)
	}

	return c.JSON(http.StatusOK, dto.RoomCheckResponse{
		RoomID: models.NormalizeRoomID(roomID),
		Exists: h.rooms.Exists(roomID),
	})
}

func roomParam(c echo.Context) (string, bool) {
	roomID := strings.TrimSpace(c.QueryParam("room"))

	return roomID, roomID != ""
}

func missingRoom(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"error": "Missing room parameter"})
}
