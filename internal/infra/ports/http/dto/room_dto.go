package dto

import "github.com/paroles-live/paroles/internal/domain/models"

type RoomListResponse struct {
	Rooms []models.RoomInfo `json:"rooms"`
}

type RoomCheckResponse struct {
	RoomID string `json:"room_id"`
	Exists bool   `json:"exists"`
}

type UpdateStateResponse struct {
	OK bool `json:"ok"`
}
