package models

import "strings"

// NormalizeRoomID canonicalizes a client-supplied room code. Room codes
// are case-insensitive: the control client types them, the overlay
// pastes them, and both must land in the same room. Every store
// operation normalizes through this one function.
func NormalizeRoomID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// RoomInfo is the listing view of one room: its code, best-effort song
// labels pulled from game state, and whether a client polled recently.
type RoomInfo struct {
	RoomID string `json:"room_id"`
	Song   string `json:"song"`
	Artist string `json:"artist"`
	Active bool   `json:"active"`
}
