// Package constant holds the structured log keys shared across layers.
package constant

const (
	Error  = "error"
	RoomID = "room_id"
	SongID = "song_id"
	ScanID = "scan_id"
	Folder = "folder"
)
