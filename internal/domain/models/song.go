package models

import "github.com/paroles-live/paroles/internal/subtitle"

// DefaultArtist is the placeholder shown when a song folder carries no
// artist in its config document. The game UI is French.
const DefaultArtist = "Artiste inconnu"

// DefaultDifficulty applies when config.json omits the difficulty.
const DefaultDifficulty = "medium"

// Song is one normalized catalog entry: media metadata, timed lyric
// cues and the cutoff windows the game hides lyrics in. Songs are
// immutable once emitted by a scan; a new scan replaces the whole set.
type Song struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Artist         string         `json:"artist"`
	Difficulty     string         `json:"difficulty"`
	CutoffWindows  [][2]float64   `json:"cutoff_windows"`
	SubtitleOffset float64        `json:"subtitle_offset"`
	Duration       float64        `json:"duration"`
	HasVideo       bool           `json:"has_video"`
	VideoURL       *string        `json:"video_url"`
	Lyrics         []subtitle.Cue `json:"lyrics"`
	Folder         string         `json:"folder"`
}
