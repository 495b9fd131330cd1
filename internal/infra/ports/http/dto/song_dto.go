package dto

import "github.com/paroles-live/paroles/internal/domain/models"

// SongSummary is the catalog-listing view of a song: everything except
// the lyrics, which only the single-song endpoint returns.
type SongSummary struct {
	ID             string       `json:"id"`
	Title          string       `json:"title"`
	Artist         string       `json:"artist"`
	Difficulty     string       `json:"difficulty"`
	CutoffWindows  [][2]float64 `json:"cutoff_windows"`
	SubtitleOffset float64      `json:"subtitle_offset"`
	Duration       float64      `json:"duration"`
	HasVideo       bool         `json:"has_video"`
	VideoURL       *string      `json:"video_url"`
	Folder         string       `json:"folder"`
}

func NewSongSummary(song models.Song) SongSummary {
	return SongSummary{
		ID:             song.ID,
		Title:          song.Title,
		Artist:         song.Artist,
		Difficulty:     song.Difficulty,
		CutoffWindows:  song.CutoffWindows,
		SubtitleOffset: song.SubtitleOffset,
		Duration:       song.Duration,
		HasVideo:       song.HasVideo,
		VideoURL:       song.VideoURL,
		Folder:         song.Folder,
	}
}

type SongListResponse struct {
	Songs []SongSummary `json:"songs"`
}

func NewSongListResponse(songs []models.Song) SongListResponse {
	resp := SongListResponse{Songs: make([]SongSummary, 0, len(songs))}
	for _, song := range songs {
		resp.Songs = append(resp.Songs, NewSongSummary(song))
	}

	return resp
}

type RefreshResponse struct {
	Songs   []SongSummary `json:"songs"`
	Message string        `json:"message"`
	ScanID  string        `json:"scan_id"`
}
