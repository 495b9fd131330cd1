package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/paroles-live/paroles/internal/application/constant"
	"github.com/paroles-live/paroles/internal/application/metric"
	"github.com/paroles-live/paroles/internal/domain/models"
	"github.com/paroles-live/paroles/internal/infra/adapters/memory"
	"github.com/paroles-live/paroles/internal/infra/adapters/storage"
	"github.com/paroles-live/paroles/internal/subtitle"
)

// configAsset is the optional per-song configuration document.
const configAsset = "config.json"

// LibraryUsecase rebuilds the song catalog from the storage backend.
type LibraryUsecase interface {
	// Refresh scans the backend and atomically replaces the catalog.
	// On error the previous catalog stays in place. Returns the number
	// of songs and the scan pass id.
	Refresh(ctx context.Context) (int, string, error)
}

type libraryUsecase struct {
	backend storage.Backend
	songs   memory.SongRepository
}

func NewLibraryUsecase(backend storage.Backend, songs memory.SongRepository) LibraryUsecase {
	return &libraryUsecase{backend: backend, songs: songs}
}

func (uc *libraryUsecase) Refresh(ctx context.Context) (int, string, error) {
	scanID := uuid.NewString()
	start := time.Now()

	songs, err := uc.scan(ctx, scanID)
	metric.RecordLibraryScan(err)
	if err != nil {
		return 0, scanID, fmt.Errorf("scan library: %w", err)
	}

	uc.songs.Replace(songs)

	slog.Info("library scan finished",
		slog.String(constant.ScanID, scanID),
		slog.Int("songs", len(songs)),
		slog.Duration("elapsed", time.Since(start)),
	)

	return len(songs), scanID, nil
}

func (uc *libraryUsecase) scan(ctx context.Context, scanID string) ([]models.Song, error) {
	folders, err := uc.backend.ListSongFolders(ctx)
	if err != nil {
		return nil, err
	}

	songs := make([]models.Song, 0, len(folders))
	for _, folder := range folders {
		song, ok := uc.scanFolder(ctx, scanID, folder)
		if !ok {
			continue
		}
		songs = append(songs, song)
	}

	return songs, nil
}

// scanFolder assembles one Song, or reports false when the folder has
// no usable subtitle document. Nothing in here is fatal to the scan.
func (uc *libraryUsecase) scanFolder(ctx context.Context, scanID, folder string) (models.Song, bool) {
	subtitleAsset, ok := uc.backend.LocateSubtitleAsset(ctx, folder)
	if !ok {
		slog.Info("skipping folder without subtitles",
			slog.String(constant.ScanID, scanID),
			slog.String(constant.Folder, folder),
		)
		return models.Song{}, false
	}

	content, err := uc.backend.ReadTextAsset(ctx, folder, subtitleAsset)
	if err != nil {
		if !errors.Is(err, storage.ErrAssetNotFound) {
			slog.Warn("read subtitles",
				slog.String(constant.ScanID, scanID),
				slog.String(constant.Folder, folder),
				slog.Any(constant.Error, err),
			)
		}
		return models.Song{}, false
	}

	lyrics := subtitle.Parse(content)
	if len(lyrics) == 0 {
		return models.Song{}, false
	}

	cfg := uc.readConfig(ctx, folder)

	duration := 0.0
	for _, cue := range lyrics {
		duration = math.Max(duration, cue.End)
	}

	song := models.Song{
		ID:             folder,
		Title:          cfg.title(folder),
		Artist:         cfg.artist(),
		Difficulty:     cfg.difficulty(),
		CutoffWindows:  cfg.cutoffWindows(duration),
		SubtitleOffset: cfg.SubtitleOffset,
		Duration:       duration,
		Lyrics:         lyrics,
		Folder:         folder,
	}

	if asset, ok := uc.backend.LocateVideoAsset(ctx, folder); ok {
		song.HasVideo = true
		if url, ok := uc.backend.ResolveVideoURL(folder, asset); ok {
			song.VideoURL = &url
		}
	}

	slog.Info("scanned song",
		slog.String(constant.ScanID, scanID),
		slog.String(constant.SongID, song.ID),
		slog.String("title", song.Title),
		slog.Int("cues", len(lyrics)),
		slog.Bool("has_video", song.HasVideo),
	)

	return song, true
}

// songConfig is the typed view of config.json. Every field is optional;
// an unreadable or unparseable document degrades to all defaults.
type songConfig struct {
	Title          string       `json:"title"`
	Artist         string       `json:"artist"`
	Difficulty     string       `json:"difficulty"`
	SubtitleOffset float64      `json:"subtitle_offset"`
	CutoffWindows  [][2]float64 `json:"cutoff_windows"`
	CutoffTime     *float64     `json:"cutoff_time"`
}

func (uc *libraryUsecase) readConfig(ctx context.Context, folder string) songConfig {
	var cfg songConfig

	content, err := uc.backend.ReadTextAsset(ctx, folder, configAsset)
	if err != nil {
		return cfg
	}

	if err := json.Unmarshal([]byte(content), &cfg); err != nil {
		slog.Warn("invalid config.json, using defaults",
			slog.String(constant.Folder, folder),
			slog.Any(constant.Error, err),
		)
		return songConfig{}
	}

	return cfg
}

func (c songConfig) title(folder string) string {
	if c.Title != "" {
		return c.Title
	}

	name := strings.NewReplacer("-", " ", "_", " ").Replace(folder)

	// cases.Caser carries transform state, so no shared instance.
	return cases.Title(language.Und).String(name)
}

func (c songConfig) artist() string {
	if c.Artist != "" {
		return c.Artist
	}

	return models.DefaultArtist
}

func (c songConfig) difficulty() string {
	if c.Difficulty != "" {
		return c.Difficulty
	}

	return models.DefaultDifficulty
}

// cutoffWindows resolves the game's hide-the-lyrics intervals: explicit
// windows win, then the legacy single cutoff_time, then half the song.
func (c songConfig) cutoffWindows(duration float64) [][2]float64 {
	if len(c.CutoffWindows) > 0 {
		return c.CutoffWindows
	}

	cutoff := math.Round(duration*0.5*10) / 10
	if c.CutoffTime != nil {
		cutoff = *c.CutoffTime
	}

	return [][2]float64{{cutoff, duration}}
}
