package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/paroles-live/paroles/internal/application/constant"
	"github.com/paroles-live/paroles/internal/infra/adapters/memory"
	"github.com/paroles-live/paroles/internal/infra/ports/http/dto"
	"github.com/paroles-live/paroles/internal/usecase"
)

type SongHandler struct {
	songs   memory.SongRepository
	library usecase.LibraryUsecase
}

func NewSongHandler(songs memory.SongRepository, library usecase.LibraryUsecase) *SongHandler {
	return &SongHandler{songs: songs, library: library}
}

// List returns the catalog without lyrics.
func (h *SongHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.NewSongListResponse(h.songs.All()))
}

// Get returns one song with its full lyric cue list.
func (h *SongHandler) Get(c echo.Context) error {
	song, ok := h.songs.ByID(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Not found"})
	}

	return c.JSON(http.StatusOK, song)
}

// Random picks a uniformly random song, lyrics included.
func (h *SongHandler) Random(c echo.Context) error {
	song, ok := h.songs.Random()
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "No songs"})
	}

	return c.JSON(http.StatusOK, song)
}

// Refresh synchronously rescans the storage backend and returns the new
// listing. A failed scan keeps the previous catalog.
func (h *SongHandler) Refresh(c echo.Context) error {
	_, scanID, err := h.library.Refresh(c.Request().Context())
	if err != nil {
		slog.Error("refresh library",
			slog.String(constant.ScanID, scanID),
			slog.Any(constant.Error, err),
		)

		return c.JSON(http.StatusBadGateway, map[string]string{"error": "scan failed"})
	}

	return c.JSON(http.StatusOK, dto.RefreshResponse{
		Songs:   dto.NewSongListResponse(h.songs.All()).Songs,
		Message: "OK",
		ScanID:  scanID,
	})
}
