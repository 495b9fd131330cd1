package server

import (
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/paroles-live/paroles/internal/application/config"
	"github.com/paroles-live/paroles/internal/infra/ports/http/handlers"
	"github.com/paroles-live/paroles/internal/infra/ports/http/middleware"
)

// New assembles the game server. mediaHandler is nil in cloud mode, in
// which case videos are served straight from the bucket's public URL
// and no /videos route exists.
func New(
	cfg *config.Config,
	songHandler *handlers.SongHandler,
	roomHandler *handlers.RoomHandler,
	mediaHandler *handlers.MediaHandler,
) *echo.Echo {
	e := echo.New()

	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.SlogLogger())
	e.Use(middleware.PrometheusMiddleware())

	// Both game clients may be hosted anywhere (OBS overlays in
	// particular), so every response is cross-origin friendly. The
	// middleware also answers the preflight.
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType},
	}))

	api := e.Group("/api")
	{
		api.GET("/songs", songHandler.List)
		api.GET("/songs/:id", songHandler.Get)
		api.GET("/random", songHandler.Random)
		api.GET("/refresh", songHandler.Refresh)

		api.GET("/state", roomHandler.GetState)
		api.POST("/state", roomHandler.UpdateState)
		api.GET("/rooms", roomHandler.List)
		api.GET("/room/check", roomHandler.Check)
	}

	if mediaHandler != nil {
		e.GET("/videos/*", mediaHandler.Serve)
	}

	// Entry pages for the control client and the overlay client.
	e.File("/", filepath.Join(cfg.WebDir, "index.html"))
	e.File("/index.html", filepath.Join(cfg.WebDir, "index.html"))
	e.File("/overlay", filepath.Join(cfg.WebDir, "overlay.html"))
	e.File("/overlay.html", filepath.Join(cfg.WebDir, "overlay.html"))

	return e
}
