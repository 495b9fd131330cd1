package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/paroles-live/paroles/internal/application/config"
	"github.com/paroles-live/paroles/internal/application/constant"
	"github.com/paroles-live/paroles/internal/application/metric"
	"github.com/paroles-live/paroles/internal/infra/adapters/memory"
	"github.com/paroles-live/paroles/internal/infra/adapters/storage"
	"github.com/paroles-live/paroles/internal/infra/ports/http/handlers"
	"github.com/paroles-live/paroles/internal/infra/ports/http/server"
	"github.com/paroles-live/paroles/internal/infra/watch"
	"github.com/paroles-live/paroles/internal/usecase"
)

func runApp() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.New()
	if err != nil {
		slog.Error("parse config", slog.Any(constant.Error, err))
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(
		slog.New(
			slog.NewJSONHandler(
				os.Stdout,
				&slog.HandlerOptions{Level: level},
			),
		),
	)

	slog.Info("Running app", slog.Bool("debug", cfg.Debug), slog.Bool("cloud", cfg.CloudMode()))

	backend, mediaHandler, err := buildBackend(cfg)
	if err != nil {
		slog.Error("init storage backend", slog.Any(constant.Error, err))
		os.Exit(1)
	}

	songRepo := memory.NewSongRepository()
	roomRepo := memory.NewRoomRepository()

	library := usecase.NewLibraryUsecase(backend, songRepo)

	// Scan once before accepting connections. An unreachable backend is
	// not fatal here: the server comes up with an empty catalog and a
	// later /api/refresh can recover.
	if _, _, err := library.Refresh(ctx); err != nil {
		slog.Error("initial library scan", slog.Any(constant.Error, err))
	}
	if songRepo.Len() == 0 {
		slog.Warn("catalog is empty", slog.String("videos_dir", cfg.VideosDir))
	}

	if !cfg.CloudMode() && cfg.WatchLibrary {
		go func() {
			if err := watch.Run(ctx, cfg.VideosDir, func() {
				if _, _, err := library.Refresh(ctx); err != nil {
					slog.Error("watch rescan", slog.Any(constant.Error, err))
				}
			}); err != nil {
				slog.Error("library watcher stopped", slog.Any(constant.Error, err))
			}
		}()
	}

	songHandler := handlers.NewSongHandler(songRepo, library)
	roomHandler := handlers.NewRoomHandler(roomRepo)

	echoSrv := server.New(cfg, songHandler, roomHandler, mediaHandler)

	metricSrv := metric.NewServer()
	go func() {
		if err := metricSrv.Start(":" + cfg.MetricsPort); err != nil {
			slog.Warn("metric server stopped", slog.Any(constant.Error, err))
		}
	}()

	slog.Info("HTTP server starting", slog.String("port", cfg.Port))

	srvCh := make(chan error, 1)
	go func() {
		srvCh <- echoSrv.Start(":" + cfg.Port)
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutting down server due to context cancel")
	case err := <-srvCh:
		slog.Error("HTTP server failed", slog.Any(constant.Error, err))

		os.Exit(1)
	}

	timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer timeoutCancel()

	if err := echoSrv.Shutdown(timeoutCtx); err != nil {
		slog.Error("Failed to gracefully shutdown server", slog.Any(constant.Error, err))
	}
	if err := metricSrv.Shutdown(timeoutCtx); err != nil {
		slog.Error("Failed to gracefully shutdown metric server", slog.Any(constant.Error, err))
	}
}

// buildBackend picks the storage variant once, at startup. The media
// handler only exists for the local variant; cloud deployments serve
// video straight from the bucket.
func buildBackend(cfg *config.Config) (storage.Backend, *handlers.MediaHandler, error) {
	if cfg.CloudMode() {
		backend, err := storage.NewS3Backend(storage.S3Options{
			Endpoint:        cfg.S3.Endpoint,
			Bucket:          cfg.S3.Bucket,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			Region:          cfg.S3.Region,
			UseSSL:          cfg.S3.UseSSL,
			PublicURL:       cfg.S3.PublicURL,
		})
		if err != nil {
			return nil, nil, err
		}

		return backend, nil, nil
	}

	backend, err := storage.NewLocalBackend(cfg.VideosDir)
	if err != nil {
		return nil, nil, err
	}

	return backend, handlers.NewMediaHandler(backend.Root()), nil
}
