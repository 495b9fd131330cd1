// Package watch triggers library rescans when the local media root
// changes on disk.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/paroles-live/paroles/internal/application/constant"
)

// debounce coalesces the event bursts a file copy produces into one
// rescan.
const debounce = 2 * time.Second

// Run watches root and its song folders and calls refresh after changes
// settle. It blocks until ctx is cancelled.
func Run(ctx context.Context, root string, refresh func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(root); err != nil {
		return fmt.Errorf("watch media root: %w", err)
	}

	// fsnotify is not recursive: song folders are watched one by one.
	entries, err := os.ReadDir(root)
	if err != nil {
		return fmt.Errorf("read media root: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			if err := watcher.Add(filepath.Join(root, entry.Name())); err != nil {
				slog.Warn("watch song folder", slog.Any(constant.Error, err))
			}
		}
	}

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}

	slog.Info("watching media root", slog.String("root", root))

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			// A newly created song folder must be watched too, before
			// its files arrive.
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watcher.Add(event.Name); err != nil {
						slog.Warn("watch new folder", slog.Any(constant.Error, err))
					}
				}
			}

			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("fsnotify error", slog.Any(constant.Error, err))

		case <-timer.C:
			slog.Info("media root changed, rescanning")
			refresh()
		}
	}
}
