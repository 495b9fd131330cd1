package storage

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// LocalBackend reads song assets from one directory per song under a
// media root. Folders starting with "_" are ignored.
type LocalBackend struct {
	root string
}

// NewLocalBackend creates the media root if it does not exist yet, so a
// fresh deployment starts with an empty (not broken) library.
func NewLocalBackend(root string) (*LocalBackend, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create media root: %w", err)
	}

	return &LocalBackend{root: root}, nil
}

// Root returns the media root directory.
func (b *LocalBackend) Root() string {
	return b.root
}

func (b *LocalBackend) ListSongFolders(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(b.root)
	if err != nil {
		return nil, fmt.Errorf("read media root: %w", err)
	}

	var folders []string
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), "_") {
			continue
		}
		folders = append(folders, entry.Name())
	}
	sort.Strings(folders)

	return folders, nil
}

func (b *LocalBackend) LocateSubtitleAsset(_ context.Context, folder string) (string, bool) {
	return b.firstMatch(folder, func(name string) bool {
		return strings.EqualFold(filepath.Ext(name), ".srt")
	})
}

func (b *LocalBackend) ReadTextAsset(_ context.Context, folder, name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(b.root, folder, name))
	if os.IsNotExist(err) {
		return "", ErrAssetNotFound
	}
	if err != nil {
		return "", fmt.Errorf("read %s/%s: %w", folder, name, err)
	}

	return decodeText(data), nil
}

func (b *LocalBackend) LocateVideoAsset(_ context.Context, folder string) (string, bool) {
	return b.firstMatch(folder, IsVideoAsset)
}

// ResolveVideoURL maps a video file onto the path the media range
// responder serves it under. Segments are escaped so folder names with
// spaces or "#" survive the round trip through the browser.
func (b *LocalBackend) ResolveVideoURL(folder, asset string) (string, bool) {
	return "/videos/" + url.PathEscape(folder) + "/" + url.PathEscape(asset), true
}

func (b *LocalBackend) firstMatch(folder string, match func(string) bool) (string, bool) {
	entries, err := os.ReadDir(filepath.Join(b.root, folder))
	if err != nil {
		return "", false
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if match(entry.Name()) {
			return entry.Name(), true
		}
	}

	return "", false
}
