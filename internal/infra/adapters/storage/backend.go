// Package storage abstracts where song assets physically live. The two
// implementations (local filesystem, S3-compatible bucket) are selected
// once at startup and injected; nothing above this package branches on
// the deployment mode.
package storage

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// ErrAssetNotFound signals an absent asset. Callers treat it as an
// expected condition, not a failure.
var ErrAssetNotFound = errors.New("asset not found")

var videoExtensions = map[string]bool{
	".mp4":  true,
	".webm": true,
	".mkv":  true,
	".avi":  true,
	".mov":  true,
	".m4v":  true,
	".ogg":  true,
}

// IsVideoAsset reports whether the file name carries a recognized video
// container extension.
func IsVideoAsset(name string) bool {
	return videoExtensions[strings.ToLower(filepath.Ext(name))]
}

// Backend is the capability set a song library needs from its storage.
type Backend interface {
	// ListSongFolders returns every song folder identifier, skipping
	// names that start with an underscore.
	ListSongFolders(ctx context.Context) ([]string, error)

	// LocateSubtitleAsset returns the subtitle file name inside folder,
	// or false if the folder has none.
	LocateSubtitleAsset(ctx context.Context, folder string) (string, bool)

	// ReadTextAsset returns the decoded content of a text asset, or
	// ErrAssetNotFound if it does not exist.
	ReadTextAsset(ctx context.Context, folder, name string) (string, error)

	// LocateVideoAsset returns the first video asset found in folder,
	// or false if there is none. Scan order is backend-specific.
	LocateVideoAsset(ctx context.Context, folder string) (string, bool)

	// ResolveVideoURL turns a located video asset into a URL or path a
	// browser client can play, or false when the backend has no way to
	// expose it (a bucket without a public URL).
	ResolveVideoURL(folder, asset string) (string, bool)
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decodeText strips a UTF-8 BOM and falls back to ISO-8859-1 when the
// bytes are not valid UTF-8. Subtitle files produced by older tooling
// are frequently latin-1 encoded.
func decodeText(b []byte) string {
	b = bytes.TrimPrefix(b, utf8BOM)

	if utf8.Valid(b) {
		return string(b)
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}

	return string(decoded)
}
