package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// chunkSize bounds how much of a video sits in memory per client while
// streaming.
const chunkSize = 64 << 10

var byteRangeRe = regexp.MustCompile(`^bytes=(\d+)-(\d*)$`)

// MediaHandler streams video files from the local media root with
// single-range byte-serving. Only wired in local-backend deployments.
type MediaHandler struct {
	root string
}

func NewMediaHandler(root string) *MediaHandler {
	return &MediaHandler{root: root}
}

func (h *MediaHandler) Serve(c echo.Context) error {
	name, err := url.PathUnescape(c.Param("*"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}

	full, ok := h.resolve(name)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound)
	}

	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	size := info.Size()

	contentType := mime.TypeByExtension(filepath.Ext(full))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, contentType)
	res.Header().Set("Accept-Ranges", "bytes")

	start, end, rangeErr := parseByteRange(c.Request().Header.Get("Range"), size)
	switch {
	case rangeErr == nil:
		return h.serveRange(c, full, size, start, end)
	case errors.Is(rangeErr, errRangeNotSatisfiable):
		res.Header().Set("Content-Range", fmt.Sprintf("bytes */%d", size))
		return echo.NewHTTPError(http.StatusRequestedRangeNotSatisfiable)
	}

	// Absent or unusable range header: the whole file.
	res.Header().Set(echo.HeaderContentLength, strconv.FormatInt(size, 10))
	res.WriteHeader(http.StatusOK)

	return h.copyFile(res, full, 0, size)
}

var (
	errUnusableRange       = errors.New("unusable range header")
	errRangeNotSatisfiable = errors.New("range not satisfiable")
)

// parseByteRange interprets a single-range header against the file
// size. errUnusableRange means fall back to the whole file;
// errRangeNotSatisfiable maps to a 416.
func parseByteRange(header string, size int64) (int64, int64, error) {
	m := byteRangeRe.FindStringSubmatch(header)
	if m == nil {
		return 0, 0, errUnusableRange
	}

	start, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, 0, errUnusableRange
	}

	// An open-ended range runs to EOF.
	end := size - 1
	if m[2] != "" {
		if end, err = strconv.ParseInt(m[2], 10, 64); err != nil {
			return 0, 0, errUnusableRange
		}
		end = min(end, size-1)
	}

	// Rejects both a start past EOF and an inverted span like 200-100,
	// which would otherwise yield a negative Content-Length.
	if start >= size || end < start {
		return 0, 0, errRangeNotSatisfiable
	}

	return start, end, nil
}

func (h *MediaHandler) serveRange(c echo.Context, full string, size, start, end int64) error {
	length := end - start + 1

	res := c.Response()
	res.Header().Set(echo.HeaderContentLength, strconv.FormatInt(length, 10))
	res.Header().Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d", start, end, size))
	res.WriteHeader(http.StatusPartialContent)

	return h.copyFile(res, full, start, length)
}

// resolve maps the request path into the media root and rejects
// anything that would escape it.
func (h *MediaHandler) resolve(name string) (string, bool) {
	full := filepath.Join(h.root, filepath.FromSlash(path.Clean("/"+name)))

	rel, err := filepath.Rel(h.root, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}

	return full, true
}

// copyFile streams length bytes starting at offset in fixed-size
// chunks, so a slow client never buffers a whole file server-side.
func (h *MediaHandler) copyFile(w io.Writer, full string, offset, length int64) error {
	f, err := os.Open(full)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return err
	}

	_, err = io.CopyBuffer(w, io.LimitReader(f, length), make([]byte, chunkSize))

	return err
}
