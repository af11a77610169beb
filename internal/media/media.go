// Package media stores image and video files referenced by entity image URLs.
//
// Files land in a single flat directory under random UUID names and are
// served back at /media/<name>. Two sources feed it: multipart uploads
// (Store.Save) and remote URLs (Fetcher.Fetch).
package media

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// URLPrefix is the path media files are served under.
const URLPrefix = "/media/"

// DefaultExt is used when neither the filename nor the content type names
// a known extension.
const DefaultExt = ".jpg"

var (
	// ErrTooLarge is returned when a file exceeds the configured size limit.
	ErrTooLarge = errors.New("media too large")
	// ErrFetchFailed is returned when a remote URL cannot be downloaded.
	ErrFetchFailed = errors.New("failed to fetch media")
	// ErrCircuitOpen is returned while remote fetches are suspended after
	// repeated failures.
	ErrCircuitOpen = errors.New("media fetch temporarily disabled")
)

// Store writes media files into a directory.
type Store struct {
	dir     string
	maxSize int64
}

// NewStore returns a Store rooted at dir. maxSize of 0 means no limit.
func NewStore(dir string, maxSize int64) *Store {
	return &Store{dir: dir, maxSize: maxSize}
}

// Dir returns the directory files are written to.
func (s *Store) Dir() string {
	return s.dir
}

// Save copies r into a new file and returns its URL. The extension comes
// from filename, falling back to DefaultExt.
func (s *Store) Save(filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = DefaultExt
	}
	return s.write(ext, r)
}

// write stores r under a fresh UUID name with ext.
func (s *Store) write(ext string, r io.Reader) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("create media directory: %w", err)
	}

	name := uuid.NewString() + ext
	path := filepath.Join(s.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create media file: %w", err)
	}

	src := r
	if s.maxSize > 0 {
		src = io.LimitReader(r, s.maxSize+1)
	}
	n, err := io.Copy(f, src)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && s.maxSize > 0 && n > s.maxSize {
		err = fmt.Errorf("%w: limit is %d bytes", ErrTooLarge, s.maxSize)
	}
	if err != nil {
		os.Remove(path)
		return "", err
	}
	return URLPrefix + name, nil
}

// ExtForContentType maps a Content-Type header to a file extension.
// Unknown types map to DefaultExt.
func ExtForContentType(contentType string) string {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "image/png"):
		return ".png"
	case strings.Contains(ct, "image/jpeg"):
		return ".jpg"
	case strings.Contains(ct, "image/webp"):
		return ".webp"
	case strings.Contains(ct, "image/gif"):
		return ".gif"
	case strings.Contains(ct, "video/mp4"):
		return ".mp4"
	case strings.Contains(ct, "video/webm"):
		return ".webm"
	default:
		return DefaultExt
	}
}
