// Package media resolves metadata for photo files referenced by meals.
// The files are owned by whoever captured them; nothing here reads or
// copies their contents.
package media

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/julianstephens/mealtrack/internal/logger"
)

const (
	kib = 1024
	mib = 1024 * 1024

	createdFormat = "Jan 02, 2006 15:04"
)

type Info struct {
	Path string
	Name string
	Size int64
	// CreatedAt is the modification time; birth time is not portable.
	CreatedAt time.Time
}

// Resolve stats path. Missing files, empty paths and directories are
// reported as unresolvable rather than as errors.
func Resolve(path string) (Info, bool) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Info{}, false
	}
	fi, err := os.Stat(path)
	if err != nil {
		if !stderrors.Is(err, fs.ErrNotExist) {
			logger.Warn("Failed to stat media file", "path", path, "error", err)
		}
		return Info{}, false
	}
	if fi.IsDir() {
		return Info{}, false
	}
	return Info{
		Path:      path,
		Name:      filepath.Base(path),
		Size:      fi.Size(),
		CreatedAt: fi.ModTime(),
	}, true
}

func (i Info) SizeFormatted() string {
	return FormatSize(i.Size)
}

func (i Info) CreatedFormatted() string {
	return i.CreatedAt.Format(createdFormat)
}

// FormatSize renders n bytes as B below 1 KiB, KB below 1 MiB, else MB.
func FormatSize(n int64) string {
	switch {
	case n < kib:
		return fmt.Sprintf("%d B", n)
	case n < mib:
		return fmt.Sprintf("%.1f KB", float64(n)/kib)
	default:
		return fmt.Sprintf("%.1f MB", float64(n)/mib)
	}
}

// Delete removes the file at path and reports whether it did. Calling it
// on a path that is already gone reports false.
func Delete(path string) bool {
	path = strings.TrimSpace(path)
	if path == "" {
		return false
	}
	fi, err := os.Stat(path)
	if err != nil || fi.IsDir() {
		return false
	}
	if err := os.Remove(path); err != nil {
		logger.Error("Failed to delete media file", "path", path, "error", err)
		return false
	}
	logger.Debug("Deleted media file", "path", path)
	return true
}
