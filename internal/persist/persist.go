// Package persist reads and writes the two durable documents in the
// application data directory:
//
//	config.json     {maxItems, openShortcut, bookmarkShortcut, startMinimized}
//	bookmarks.json  [{content}, ...]
//
// Loads never fail: a missing or unreadable document is replaced by its
// default. Saves are best-effort; the caller decides what a failure means.
package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"go.klb.dev/clipmark/internal/bookmark"
	"go.klb.dev/clipmark/internal/config"
)

const (
	ConfigFile    = "config.json"
	BookmarksFile = "bookmarks.json"

	appDirName = "clipmark"
)

// ErrSave wraps every write failure.
var ErrSave = errors.New("persist")

// Gateway reads and writes documents under a single directory.
type Gateway struct {
	dir string
}

// New returns a Gateway rooted at dir. The directory is created on first save.
func New(dir string) *Gateway {
	return &Gateway{dir: dir}
}

// DefaultDir returns the per-user application data directory.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config dir: %w", err)
	}
	return filepath.Join(base, appDirName), nil
}

// Dir returns the directory the gateway writes to.
func (g *Gateway) Dir() string { return g.dir }

// ConfigPath returns the path of config.json.
func (g *Gateway) ConfigPath() string { return filepath.Join(g.dir, ConfigFile) }

// BookmarksPath returns the path of bookmarks.json.
func (g *Gateway) BookmarksPath() string { return filepath.Join(g.dir, BookmarksFile) }

// LoadConfig returns the stored config, or config.Default() if the document
// is missing, malformed or fails validation.
func (g *Gateway) LoadConfig() config.AppConfig {
	cfg, err := g.readConfig()
	if err != nil {
		logLoadFailure(g.ConfigPath(), err)
		return config.Default()
	}
	return cfg
}

// LoadBookmarks returns the stored bookmarks, or an empty list if the
// document is missing or malformed.
func (g *Gateway) LoadBookmarks() []bookmark.Bookmark {
	list, err := g.readBookmarks()
	if err != nil {
		logLoadFailure(g.BookmarksPath(), err)
		return []bookmark.Bookmark{}
	}
	return list
}

func (g *Gateway) readConfig() (config.AppConfig, error) {
	var cfg config.AppConfig
	if err := readJSON(g.ConfigPath(), &cfg); err != nil {
		return config.AppConfig{}, err
	}
	if err := config.Validate(cfg); err != nil {
		return config.AppConfig{}, err
	}
	return cfg, nil
}

func (g *Gateway) readBookmarks() ([]bookmark.Bookmark, error) {
	var list []bookmark.Bookmark
	if err := readJSON(g.BookmarksPath(), &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []bookmark.Bookmark{}
	}
	return list, nil
}

// SaveConfig writes cfg to config.json.
func (g *Gateway) SaveConfig(cfg config.AppConfig) error {
	return g.writeJSON(g.ConfigPath(), cfg)
}

// SaveBookmarks writes list to bookmarks.json. A nil list is written as [].
func (g *Gateway) SaveBookmarks(list []bookmark.Bookmark) error {
	if list == nil {
		list = []bookmark.Bookmark{}
	}
	return g.writeJSON(g.BookmarksPath(), list)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return nil
}

// writeJSON replaces path atomically: the document is written to a temp file
// in the same directory, synced, then renamed over the target.
func (g *Gateway) writeJSON(path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", ErrSave, filepath.Base(path), err)
	}
	if err := os.MkdirAll(g.dir, 0o700); err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}

	tmp, err := os.CreateTemp(g.dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: write %s: %w", ErrSave, path, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: sync %s: %w", ErrSave, path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", ErrSave, path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	slog.Debug("document saved", "path", path, "bytes", len(data))
	return nil
}

func logLoadFailure(path string, err error) {
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug("document missing, using defaults", "path", path)
		return
	}
	slog.Warn("document unreadable, using defaults", "path", path, "err", err)
}
