package persist

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"go.klb.dev/clipmark/internal/bookmark"
	"go.klb.dev/clipmark/internal/config"
)

// WatchDebounce is how long Watch waits after the last filesystem event for a
// document before reloading it.
const WatchDebounce = 300 * time.Millisecond

// Handlers receive documents reloaded after an on-disk change. Either may be
// nil. Our own saves also trigger them; receivers compare with current state.
type Handlers struct {
	Config    func(config.AppConfig)
	Bookmarks func([]bookmark.Bookmark)
}

// Watch observes the data directory and calls h whenever config.json or
// bookmarks.json is replaced or rewritten. Documents that fail to decode are
// logged and skipped. Watch blocks until ctx is done.
func (g *Gateway) Watch(ctx context.Context, h Handlers) error {
	if err := os.MkdirAll(g.dir, 0o700); err != nil {
		return fmt.Errorf("watch %s: %w", g.dir, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer w.Close()

	// Watch the directory rather than the files: saves rename a temp file
	// over the target, which drops per-file watches on most platforms.
	if err := w.Add(g.dir); err != nil {
		return fmt.Errorf("watch %s: %w", g.dir, err)
	}
	slog.Debug("watching data dir", "dir", g.dir)

	timers := make(map[string]*time.Timer)
	fire := make(chan string, 2)
	defer func() {
		for _, t := range timers {
			t.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			name := filepath.Base(ev.Name)
			if name != ConfigFile && name != BookmarksFile {
				continue
			}
			if t, ok := timers[name]; ok {
				t.Stop()
			}
			timers[name] = time.AfterFunc(WatchDebounce, func() {
				select {
				case fire <- name:
				case <-ctx.Done():
				}
			})

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Warn("data dir watch error", "err", err)

		case name := <-fire:
			delete(timers, name)
			g.reload(name, h)
		}
	}
}

func (g *Gateway) reload(name string, h Handlers) {
	switch name {
	case ConfigFile:
		if h.Config == nil {
			return
		}
		cfg, err := g.readConfig()
		if err != nil {
			slog.Warn("ignoring changed config", "path", g.ConfigPath(), "err", err)
			return
		}
		h.Config(cfg)
	case BookmarksFile:
		if h.Bookmarks == nil {
			return
		}
		list, err := g.readBookmarks()
		if err != nil {
			slog.Warn("ignoring changed bookmarks", "path", g.BookmarksPath(), "err", err)
			return
		}
		h.Bookmarks(list)
	}
}
