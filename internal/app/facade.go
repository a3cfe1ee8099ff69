package app

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"go.klb.dev/clipmark/internal/bookmark"
	"go.klb.dev/clipmark/internal/config"
	"go.klb.dev/clipmark/internal/hub"
	"go.klb.dev/clipmark/internal/menu"
	"go.klb.dev/clipmark/internal/metrics"
	"go.klb.dev/clipmark/internal/monitor"
	"go.klb.dev/clipmark/internal/paste"
	"go.klb.dev/clipmark/internal/shortcut"
)

// pasteTimeout bounds a single paste injection, delay included.
const pasteTimeout = 5 * time.Second

// Persister saves the durable documents.
type Persister interface {
	SaveConfig(config.AppConfig) error
	SaveBookmarks([]bookmark.Bookmark) error
}

// Binder registers the two global shortcuts.
type Binder interface {
	Bind(open, bookmark string) error
}

// Menu is the derived menu the facade keeps current.
type Menu interface {
	Trigger()
	Latest() menu.Model
	Resolve(id string) (menu.Item, error)
}

// Publisher delivers events to the presentation layer.
type Publisher interface {
	Publish(hub.Event)
}

// ClipboardWriter places text on the system clipboard.
type ClipboardWriter interface {
	Write(text string) error
}

// Deps are the collaborators of a Facade. Shortcuts, Paste, Metrics and
// Quit may be nil.
type Deps struct {
	Persist   Persister
	Shortcuts Binder
	Menu      Menu
	Events    Publisher
	Clipboard ClipboardWriter
	Paste     paste.Injector
	Metrics   *metrics.Metrics
	Quit      func()
}

// Facade is the only way state changes. All methods are synchronous and
// safe for concurrent use.
type Facade struct {
	ctx *Context
	d   Deps

	// cfgMu serializes config changes with shortcut rebinding. It is taken
	// before any store lock.
	cfgMu sync.Mutex
	// bmMu orders bookmark mutations with their saves so the file on disk
	// always holds the newest snapshot. It is taken before the bookmark
	// store lock and never together with cfgMu.
	bmMu sync.Mutex
}

var (
	_ monitor.Recorder = (*Facade)(nil)
	_ shortcut.Actions = (*Facade)(nil)
)

// New returns a Facade over ctx.
func New(ctx *Context, d Deps) *Facade {
	if d.Paste == nil {
		d.Paste = paste.Nop{}
	}
	return &Facade{ctx: ctx, d: d}
}

// Context returns the stores the facade works on.
func (f *Facade) Context() *Context { return f.ctx }

// AttachShortcuts installs b. The dispatcher calls back into the facade, so
// it is attached after New and before the facade is shared.
func (f *Facade) AttachShortcuts(b Binder) {
	f.d.Shortcuts = b
}

// BindShortcuts registers the shortcuts of the current config.
func (f *Facade) BindShortcuts() error {
	if f.d.Shortcuts == nil {
		return nil
	}
	f.cfgMu.Lock()
	defer f.cfgMu.Unlock()
	cfg := f.ctx.Config.Get()
	return f.d.Shortcuts.Bind(cfg.OpenShortcut, cfg.BookmarkShortcut)
}

// ---- config ----

// GetConfig returns a copy of the current configuration.
func (f *Facade) GetConfig() config.AppConfig {
	return f.ctx.Config.Get()
}

// SetConfig validates cfg, rebinds shortcuts, applies it to memory and
// saves it. A validation or binding failure changes nothing. A save failure
// is returned after the new config is already live.
func (f *Facade) SetConfig(cfg config.AppConfig) error {
	f.cfgMu.Lock()
	defer f.cfgMu.Unlock()
	return f.apply(cfg, true)
}

// ReloadConfig applies a config read back from disk after an external edit.
// It is a no-op when cfg matches memory and never writes the file back.
func (f *Facade) ReloadConfig(cfg config.AppConfig) error {
	f.cfgMu.Lock()
	defer f.cfgMu.Unlock()
	if cfg == f.ctx.Config.Get() {
		return nil
	}
	slog.Info("config changed on disk, applying")
	return f.apply(cfg, false)
}

// apply makes cfg live. When save is set the config is written before the
// menu rebuild is queued; a save error is returned once memory, the menu
// and subscribers are all up to date.
func (f *Facade) apply(cfg config.AppConfig, save bool) error {
	if err := config.Validate(cfg); err != nil {
		return err
	}
	if _, err := shortcut.ParseBindings(cfg.OpenShortcut, cfg.BookmarkShortcut); err != nil {
		return err
	}
	if f.d.Shortcuts != nil {
		if err := f.d.Shortcuts.Bind(cfg.OpenShortcut, cfg.BookmarkShortcut); err != nil {
			return err
		}
	}

	f.ctx.Config.Set(cfg)

	before := f.ctx.History.Len()
	f.ctx.History.Resize(cfg.MaxItems)
	trimmed := f.ctx.History.Len() != before

	var err error
	if save {
		err = f.saveConfig(cfg)
	}

	f.d.Menu.Trigger()
	f.publish(hub.Event{Name: hub.EventConfigUpdated, Config: &cfg})
	if trimmed {
		f.publishHistory()
	}
	return err
}

// ---- bookmarks ----

// GetBookmarks returns a snapshot of the bookmarks.
func (f *Facade) GetBookmarks() []bookmark.Bookmark {
	return f.ctx.Bookmarks.Snapshot()
}

// AddBookmark appends content, even if an equal bookmark exists.
func (f *Facade) AddBookmark(content string) error {
	f.bmMu.Lock()
	defer f.bmMu.Unlock()
	f.ctx.Bookmarks.Add(content)
	return f.bookmarksChanged()
}

// RemoveBookmark deletes the bookmark at index. An out of range index
// returns bookmark.ErrIndexOutOfRange and changes nothing.
func (f *Facade) RemoveBookmark(index int) error {
	f.bmMu.Lock()
	defer f.bmMu.Unlock()
	if err := f.ctx.Bookmarks.Remove(index); err != nil {
		return err
	}
	return f.bookmarksChanged()
}

// ToggleBookmark removes the first bookmark equal to content, or appends
// one if none exists.
func (f *Facade) ToggleBookmark(content string) error {
	f.bmMu.Lock()
	defer f.bmMu.Unlock()
	f.ctx.Bookmarks.Toggle(content)
	return f.bookmarksChanged()
}

// ReloadBookmarks replaces the bookmarks after an external edit of the
// bookmarks file. It never writes the file back.
func (f *Facade) ReloadBookmarks(list []bookmark.Bookmark) {
	f.bmMu.Lock()
	defer f.bmMu.Unlock()
	if slices.Equal(list, f.ctx.Bookmarks.Snapshot()) {
		return
	}
	slog.Info("bookmarks changed on disk, applying", "count", len(list))
	f.ctx.Bookmarks.Replace(list)
	f.d.Menu.Trigger()
	f.publishBookmarks(f.ctx.Bookmarks.Snapshot())
}

// bookmarksChanged saves and announces the current bookmarks. Callers hold
// bmMu.
func (f *Facade) bookmarksChanged() error {
	snap := f.ctx.Bookmarks.Snapshot()
	err := f.d.Persist.SaveBookmarks(snap)
	if err != nil {
		f.d.Metrics.PersistFailure(persistDocBookmarks)
		slog.Error("saving bookmarks failed", "err", err)
	}
	f.d.Menu.Trigger()
	f.publishBookmarks(snap)
	return err
}

// ---- history ----

// GetClipboardItems returns the history, newest first.
func (f *Facade) GetClipboardItems() []string {
	return f.ctx.History.Snapshot()
}

// DeleteClipboardItem removes text from history. Absent text is not an
// error.
func (f *Facade) DeleteClipboardItem(text string) {
	f.ctx.History.Remove(text)
	f.d.Menu.Trigger()
	f.publishHistory()
}

// RecordClip adds text observed on the system clipboard to history.
func (f *Facade) RecordClip(text string) {
	f.ctx.History.Add(text)
	f.d.Menu.Trigger()
	f.publishHistory()
}

// ToggleLatest toggles a bookmark for the newest history entry. Empty
// history is a no-op.
func (f *Facade) ToggleLatest() {
	text, ok := f.ctx.History.Latest()
	if !ok {
		slog.Debug("bookmark shortcut ignored, history empty")
		return
	}
	if err := f.ToggleBookmark(text); err != nil {
		slog.Warn("toggle latest", "err", err)
	}
}

// ---- window and menu ----

// ShowWindow asks the presentation layer to show the settings window.
func (f *Facade) ShowWindow() { f.publish(hub.Event{Name: hub.EventShowWindow}) }

// HideWindow asks the presentation layer to hide the settings window.
func (f *Facade) HideWindow() { f.publish(hub.Event{Name: hub.EventHideWindow}) }

// Menu returns the most recently built menu.
func (f *Facade) Menu() menu.Model { return f.d.Menu.Latest() }

// Activate runs the menu entry with the given id. Bookmark and history ids
// resolve against the latest built menu, so the text pasted is the text
// that was shown.
func (f *Facade) Activate(id string) error {
	it, err := f.d.Menu.Resolve(id)
	if err != nil {
		return err
	}

	switch it.ID {
	case menu.IDShow:
		f.ShowWindow()
		return nil
	case menu.IDQuit:
		slog.Info("quit requested from menu")
		if f.d.Quit != nil {
			f.d.Quit()
		}
		return nil
	}

	if err := f.d.Clipboard.Write(it.Value); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), pasteTimeout)
	defer cancel()
	if err := f.d.Paste.Paste(ctx); err != nil {
		slog.Warn("paste injection failed", "item", id, "err", err)
	}
	return nil
}

// ---- helpers ----

const (
	persistDocConfig    = "config"
	persistDocBookmarks = "bookmarks"
)

func (f *Facade) saveConfig(cfg config.AppConfig) error {
	if err := f.d.Persist.SaveConfig(cfg); err != nil {
		f.d.Metrics.PersistFailure(persistDocConfig)
		slog.Error("saving config failed", "err", err)
		return err
	}
	return nil
}

func (f *Facade) publishHistory() {
	f.publish(hub.Event{Name: hub.EventClipboardUpdated, Items: f.ctx.History.Snapshot()})
}

func (f *Facade) publishBookmarks(list []bookmark.Bookmark) {
	f.publish(hub.Event{Name: hub.EventBookmarksUpdated, Bookmarks: list})
}

func (f *Facade) publish(ev hub.Event) {
	if f.d.Events != nil {
		f.d.Events.Publish(ev)
	}
}
