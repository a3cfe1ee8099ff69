// Package app owns the shared application state and the facade every
// command path goes through: IPC requests, menu clicks, global shortcuts,
// the clipboard monitor and external edits of the data files.
//
// Lock order is Config → History → Bookmark. Facade methods never hold more
// than one store lock at a time; each store call takes and releases its own.
// Persistence and menu rebuilds run on snapshots taken outside any store
// lock. Two facade mutexes sit above the stores: one serializes config
// changes with shortcut rebinding, the other keeps bookmark saves in
// mutation order.
package app

import (
	"go.klb.dev/clipmark/internal/bookmark"
	"go.klb.dev/clipmark/internal/config"
	"go.klb.dev/clipmark/internal/history"
)

// Context holds the three stores. It is built once at startup and passed to
// whatever needs it.
type Context struct {
	Config    *config.Store
	Bookmarks *bookmark.Store
	History   *history.Buffer
}

// NewContext builds the stores from loaded documents. The history buffer
// starts empty with the configured capacity.
func NewContext(cfg config.AppConfig, bookmarks []bookmark.Bookmark) *Context {
	return &Context{
		Config:    config.NewStore(cfg),
		Bookmarks: bookmark.New(bookmarks),
		History:   history.New(cfg.MaxItems),
	}
}
