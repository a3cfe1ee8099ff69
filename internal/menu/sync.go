package menu

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.klb.dev/clipmark/internal/bookmark"
	"go.klb.dev/clipmark/internal/metrics"
)

// BookmarkSource supplies bookmark snapshots.
type BookmarkSource interface {
	Snapshot() []bookmark.Bookmark
}

// HistorySource supplies history snapshots, most recent first.
type HistorySource interface {
	Snapshot() []string
}

// Publisher receives every rebuilt menu.
type Publisher interface {
	PublishMenu(Model)
}

// Synchronizer rebuilds the menu whenever Trigger is called. Triggers are
// coalesced and served by a single consumer (Run), so published menus are
// never reordered and bursts of changes cost one rebuild.
//
// A rebuild snapshots bookmarks then history, each under its own lock; the
// two reads are not atomic together. Any change after the bookmark read
// triggers another rebuild that catches up.
type Synchronizer struct {
	bookmarks BookmarkSource
	history   HistorySource
	pub       Publisher
	debounce  time.Duration
	m         *metrics.Metrics

	trigger chan struct{}

	mu     sync.RWMutex
	latest Model
}

// NewSynchronizer builds the initial model from the current snapshots without
// publishing it. debounce is how long Run waits after a trigger before
// rebuilding; m may be nil.
func NewSynchronizer(b BookmarkSource, h HistorySource, pub Publisher, debounce time.Duration, m *metrics.Metrics) *Synchronizer {
	return &Synchronizer{
		bookmarks: b,
		history:   h,
		pub:       pub,
		debounce:  debounce,
		m:         m,
		trigger:   make(chan struct{}, 1),
		latest:    Build(b.Snapshot(), h.Snapshot()),
	}
}

// Trigger requests a rebuild. It never blocks.
func (s *Synchronizer) Trigger() {
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

// Run serves rebuild requests until ctx is done.
func (s *Synchronizer) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.trigger:
		}

		if s.debounce > 0 {
			t := time.NewTimer(s.debounce)
			select {
			case <-ctx.Done():
				t.Stop()
				return
			case <-t.C:
			}
		}
		// Requests that arrived while waiting are covered by this rebuild.
		select {
		case <-s.trigger:
		default:
		}

		s.rebuild()
	}
}

func (s *Synchronizer) rebuild() {
	marks := s.bookmarks.Snapshot()
	hist := s.history.Snapshot()
	model := Build(marks, hist)

	s.mu.Lock()
	s.latest = model
	s.mu.Unlock()

	s.m.Rebuild(len(marks), len(hist))
	slog.Debug("menu rebuilt", "bookmarks", len(marks), "history", len(hist))
	if s.pub != nil {
		s.pub.PublishMenu(model)
	}
}

// Latest returns the most recently built menu.
func (s *Synchronizer) Latest() Model {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

// Resolve maps an activatable id to its item in the latest menu, so an id
// always refers to the entry that was at that index when the menu the user
// clicked was built.
func (s *Synchronizer) Resolve(id string) (Item, error) {
	if _, _, err := ParseID(id); err != nil {
		return Item{}, err
	}
	it, ok := s.Latest().Find(id)
	if !ok {
		return Item{}, fmt.Errorf("%w: %q not in current menu", ErrUnknownItem, id)
	}
	return it, nil
}
