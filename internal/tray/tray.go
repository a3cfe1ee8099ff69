//go:build linux || darwin || windows

package tray

import (
	"context"
	"log/slog"
	"sync"

	"github.com/getlantern/systray"

	"go.klb.dev/clipmark/internal/hub"
	"go.klb.dev/clipmark/internal/menu"
)

const emptyLabel = "(empty)"

// Tray renders menu-updated events with systray.
type Tray struct {
	act Activator
	h   *hub.Hub

	mu        sync.Mutex
	bookmarks *group
	history   *group
}

// New returns a Tray that routes clicks to act and follows menu updates
// published on h.
func New(act Activator, h *hub.Hub) *Tray {
	return &Tray{act: act, h: h}
}

// Run takes over the calling goroutine, which must be the main one on
// macOS, and returns after ctx is done or Quit is clicked. ready runs once
// the tray exists.
func (t *Tray) Run(ctx context.Context, ready func()) {
	systray.Run(func() { t.onReady(ctx, ready) }, func() { slog.Info("tray closed") })
}

func (t *Tray) onReady(ctx context.Context, ready func()) {
	systray.SetIcon(icon)
	systray.SetTitle("")
	systray.SetTooltip("clipmark")

	t.mu.Lock()
	t.bookmarks = newGroup(systray.AddMenuItem("Bookmarks", ""), menu.BookmarkID, t.act)
	t.history = newGroup(systray.AddMenuItem("Clipboard", ""), menu.HistoryID, t.act)
	t.mu.Unlock()

	systray.AddSeparator()
	show := systray.AddMenuItem("Show settings", "")
	quit := systray.AddMenuItem("Quit", "")

	sub := hub.NewChanSubscriber("tray", []string{hub.EventMenuUpdated}, 4)
	t.h.Register(sub)

	go func() {
		defer t.h.Unregister(sub)
		for {
			select {
			case <-ctx.Done():
				systray.Quit()
				return
			case ev := <-sub.C():
				if ev.Menu != nil {
					t.render(*ev.Menu)
				}
			case <-show.ClickedCh:
				t.activate(menu.IDShow)
			case <-quit.ClickedCh:
				t.activate(menu.IDQuit)
				systray.Quit()
				return
			}
		}
	}()

	if ready != nil {
		ready()
	}
}

func (t *Tray) activate(id string) {
	if err := t.act.Activate(id); err != nil {
		slog.Warn("tray: activate failed", "item", id, "err", err)
	}
}

func (t *Tray) render(m menu.Model) {
	l := layoutOf(m)
	t.mu.Lock()
	defer t.mu.Unlock()
	t.bookmarks.set(l.Bookmarks)
	t.history.set(l.History)
	slog.Debug("tray updated", "bookmarks", len(l.Bookmarks), "history", len(l.History))
}

// group is a submenu backed by a pool of items that grows on demand;
// surplus items are hidden rather than removed.
type group struct {
	parent *systray.MenuItem
	empty  *systray.MenuItem
	slots  []*systray.MenuItem
	idOf   func(int) string
	act    Activator
}

func newGroup(parent *systray.MenuItem, idOf func(int) string, act Activator) *group {
	g := &group{parent: parent, idOf: idOf, act: act}
	g.empty = parent.AddSubMenuItem(emptyLabel, "")
	g.empty.Disable()
	return g
}

func (g *group) set(labels []string) {
	for len(g.slots) < len(labels) {
		g.add()
	}
	for i, s := range g.slots {
		if i < len(labels) {
			s.SetTitle(labels[i])
			s.Show()
		} else {
			s.Hide()
		}
	}
	if len(labels) == 0 {
		g.empty.Show()
	} else {
		g.empty.Hide()
	}
}

func (g *group) add() {
	id := g.idOf(len(g.slots))
	item := g.parent.AddSubMenuItem("", "")
	g.slots = append(g.slots, item)
	go func() {
		for range item.ClickedCh {
			if err := g.act.Activate(id); err != nil {
				slog.Warn("tray: activate failed", "item", id, "err", err)
			}
		}
	}()
}
