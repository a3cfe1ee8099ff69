// Package tray shows the menu model in the system tray: bookmarks and
// history in two submenus, plus the show and quit actions.
package tray

import "go.klb.dev/clipmark/internal/menu"

// Activator runs a clicked menu entry.
type Activator interface {
	Activate(id string) error
}

// Layout is the tray's view of a menu model: the labels to show in each
// submenu, in menu order.
type Layout struct {
	Bookmarks []string
	History   []string
}

// layoutOf splits m into the two submenus. Position k in each list is the
// entry with id item_bm_k or item_k.
func layoutOf(m menu.Model) Layout {
	var l Layout
	for _, it := range m.Items {
		switch it.Kind {
		case menu.KindBookmark:
			l.Bookmarks = append(l.Bookmarks, it.Label)
		case menu.KindHistory:
			l.History = append(l.History, it.Label)
		}
	}
	return l
}
