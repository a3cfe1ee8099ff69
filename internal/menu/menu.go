// Package menu derives the flat, display-ready menu from the bookmark and
// history snapshots and keeps it current as either store changes.
package menu

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.klb.dev/clipmark/internal/bookmark"
)

// Fixed item ids.
const (
	IDBookmarksHeader = "header_bookmarks"
	IDClipboardHeader = "header_clipboard"
	IDSeparator       = "separator"
	IDShow            = "show"
	IDQuit            = "quit"

	bookmarkPrefix = "item_bm_"
	historyPrefix  = "item_"

	// LabelMax is the number of characters kept in an entry label.
	LabelMax = 30
	ellipsis = "..."
)

// ErrUnknownItem is returned for ids that do not name an activatable entry.
var ErrUnknownItem = errors.New("unknown menu item")

// Kind classifies menu items.
type Kind string

const (
	KindHeader    Kind = "header"
	KindSeparator Kind = "separator"
	KindBookmark  Kind = "bookmark"
	KindHistory   Kind = "history"
	KindAction    Kind = "action"
)

// Item is one menu row. Value is the full text a bookmark or history entry
// stood for when the menu was built.
type Item struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Kind  Kind   `json:"kind"`
	Value string `json:"value,omitempty"`
}

// Interactive reports whether selecting the item does anything.
func (it Item) Interactive() bool {
	return it.Kind != KindHeader && it.Kind != KindSeparator
}

// Model is an immutable menu snapshot. Bookmarks and History hold the number
// of entries in each section.
type Model struct {
	Items     []Item `json:"items"`
	Bookmarks int    `json:"bookmarks"`
	History   int    `json:"history"`
}

// Build lays out the menu: bookmarks section, separator, clipboard section,
// then the fixed settings and quit entries.
func Build(bookmarks []bookmark.Bookmark, history []string) Model {
	items := make([]Item, 0, len(bookmarks)+len(history)+5)

	items = append(items, Item{ID: IDBookmarksHeader, Label: "Bookmarks", Kind: KindHeader})
	for i, b := range bookmarks {
		items = append(items, Item{
			ID:    BookmarkID(i),
			Label: Label(b.Content),
			Kind:  KindBookmark,
			Value: b.Content,
		})
	}
	items = append(items,
		Item{ID: IDSeparator, Kind: KindSeparator},
		Item{ID: IDClipboardHeader, Label: "Clipboard", Kind: KindHeader},
	)
	for i, text := range history {
		items = append(items, Item{
			ID:    HistoryID(i),
			Label: Label(text),
			Kind:  KindHistory,
			Value: text,
		})
	}
	items = append(items,
		Item{ID: IDShow, Label: "Show settings", Kind: KindAction},
		Item{ID: IDQuit, Label: "Quit", Kind: KindAction},
	)

	return Model{Items: items, Bookmarks: len(bookmarks), History: len(history)}
}

// Find returns the item with the given id.
func (m Model) Find(id string) (Item, bool) {
	for _, it := range m.Items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// Label truncates text to LabelMax characters, marking truncation with "...".
func Label(text string) string {
	r := []rune(text)
	if len(r) <= LabelMax {
		return text
	}
	return string(r[:LabelMax]) + ellipsis
}

// BookmarkID returns the id of the bookmark at index i.
func BookmarkID(i int) string { return bookmarkPrefix + strconv.Itoa(i) }

// HistoryID returns the id of the history entry at index i.
func HistoryID(i int) string { return historyPrefix + strconv.Itoa(i) }

// ParseID decodes an entry id into its kind and index. The fixed action ids
// return KindAction with index -1.
func ParseID(id string) (Kind, int, error) {
	switch {
	case id == IDShow || id == IDQuit:
		return KindAction, -1, nil
	case strings.HasPrefix(id, bookmarkPrefix):
		i, err := parseIndex(id[len(bookmarkPrefix):])
		if err != nil {
			return "", 0, fmt.Errorf("%w: %q", ErrUnknownItem, id)
		}
		return KindBookmark, i, nil
	case strings.HasPrefix(id, historyPrefix):
		i, err := parseIndex(id[len(historyPrefix):])
		if err != nil {
			return "", 0, fmt.Errorf("%w: %q", ErrUnknownItem, id)
		}
		return KindHistory, i, nil
	}
	return "", 0, fmt.Errorf("%w: %q", ErrUnknownItem, id)
}

func parseIndex(s string) (int, error) {
	if s == "" || strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, strconv.ErrSyntax
	}
	return strconv.Atoi(s)
}
