// Package bookmark holds the user's pinned clipboard entries. Bookmarks live
// independently of the clipboard history: evicting or deleting a history
// entry never touches a bookmark with the same content.
package bookmark

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// ErrIndexOutOfRange is returned by Remove when the index does not name a
// bookmark. The store is left unchanged.
var ErrIndexOutOfRange = errors.New("bookmark index out of range")

// Bookmark is a pinned text entry.
type Bookmark struct {
	Content string `json:"content"`
}

// Store is an ordered list of bookmarks, oldest first.
// All methods are safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	items []Bookmark
}

// New returns a Store seeded with a copy of initial.
func New(initial []Bookmark) *Store {
	return &Store{items: slices.Clone(initial)}
}

// Add appends a bookmark. Duplicates are allowed.
func (s *Store) Add(content string) {
	s.mu.Lock()
	s.items = append(s.items, Bookmark{Content: content})
	s.mu.Unlock()
}

// Remove deletes the bookmark at index.
func (s *Store) Remove(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.items) {
		return fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, index, len(s.items))
	}
	s.items = slices.Delete(s.items, index, index+1)
	return nil
}

// Toggle removes the first bookmark whose content equals content, or appends
// a new one when none matches. Callers that need to know which happened
// re-query the store.
func (s *Store) Toggle(content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := slices.IndexFunc(s.items, func(b Bookmark) bool { return b.Content == content }); i >= 0 {
		s.items = slices.Delete(s.items, i, i+1)
		return
	}
	s.items = append(s.items, Bookmark{Content: content})
}

// Replace swaps the whole list for a copy of list.
func (s *Store) Replace(list []Bookmark) {
	s.mu.Lock()
	s.items = slices.Clone(list)
	s.mu.Unlock()
}

// Snapshot returns an independent copy in display order. It is never nil.
func (s *Store) Snapshot() []Bookmark {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Bookmark, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of bookmarks.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Contents returns the bookmark texts in display order.
func Contents(list []Bookmark) []string {
	out := make([]string, len(list))
	for i, b := range list {
		out[i] = b.Content
	}
	return out
}
