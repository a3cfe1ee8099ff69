// Package history implements the bounded, deduplicating, most-recent-first
// buffer of copied text. It is process-local and never persisted.
package history

import (
	"slices"
	"sync"
)

// Buffer holds up to Capacity distinct entries, index 0 being the most recent.
// All methods are safe for concurrent use.
type Buffer struct {
	mu       sync.RWMutex
	items    []string
	capacity uint
}

// New returns an empty Buffer holding at most capacity entries.
func New(capacity uint) *Buffer {
	return &Buffer{capacity: capacity}
}

// Add moves text to the front, removing any earlier occurrence, then evicts
// the oldest entries until the buffer fits its capacity. Empty text is kept
// like any other value.
func (b *Buffer) Add(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.addLocked(text)
}

func (b *Buffer) addLocked(text string) {
	b.items = slices.DeleteFunc(b.items, func(s string) bool { return s == text })
	b.items = slices.Insert(b.items, 0, text)
	for uint(len(b.items)) > b.capacity {
		b.items = b.items[:len(b.items)-1]
	}
}

// Remove deletes every entry equal to text. Missing text is not an error.
func (b *Buffer) Remove(text string) {
	b.mu.Lock()
	b.items = slices.DeleteFunc(b.items, func(s string) bool { return s == text })
	b.mu.Unlock()
}

// Snapshot returns an independent copy, most recent first.
func (b *Buffer) Snapshot() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.items)
}

// Latest returns the most recent entry, or false when the buffer is empty.
func (b *Buffer) Latest() (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if len(b.items) == 0 {
		return "", false
	}
	return b.items[0], true
}

// Len returns the number of entries.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.items)
}

// Capacity returns the current capacity.
func (b *Buffer) Capacity() uint {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.capacity
}

// Resize changes the capacity, keeping the most recent min(capacity, Len())
// entries in their original relative order.
func (b *Buffer) Resize(capacity uint) {
	b.mu.Lock()
	defer b.mu.Unlock()

	old := b.items
	if uint(len(old)) > capacity {
		old = old[:capacity]
	}
	b.items = make([]string, 0, len(old))
	b.capacity = capacity
	// Re-add oldest first so the newest kept entry ends at the front.
	for i := len(old) - 1; i >= 0; i-- {
		b.addLocked(old[i])
	}
}
