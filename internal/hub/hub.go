// Package hub fans out application events to the presentation layer: IPC
// watchers, the tray and anything else that registers a Subscriber.
// Publishing never blocks on a slow subscriber.
package hub

import (
	"log/slog"
	"slices"
	"sync"

	"go.klb.dev/clipmark/internal/bookmark"
	"go.klb.dev/clipmark/internal/config"
	"go.klb.dev/clipmark/internal/menu"
)

// Event names.
const (
	EventClipboardUpdated = "clipboard-updated"
	EventBookmarksUpdated = "bookmarks-updated"
	EventConfigUpdated    = "config-updated"
	EventMenuUpdated      = "menu-updated"
	EventShowWindow       = "show-window"
	EventHideWindow       = "hide-window"
)

// Names lists every event name.
var Names = []string{
	EventClipboardUpdated,
	EventBookmarksUpdated,
	EventConfigUpdated,
	EventMenuUpdated,
	EventShowWindow,
	EventHideWindow,
}

// replayed events describe state rather than moments, so a subscriber that
// registers late still gets the latest one.
var replayed = map[string]bool{
	EventConfigUpdated: true,
	EventMenuUpdated:   true,
}

// Event is a notification delivered to subscribers. Only the field matching
// Name is set.
type Event struct {
	Name      string              `json:"name"`
	Items     []string            `json:"items,omitempty"`
	Bookmarks []bookmark.Bookmark `json:"bookmarks,omitempty"`
	Config    *config.AppConfig   `json:"config,omitempty"`
	Menu      *menu.Model         `json:"menu,omitempty"`
}

// Subscriber is anything that can receive events from the hub.
type Subscriber interface {
	ID() string
	// Accepts lists the event names wanted; empty means all.
	Accepts() []string
	// Send delivers an event. Must be non-blocking.
	Send(Event)
}

// Hub routes events to all registered subscribers.
type Hub struct {
	mu     sync.RWMutex
	subs   map[string]Subscriber
	latest map[string]Event
}

// New returns an empty Hub.
func New() *Hub {
	return &Hub{
		subs:   make(map[string]Subscriber),
		latest: make(map[string]Event),
	}
}

// Register adds a subscriber and immediately delivers the latest stateful
// events it accepts.
func (h *Hub) Register(s Subscriber) {
	h.mu.Lock()
	h.subs[s.ID()] = s
	var replay []Event
	for _, name := range Names {
		if ev, ok := h.latest[name]; ok && accepts(s.Accepts(), name) {
			replay = append(replay, ev)
		}
	}
	total := len(h.subs)
	h.mu.Unlock()

	slog.Debug("subscriber registered", "subscriber", s.ID(), "accepts", s.Accepts(), "total", total)

	for _, ev := range replay {
		s.Send(ev)
	}
}

// Unregister removes a subscriber.
func (h *Hub) Unregister(s Subscriber) {
	h.mu.Lock()
	delete(h.subs, s.ID())
	total := len(h.subs)
	h.mu.Unlock()

	slog.Debug("subscriber unregistered", "subscriber", s.ID(), "total", total)
}

// Publish fans ev out to every subscriber that accepts it.
func (h *Hub) Publish(ev Event) {
	h.mu.Lock()
	if replayed[ev.Name] {
		h.latest[ev.Name] = ev
	}
	var targets []Subscriber
	for _, s := range h.subs {
		if accepts(s.Accepts(), ev.Name) {
			targets = append(targets, s)
		}
	}
	h.mu.Unlock()

	for _, s := range targets {
		s.Send(ev)
	}
}

// PublishMenu implements menu.Publisher.
func (h *Hub) PublishMenu(m menu.Model) {
	h.Publish(Event{Name: EventMenuUpdated, Menu: &m})
}

// Latest returns the most recent stateful event with the given name.
func (h *Hub) Latest(name string) (Event, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	ev, ok := h.latest[name]
	return ev, ok
}

// Subscribers returns the ids of all registered subscribers, sorted.
func (h *Hub) Subscribers() []string {
	h.mu.RLock()
	ids := make([]string, 0, len(h.subs))
	for id := range h.subs {
		ids = append(ids, id)
	}
	h.mu.RUnlock()
	slices.Sort(ids)
	return ids
}

func accepts(list []string, name string) bool {
	return len(list) == 0 || slices.Contains(list, name)
}

// ChanSubscriber is a Subscriber backed by a buffered channel. Events that
// do not fit are dropped and logged.
type ChanSubscriber struct {
	id      string
	accepts []string
	ch      chan Event
}

// NewChanSubscriber returns a subscriber with room for size pending events.
func NewChanSubscriber(id string, accepts []string, size int) *ChanSubscriber {
	return &ChanSubscriber{id: id, accepts: accepts, ch: make(chan Event, size)}
}

func (c *ChanSubscriber) ID() string        { return c.id }
func (c *ChanSubscriber) Accepts() []string { return c.accepts }

func (c *ChanSubscriber) Send(ev Event) {
	select {
	case c.ch <- ev:
	default:
		slog.Warn("subscriber channel full, dropping", "subscriber", c.id, "event", ev.Name)
	}
}

// C returns the receive side of the subscriber's channel.
func (c *ChanSubscriber) C() <-chan Event { return c.ch }
