package shortcut

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Actions are the operations the two global shortcuts trigger.
type Actions interface {
	// ShowWindow brings up the main UI.
	ShowWindow()
	// ToggleLatest toggles a bookmark for the most recent history entry; it
	// does nothing when history is empty.
	ToggleLatest()
}

// Bindings is a parsed pair of shortcuts.
type Bindings struct {
	Open     Chord
	Bookmark Chord
}

// ParseBindings parses both chord strings. Nothing is registered.
func ParseBindings(open, bookmark string) (Bindings, error) {
	o, err := ParseChord(open)
	if err != nil {
		return Bindings{}, fmt.Errorf("open shortcut: %w", err)
	}
	b, err := ParseChord(bookmark)
	if err != nil {
		return Bindings{}, fmt.Errorf("bookmark shortcut: %w", err)
	}
	if o == b {
		return Bindings{}, fmt.Errorf("%w: open and bookmark shortcuts are both %s", ErrInvalidChord, o)
	}
	return Bindings{Open: o, Bookmark: b}, nil
}

// Dispatcher keeps the "open" and "bookmark last copied" shortcuts
// registered with a Registrar.
type Dispatcher struct {
	reg     Registrar
	actions Actions

	mu      sync.Mutex
	current Bindings
	bound   bool
}

// NewDispatcher returns a Dispatcher with nothing registered.
func NewDispatcher(reg Registrar, actions Actions) *Dispatcher {
	return &Dispatcher{reg: reg, actions: actions}
}

// Bind replaces the registered shortcuts. The chord strings are parsed before
// anything is touched, so a parse error leaves the previous registrations in
// place. If registering the new pair fails, the previous pair is restored and
// the error returned.
func (d *Dispatcher) Bind(open, bookmark string) error {
	next, err := ParseBindings(open, bookmark)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.bound && d.current == next {
		return nil
	}

	prev, wasBound := d.current, d.bound
	if wasBound {
		d.release(prev)
	}
	d.bound = false

	if err := d.register(next); err != nil {
		if wasBound {
			if rerr := d.register(prev); rerr != nil {
				slog.Error("restoring previous shortcuts failed", "err", rerr)
			} else {
				d.bound = true
			}
		}
		return err
	}

	d.current, d.bound = next, true
	slog.Info("shortcuts bound", "open", next.Open.String(), "bookmark", next.Bookmark.String())
	return nil
}

// Unbind releases both shortcuts.
func (d *Dispatcher) Unbind() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.bound {
		d.release(d.current)
		d.bound = false
	}
}

// Current returns the registered shortcuts, if any.
func (d *Dispatcher) Current() (Bindings, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current, d.bound
}

// register binds both chords, or neither.
func (d *Dispatcher) register(b Bindings) error {
	if err := d.reg.Register(b.Open, d.actions.ShowWindow); err != nil {
		return fmt.Errorf("%w: open shortcut %s: %w", ErrUnavailable, b.Open, err)
	}
	if err := d.reg.Register(b.Bookmark, d.actions.ToggleLatest); err != nil {
		d.unregister(b.Open)
		return fmt.Errorf("%w: bookmark shortcut %s: %w", ErrUnavailable, b.Bookmark, err)
	}
	return nil
}

func (d *Dispatcher) release(b Bindings) {
	d.unregister(b.Open)
	d.unregister(b.Bookmark)
}

// unregister tolerates chords that are already gone.
func (d *Dispatcher) unregister(c Chord) {
	if err := d.reg.Unregister(c); err != nil && !errors.Is(err, ErrNotRegistered) {
		slog.Warn("unregister shortcut failed", "chord", c.String(), "err", err)
	}
}
