package shortcut

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrNotRegistered is returned by Unregister for a chord that is not
	// currently registered.
	ErrNotRegistered = errors.New("shortcut not registered")

	// ErrAlreadyRegistered is returned by Register for a chord that is
	// already registered.
	ErrAlreadyRegistered = errors.New("shortcut already registered")

	// ErrUnavailable wraps a Registrar failure while binding.
	ErrUnavailable = errors.New("shortcut unavailable")
)

// Registrar is the platform global-hotkey primitive.
type Registrar interface {
	// Register binds c globally; fn runs on every key press.
	Register(c Chord, fn func()) error
	// Unregister releases c. It returns ErrNotRegistered if c is not bound.
	Unregister(c Chord) error
}

// MemoryRegistrar records registrations without touching the OS. It backs
// --no-hotkeys runs and tests, and can simulate key presses with Press.
type MemoryRegistrar struct {
	mu       sync.Mutex
	handlers map[Chord]func()
	// Fail, when non-nil, is consulted before every Register.
	Fail func(Chord) error
}

// NewMemoryRegistrar returns an empty MemoryRegistrar.
func NewMemoryRegistrar() *MemoryRegistrar {
	return &MemoryRegistrar{handlers: make(map[Chord]func())}
}

func (r *MemoryRegistrar) Register(c Chord, fn func()) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Fail != nil {
		if err := r.Fail(c); err != nil {
			return err
		}
	}
	if _, ok := r.handlers[c]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, c)
	}
	r.handlers[c] = fn
	return nil
}

func (r *MemoryRegistrar) Unregister(c Chord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.handlers[c]; !ok {
		return fmt.Errorf("%w: %s", ErrNotRegistered, c)
	}
	delete(r.handlers, c)
	return nil
}

// Registered returns the currently bound chords.
func (r *MemoryRegistrar) Registered() []Chord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Chord, 0, len(r.handlers))
	for c := range r.handlers {
		out = append(out, c)
	}
	return out
}

// Press runs the handler bound to c and reports whether one was bound.
func (r *MemoryRegistrar) Press(c Chord) bool {
	r.mu.Lock()
	fn, ok := r.handlers[c]
	r.mu.Unlock()
	if ok {
		fn()
	}
	return ok
}
