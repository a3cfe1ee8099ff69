// Package paste sends the platform paste keystroke to the focused
// application after the clipboard has been overwritten.
package paste

import (
	"context"
	"time"
)

// DefaultDelay is how long the injector waits before pressing the keys, so
// the clipboard owner has settled and the menu has closed.
const DefaultDelay = 150 * time.Millisecond

// Injector triggers a paste in whatever window has focus.
type Injector interface {
	Paste(ctx context.Context) error
}

// Keys describes the keystroke that pastes on a platform.
type Keys struct {
	Ctrl  bool
	Shift bool
	Super bool
	Key   int
}

func (k Keys) String() string {
	s := ""
	if k.Super {
		s += superName + "+"
	}
	if k.Ctrl {
		s += "Ctrl+"
	}
	if k.Shift {
		s += "Shift+"
	}
	return s + "V"
}

// Nop is an Injector that does nothing. Used with --no-paste and in
// headless mode.
type Nop struct{}

func (Nop) Paste(context.Context) error { return nil }
