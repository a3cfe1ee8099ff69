//go:build !linux && !windows && !darwin

package paste

import (
	"log/slog"
	"time"
)

const superName = "Super"

// DefaultKeys returns Ctrl+V; nothing injects it on this platform.
func DefaultKeys() Keys { return Keys{Ctrl: true} }

// New returns Nop: there is no virtual keyboard on this platform.
func New(time.Duration) Injector {
	slog.Warn("paste injection unsupported on this platform")
	return Nop{}
}
