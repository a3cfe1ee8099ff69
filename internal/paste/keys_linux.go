package paste

import (
	"time"

	"github.com/micmonay/keybd_event"
)

// Terminal emulators reserve Ctrl+V, so Ctrl+Shift+V is the one chord that
// pastes in both terminals and most GUI toolkits.
const (
	superName    = "Super"
	deviceSettle = 2 * time.Second
)

// DefaultKeys returns Ctrl+Shift+V.
func DefaultKeys() Keys {
	return Keys{Ctrl: true, Shift: true, Key: keybd_event.VK_V}
}
