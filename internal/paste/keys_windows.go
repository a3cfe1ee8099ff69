package paste

import "github.com/micmonay/keybd_event"

const (
	superName    = "Win"
	deviceSettle = 0
)

// DefaultKeys returns Ctrl+V.
func DefaultKeys() Keys {
	return Keys{Ctrl: true, Key: keybd_event.VK_V}
}
