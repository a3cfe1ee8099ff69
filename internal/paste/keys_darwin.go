package paste

import "github.com/micmonay/keybd_event"

const (
	superName    = "Cmd"
	deviceSettle = 0
)

// DefaultKeys returns Cmd+V.
func DefaultKeys() Keys {
	return Keys{Super: true, Key: keybd_event.VK_V}
}
