//go:build (linux && !x11hotkey) || (!linux && !darwin && !windows)

package shortcut

import (
	"log/slog"
	"runtime"
)

// NewSystemRegistrar returns an in-memory registrar; global shortcuts are not
// available in this build. On Linux the X11 registrar is opt-in (build with
// -tags x11hotkey) because golang.design/x/hotkey opens the display in its
// package init and aborts the process when none is reachable.
func NewSystemRegistrar() Registrar {
	if runtime.GOOS == "linux" {
		slog.Warn("global shortcuts disabled, rebuild with -tags x11hotkey to enable them")
	} else {
		slog.Warn("global shortcuts unsupported on this platform")
	}
	return NewMemoryRegistrar()
}
