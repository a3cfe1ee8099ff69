//go:build !linux && !darwin && !windows

package tray

import (
	"context"
	"log/slog"

	"go.klb.dev/clipmark/internal/hub"
)

// Tray is unavailable on this platform; Run only waits for ctx.
type Tray struct{}

func New(Activator, *hub.Hub) *Tray { return &Tray{} }

func (t *Tray) Run(ctx context.Context, ready func()) {
	slog.Warn("system tray unsupported on this platform")
	if ready != nil {
		ready()
	}
	<-ctx.Done()
}
