// Package monitor runs the single long-lived loop that observes the system
// clipboard and hands each distinct text value to a Recorder.
package monitor

import (
	"context"
	"log/slog"
	"sync"

	"go.klb.dev/clipmark/internal/clip"
	"go.klb.dev/clipmark/internal/metrics"
)

// Recorder receives every distinct clipboard text observed by the monitor.
type Recorder interface {
	RecordClip(text string)
}

// Monitor watches a clip.Backend.
type Monitor struct {
	backend clip.Backend
	rec     Recorder
	m       *metrics.Metrics

	mu       sync.Mutex
	last     string
	haveLast bool
}

// New creates a monitor but does not start it. m may be nil.
func New(backend clip.Backend, rec Recorder, m *metrics.Metrics) *Monitor {
	return &Monitor{backend: backend, rec: rec, m: m}
}

// Run blocks until ctx is done. Read failures are logged and skipped; they
// never stop the loop.
func (mon *Monitor) Run(ctx context.Context) {
	slog.Info("clipboard monitor started", "backend", mon.backend.Name())
	defer slog.Info("clipboard monitor stopped")

	watch := mon.backend.Watch()
	for {
		select {
		case <-ctx.Done():
			return
		case <-watch:
			mon.poll()
		}
	}
}

// poll reads the clipboard once and records the text if it differs from the
// last value seen.
func (mon *Monitor) poll() {
	text, ok, err := mon.backend.Read()
	if err != nil {
		mon.m.ReadError()
		slog.Warn("clipboard read failed", "err", err)
		return
	}
	if !ok {
		return
	}

	mon.mu.Lock()
	if mon.haveLast && text == mon.last {
		mon.mu.Unlock()
		return
	}
	mon.last, mon.haveLast = text, true
	mon.mu.Unlock()

	mon.m.Capture()
	slog.Debug("clipboard changed", "preview", Preview(text), "bytes", len(text))
	mon.rec.RecordClip(text)
}

// Preview shortens text for debug logs.
func Preview(text string) string {
	const max = 120
	r := []rune(text)
	if len(r) > max {
		return string(r[:max]) + "…"
	}
	return text
}
