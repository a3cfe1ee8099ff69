// Package clip provides a unified, text-only interface to the system
// clipboard across platforms. Build constraints select the implementation:
//
//	clip_darwin.go   macOS via golang.design/x/clipboard + cgo changeCount
//	clip_windows.go  Windows via golang.design/x/clipboard + AddClipboardFormatListener
//	clip_linux.go    Linux via golang.design/x/clipboard, polling only
//	clip_other.go    headless stub
//
// Memory is an in-process backend for tests and headless runs.
package clip

// Backend is the interface that all clipboard implementations satisfy.
type Backend interface {
	// Name returns a human-readable name for the backend.
	Name() string

	// Read returns the current clipboard text. ok is false if the clipboard
	// is empty or holds no text.
	Read() (text string, ok bool, err error)

	// Write replaces the clipboard contents with text.
	Write(text string) error

	// Watch returns a channel that receives a signal whenever the clipboard
	// may have changed. The channel is never closed; the caller should call
	// Read when it receives from it.
	Watch() <-chan struct{}

	// Close releases any resources held by the backend.
	Close()
}

// headlessBackend is a no-op backend for environments without a display
// server. It never produces Watch events and silently discards writes.
type headlessBackend struct {
	watchCh chan struct{}
}

// NewHeadless returns a no-op backend.
func NewHeadless() Backend {
	return &headlessBackend{watchCh: make(chan struct{})}
}

func (b *headlessBackend) Name() string                { return "headless (no-op)" }
func (b *headlessBackend) Read() (string, bool, error) { return "", false, nil }
func (b *headlessBackend) Write(_ string) error        { return nil }
func (b *headlessBackend) Watch() <-chan struct{}      { return b.watchCh }
func (b *headlessBackend) Close()                      {}
