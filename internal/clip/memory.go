package clip

import "sync"

// Memory is a Backend that keeps the clipboard in process memory. Every
// Write (or Set) signals Watch, like a real clipboard change would.
type Memory struct {
	mu      sync.Mutex
	text    string
	has     bool
	readErr error
	watchCh chan struct{}
}

// NewMemory returns an empty in-memory clipboard.
func NewMemory() *Memory {
	return &Memory{watchCh: make(chan struct{}, 1)}
}

func (m *Memory) Name() string { return "memory" }

func (m *Memory) Read() (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return "", false, m.readErr
	}
	return m.text, m.has, nil
}

func (m *Memory) Write(text string) error {
	m.Set(text)
	return nil
}

// Set replaces the clipboard text and signals watchers.
func (m *Memory) Set(text string) {
	m.mu.Lock()
	m.text, m.has = text, true
	m.mu.Unlock()
	m.Notify()
}

// SetReadError makes subsequent reads fail with err until cleared with nil.
func (m *Memory) SetReadError(err error) {
	m.mu.Lock()
	m.readErr = err
	m.mu.Unlock()
}

// Notify signals watchers without changing the contents.
func (m *Memory) Notify() {
	select {
	case m.watchCh <- struct{}{}:
	default:
	}
}

func (m *Memory) Watch() <-chan struct{} { return m.watchCh }
func (m *Memory) Close()                 {}
