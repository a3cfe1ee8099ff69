package paste

import (
	"context"
	"sync"
)

// Recorder is an Injector that counts calls and optionally fails. It backs
// tests of code that pastes.
type Recorder struct {
	mu    sync.Mutex
	calls int
	Err   error
}

func (r *Recorder) Paste(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	return r.Err
}

// Calls returns how many times Paste ran.
func (r *Recorder) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}
