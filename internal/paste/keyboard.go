//go:build linux || windows || darwin

package paste

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/micmonay/keybd_event"
)

// Keyboard injects Keys through a virtual keyboard device. The device is
// created on first use since some platforms need time before it accepts
// events.
type Keyboard struct {
	keys  Keys
	delay time.Duration

	once sync.Once
	mu   sync.Mutex
	kb   keybd_event.KeyBonding
	err  error
}

// NewKeyboard returns an injector pressing the platform default keys.
func NewKeyboard(delay time.Duration) *Keyboard {
	return &Keyboard{keys: DefaultKeys(), delay: delay}
}

// Keys returns the keystroke this injector sends.
func (k *Keyboard) Keys() Keys { return k.keys }

func (k *Keyboard) init() {
	k.kb, k.err = keybd_event.NewKeyBonding()
	if k.err != nil {
		return
	}
	time.Sleep(deviceSettle)
	k.kb.SetKeys(k.keys.Key)
	k.kb.HasCTRL(k.keys.Ctrl)
	k.kb.HasSHIFT(k.keys.Shift)
	k.kb.HasSuper(k.keys.Super)
}

// Paste waits for the configured delay, then presses the paste keys.
func (k *Keyboard) Paste(ctx context.Context) error {
	k.once.Do(k.init)
	if k.err != nil {
		return fmt.Errorf("paste: keyboard: %w", k.err)
	}

	t := time.NewTimer(k.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	if err := k.kb.Launching(); err != nil {
		return fmt.Errorf("paste: %s: %w", k.keys, err)
	}
	slog.Debug("paste injected", "keys", k.keys.String())
	return nil
}

// New returns the virtual keyboard injector for this platform.
func New(delay time.Duration) Injector { return NewKeyboard(delay) }
