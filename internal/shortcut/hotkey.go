//go:build (linux && x11hotkey) || darwin || windows

package shortcut

import (
	"fmt"
	"log/slog"
	"sync"

	"golang.design/x/hotkey"
)

var hotkeyKeys = map[string]hotkey.Key{
	"A": hotkey.KeyA, "B": hotkey.KeyB, "C": hotkey.KeyC, "D": hotkey.KeyD,
	"E": hotkey.KeyE, "F": hotkey.KeyF, "G": hotkey.KeyG, "H": hotkey.KeyH,
	"I": hotkey.KeyI, "J": hotkey.KeyJ, "K": hotkey.KeyK, "L": hotkey.KeyL,
	"M": hotkey.KeyM, "N": hotkey.KeyN, "O": hotkey.KeyO, "P": hotkey.KeyP,
	"Q": hotkey.KeyQ, "R": hotkey.KeyR, "S": hotkey.KeyS, "T": hotkey.KeyT,
	"U": hotkey.KeyU, "V": hotkey.KeyV, "W": hotkey.KeyW, "X": hotkey.KeyX,
	"Y": hotkey.KeyY, "Z": hotkey.KeyZ,
	"0": hotkey.Key0, "1": hotkey.Key1, "2": hotkey.Key2, "3": hotkey.Key3,
	"4": hotkey.Key4, "5": hotkey.Key5, "6": hotkey.Key6, "7": hotkey.Key7,
	"8": hotkey.Key8, "9": hotkey.Key9,
	"F1": hotkey.KeyF1, "F2": hotkey.KeyF2, "F3": hotkey.KeyF3, "F4": hotkey.KeyF4,
	"F5": hotkey.KeyF5, "F6": hotkey.KeyF6, "F7": hotkey.KeyF7, "F8": hotkey.KeyF8,
	"F9": hotkey.KeyF9, "F10": hotkey.KeyF10, "F11": hotkey.KeyF11, "F12": hotkey.KeyF12,
	"Space":  hotkey.KeySpace,
	"Enter":  hotkey.KeyReturn,
	"Escape": hotkey.KeyEscape,
	"Tab":    hotkey.KeyTab,
	"Delete": hotkey.KeyDelete,
	"Up":     hotkey.KeyUp,
	"Down":   hotkey.KeyDown,
	"Left":   hotkey.KeyLeft,
	"Right":  hotkey.KeyRight,
}

type hotkeyBinding struct {
	hk   *hotkey.Hotkey
	done chan struct{}
}

// SystemRegistrar registers global shortcuts through golang.design/x/hotkey.
// On macOS the caller must run the program under mainthread.Init (or another
// Cocoa run loop such as the tray's).
type SystemRegistrar struct {
	mu     sync.Mutex
	active map[Chord]*hotkeyBinding
}

// NewSystemRegistrar returns a registrar backed by the OS.
func NewSystemRegistrar() Registrar {
	return &SystemRegistrar{active: make(map[Chord]*hotkeyBinding)}
}

func (r *SystemRegistrar) Register(c Chord, fn func()) error {
	key, ok := hotkeyKeys[c.Key]
	if !ok {
		return fmt.Errorf("%w: key %q not supported", ErrInvalidChord, c.Key)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.active[c]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, c)
	}

	hk := hotkey.New(platformMods(c.Mods), key)
	if err := hk.Register(); err != nil {
		return fmt.Errorf("register %s: %w", c, err)
	}
	b := &hotkeyBinding{hk: hk, done: make(chan struct{})}
	r.active[c] = b

	go func() {
		keydown := hk.Keydown()
		for {
			select {
			case <-b.done:
				return
			case <-keydown:
				slog.Debug("shortcut pressed", "chord", c.String())
				fn()
			}
		}
	}()

	slog.Debug("shortcut registered", "chord", c.String())
	return nil
}

func (r *SystemRegistrar) Unregister(c Chord) error {
	r.mu.Lock()
	b, ok := r.active[c]
	delete(r.active, c)
	r.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotRegistered, c)
	}

	close(b.done)
	if err := b.hk.Unregister(); err != nil {
		return fmt.Errorf("unregister %s: %w", c, err)
	}
	slog.Debug("shortcut unregistered", "chord", c.String())
	return nil
}
