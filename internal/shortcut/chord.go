// Package shortcut parses hotkey chords and keeps the two global shortcuts
// ("open" and "bookmark last copied") registered with the platform.
package shortcut

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidChord is returned for any chord string that cannot be parsed.
var ErrInvalidChord = errors.New("invalid shortcut")

// Modifier is a bit set of platform-neutral modifier keys.
type Modifier uint8

const (
	ModCtrl Modifier = 1 << iota
	ModAlt
	ModShift
	ModSuper
)

// modifierTokens maps accepted (lowercased) tokens to modifiers. "Meta",
// "Cmd" and "Win" all name the platform's super key.
var modifierTokens = map[string]Modifier{
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"alt":     ModAlt,
	"option":  ModAlt,
	"shift":   ModShift,
	"super":   ModSuper,
	"meta":    ModSuper,
	"cmd":     ModSuper,
	"command": ModSuper,
	"win":     ModSuper,
}

// keyAliases maps accepted (lowercased) key tokens to canonical key names.
var keyAliases = map[string]string{
	"space":  "Space",
	"enter":  "Enter",
	"return": "Enter",
	"escape": "Escape",
	"esc":    "Escape",
	"tab":    "Tab",
	"delete": "Delete",
	"up":     "Up",
	"down":   "Down",
	"left":   "Left",
	"right":  "Right",
}

func init() {
	for c := 'a'; c <= 'z'; c++ {
		keyAliases[string(c)] = strings.ToUpper(string(c))
	}
	for c := '0'; c <= '9'; c++ {
		keyAliases[string(c)] = string(c)
	}
	for i := 1; i <= 12; i++ {
		keyAliases[fmt.Sprintf("f%d", i)] = fmt.Sprintf("F%d", i)
	}
}

// Chord is a parsed shortcut. It is comparable and usable as a map key.
type Chord struct {
	Mods Modifier
	Key  string
}

// ParseChord parses strings such as "Ctrl+Shift+V" or "meta + b". Tokens are
// case-insensitive; at least one modifier and exactly one key, given last,
// are required.
func ParseChord(s string) (Chord, error) {
	parts := strings.Split(s, "+")
	if len(parts) < 2 {
		return Chord{}, fmt.Errorf("%w %q: need modifier+key", ErrInvalidChord, s)
	}

	var c Chord
	for _, p := range parts[:len(parts)-1] {
		tok := strings.ToLower(strings.TrimSpace(p))
		mod, ok := modifierTokens[tok]
		if !ok {
			return Chord{}, fmt.Errorf("%w %q: unknown modifier %q", ErrInvalidChord, s, strings.TrimSpace(p))
		}
		c.Mods |= mod
	}

	keyTok := strings.TrimSpace(parts[len(parts)-1])
	key, ok := keyAliases[strings.ToLower(keyTok)]
	if !ok {
		return Chord{}, fmt.Errorf("%w %q: unknown key %q", ErrInvalidChord, s, keyTok)
	}
	c.Key = key
	return c, nil
}

// Has reports whether every modifier in m is part of the chord.
func (c Chord) Has(m Modifier) bool { return c.Mods&m == m }

// String renders the chord with the platform's modifier names, e.g.
// "Ctrl+Shift+V" or "Cmd+B" on macOS.
func (c Chord) String() string {
	var parts []string
	if c.Has(ModCtrl) {
		parts = append(parts, "Ctrl")
	}
	if c.Has(ModAlt) {
		parts = append(parts, altToken)
	}
	if c.Has(ModShift) {
		parts = append(parts, "Shift")
	}
	if c.Has(ModSuper) {
		parts = append(parts, superToken)
	}
	return strings.Join(append(parts, c.Key), "+")
}
