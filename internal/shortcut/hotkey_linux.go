//go:build linux && x11hotkey

package shortcut

import "golang.design/x/hotkey"

// X11 has no named Alt/Super masks; Mod1 and Mod4 are the conventional ones.
func platformMods(m Modifier) []hotkey.Modifier {
	var mods []hotkey.Modifier
	if m&ModCtrl != 0 {
		mods = append(mods, hotkey.ModCtrl)
	}
	if m&ModAlt != 0 {
		mods = append(mods, hotkey.Mod1)
	}
	if m&ModShift != 0 {
		mods = append(mods, hotkey.ModShift)
	}
	if m&ModSuper != 0 {
		mods = append(mods, hotkey.Mod4)
	}
	return mods
}
