package shortcut

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChord(t *testing.T) {
	tests := []struct {
		in   string
		want Chord
	}{
		{"Ctrl+Shift+V", Chord{Mods: ModCtrl | ModShift, Key: "V"}},
		{"ctrl + shift + b", Chord{Mods: ModCtrl | ModShift, Key: "B"}},
		{"Meta+B", Chord{Mods: ModSuper, Key: "B"}},
		{"Cmd+Option+Space", Chord{Mods: ModSuper | ModAlt, Key: "Space"}},
		{"Super+return", Chord{Mods: ModSuper, Key: "Enter"}},
		{"Alt+F12", Chord{Mods: ModAlt, Key: "F12"}},
		{"Control+Control+1", Chord{Mods: ModCtrl, Key: "1"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseChord(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseChord_Invalid(t *testing.T) {
	for _, in := range []string{
		"",
		"V",
		"Ctrl+",
		"+V",
		"Hyper+V",
		"Ctrl+Shift",
		"Ctrl+PageUp",
		"Ctrl+V+Shift",
	} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseChord(in)
			assert.ErrorIs(t, err, ErrInvalidChord)
		})
	}
}

func TestChord_StringRoundTrips(t *testing.T) {
	for _, in := range []string{"Ctrl+Shift+V", "Meta+B", "Alt+Shift+F3", "Ctrl+Alt+Shift+Meta+Delete"} {
		c, err := ParseChord(in)
		require.NoError(t, err)

		again, err := ParseChord(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, again)
	}
}

func TestChord_StringUsesPlatformSuper(t *testing.T) {
	c, err := ParseChord("Meta+B")
	require.NoError(t, err)
	assert.Equal(t, superToken+"+B", c.String())
}

func TestParseBindings_RejectsIdenticalChords(t *testing.T) {
	_, err := ParseBindings("Ctrl+Shift+V", "shift+ctrl+v")
	assert.ErrorIs(t, err, ErrInvalidChord)
}
