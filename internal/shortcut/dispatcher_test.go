package shortcut

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeActions struct {
	shows   atomic.Int32
	toggles atomic.Int32
}

func (a *fakeActions) ShowWindow()   { a.shows.Add(1) }
func (a *fakeActions) ToggleLatest() { a.toggles.Add(1) }

func mustChord(t *testing.T, s string) Chord {
	t.Helper()
	c, err := ParseChord(s)
	require.NoError(t, err)
	return c
}

func TestBind_RegistersHandlers(t *testing.T) {
	reg := NewMemoryRegistrar()
	acts := &fakeActions{}
	d := NewDispatcher(reg, acts)

	require.NoError(t, d.Bind("Ctrl+Shift+V", "Ctrl+Shift+B"))
	assert.ElementsMatch(t, []Chord{mustChord(t, "Ctrl+Shift+V"), mustChord(t, "Ctrl+Shift+B")}, reg.Registered())

	assert.True(t, reg.Press(mustChord(t, "Ctrl+Shift+V")))
	assert.True(t, reg.Press(mustChord(t, "Ctrl+Shift+B")))
	assert.EqualValues(t, 1, acts.shows.Load())
	assert.EqualValues(t, 1, acts.toggles.Load())
}

func TestBind_Rebind(t *testing.T) {
	reg := NewMemoryRegistrar()
	d := NewDispatcher(reg, &fakeActions{})

	require.NoError(t, d.Bind("Ctrl+Shift+V", "Ctrl+Shift+B"))
	require.NoError(t, d.Bind("Alt+V", "Ctrl+Shift+B"))

	assert.ElementsMatch(t, []Chord{mustChord(t, "Alt+V"), mustChord(t, "Ctrl+Shift+B")}, reg.Registered())
	cur, ok := d.Current()
	require.True(t, ok)
	assert.Equal(t, mustChord(t, "Alt+V"), cur.Open)
}

func TestBind_ParseErrorLeavesPreviousBindings(t *testing.T) {
	reg := NewMemoryRegistrar()
	d := NewDispatcher(reg, &fakeActions{})
	require.NoError(t, d.Bind("Ctrl+Shift+V", "Ctrl+Shift+B"))

	err := d.Bind("Ctrl+Nope", "Ctrl+Shift+B")
	require.ErrorIs(t, err, ErrInvalidChord)

	assert.ElementsMatch(t, []Chord{mustChord(t, "Ctrl+Shift+V"), mustChord(t, "Ctrl+Shift+B")}, reg.Registered())
	cur, ok := d.Current()
	require.True(t, ok)
	assert.Equal(t, mustChord(t, "Ctrl+Shift+V"), cur.Open)
}

func TestBind_RegisterFailureRestoresPrevious(t *testing.T) {
	reg := NewMemoryRegistrar()
	d := NewDispatcher(reg, &fakeActions{})
	require.NoError(t, d.Bind("Ctrl+Shift+V", "Ctrl+Shift+B"))

	taken := mustChord(t, "Alt+B")
	errTaken := errors.New("grabbed by another application")
	reg.Fail = func(c Chord) error {
		if c == taken {
			return errTaken
		}
		return nil
	}

	err := d.Bind("Alt+V", "Alt+B")
	require.ErrorIs(t, err, errTaken)
	require.ErrorIs(t, err, ErrUnavailable)

	assert.ElementsMatch(t, []Chord{mustChord(t, "Ctrl+Shift+V"), mustChord(t, "Ctrl+Shift+B")}, reg.Registered())
	cur, ok := d.Current()
	require.True(t, ok)
	assert.Equal(t, mustChord(t, "Ctrl+Shift+B"), cur.Bookmark)
}

func TestBind_ToleratesMissingRegistration(t *testing.T) {
	reg := NewMemoryRegistrar()
	d := NewDispatcher(reg, &fakeActions{})
	require.NoError(t, d.Bind("Ctrl+Shift+V", "Ctrl+Shift+B"))

	// Something else released one of ours behind our back.
	require.NoError(t, reg.Unregister(mustChord(t, "Ctrl+Shift+V")))

	require.NoError(t, d.Bind("Alt+V", "Alt+B"))
	assert.ElementsMatch(t, []Chord{mustChord(t, "Alt+V"), mustChord(t, "Alt+B")}, reg.Registered())
}

func TestUnbind(t *testing.T) {
	reg := NewMemoryRegistrar()
	d := NewDispatcher(reg, &fakeActions{})
	require.NoError(t, d.Bind("Ctrl+Shift+V", "Ctrl+Shift+B"))

	d.Unbind()
	assert.Empty(t, reg.Registered())
	_, ok := d.Current()
	assert.False(t, ok)

	// Second unbind is harmless.
	d.Unbind()
}
