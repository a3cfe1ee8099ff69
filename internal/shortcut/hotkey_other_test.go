//go:build (linux && !x11hotkey) || (!linux && !darwin && !windows)

package shortcut

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSystemRegistrar_FallsBackToMemory(t *testing.T) {
	reg := NewSystemRegistrar()
	mem, ok := reg.(*MemoryRegistrar)
	require.True(t, ok, "got %T", reg)

	acts := &fakeActions{}
	d := NewDispatcher(reg, acts)
	require.NoError(t, d.Bind("Ctrl+Shift+V", "Ctrl+Shift+B"))
	assert.Len(t, mem.Registered(), 2)

	assert.True(t, mem.Press(mustChord(t, "Ctrl+Shift+V")))
	assert.Equal(t, int32(1), acts.shows.Load())
}
