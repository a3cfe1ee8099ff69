package ipc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSocketPath(t *testing.T) {
	t.Setenv("CLIPMARK_SOCKET", "/tmp/explicit.sock")
	assert.Equal(t, "/tmp/explicit.sock", SocketPath())

	t.Setenv("CLIPMARK_SOCKET", "")
	t.Setenv("XDG_RUNTIME_DIR", "/run/user/1000")
	assert.Equal(t, filepath.Join("/run/user/1000", "clipmark.sock"), SocketPath())
}

func TestListen_RejectsSecondDaemon(t *testing.T) {
	// sun_path is limited to ~100 bytes, t.TempDir can exceed that.
	dir, err := os.MkdirTemp("", "cm")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(dir) })
	t.Setenv("CLIPMARK_SOCKET", filepath.Join(dir, "c.sock"))

	assert.False(t, IsRunning())
	ln, err := Listen()
	require.NoError(t, err)
	defer ln.Close()
	go func() {
		for {
			c, err := ln.Accept()
			if err != nil {
				return
			}
			_ = c.Close()
		}
	}()

	assert.True(t, IsRunning())
	_, err = Listen()
	assert.ErrorIs(t, err, ErrAlreadyRunning)
}
