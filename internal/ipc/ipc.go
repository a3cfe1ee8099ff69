// Package ipc locates the Unix socket a running clipmark daemon listens on
// for commands from the CLI.
//
// The socket is owner-only; no further auth is done. Windows 10 and later
// support AF_UNIX, so the same code serves every platform.
package ipc

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"path/filepath"
	"time"
)

const (
	socketName  = "clipmark.sock"
	dialTimeout = 2 * time.Second
)

// SocketPath returns the path of the IPC socket:
//
//   - $CLIPMARK_SOCKET when set
//   - $XDG_RUNTIME_DIR/clipmark.sock when XDG_RUNTIME_DIR is set
//   - $TMPDIR/clipmark.sock otherwise
func SocketPath() string {
	if s := os.Getenv("CLIPMARK_SOCKET"); s != "" {
		return s
	}
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, socketName)
	}
	return filepath.Join(os.TempDir(), socketName)
}

// IsRunning reports whether a daemon appears to be listening on the IPC
// socket. It does a cheap dial-and-close; no data is exchanged.
func IsRunning() bool {
	c, err := Dial()
	if err != nil {
		return false
	}
	_ = c.Close()
	return true
}

// ErrAlreadyRunning is returned by Listen when another daemon answers on the
// socket.
var ErrAlreadyRunning = errors.New("clipmark daemon already running")

// Listen creates a listener on the IPC socket path, removing any stale
// socket file left by a crashed run.
func Listen() (net.Listener, error) {
	path := SocketPath()
	if IsRunning() {
		return nil, fmt.Errorf("%w on %s", ErrAlreadyRunning, path)
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("remove stale socket: %w", err)
	}
	ln, err := net.Listen("unix", path)
	if err != nil {
		return nil, err
	}
	_ = os.Chmod(path, 0o600)
	return ln, nil
}

// Dial connects to the daemon's IPC socket.
func Dial() (net.Conn, error) {
	return net.DialTimeout("unix", SocketPath(), dialTimeout)
}
