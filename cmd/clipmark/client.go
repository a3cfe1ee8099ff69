package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"go.klb.dev/clipmark/internal/ipc"
	"go.klb.dev/clipmark/internal/message"
	"go.klb.dev/clipmark/internal/wire"
)

var errNotRunning = errors.New("clipmark daemon is not running (start it with \"clipmark daemon\")")

// dialDaemon connects to the running daemon.
func dialDaemon() (*wire.Conn, error) {
	conn, err := ipc.Dial()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errNotRunning, ipc.SocketPath())
	}
	return wire.New(conn), nil
}

// call sends req and waits for its response. ERROR replies come back as
// *message.RemoteError.
func call(req *message.Message) (*message.Message, error) {
	wc, err := dialDaemon()
	if err != nil {
		return nil, err
	}
	defer wc.Close()

	if err := wc.WriteMsg(req); err != nil {
		return nil, fmt.Errorf("send: %w", err)
	}
	wc.SetReadDeadline(callTimeout)
	resp, err := wc.ReadMsg()
	if err != nil {
		return nil, fmt.Errorf("receive: %w", err)
	}
	if resp.ID != req.ID {
		return nil, fmt.Errorf("response id %q does not match request %q", resp.ID, req.ID)
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	return resp, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
