package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/clipmark/internal/hub"
	"go.klb.dev/clipmark/internal/message"
)

func newWatchCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stream daemon events as JSON lines",
		Long: `Prints one JSON object per event until interrupted. Event names:
clipboard-updated, bookmarks-updated, config-updated, menu-updated,
show-window, hide-window.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runWatch(v) },
	}

	cmd.Flags().StringSlice("events", nil, "only these events (default: all)")
	addConfigFlag(cmd)
	return cmd
}

func runWatch(v *viper.Viper) error {
	wc, err := dialDaemon()
	if err != nil {
		return err
	}
	defer wc.Close()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	defer signal.Stop(sig)
	go func() {
		<-sig
		_ = wc.Close()
	}()

	req := message.NewRequest(message.CmdWatch)
	req.Events = v.GetStringSlice("events")
	if err := wc.WriteMsg(req); err != nil {
		return fmt.Errorf("send: %w", err)
	}
	ack, err := wc.ReadMsg()
	if err != nil {
		return fmt.Errorf("receive: %w", err)
	}
	if err := ack.Err(); err != nil {
		return err
	}

	for {
		msg, err := wc.ReadMsg()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}
		if msg.Event == nil {
			continue
		}
		if err := printEvent(msg.Event); err != nil {
			return err
		}
	}
}

// printEvent writes ev as a single JSON line.
func printEvent(ev *hub.Event) error {
	return json.NewEncoder(os.Stdout).Encode(ev)
}
