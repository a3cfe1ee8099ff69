// clipmark: clipboard history with bookmarks.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"go.klb.dev/clipmark/internal/logging"
)

// Version is set at build time via -ldflags "-X main.Version=x.y.z".
var Version = "dev"

func main() {
	root := &cobra.Command{
		Use:   "clipmark",
		Short: "Clipboard history with bookmarks",
		Long: `clipmark keeps a short, deduplicated history of the text you copy and
lets you pin entries as bookmarks. Both are reachable from a tray menu and
from two global shortcuts.

Run "clipmark daemon" once per desktop session. The other sub-commands talk
to the running daemon over a local socket.

Config file search order (first found wins):
  /etc/clipmark/clipmark.toml
  $HOME/.config/clipmark/clipmark.toml
  path supplied via --config

All flags can be set via CLIPMARK_<FLAG> env vars or config-file keys.
See "clipmark daemon --help" for the full flag reference.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newDaemonCmd(),
		newHistoryCmd(),
		newDeleteCmd(),
		newBookmarksCmd(),
		newBookmarkCmd(),
		newConfigCmd(),
		newShowCmd(),
		newHideCmd(),
		newActivateCmd(),
		newMenuCmd(),
		newWatchCmd(),
		newStatusCmd(),
		newVersionCmd(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("clipmark %s\n", Version)
		},
	}
}

// resolveLogging sets up the global slog logger after flags are parsed.
func resolveLogging(interactive bool, formatStr, levelStr string) {
	fallback := slog.LevelInfo
	if interactive {
		fallback = slog.LevelDebug
	}
	logging.Setup(logging.ParseFormat(formatStr), logging.ParseLevel(levelStr, fallback))
}
