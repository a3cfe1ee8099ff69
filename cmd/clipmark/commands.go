package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/clipmark/internal/config"
	"go.klb.dev/clipmark/internal/menu"
	"go.klb.dev/clipmark/internal/message"
)

const callTimeout = 10 * time.Second

// simpleCmd builds a command that sends one request built by build and
// hands the response to show.
func simpleCmd(use, short string, args cobra.PositionalArgs, build func(args []string) (*message.Message, error), show func(v *viper.Viper, resp *message.Message) error) *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:     use,
		Short:   short,
		Args:    args,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE: func(_ *cobra.Command, args []string) error {
			req, err := build(args)
			if err != nil {
				return err
			}
			resp, err := call(req)
			if err != nil {
				return err
			}
			if show == nil {
				return nil
			}
			return show(v, resp)
		},
	}
	cmd.Flags().Bool("json", false, "output raw JSON")
	addConfigFlag(cmd)
	return cmd
}

func request(cmd message.Command) func([]string) (*message.Message, error) {
	return func([]string) (*message.Message, error) { return message.NewRequest(cmd), nil }
}

func textRequest(cmd message.Command) func([]string) (*message.Message, error) {
	return func(args []string) (*message.Message, error) {
		req := message.NewRequest(cmd)
		req.Text = strings.Join(args, " ")
		return req, nil
	}
}

func showItems(v *viper.Viper, resp *message.Message) error {
	if v.GetBool("json") {
		return printJSON(nonNil(resp.Items))
	}
	for i, it := range resp.Items {
		fmt.Printf("%d\t%s\n", i, menu.Label(it))
	}
	return nil
}

func showBookmarks(v *viper.Viper, resp *message.Message) error {
	if v.GetBool("json") {
		return printJSON(nonNil(resp.Bookmarks))
	}
	for i, b := range resp.Bookmarks {
		fmt.Printf("%d\t%s\n", i, menu.Label(b.Content))
	}
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func newHistoryCmd() *cobra.Command {
	return simpleCmd("history", "List clipboard history, newest first", cobra.NoArgs,
		request(message.CmdGetClipboardItems), showItems)
}

func newDeleteCmd() *cobra.Command {
	return simpleCmd("delete <text>", "Remove an entry from clipboard history", cobra.MinimumNArgs(1),
		textRequest(message.CmdDeleteClipboardItem), showItems)
}

func newBookmarksCmd() *cobra.Command {
	return simpleCmd("bookmarks", "List bookmarks", cobra.NoArgs,
		request(message.CmdGetBookmarks), showBookmarks)
}

func newBookmarkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookmark",
		Short: "Add, remove or toggle bookmarks",
	}
	cmd.AddCommand(
		simpleCmd("add <text>", "Append a bookmark", cobra.MinimumNArgs(1),
			textRequest(message.CmdAddBookmark), showBookmarks),
		simpleCmd("rm <index>", "Remove the bookmark at index", cobra.ExactArgs(1),
			func(args []string) (*message.Message, error) {
				i, err := strconv.Atoi(args[0])
				if err != nil {
					return nil, fmt.Errorf("index: %w", err)
				}
				req := message.NewRequest(message.CmdRemoveBookmark)
				req.Index = &i
				return req, nil
			}, showBookmarks),
		simpleCmd("toggle <text>", "Remove a bookmark equal to text, or add one", cobra.MinimumNArgs(1),
			textRequest(message.CmdToggleBookmark), showBookmarks),
	)
	return cmd
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change application settings",
	}

	showConfig := func(v *viper.Viper, resp *message.Message) error {
		if v.GetBool("json") || resp.Config == nil {
			return printJSON(resp.Config)
		}
		w := tabwriter.NewWriter(os.Stdout, 1, 0, 2, ' ', 0)
		fmt.Fprintf(w, "maxItems:\t%d\n", resp.Config.MaxItems)
		fmt.Fprintf(w, "openShortcut:\t%s\n", resp.Config.OpenShortcut)
		fmt.Fprintf(w, "bookmarkShortcut:\t%s\n", resp.Config.BookmarkShortcut)
		fmt.Fprintf(w, "startMinimized:\t%t\n", resp.Config.StartMinimized)
		return w.Flush()
	}

	set := &cobra.Command{
		Use:   "set",
		Short: "Change settings; unset flags keep their current value",
		Long: `Changes settings on the running daemon. The change is all or
nothing: an invalid shortcut leaves settings and shortcuts as they were.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cur, err := call(message.NewRequest(message.CmdGetConfig))
			if err != nil {
				return err
			}
			if cur.Config == nil {
				return errors.New("daemon returned no config")
			}
			cfg := applyConfigFlags(cmd, *cur.Config)

			req := message.NewRequest(message.CmdSetConfig)
			req.Config = &cfg
			_, err = call(req)
			return err
		},
	}
	f := set.Flags()
	f.Uint("max-items", 0, "history size")
	f.String("open-shortcut", "", "shortcut that opens the window, e.g. Ctrl+Shift+V")
	f.String("bookmark-shortcut", "", "shortcut that bookmarks the last copied text")
	f.Bool("start-minimized", false, "start without showing the window")

	cmd.AddCommand(
		simpleCmd("get", "Print current settings", cobra.NoArgs, request(message.CmdGetConfig), showConfig),
		set,
	)
	return cmd
}

// applyConfigFlags overlays the flags the user actually set onto cfg.
func applyConfigFlags(cmd *cobra.Command, cfg config.AppConfig) config.AppConfig {
	f := cmd.Flags()
	if f.Changed("max-items") {
		cfg.MaxItems, _ = f.GetUint("max-items")
	}
	if f.Changed("open-shortcut") {
		cfg.OpenShortcut, _ = f.GetString("open-shortcut")
	}
	if f.Changed("bookmark-shortcut") {
		cfg.BookmarkShortcut, _ = f.GetString("bookmark-shortcut")
	}
	if f.Changed("start-minimized") {
		cfg.StartMinimized, _ = f.GetBool("start-minimized")
	}
	return cfg
}

func newShowCmd() *cobra.Command {
	return simpleCmd("show", "Ask the UI to show its window", cobra.NoArgs, request(message.CmdShowWindow), nil)
}

func newHideCmd() *cobra.Command {
	return simpleCmd("hide", "Ask the UI to hide its window", cobra.NoArgs, request(message.CmdHideWindow), nil)
}

func newActivateCmd() *cobra.Command {
	return simpleCmd("activate <menu-id>", "Activate a menu entry (see \"clipmark menu\")", cobra.ExactArgs(1),
		func(args []string) (*message.Message, error) {
			req := message.NewRequest(message.CmdActivate)
			req.MenuID = args[0]
			return req, nil
		}, nil)
}

func newMenuCmd() *cobra.Command {
	return simpleCmd("menu", "Print the current menu with entry ids", cobra.NoArgs, request(message.CmdGetMenu),
		func(v *viper.Viper, resp *message.Message) error {
			if v.GetBool("json") || resp.Menu == nil {
				return printJSON(resp.Menu)
			}
			w := tabwriter.NewWriter(os.Stdout, 1, 0, 2, ' ', 0)
			for _, it := range resp.Menu.Items {
				switch it.Kind {
				case menu.KindSeparator:
					fmt.Fprintln(w, "\t--------")
				case menu.KindHeader:
					fmt.Fprintf(w, "\t[%s]\n", it.Label)
				default:
					fmt.Fprintf(w, "%s\t%s\n", it.ID, it.Label)
				}
			}
			return w.Flush()
		})
}

func newStatusCmd() *cobra.Command {
	return simpleCmd("status", "Show daemon status", cobra.NoArgs, request(message.CmdStatus),
		func(v *viper.Viper, resp *message.Message) error {
			st := resp.Status
			if v.GetBool("json") || st == nil {
				return printJSON(st)
			}
			w := tabwriter.NewWriter(os.Stdout, 1, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Version:\t%s\n", st.Version)
			fmt.Fprintf(w, "PID:\t%d\n", st.PID)
			fmt.Fprintf(w, "Up since:\t%s (%s)\n", st.StartedAt.Format(time.RFC3339), time.Since(st.StartedAt).Round(time.Second))
			fmt.Fprintf(w, "Data dir:\t%s\n", st.DataDir)
			fmt.Fprintf(w, "Clipboard:\t%s\n", st.Clipboard)
			shortcuts := "-"
			if len(st.Shortcuts) > 0 {
				shortcuts = strings.Join(st.Shortcuts, ", ")
			}
			fmt.Fprintf(w, "Shortcuts:\t%s\n", shortcuts)
			fmt.Fprintf(w, "History:\t%d/%d\n", st.History, st.Capacity)
			fmt.Fprintf(w, "Bookmarks:\t%d\n", st.Bookmarks)
			fmt.Fprintf(w, "Watchers:\t%d\n", len(st.Subscribers))
			return w.Flush()
		})
}
