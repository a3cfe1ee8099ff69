package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"go.klb.dev/clipmark/internal/app"
	"go.klb.dev/clipmark/internal/bookmark"
	"go.klb.dev/clipmark/internal/clip"
	"go.klb.dev/clipmark/internal/config"
	"go.klb.dev/clipmark/internal/hub"
	"go.klb.dev/clipmark/internal/ipc"
	"go.klb.dev/clipmark/internal/ipcserver"
	"go.klb.dev/clipmark/internal/menu"
	"go.klb.dev/clipmark/internal/message"
	"go.klb.dev/clipmark/internal/metrics"
	"go.klb.dev/clipmark/internal/monitor"
	"go.klb.dev/clipmark/internal/paste"
	"go.klb.dev/clipmark/internal/persist"
	"go.klb.dev/clipmark/internal/shortcut"
	"go.klb.dev/clipmark/internal/tray"
)

const defaultDebounce = 50 * time.Millisecond

func newDaemonCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Watch the clipboard and serve the tray menu and shortcuts",
		Long: `Starts the clipmark daemon: it records clipboard history, keeps
bookmarks and settings in the data directory, registers the global shortcuts
and shows the tray menu. Other clipmark commands talk to it over a local
socket ($CLIPMARK_SOCKET overrides its path).

Config file search order:
  /etc/clipmark/clipmark.toml
  $HOME/.config/clipmark/clipmark.toml
  path supplied via --config

Precedence (lowest → highest): defaults → config file → CLIPMARK_* env vars → flags`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runDaemon(v) },
	}

	f := cmd.Flags()
	f.String("data-dir", "", "directory holding config.json and bookmarks.json (default: user config dir)")
	f.Bool("headless", false, "no clipboard, shortcuts, paste or tray; IPC only")
	f.Bool("no-hotkeys", false, "do not register global shortcuts")
	f.Bool("tray", true, "show the system tray menu")
	f.String("metrics-addr", "", "serve Prometheus metrics on this address (e.g. 127.0.0.1:9464)")
	f.Duration("debounce", defaultDebounce, "menu rebuild debounce window")
	f.Duration("paste-delay", paste.DefaultDelay, "wait before injecting the paste keystroke")
	f.Bool("no-paste", false, "only write the clipboard when a menu entry is activated")
	addLoggingFlags(cmd)
	addConfigFlag(cmd)

	return cmd
}

// daemon holds everything runDaemon wires together.
type daemon struct {
	startedAt time.Time
	gw        *persist.Gateway
	actx      *app.Context
	facade    *app.Facade
	hub       *hub.Hub
	menu      *menu.Synchronizer
	backend   clip.Backend
	reg       shortcut.Registrar
	dispatch  *shortcut.Dispatcher
	metrics   *metrics.Metrics
}

func runDaemon(v *viper.Viper) error {
	setupLogging(v)

	dataDir := v.GetString("data-dir")
	if dataDir == "" {
		dir, err := persist.DefaultDir()
		if err != nil {
			return err
		}
		dataDir = dir
	}
	headless := v.GetBool("headless")

	ln, err := ipc.Listen()
	if err != nil {
		return fmt.Errorf("ipc: %w", err)
	}
	defer os.Remove(ipc.SocketPath())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d := &daemon{
		startedAt: time.Now(),
		gw:        persist.New(dataDir),
		hub:       hub.New(),
		metrics:   metrics.New(),
	}
	d.actx = app.NewContext(d.gw.LoadConfig(), d.gw.LoadBookmarks())
	d.menu = menu.NewSynchronizer(d.actx.Bookmarks, d.actx.History, d.hub, v.GetDuration("debounce"), d.metrics)

	var inj paste.Injector = paste.Nop{}
	switch {
	case headless:
		d.backend = clip.NewHeadless()
		d.reg = shortcut.NewMemoryRegistrar()
	default:
		d.backend = clip.New()
		if !v.GetBool("no-paste") {
			inj = paste.New(v.GetDuration("paste-delay"))
		}
		if v.GetBool("no-hotkeys") {
			d.reg = shortcut.NewMemoryRegistrar()
		} else {
			d.reg = shortcut.NewSystemRegistrar()
		}
	}
	defer d.backend.Close()

	d.facade = app.New(d.actx, app.Deps{
		Persist:   d.gw,
		Menu:      d.menu,
		Events:    d.hub,
		Clipboard: d.backend,
		Paste:     inj,
		Metrics:   d.metrics,
		Quit:      stop,
	})
	d.dispatch = shortcut.NewDispatcher(d.reg, d.facade)
	d.facade.AttachShortcuts(d.dispatch)

	cfg := d.actx.Config.Get()
	slog.Info("clipmark daemon starting",
		"version", Version,
		"data_dir", dataDir,
		"clipboard", d.backend.Name(),
		"max_items", cfg.MaxItems,
		"bookmarks", d.actx.Bookmarks.Len(),
		"socket", ipc.SocketPath(),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		d.menu.Run(gctx)
		return nil
	})
	g.Go(func() error {
		monitor.New(d.backend, d.facade, d.metrics).Run(gctx)
		return nil
	})
	g.Go(func() error {
		err := d.gw.Watch(gctx, persist.Handlers{
			Config: func(cfg config.AppConfig) {
				if err := d.facade.ReloadConfig(cfg); err != nil {
					slog.Warn("ignoring edited config", "err", err)
				}
			},
			Bookmarks: func(list []bookmark.Bookmark) { d.facade.ReloadBookmarks(list) },
		})
		if err != nil {
			slog.Warn("data dir watch unavailable", "err", err)
		}
		return nil
	})
	g.Go(func() error {
		return ipcserver.New(d.facade, d.hub, d.metrics, d.status).Serve(gctx, ln)
	})
	if addr := v.GetString("metrics-addr"); addr != "" {
		g.Go(func() error { return serveMetrics(gctx, addr, d.metrics) })
	}

	d.menu.Trigger()
	if !cfg.StartMinimized {
		d.facade.ShowWindow()
	}

	if v.GetBool("tray") && !headless {
		tray.New(d.facade, d.hub).Run(gctx, d.bindShortcuts)
		stop()
	} else {
		runOnMain(func() {
			d.bindShortcuts()
			<-gctx.Done()
		})
	}

	d.dispatch.Unbind()
	err = g.Wait()
	slog.Info("clipmark daemon stopped")
	return err
}

// bindShortcuts registers the configured shortcuts. A failure leaves the
// daemon running without them.
func (d *daemon) bindShortcuts() {
	if err := d.facade.BindShortcuts(); err != nil {
		slog.Warn("global shortcuts unavailable", "err", err)
	}
}

func (d *daemon) status() message.Status {
	st := message.Status{
		PID:       os.Getpid(),
		Version:   Version,
		StartedAt: d.startedAt,
		DataDir:   d.gw.Dir(),
		Clipboard: d.backend.Name(),
		History:   d.actx.History.Len(),
		Capacity:  d.actx.History.Capacity(),
		Bookmarks: d.actx.Bookmarks.Len(),
	}
	if b, ok := d.dispatch.Current(); ok {
		st.Shortcuts = []string{b.Open.String(), b.Bookmark.String()}
	}
	return st
}

// serveMetrics runs the Prometheus endpoint until ctx is done.
func serveMetrics(ctx context.Context, addr string, m *metrics.Metrics) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	slog.Info("metrics listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics: %w", err)
	}
	return nil
}
