// Package ipcserver answers CLI requests arriving on the IPC socket by
// calling the command facade, and streams hub events to watch clients.
package ipcserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"go.klb.dev/clipmark/internal/bookmark"
	"go.klb.dev/clipmark/internal/config"
	"go.klb.dev/clipmark/internal/hub"
	"go.klb.dev/clipmark/internal/menu"
	"go.klb.dev/clipmark/internal/message"
	"go.klb.dev/clipmark/internal/metrics"
	"go.klb.dev/clipmark/internal/persist"
	"go.klb.dev/clipmark/internal/shortcut"
	"go.klb.dev/clipmark/internal/wire"
)

const (
	requestTimeout = 10 * time.Second
	watchBuffer    = 32
)

// Facade is the set of commands the server exposes.
type Facade interface {
	GetConfig() config.AppConfig
	SetConfig(config.AppConfig) error
	GetBookmarks() []bookmark.Bookmark
	AddBookmark(content string) error
	RemoveBookmark(index int) error
	ToggleBookmark(content string) error
	GetClipboardItems() []string
	DeleteClipboardItem(text string)
	ShowWindow()
	HideWindow()
	Activate(id string) error
	Menu() menu.Model
}

// Server handles IPC connections.
type Server struct {
	f      Facade
	h      *hub.Hub
	m      *metrics.Metrics
	status func() message.Status

	wg sync.WaitGroup
}

// New returns a Server. status may be nil, in which case the status command
// reports only what the facade knows.
func New(f Facade, h *hub.Hub, m *metrics.Metrics, status func() message.Status) *Server {
	return &Server{f: f, h: h, m: m, status: status}
}

// Serve accepts connections on ln until ctx is done, then closes ln and
// waits for open connections to finish.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()
	defer s.wg.Wait()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("ipc accept: %w", err)
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.ServeConn(ctx, conn)
		}()
	}
}

// ServeConn handles the single request on conn and closes it.
func (s *Server) ServeConn(ctx context.Context, conn net.Conn) {
	wc := wire.New(conn)
	defer wc.Close()

	wc.SetReadDeadline(requestTimeout)
	req, err := wc.ReadMsg()
	if err != nil {
		if !errors.Is(err, io.EOF) {
			slog.Debug("ipc: bad request", "err", err)
			_ = wc.WriteMsg(&message.Message{Type: message.TypeError, Code: message.CodeBadRequest, Error: err.Error()})
		}
		return
	}
	wc.SetReadDeadline(0)

	if req.Type != message.TypeRequest {
		_ = wc.WriteMsg(req.Fail(message.CodeBadRequest, fmt.Errorf("expected %s, got %q", message.TypeRequest, req.Type)))
		return
	}

	slog.Debug("ipc: request", "id", req.ID, "command", req.Command)

	if req.Command == message.CmdWatch {
		s.watch(ctx, wc, req)
		return
	}

	resp := s.handle(req)
	if err := wc.WriteMsg(resp); err != nil {
		slog.Debug("ipc: write response failed", "id", req.ID, "err", err)
	}
}

// handle runs one non-streaming command.
func (s *Server) handle(req *message.Message) *message.Message {
	resp, err := s.dispatch(req)
	s.m.Command(string(req.Command), err)
	if err != nil {
		code := codeFor(err)
		if code == message.CodeInternal || code == message.CodePersistence {
			slog.Warn("ipc: command failed", "command", req.Command, "err", err)
		}
		return req.Fail(code, err)
	}
	return resp
}

var (
	errMissingArg = errors.New("missing argument")
	errBadRequest = errors.New("bad request")
)

func (s *Server) dispatch(req *message.Message) (*message.Message, error) {
	resp := req.Reply()

	switch req.Command {
	case message.CmdGetConfig:
		cfg := s.f.GetConfig()
		resp.Config = &cfg

	case message.CmdSetConfig:
		if req.Config == nil {
			return nil, fmt.Errorf("%w: config", errMissingArg)
		}
		if err := s.f.SetConfig(*req.Config); err != nil {
			return nil, err
		}
		cfg := s.f.GetConfig()
		resp.Config = &cfg

	case message.CmdGetBookmarks:
		resp.Bookmarks = s.f.GetBookmarks()

	case message.CmdAddBookmark:
		if err := s.f.AddBookmark(req.Text); err != nil {
			return nil, err
		}
		resp.Bookmarks = s.f.GetBookmarks()

	case message.CmdRemoveBookmark:
		if req.Index == nil {
			return nil, fmt.Errorf("%w: index", errMissingArg)
		}
		if err := s.f.RemoveBookmark(*req.Index); err != nil {
			return nil, err
		}
		resp.Bookmarks = s.f.GetBookmarks()

	case message.CmdToggleBookmark:
		if err := s.f.ToggleBookmark(req.Text); err != nil {
			return nil, err
		}
		resp.Bookmarks = s.f.GetBookmarks()

	case message.CmdGetClipboardItems:
		resp.Items = s.f.GetClipboardItems()

	case message.CmdDeleteClipboardItem:
		s.f.DeleteClipboardItem(req.Text)
		resp.Items = s.f.GetClipboardItems()

	case message.CmdShowWindow:
		s.f.ShowWindow()

	case message.CmdHideWindow:
		s.f.HideWindow()

	case message.CmdActivate:
		if req.MenuID == "" {
			return nil, fmt.Errorf("%w: menu_id", errMissingArg)
		}
		if err := s.f.Activate(req.MenuID); err != nil {
			return nil, err
		}

	case message.CmdGetMenu:
		m := s.f.Menu()
		resp.Menu = &m

	case message.CmdStatus:
		st := message.Status{}
		if s.status != nil {
			st = s.status()
		}
		st.Subscribers = s.h.Subscribers()
		resp.Status = &st

	default:
		return nil, fmt.Errorf("%w: unknown command %q", errBadRequest, req.Command)
	}
	return resp, nil
}

// watch streams hub events to the client until it hangs up or ctx ends.
func (s *Server) watch(ctx context.Context, wc *wire.Conn, req *message.Message) {
	for _, name := range req.Events {
		if !slices.Contains(hub.Names, name) {
			_ = wc.WriteMsg(req.Fail(message.CodeBadRequest, fmt.Errorf("unknown event %q", name)))
			return
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// The client sends nothing more; a read returning means it hung up.
	go func() {
		_, _ = wc.ReadMsg()
		cancel()
	}()

	sub := hub.NewChanSubscriber("ipc:watch/"+uuid.NewString(), req.Events, watchBuffer)
	if err := wc.WriteMsg(req.Reply()); err != nil {
		return
	}
	s.h.Register(sub)
	defer s.h.Unregister(sub)
	s.m.Command(string(req.Command), nil)

	slog.Info("watch started", "subscriber", sub.ID(), "events", req.Events)
	defer slog.Info("watch ended", "subscriber", sub.ID())

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-sub.C():
			if err := wc.WriteMsg(&message.Message{Type: message.TypeEvent, ID: req.ID, Event: &ev}); err != nil {
				return
			}
		}
	}
}

func codeFor(err error) message.Code {
	switch {
	case errors.Is(err, bookmark.ErrIndexOutOfRange):
		return message.CodeIndexOutOfRange
	case errors.Is(err, shortcut.ErrInvalidChord):
		return message.CodeInvalidChord
	case errors.Is(err, shortcut.ErrUnavailable):
		return message.CodeShortcutInUse
	case errors.Is(err, config.ErrInvalid):
		return message.CodeInvalidConfig
	case errors.Is(err, persist.ErrSave):
		return message.CodePersistence
	case errors.Is(err, menu.ErrUnknownItem):
		return message.CodeUnknownMenuItem
	case errors.Is(err, errMissingArg), errors.Is(err, errBadRequest):
		return message.CodeBadRequest
	}
	return message.CodeInternal
}
