//go:build windows

package clip

// #cgo LDFLAGS: -luser32
//
// #include <windows.h>
// #include <stdlib.h>
//
// static HWND clipmark_create_listener_window();
// static void clipmark_pump_messages(HWND hwnd, int* changed);
//
// static LRESULT CALLBACK clipmark_wnd_proc(HWND hwnd, UINT msg, WPARAM wp, LPARAM lp) {
//     if (msg == WM_CLIPBOARDUPDATE) {
//         PostMessage(hwnd, WM_USER + 1, 0, 0);
//         return 0;
//     }
//     return DefWindowProc(hwnd, msg, wp, lp);
// }
//
// static HWND clipmark_create_listener_window() {
//     WNDCLASS wc = {0};
//     wc.lpfnWndProc   = clipmark_wnd_proc;
//     wc.hInstance     = GetModuleHandle(NULL);
//     wc.lpszClassName = "ClipmarkClipboard";
//     RegisterClass(&wc);
//     HWND hwnd = CreateWindowEx(0, "ClipmarkClipboard", NULL, 0,
//         0, 0, 0, 0, HWND_MESSAGE, NULL, GetModuleHandle(NULL), NULL);
//     AddClipboardFormatListener(hwnd);
//     return hwnd;
// }
//
// static void clipmark_pump_messages(HWND hwnd, int* changed) {
//     MSG msg;
//     *changed = 0;
//     while (PeekMessage(&msg, hwnd, 0, 0, PM_REMOVE)) {
//         if (msg.message == WM_USER + 1) { *changed = 1; }
//         TranslateMessage(&msg);
//         DispatchMessage(&msg);
//     }
// }
import "C"

import (
	"log/slog"
	"time"

	"golang.design/x/clipboard"
)

const windowsPumpInterval = 50 * time.Millisecond

type windowsBackend struct {
	hwnd    C.HWND
	watchCh chan struct{}
	done    chan struct{}
}

// New returns the Windows clipboard backend. A hidden message-only window
// registered with AddClipboardFormatListener reports changes.
func New() Backend {
	if err := clipboard.Init(); err != nil {
		slog.Warn("clipboard unavailable, running headless", "err", err)
		return NewHeadless()
	}
	b := &windowsBackend{
		hwnd:    C.clipmark_create_listener_window(),
		watchCh: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go b.pump()
	return b
}

func (b *windowsBackend) Name() string { return "Windows clipboard" }

func (b *windowsBackend) pump() {
	t := time.NewTicker(windowsPumpInterval)
	defer t.Stop()
	for {
		select {
		case <-b.done:
			return
		case <-t.C:
			var changed C.int
			C.clipmark_pump_messages(b.hwnd, &changed)
			if changed != 0 {
				select {
				case b.watchCh <- struct{}{}:
				default:
				}
			}
		}
	}
}

func (b *windowsBackend) Read() (string, bool, error) { return readText() }
func (b *windowsBackend) Write(text string) error     { return writeText(text) }
func (b *windowsBackend) Watch() <-chan struct{}      { return b.watchCh }
func (b *windowsBackend) Close()                      { close(b.done) }
