package persist

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.klb.dev/clipmark/internal/bookmark"
	"go.klb.dev/clipmark/internal/config"
)

func TestConfig_RoundTrip(t *testing.T) {
	g := New(t.TempDir())
	want := config.AppConfig{
		MaxItems:         25,
		OpenShortcut:     "Alt+Space",
		BookmarkShortcut: "Meta+B",
		StartMinimized:   true,
	}
	require.NoError(t, g.SaveConfig(want))
	assert.Equal(t, want, g.LoadConfig())
}

func TestBookmarks_RoundTrip(t *testing.T) {
	g := New(t.TempDir())
	want := []bookmark.Bookmark{{Content: "a"}, {Content: "ünïcödé"}, {Content: ""}}
	require.NoError(t, g.SaveBookmarks(want))
	assert.Equal(t, want, g.LoadBookmarks())
}

func TestSaveBookmarks_NilWritesEmptyArray(t *testing.T) {
	g := New(t.TempDir())
	require.NoError(t, g.SaveBookmarks(nil))

	raw, err := os.ReadFile(g.BookmarksPath())
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestSave_DocumentShape(t *testing.T) {
	g := New(t.TempDir())
	require.NoError(t, g.SaveConfig(config.Default()))
	require.NoError(t, g.SaveBookmarks([]bookmark.Bookmark{{Content: "x"}}))

	raw, err := os.ReadFile(g.ConfigPath())
	require.NoError(t, err)
	assert.JSONEq(t, `{"maxItems":10,"openShortcut":"Ctrl+Shift+V","bookmarkShortcut":"Ctrl+Shift+B","startMinimized":false}`, string(raw))

	raw, err = os.ReadFile(g.BookmarksPath())
	require.NoError(t, err)
	assert.JSONEq(t, `[{"content":"x"}]`, string(raw))
}

func TestLoad_MissingFallsBackToDefaults(t *testing.T) {
	g := New(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Equal(t, config.Default(), g.LoadConfig())
	assert.Equal(t, []bookmark.Bookmark{}, g.LoadBookmarks())
}

func TestLoad_CorruptFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile), []byte("{not json"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, BookmarksFile), []byte(`{"content":"x"}`), 0o600))

	g := New(dir)
	assert.Equal(t, config.Default(), g.LoadConfig())
	assert.Equal(t, []bookmark.Bookmark{}, g.LoadBookmarks())
}

func TestLoad_InvalidConfigFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile),
		[]byte(`{"maxItems":3,"openShortcut":"","bookmarkShortcut":"Ctrl+B"}`), 0o600))
	assert.Equal(t, config.Default(), New(dir).LoadConfig())
}

func TestLoad_NullBookmarksIsEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, BookmarksFile), []byte(`null`), 0o600))
	assert.Equal(t, []bookmark.Bookmark{}, New(dir).LoadBookmarks())
}

func TestSave_FailureWrapsErrSave(t *testing.T) {
	dir := t.TempDir()
	// A regular file where the data directory should be.
	blocker := filepath.Join(dir, "blocked")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	g := New(blocker)
	assert.ErrorIs(t, g.SaveConfig(config.Default()), ErrSave)
	assert.ErrorIs(t, g.SaveBookmarks(nil), ErrSave)
}

func TestSave_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	g := New(dir)
	require.NoError(t, g.SaveConfig(config.Default()))
	require.NoError(t, g.SaveBookmarks(nil))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{ConfigFile, BookmarksFile}, names)
}

func TestWatch_ReloadsChangedDocuments(t *testing.T) {
	g := New(t.TempDir())

	var (
		mu        sync.Mutex
		gotCfg    *config.AppConfig
		gotMarks  []bookmark.Bookmark
		watchDone = make(chan struct{})
	)
	ctx, cancel := context.WithCancel(context.Background())
	defer func() {
		cancel()
		<-watchDone
	}()

	ready := make(chan struct{})
	go func() {
		defer close(watchDone)
		close(ready)
		_ = g.Watch(ctx, Handlers{
			Config: func(c config.AppConfig) {
				mu.Lock()
				gotCfg = &c
				mu.Unlock()
			},
			Bookmarks: func(b []bookmark.Bookmark) {
				mu.Lock()
				gotMarks = b
				mu.Unlock()
			},
		})
	}()
	<-ready
	// Give the watcher a moment to register the directory.
	time.Sleep(100 * time.Millisecond)

	cfg := config.Default()
	cfg.MaxItems = 42
	require.NoError(t, g.SaveConfig(cfg))
	require.NoError(t, g.SaveBookmarks([]bookmark.Bookmark{{Content: "pinned"}}))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return gotCfg != nil && gotCfg.MaxItems == 42 &&
			len(gotMarks) == 1 && gotMarks[0].Content == "pinned"
	}, 5*time.Second, 20*time.Millisecond)
}
