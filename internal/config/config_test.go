package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, uint(10), cfg.MaxItems)
	assert.Equal(t, "Ctrl+Shift+V", cfg.OpenShortcut)
	assert.Equal(t, "Ctrl+Shift+B", cfg.BookmarkShortcut)
	assert.False(t, cfg.StartMinimized)
	assert.NoError(t, Validate(cfg))
}

func TestValidate_RequiresShortcuts(t *testing.T) {
	cfg := Default()
	cfg.OpenShortcut = ""
	cfg.BookmarkShortcut = ""

	err := Validate(cfg)
	require.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "openShortcut is required")
	assert.Contains(t, err.Error(), "bookmarkShortcut is required")
}

func TestValidate_ZeroMaxItemsAllowed(t *testing.T) {
	cfg := Default()
	cfg.MaxItems = 0
	assert.NoError(t, Validate(cfg))
}

func TestAppConfig_JSONShape(t *testing.T) {
	raw, err := json.Marshal(Default())
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"maxItems":10,"openShortcut":"Ctrl+Shift+V","bookmarkShortcut":"Ctrl+Shift+B","startMinimized":false}`,
		string(raw))
}

func TestStore_GetSet(t *testing.T) {
	s := NewStore(Default())

	next := Default()
	next.MaxItems = 3
	next.StartMinimized = true
	s.Set(next)

	assert.Equal(t, next, s.Get())
}
