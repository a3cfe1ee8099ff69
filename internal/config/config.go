// Package config defines the user-editable application settings and the
// store that holds the current value.
package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ErrInvalid wraps every validation failure returned by Validate.
var ErrInvalid = errors.New("invalid config")

// AppConfig is the persisted user configuration (config.json).
type AppConfig struct {
	MaxItems         uint   `json:"maxItems"`
	OpenShortcut     string `json:"openShortcut" validate:"required"`
	BookmarkShortcut string `json:"bookmarkShortcut" validate:"required"`
	StartMinimized   bool   `json:"startMinimized"`
}

// Default returns the configuration used when nothing valid is on disk.
func Default() AppConfig {
	return AppConfig{
		MaxItems:         10,
		OpenShortcut:     "Ctrl+Shift+V",
		BookmarkShortcut: "Ctrl+Shift+B",
		StartMinimized:   false,
	}
}

var validate = validator.New()

// Validate checks the struct tags of cfg. Chord syntax is checked separately
// by the shortcut package.
func Validate(cfg AppConfig) error {
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("%w: %w", ErrInvalid, err)
		}
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fieldMessage(fe))
		}
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
	}
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
	switch fe.Tag() {
	case "required":
		return field + " is required"
	default:
		return field + " is invalid"
	}
}

// Store holds the current AppConfig. It has no side effects of its own;
// callers orchestrate shortcut rebinding, history resizing and persistence.
type Store struct {
	mu  sync.RWMutex
	cfg AppConfig
}

// NewStore returns a Store holding cfg.
func NewStore(cfg AppConfig) *Store {
	return &Store{cfg: cfg}
}

// Get returns a copy of the current config.
func (s *Store) Get() AppConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Set replaces the whole config.
func (s *Store) Set(cfg AppConfig) {
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
}
