// Package message defines the clipmark IPC protocol.
//
// All messages are newline-delimited JSON, one message per line. A client
// sends one REQUEST per connection and reads one RESPONSE or ERROR, except
// for the watch command, which is answered by a stream of EVENT messages
// until the client hangs up.
package message

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"go.klb.dev/clipmark/internal/bookmark"
	"go.klb.dev/clipmark/internal/config"
	"go.klb.dev/clipmark/internal/hub"
	"go.klb.dev/clipmark/internal/menu"
)

// Type identifies the kind of message.
type Type string

const (
	TypeRequest  Type = "REQUEST"
	TypeResponse Type = "RESPONSE"
	TypeEvent    Type = "EVENT"
	TypeError    Type = "ERROR"
)

// Command names a facade operation.
type Command string

const (
	CmdGetConfig           Command = "get_config"
	CmdSetConfig           Command = "set_config"
	CmdGetBookmarks        Command = "get_bookmarks"
	CmdAddBookmark         Command = "add_bookmark"
	CmdRemoveBookmark      Command = "remove_bookmark"
	CmdToggleBookmark      Command = "toggle_bookmark"
	CmdGetClipboardItems   Command = "get_clipboard_items"
	CmdDeleteClipboardItem Command = "delete_clipboard_item"
	CmdShowWindow          Command = "show_window"
	CmdHideWindow          Command = "hide_window"
	CmdActivate            Command = "activate"
	CmdGetMenu             Command = "get_menu"
	CmdWatch               Command = "watch"
	CmdStatus              Command = "status"
)

// Code classifies an ERROR so clients can react without parsing text.
type Code string

const (
	CodeIndexOutOfRange Code = "index_out_of_range"
	CodeInvalidChord    Code = "invalid_chord"
	CodeInvalidConfig   Code = "invalid_config"
	CodeShortcutInUse   Code = "shortcut_unavailable"
	CodePersistence     Code = "persistence"
	CodeUnknownMenuItem Code = "unknown_menu_item"
	CodeBadRequest      Code = "bad_request"
	CodeInternal        Code = "internal"
)

// Status describes a running daemon.
type Status struct {
	PID         int       `json:"pid"`
	Version     string    `json:"version"`
	StartedAt   time.Time `json:"started_at"`
	DataDir     string    `json:"data_dir"`
	Clipboard   string    `json:"clipboard"`
	Shortcuts   []string  `json:"shortcuts,omitempty"`
	History     int       `json:"history"`
	Capacity    uint      `json:"capacity"`
	Bookmarks   int       `json:"bookmarks"`
	Subscribers []string  `json:"subscribers,omitempty"`
}

// Message is the top-level wire envelope.
type Message struct {
	// Always present
	Type Type   `json:"type"`
	ID   string `json:"id,omitempty"`

	// REQUEST
	Command Command           `json:"command,omitempty"`
	Text    string            `json:"text,omitempty"`
	Index   *int              `json:"index,omitempty"`
	MenuID  string            `json:"menu_id,omitempty"`
	Events  []string          `json:"events,omitempty"`
	Config  *config.AppConfig `json:"config,omitempty"`

	// RESPONSE
	Items     []string            `json:"items,omitempty"`
	Bookmarks []bookmark.Bookmark `json:"bookmarks,omitempty"`
	Menu      *menu.Model         `json:"menu,omitempty"`
	Status    *Status             `json:"status,omitempty"`

	// EVENT
	Event *hub.Event `json:"event,omitempty"`

	// ERROR
	Error string `json:"error,omitempty"`
	Code  Code   `json:"code,omitempty"`
}

// NewRequest returns a REQUEST for cmd with a fresh id.
func NewRequest(cmd Command) *Message {
	return &Message{Type: TypeRequest, ID: uuid.NewString(), Command: cmd}
}

// Reply returns an empty RESPONSE correlated with m.
func (m *Message) Reply() *Message {
	return &Message{Type: TypeResponse, ID: m.ID}
}

// Fail returns an ERROR correlated with m.
func (m *Message) Fail(code Code, err error) *Message {
	return &Message{Type: TypeError, ID: m.ID, Code: code, Error: err.Error()}
}

// Err converts an ERROR message back into a Go error. It returns nil for
// any other type.
func (m *Message) Err() error {
	if m.Type != TypeError {
		return nil
	}
	return &RemoteError{Code: m.Code, Message: m.Error}
}

// RemoteError is an error reported by the daemon.
type RemoteError struct {
	Code    Code
	Message string
}

func (e *RemoteError) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Code)
}

// Encode serialises the message to JSON without a trailing newline.
func (m *Message) Encode() ([]byte, error) {
	return json.Marshal(m)
}

// Decode deserialises a message from raw JSON bytes.
func Decode(b []byte) (*Message, error) {
	var m Message
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("message decode: %w", err)
	}
	return &m, nil
}
