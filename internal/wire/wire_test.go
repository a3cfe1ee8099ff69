package wire

import (
	"net"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.klb.dev/clipmark/internal/message"
)

func pipe(t *testing.T) (*Conn, *Conn) {
	t.Helper()
	a, b := net.Pipe()
	t.Cleanup(func() {
		_ = a.Close()
		_ = b.Close()
	})
	return New(a), New(b)
}

func TestWriteRead(t *testing.T) {
	client, server := pipe(t)

	req := message.NewRequest(message.CmdAddBookmark)
	req.Text = "line one\nline two"
	go func() { _ = client.WriteMsg(req) }()

	got, err := server.ReadMsg()
	require.NoError(t, err)
	assert.Equal(t, message.TypeRequest, got.Type)
	assert.Equal(t, req.ID, got.ID)
	assert.Equal(t, "line one\nline two", got.Text)
}

func TestReadMsg_TooLarge(t *testing.T) {
	a, b := net.Pipe()
	defer a.Close()
	defer b.Close()
	server := New(b)

	go func() {
		_, _ = a.Write([]byte(`{"type":"REQUEST","text":"` + strings.Repeat("x", MaxMessageSize) + "\"}\n"))
	}()

	_, err := server.ReadMsg()
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestReadMsg_Garbage(t *testing.T) {
	client, server := pipe(t)
	go func() { _, _ = client.Underlying().Write([]byte("not json\n")) }()

	_, err := server.ReadMsg()
	assert.Error(t, err)
}
