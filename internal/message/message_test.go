package message

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequest_UniqueIDs(t *testing.T) {
	a, b := NewRequest(CmdStatus), NewRequest(CmdStatus)
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestReplyAndFail_CarryID(t *testing.T) {
	req := NewRequest(CmdRemoveBookmark)

	resp := req.Reply()
	assert.Equal(t, TypeResponse, resp.Type)
	assert.Equal(t, req.ID, resp.ID)
	assert.NoError(t, resp.Err())

	fail := req.Fail(CodeIndexOutOfRange, errors.New("index 5 out of range"))
	assert.Equal(t, req.ID, fail.ID)
	var re *RemoteError
	require.ErrorAs(t, fail.Err(), &re)
	assert.Equal(t, CodeIndexOutOfRange, re.Code)
	assert.Equal(t, "index 5 out of range (index_out_of_range)", re.Error())
}

func TestEncode_IndexZeroSurvives(t *testing.T) {
	req := NewRequest(CmdRemoveBookmark)
	zero := 0
	req.Index = &zero

	raw, err := req.Encode()
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"index":0`)

	back, err := Decode(raw)
	require.NoError(t, err)
	require.NotNil(t, back.Index)
	assert.Equal(t, 0, *back.Index)
}
