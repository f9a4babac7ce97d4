package ipc

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testSocket(t *testing.T) string {
	t.Helper()
	// Unix socket paths are length-limited, keep it short.
	return filepath.Join(t.TempDir(), "s.sock")
}

func TestServerRoundTrip(t *testing.T) {
	sock := testSocket(t)

	srv := NewServer(sock, func(req *Request) *Response {
		switch req.Command {
		case CommandStatus:
			return OKData(StatusData{PID: 42, DeviceName: "test-box"})
		case CommandHistory:
			return OKData(HistoryData{Entries: []HistoryEntry{
				{ID: "1", Kind: "drag", Preview: "hi", Chars: 2},
			}})
		default:
			return Errorf("unknown command %q", req.Command)
		}
	}, zap.NewNop())

	require.NoError(t, srv.Start())
	defer srv.Stop()

	resp, err := SendRequest(sock, &Request{Command: CommandStatus})
	require.NoError(t, err)
	require.True(t, resp.IsOK())

	var status StatusData
	require.NoError(t, resp.DecodeData(&status))
	assert.Equal(t, 42, status.PID)
	assert.Equal(t, "test-box", status.DeviceName)

	resp, err = SendRequest(sock, &Request{Command: CommandHistory})
	require.NoError(t, err)
	var hist HistoryData
	require.NoError(t, resp.DecodeData(&hist))
	require.Len(t, hist.Entries, 1)
	assert.Equal(t, "hi", hist.Entries[0].Preview)

	resp, err = SendRequest(sock, &Request{Command: "bogus"})
	require.NoError(t, err)
	assert.False(t, resp.IsOK())
	assert.Contains(t, resp.Message, "bogus")
}

func TestServerStopRemovesSocket(t *testing.T) {
	sock := testSocket(t)

	srv := NewServer(sock, func(req *Request) *Response { return OK("") }, zap.NewNop())
	require.NoError(t, srv.Start())

	require.NoError(t, srv.Stop())

	_, err := SendRequest(sock, &Request{Command: CommandStatus})
	assert.Error(t, err)

	// Stop twice is fine.
	assert.NoError(t, srv.Stop())
}

func TestServerRestartAfterStaleSocket(t *testing.T) {
	sock := testSocket(t)

	srv := NewServer(sock, func(req *Request) *Response { return OK("first") }, zap.NewNop())
	require.NoError(t, srv.Start())
	require.NoError(t, srv.Stop())

	// A second server binds the same path even if the first left traces.
	srv2 := NewServer(sock, func(req *Request) *Response { return OK("second") }, zap.NewNop())
	require.NoError(t, srv2.Start())
	defer srv2.Stop()

	resp, err := SendRequest(sock, &Request{Command: CommandStatus})
	require.NoError(t, err)
	assert.Equal(t, "second", resp.Message)
}

func TestRequestArgHelpers(t *testing.T) {
	req := &Request{
		Command: CommandHistory,
		Args: map[string]interface{}{
			"limit":   float64(7), // JSON numbers decode as float64
			"journal": true,
			"label":   "not a number",
		},
	}

	assert.Equal(t, 7, req.IntArg("limit", 10))
	assert.Equal(t, 10, req.IntArg("missing", 10))
	assert.Equal(t, 10, req.IntArg("label", 10))
	assert.True(t, req.BoolArg("journal"))
	assert.False(t, req.BoolArg("missing"))
}

func TestResponseDecodeDataEmpty(t *testing.T) {
	resp := OK("done")
	var v struct{}
	assert.Error(t, resp.DecodeData(&v))
}
