// Package ipc carries control commands between the CLI and a running
// daemon over a unix socket, one JSON request/response pair per
// connection.
package ipc

import (
	"encoding/json"
	"fmt"
	"time"
)

// Commands understood by the daemon.
const (
	CommandStatus  = "status"
	CommandPaste   = "paste"
	CommandClear   = "clear"
	CommandHistory = "history"
)

// Request is a command sent from the CLI to the daemon.
type Request struct {
	Command string                 `json:"command"`
	Args    map[string]interface{} `json:"args,omitempty"`
}

// IntArg reads a numeric argument. JSON numbers decode as float64, so the
// helper hides the conversion; requests built in-process may carry plain
// ints.
func (r *Request) IntArg(name string, fallback int) int {
	switch n := r.Args[name].(type) {
	case float64:
		return int(n)
	case int:
		return n
	default:
		return fallback
	}
}

// BoolArg reads a boolean argument.
func (r *Request) BoolArg(name string) bool {
	v, ok := r.Args[name]
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// Response is a reply from the daemon to the CLI.
type Response struct {
	Status  string          `json:"status"` // "ok" or "error"
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// OK builds a success response with an optional human-readable message.
func OK(message string) *Response {
	return &Response{Status: "ok", Message: message}
}

// OKData builds a success response carrying a JSON payload.
func OKData(v interface{}) *Response {
	data, err := json.Marshal(v)
	if err != nil {
		return Errorf("failed to encode response data: %v", err)
	}
	return &Response{Status: "ok", Data: data}
}

// Errorf builds an error response.
func Errorf(format string, args ...interface{}) *Response {
	return &Response{Status: "error", Message: fmt.Sprintf(format, args...)}
}

// IsOK reports whether the daemon accepted the request.
func (r *Response) IsOK() bool {
	return r.Status == "ok"
}

// DecodeData unmarshals the response payload into v.
func (r *Response) DecodeData(v interface{}) error {
	if len(r.Data) == 0 {
		return fmt.Errorf("response carries no data")
	}
	return json.Unmarshal(r.Data, v)
}

// StatusData is the payload answering CommandStatus.
type StatusData struct {
	PID        int       `json:"pid"`
	Version    string    `json:"version"`
	DeviceID   string    `json:"device_id"`
	DeviceName string    `json:"device_name"`
	StartedAt  time.Time `json:"started_at"`

	// Secondary clipboard state. Text itself stays in the daemon; only
	// size and age are reported.
	SecondarySet   bool       `json:"secondary_set"`
	SecondaryKind  string     `json:"secondary_kind,omitempty"`
	SecondaryChars int        `json:"secondary_chars,omitempty"`
	CapturedAt     *time.Time `json:"captured_at,omitempty"`

	JournalCount int `json:"journal_count"`
}

// HistoryEntry is one journaled capture as reported to the CLI. The full
// text stays in the daemon; entries carry a preview only.
type HistoryEntry struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	Preview    string    `json:"preview"`
	Chars      int       `json:"chars"`
	CapturedAt time.Time `json:"captured_at"`
}

// HistoryData is the payload answering CommandHistory.
type HistoryData struct {
	Entries []HistoryEntry `json:"entries"`
}
