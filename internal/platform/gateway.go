package platform

import (
	"fmt"

	atottoClip "github.com/atotto/clipboard"

	"github.com/selclip/selclip-daemon/internal/clipboard"
)

// SystemClipboard accesses the real OS clipboard. Text only; the daemon
// does not handle other clipboard formats.
type SystemClipboard struct{}

// NewGateway returns the system clipboard gateway.
func NewGateway() clipboard.Gateway {
	return &SystemClipboard{}
}

// Read returns the current clipboard text. An empty clipboard reads as an
// empty string without error.
func (c *SystemClipboard) Read() (string, error) {
	text, err := atottoClip.ReadAll()
	if err != nil {
		return "", fmt.Errorf("failed to read clipboard: %w", err)
	}
	return text, nil
}

// Write replaces the clipboard text.
func (c *SystemClipboard) Write(text string) error {
	if err := atottoClip.WriteAll(text); err != nil {
		return fmt.Errorf("failed to write clipboard: %w", err)
	}
	return nil
}
