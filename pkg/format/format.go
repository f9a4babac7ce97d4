// Package format renders daemon state for the terminal: status blocks,
// history listings, relative timestamps.
package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/selclip/selclip-daemon/internal/ipc"
)

// Options controls formatter output.
type Options struct {
	// UseColors enables ANSI colors.
	UseColors bool

	// Now overrides the reference time for relative timestamps. Nil means
	// time.Now.
	Now func() time.Time
}

// DefaultOptions returns options suitable for an interactive terminal.
func DefaultOptions() Options {
	return Options{UseColors: true}
}

// Formatter renders IPC payloads as human-readable text.
type Formatter struct {
	options Options
}

// New creates a new formatter with the given options
func New(opts Options) *Formatter {
	return &Formatter{options: opts}
}

// NewDefault creates a new formatter with default options
func NewDefault() *Formatter {
	return New(DefaultOptions())
}

func (f *Formatter) now() time.Time {
	if f.options.Now != nil {
		return f.options.Now()
	}
	return time.Now()
}

// Status renders the daemon status block.
func (f *Formatter) Status(s ipc.StatusData) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Status:  %s\n", ColorizeIf("running", Green, f.options.UseColors))
	fmt.Fprintf(&b, "PID:     %d\n", s.PID)
	fmt.Fprintf(&b, "Version: %s\n", s.Version)
	fmt.Fprintf(&b, "Device:  %s (%s)\n", s.DeviceName, s.DeviceID)
	fmt.Fprintf(&b, "Uptime:  %s\n", f.now().Sub(s.StartedAt).Round(time.Second))

	if s.SecondarySet {
		held := fmt.Sprintf("%d chars (%s), captured %s",
			s.SecondaryChars, s.SecondaryKind, RelativeTime(*s.CapturedAt, f.now()))
		fmt.Fprintf(&b, "Held:    %s\n", ColorizeIf(held, Cyan, f.options.UseColors))
	} else {
		fmt.Fprintf(&b, "Held:    %s\n", ColorizeIf("nothing captured yet", Gray, f.options.UseColors))
	}

	fmt.Fprintf(&b, "Journal: %d entries\n", s.JournalCount)
	return b.String()
}

// HistoryEntry renders one history line.
func (f *Formatter) HistoryEntry(e ipc.HistoryEntry) string {
	kind := ColorizeIf(fmt.Sprintf("%-12s", e.Kind), kindColor(e.Kind), f.options.UseColors)
	when := ColorizeIf(fmt.Sprintf("%-12s", RelativeTime(e.CapturedAt, f.now())), Gray, f.options.UseColors)
	return fmt.Sprintf("%s %s %6d chars  %q", when, kind, e.Chars, e.Preview)
}

// HistoryList renders a history listing, one entry per line.
func (f *Formatter) HistoryList(entries []ipc.HistoryEntry) string {
	if len(entries) == 0 {
		return ColorizeIf("No captures recorded yet.", Gray, f.options.UseColors) + "\n"
	}
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(f.HistoryEntry(e))
		b.WriteByte('\n')
	}
	return b.String()
}

func kindColor(kind string) string {
	switch kind {
	case "drag":
		return Blue
	case "double-click":
		return Magenta
	case "triple-click":
		return Yellow
	default:
		return Reset
	}
}

// RelativeTime describes t relative to now, coarsening with distance.
func RelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < 0:
		return t.Format(time.RFC3339)
	case d < 2*time.Second:
		return "just now"
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("2006-01-02")
	}
}
