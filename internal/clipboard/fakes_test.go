package clipboard

import (
	"sync"
	"time"

	"github.com/selclip/selclip-daemon/internal/types"
)

// fakeGateway is an in-memory system clipboard. Writes made through the
// Gateway interface are recorded so tests can assert exactly what the
// orchestrators did; install simulates another application changing the
// clipboard out of band.
type fakeGateway struct {
	mu            sync.Mutex
	text          string
	reads         int
	writes        []string
	writeAttempts int
	readErr       error
	writeErr      error
}

func (g *fakeGateway) Read() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.reads++
	if g.readErr != nil {
		return "", g.readErr
	}
	return g.text, nil
}

func (g *fakeGateway) Write(text string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.writeAttempts++
	if g.writeErr != nil {
		return g.writeErr
	}
	g.text = text
	g.writes = append(g.writes, text)
	return nil
}

// install sets the clipboard as if another process wrote it.
func (g *fakeGateway) install(text string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.text = text
}

func (g *fakeGateway) current() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.text
}

func (g *fakeGateway) writeLog() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]string, len(g.writes))
	copy(out, g.writes)
	return out
}

// fakeInjector plays the focused application: a copy press installs the
// application's current "selection" into the gateway, a paste press records
// what the clipboard held during the press window.
type fakeInjector struct {
	gateway *fakeGateway

	// selection is what the fake application has selected; installed into
	// the gateway when the copy combo is pressed. Empty means no selection.
	selection string

	// clearOnCopy simulates an application that empties the clipboard in
	// response to the copy gesture.
	clearOnCopy bool

	err error

	pressed     []KeyCombo
	seenAtPress []string
}

func (i *fakeInjector) Press(combo KeyCombo, hold time.Duration) error {
	if i.err != nil {
		return i.err
	}
	i.pressed = append(i.pressed, combo)
	i.seenAtPress = append(i.seenAtPress, i.gateway.current())
	if combo == ComboCopy {
		if i.clearOnCopy {
			i.gateway.install("")
		} else if i.selection != "" {
			i.gateway.install(i.selection)
		}
	}
	return nil
}

// fakeRecorder collects journaled captures.
type fakeRecorder struct {
	records []*types.CaptureRecord
	err     error
}

func (r *fakeRecorder) Record(rec *types.CaptureRecord) error {
	if r.err != nil {
		return r.err
	}
	r.records = append(r.records, rec)
	return nil
}
