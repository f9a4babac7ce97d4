package daemon

import (
	"sync"
	"time"

	"github.com/selclip/selclip-daemon/internal/clipboard"
	"github.com/selclip/selclip-daemon/internal/types"
)

// fakeHook feeds scripted mouse events into the dispatcher.
type fakeHook struct {
	events chan types.MouseEvent
	exit   chan struct{}

	mu      sync.Mutex
	started bool
	stopped bool
}

func newFakeHook() *fakeHook {
	return &fakeHook{
		events: make(chan types.MouseEvent, 64),
		exit:   make(chan struct{}, 1),
	}
}

func (h *fakeHook) Start() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.started = true
	return nil
}

func (h *fakeHook) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stopped = true
}

func (h *fakeHook) Events() <-chan types.MouseEvent { return h.events }
func (h *fakeHook) Exit() <-chan struct{}           { return h.exit }

func (h *fakeHook) pressExitKey() {
	select {
	case h.exit <- struct{}{}:
	default:
	}
}

func (h *fakeHook) lifecycle() (started, stopped bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.started, h.stopped
}

// fakeGateway is an in-memory system clipboard. The worker goroutine and
// the test body touch it concurrently, so everything is mutex-guarded.
type fakeGateway struct {
	mu     sync.Mutex
	text   string
	writes []string
}

func (g *fakeGateway) Read() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.text, nil
}

func (g *fakeGateway) Write(text string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.text = text
	g.writes = append(g.writes, text)
	return nil
}

// install sets clipboard content out of band, as another application would.
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

// fakeInjector plays the part of the focused application: the copy combo
// installs the current selection into the gateway, the paste combo only
// records what was on the clipboard when it fired. An optional blockCopy
// channel holds the copy press open until the test releases it.
type fakeInjector struct {
	gateway   *fakeGateway
	blockCopy chan struct{}

	mu          sync.Mutex
	selection   string
	pressed     []clipboard.KeyCombo
	seenAtPress []string
}

func (i *fakeInjector) Press(combo clipboard.KeyCombo, hold time.Duration) error {
	i.mu.Lock()
	i.pressed = append(i.pressed, combo)
	i.seenAtPress = append(i.seenAtPress, i.gateway.current())
	block := i.blockCopy
	selection := i.selection
	i.mu.Unlock()

	if combo == clipboard.ComboCopy {
		if block != nil {
			<-block
		}
		i.gateway.install(selection)
	}
	return nil
}

func (i *fakeInjector) setSelection(text string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.selection = text
}

func (i *fakeInjector) combos() []clipboard.KeyCombo {
	i.mu.Lock()
	defer i.mu.Unlock()
	out := make([]clipboard.KeyCombo, len(i.pressed))
	copy(out, i.pressed)
	return out
}

func (i *fakeInjector) observed() []string {
	i.mu.Lock()
	defer i.mu.Unlock()
	out := make([]string, len(i.seenAtPress))
	copy(out, i.seenAtPress)
	return out
}
