package daemon

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/selclip/selclip-daemon/internal/clipboard"
	"github.com/selclip/selclip-daemon/internal/config"
	"github.com/selclip/selclip-daemon/internal/types"
)

const testWait = 3 * time.Second

// testConfig builds a config with millisecond timings so a full
// capture/paste cycle finishes quickly under the real clock.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv("SELCLIP_CONFIG_DIR", t.TempDir())
	t.Setenv("SELCLIP_DATA_DIR", t.TempDir())

	cfg := config.DefaultConfig()
	ms := config.Duration(time.Millisecond)
	cfg.Capture.WaitBeforeCopy = ms
	cfg.Capture.PressDuration = ms
	cfg.Capture.CheckInterval = ms
	cfg.Capture.Timeout = config.Duration(50 * time.Millisecond)
	cfg.Capture.RestoreDelay = ms
	cfg.Paste.PressDuration = ms
	cfg.Paste.SettleDelay = ms
	cfg.Paste.RestoreDelay = ms
	cfg.Daemon.SocketPath = filepath.Join(t.TempDir(), "selclipd.sock")
	return cfg
}

type testDaemon struct {
	d    *Daemon
	hook *fakeHook
	gw   *fakeGateway
	inj  *fakeInjector

	cancel context.CancelFunc
	done   chan struct{}
	runErr error
}

// startTestDaemon assembles a daemon on fakes and runs it until the test
// ends.
func startTestDaemon(t *testing.T) *testDaemon {
	t.Helper()

	cfg := testConfig(t)
	hook := newFakeHook()
	gw := &fakeGateway{}
	inj := &fakeInjector{gateway: gw}

	d := assemble(cfg, zap.NewNop(), "test", cfg.Daemon.SocketPath, hook, gw, inj, nil, clock.New())

	ctx, cancel := context.WithCancel(context.Background())
	td := &testDaemon{d: d, hook: hook, gw: gw, inj: inj, cancel: cancel, done: make(chan struct{})}
	go func() {
		td.runErr = d.Run(ctx)
		close(td.done)
	}()

	t.Cleanup(func() {
		cancel()
		select {
		case <-td.done:
		case <-time.After(testWait):
			t.Error("daemon did not shut down")
		}
	})
	return td
}

func (td *testDaemon) waitStopped(t *testing.T) {
	t.Helper()
	select {
	case <-td.done:
	case <-time.After(testWait):
		t.Fatal("daemon did not stop")
	}
}

func mouse(b types.Button, a types.Action, x, y int, at time.Time) types.MouseEvent {
	return types.MouseEvent{Button: b, Action: a, Pos: types.Position{X: x, Y: y}, Time: at}
}

// sendDrag replays a left-button drag selection through the fake hook.
func (td *testDaemon) sendDrag() {
	base := time.Now()
	td.hook.events <- mouse(types.ButtonLeft, types.ActionDown, 10, 10, base)
	td.hook.events <- mouse(types.ButtonLeft, types.ActionMove, 80, 10, base.Add(100*time.Millisecond))
	td.hook.events <- mouse(types.ButtonLeft, types.ActionUp, 80, 10, base.Add(200*time.Millisecond))
}

func TestDaemonCapturesDragSelection(t *testing.T) {
	td := startTestDaemon(t)
	td.gw.install("earlier content")
	td.inj.setSelection("the selected words")

	td.sendDrag()

	require.Eventually(t, func() bool {
		val, ok := td.d.secondary.Snapshot()
		return ok && val.Text == "the selected words"
	}, testWait, time.Millisecond, "capture never reached the secondary clipboard")

	val, _ := td.d.secondary.Snapshot()
	assert.Equal(t, types.SelectionDrag, val.Kind)

	// The system clipboard is handed back to its previous owner.
	require.Eventually(t, func() bool {
		return td.gw.current() == "earlier content"
	}, testWait, time.Millisecond)
	assert.Equal(t, []clipboard.KeyCombo{clipboard.ComboCopy}, td.inj.combos())
}

func TestDaemonMiddleClickPastesSecondary(t *testing.T) {
	td := startTestDaemon(t)
	td.gw.install("current clipboard")
	td.d.secondary.Set("stored selection", types.SelectionDrag, time.Now())

	td.hook.events <- mouse(types.ButtonMiddle, types.ActionDown, 5, 5, time.Now())

	require.Eventually(t, func() bool {
		combos := td.inj.combos()
		return len(combos) == 1 && combos[0] == clipboard.ComboPaste
	}, testWait, time.Millisecond, "paste combo never fired")

	// The paste combo must have fired while the stored text was installed.
	assert.Equal(t, []string{"stored selection"}, td.inj.observed())
	require.Eventually(t, func() bool {
		return td.gw.current() == "current clipboard"
	}, testWait, time.Millisecond)
}

func TestDaemonMiddleClickWithEmptySecondaryDoesNothing(t *testing.T) {
	td := startTestDaemon(t)
	td.gw.install("untouched")

	td.hook.events <- mouse(types.ButtonMiddle, types.ActionDown, 5, 5, time.Now())

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, td.inj.combos())
	assert.Empty(t, td.gw.writeLog())
	assert.Equal(t, "untouched", td.gw.current())
}

// A middle-click arriving while a capture is still running must wait for
// the capture to finish, then paste what that capture stored.
func TestDaemonQueuesPasteBehindCapture(t *testing.T) {
	block := make(chan struct{})

	cfg := testConfig(t)
	hook := newFakeHook()
	gw := &fakeGateway{}
	inj := &fakeInjector{gateway: gw, blockCopy: block}
	inj.setSelection("captured mid-flight")
	gw.install("original")

	d := assemble(cfg, zap.NewNop(), "test", cfg.Daemon.SocketPath, hook, gw, inj, nil, clock.New())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		d.Run(ctx)
		close(done)
	}()
	defer func() {
		cancel()
		<-done
	}()

	td := &testDaemon{d: d, hook: hook, gw: gw, inj: inj}
	td.sendDrag()

	// Wait for the worker to be inside the held-open copy press.
	require.Eventually(t, func() bool {
		return len(inj.combos()) == 1
	}, testWait, time.Millisecond, "capture never started")

	hook.events <- mouse(types.ButtonMiddle, types.ActionDown, 5, 5, time.Now())
	close(block)

	require.Eventually(t, func() bool {
		return len(inj.combos()) == 2
	}, testWait, time.Millisecond, "queued paste never ran")

	assert.Equal(t, []clipboard.KeyCombo{clipboard.ComboCopy, clipboard.ComboPaste}, inj.combos())
	// The paste saw the text the capture had just stored, not stale state.
	assert.Equal(t, "captured mid-flight", inj.observed()[1])
	require.Eventually(t, func() bool {
		return gw.current() == "original"
	}, testWait, time.Millisecond)
}

func TestDaemonExitHotkeyStopsRun(t *testing.T) {
	td := startTestDaemon(t)

	td.hook.pressExitKey()
	td.waitStopped(t)

	assert.NoError(t, td.runErr)
	started, stopped := td.hook.lifecycle()
	assert.True(t, started)
	assert.True(t, stopped)
	_, err := os.Stat(td.d.socketPath)
	assert.True(t, os.IsNotExist(err), "control socket should be removed on shutdown")
}

func TestDaemonPidFileLifecycle(t *testing.T) {
	td := startTestDaemon(t)

	paths, err := td.d.cfg.GetPaths()
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		pid, readErr := ReadPidFile(paths.PidFile)
		return readErr == nil && pid == os.Getpid()
	}, testWait, time.Millisecond, "pid file never written")

	td.cancel()
	td.waitStopped(t)

	_, err = os.Stat(paths.PidFile)
	assert.True(t, os.IsNotExist(err), "pid file should be removed on shutdown")
}

func TestDaemonIgnoresUnrelatedButtons(t *testing.T) {
	td := startTestDaemon(t)
	td.gw.install("untouched")

	now := time.Now()
	td.hook.events <- mouse(types.ButtonRight, types.ActionDown, 5, 5, now)
	td.hook.events <- mouse(types.ButtonRight, types.ActionUp, 5, 5, now.Add(10*time.Millisecond))

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, td.inj.combos())
	assert.Equal(t, "untouched", td.gw.current())
}
