// Package daemon assembles the selection watcher, the capture and paste
// orchestrators, persistence and the control socket into a single
// long-running process.
//
// All clipboard work funnels through one operation queue consumed by a
// single worker goroutine. A paste requested while a capture is still
// running therefore waits its turn instead of interleaving key injection
// and clipboard writes with it.
package daemon

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/selclip/selclip-daemon/internal/clipboard"
	"github.com/selclip/selclip-daemon/internal/config"
	"github.com/selclip/selclip-daemon/internal/gesture"
	"github.com/selclip/selclip-daemon/internal/ipc"
	"github.com/selclip/selclip-daemon/internal/platform"
	"github.com/selclip/selclip-daemon/internal/storage"
	"github.com/selclip/selclip-daemon/internal/types"
)

// opQueueSize bounds how many clipboard operations may wait behind the
// one currently running. Operations beyond that are dropped with a log
// line rather than stalling the event dispatcher.
const opQueueSize = 16

type opKind uint8

const (
	opCapture opKind = iota
	opPaste
)

// operation is one unit of clipboard work for the serial worker.
type operation struct {
	kind opKind
	sel  types.SelectionEvent
}

// Daemon owns every long-lived component of a running selclipd instance.
type Daemon struct {
	cfg    *config.Config
	logger *zap.Logger
	clk    clock.Clock

	hook       platform.Hook
	injector   clipboard.Injector
	classifier *gesture.Classifier
	secondary  *clipboard.Secondary
	capturer   *clipboard.Capturer
	paster     *clipboard.Paster
	recent     *clipboard.RecentLog
	journal    *storage.Journal
	server     *ipc.Server

	ops  chan operation
	done chan struct{}
	wg   sync.WaitGroup

	socketPath string
	version    string
	startedAt  time.Time
}

// New builds a daemon on the host's real input hook, key injector and
// system clipboard. Any of those failing to initialize is fatal: without
// them the daemon has nothing to do.
func New(cfg *config.Config, logger *zap.Logger, version string) (*Daemon, error) {
	socketPath, err := cfg.SocketPath()
	if err != nil {
		return nil, fmt.Errorf("resolving control socket path: %w", err)
	}

	hook, err := platform.NewHook(cfg.Daemon.MainLoopSleep.D(), cfg.Daemon.ExitHotkey, logger)
	if err != nil {
		return nil, fmt.Errorf("initializing input hook: %w", err)
	}

	injector, err := platform.NewInjector(logger)
	if err != nil {
		hook.Stop()
		return nil, fmt.Errorf("initializing key injector: %w", err)
	}

	// The journal is an audit trail, not a dependency of the capture or
	// paste path. Run without it rather than refusing to start.
	var journal *storage.Journal
	if journalPath, err := cfg.JournalPath(); err != nil {
		logger.Warn("Capture journal unavailable, continuing without persistence", zap.Error(err))
	} else {
		journal, err = storage.NewJournal(storage.JournalConfig{
			DBPath:    journalPath,
			KeepItems: cfg.Storage.KeepItems,
			Logger:    logger,
		})
		if err != nil {
			logger.Warn("Capture journal unavailable, continuing without persistence",
				zap.String("path", journalPath),
				zap.Error(err))
			journal = nil
		}
	}

	return assemble(cfg, logger, version, socketPath, hook, platform.NewGateway(), injector, journal, clock.New()), nil
}

// assemble wires a daemon from explicit collaborators. Tests substitute
// fakes for the hook, gateway and injector here.
func assemble(cfg *config.Config, logger *zap.Logger, version, socketPath string,
	hook platform.Hook, gateway clipboard.Gateway, injector clipboard.Injector,
	journal *storage.Journal, clk clock.Clock) *Daemon {

	secondary := clipboard.NewSecondary()
	recent := clipboard.NewRecentLog(cfg.Storage.RecentItems)

	capturer := clipboard.NewCapturer(clipboard.CaptureConfig{
		WaitBeforeCopy: cfg.Capture.WaitBeforeCopy.D(),
		PressDuration:  cfg.Capture.PressDuration.D(),
		CheckInterval:  cfg.Capture.CheckInterval.D(),
		Timeout:        cfg.Capture.Timeout.D(),
		RestoreDelay:   cfg.Capture.RestoreDelay.D(),
	}, gateway, injector, secondary, clk, logger)

	recorders := []clipboard.Recorder{recent}
	if journal != nil {
		recorders = append(recorders, journal)
	}
	capturer.AttachRecorder(clipboard.MultiRecorder(recorders...), cfg.DeviceID)

	paster := clipboard.NewPaster(clipboard.PasteConfig{
		PressDuration: cfg.Paste.PressDuration.D(),
		SettleDelay:   cfg.Paste.SettleDelay.D(),
		RestoreDelay:  cfg.Paste.RestoreDelay.D(),
	}, gateway, injector, secondary, clk, logger)

	classifier := gesture.NewClassifier(gesture.Config{
		MinDragDistance:        cfg.Selection.MinDragDistance,
		MaxClickDuration:       cfg.Selection.MaxClickDuration.D(),
		DoubleClickMaxInterval: cfg.Selection.DoubleClickMaxInterval.D(),
		DoubleClickMaxDistance: cfg.Selection.DoubleClickMaxDistance,
	})

	d := &Daemon{
		cfg:        cfg,
		logger:     logger,
		clk:        clk,
		hook:       hook,
		injector:   injector,
		classifier: classifier,
		secondary:  secondary,
		capturer:   capturer,
		paster:     paster,
		recent:     recent,
		journal:    journal,
		ops:        make(chan operation, opQueueSize),
		done:       make(chan struct{}),
		socketPath: socketPath,
		version:    version,
	}
	d.server = ipc.NewServer(socketPath, d.handleRequest, logger)
	return d
}

// Run starts the daemon and blocks until the context is cancelled or the
// exit hotkey is pressed. It always tears the daemon down before
// returning.
func (d *Daemon) Run(ctx context.Context) error {
	d.startedAt = d.clk.Now()

	if err := d.hook.Start(); err != nil {
		return fmt.Errorf("starting input hook: %w", err)
	}

	if err := d.server.Start(); err != nil {
		d.hook.Stop()
		return fmt.Errorf("starting control socket: %w", err)
	}

	d.writePidFile()

	d.wg.Add(2)
	go d.workerLoop()
	go d.dispatchLoop()

	d.logger.Info("Daemon running",
		zap.String("device_id", d.cfg.DeviceID),
		zap.String("device_name", d.cfg.DeviceName),
		zap.String("socket", d.socketPath),
		zap.String("exit_hotkey", d.cfg.Daemon.ExitHotkey),
		zap.Bool("journal", d.journal != nil))

	select {
	case <-ctx.Done():
		d.logger.Info("Shutdown requested", zap.String("reason", "signal"))
	case <-d.hook.Exit():
		d.logger.Info("Shutdown requested", zap.String("reason", "exit hotkey"))
	}

	d.shutdown()
	return nil
}

// shutdown stops event sources first, then waits for the worker to finish
// whatever operation it is in the middle of.
func (d *Daemon) shutdown() {
	d.hook.Stop()
	d.server.Stop()
	close(d.done)
	d.wg.Wait()

	if d.journal != nil {
		if err := d.journal.Close(); err != nil {
			d.logger.Warn("Closing capture journal", zap.Error(err))
		}
	}
	if c, ok := d.injector.(interface{ Close() }); ok {
		c.Close()
	}
	d.removePidFile()
	d.logger.Info("Daemon stopped")
}

// dispatchLoop turns raw mouse events into queued operations. It never
// does clipboard work itself, so a slow capture cannot back up the hook.
func (d *Daemon) dispatchLoop() {
	defer d.wg.Done()
	for {
		select {
		case <-d.done:
			return
		case ev := <-d.hook.Events():
			d.handleEvent(ev)
		}
	}
}

func (d *Daemon) handleEvent(ev types.MouseEvent) {
	if ev.Button == types.ButtonMiddle && ev.Action == types.ActionDown {
		d.enqueue(operation{kind: opPaste})
		return
	}
	if sel := d.classifier.Feed(ev); sel != nil {
		d.logger.Debug("Selection detected", zap.String("kind", string(sel.Kind)))
		d.enqueue(operation{kind: opCapture, sel: *sel})
	}
}

// enqueue hands an operation to the worker without blocking. Reports
// whether the operation was accepted.
func (d *Daemon) enqueue(op operation) bool {
	select {
	case d.ops <- op:
		return true
	default:
		d.logger.Warn("Operation queue full, dropping",
			zap.Uint8("kind", uint8(op.kind)))
		return false
	}
}

// workerLoop executes operations strictly one at a time.
func (d *Daemon) workerLoop() {
	defer d.wg.Done()
	for {
		select {
		case <-d.done:
			return
		case op := <-d.ops:
			d.execute(op)
		}
	}
}

func (d *Daemon) execute(op operation) {
	switch op.kind {
	case opCapture:
		if _, err := d.capturer.Capture(op.sel); err != nil {
			d.logger.Error("Capture failed", zap.Error(err))
		}
	case opPaste:
		if _, err := d.paster.Paste(); err != nil {
			d.logger.Error("Paste failed", zap.Error(err))
		}
	}
}

func (d *Daemon) writePidFile() {
	paths, err := d.cfg.GetPaths()
	if err != nil {
		d.logger.Warn("Writing pid file", zap.Error(err))
		return
	}
	if err := WritePidFile(paths.PidFile, os.Getpid()); err != nil {
		d.logger.Warn("Writing pid file", zap.String("path", paths.PidFile), zap.Error(err))
	}
}

func (d *Daemon) removePidFile() {
	paths, err := d.cfg.GetPaths()
	if err != nil {
		return
	}
	if err := os.Remove(paths.PidFile); err != nil && !os.IsNotExist(err) {
		d.logger.Warn("Removing pid file", zap.String("path", paths.PidFile), zap.Error(err))
	}
}
