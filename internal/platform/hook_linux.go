//go:build linux
// +build linux

package platform

import (
	"fmt"
	"sync"
	"time"

	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgbutil"
	"github.com/jezek/xgbutil/keybind"
	"go.uber.org/zap"

	"github.com/selclip/selclip-daemon/internal/types"
)

const hookEventBuffer = 64

// buttonMasks maps X11 pointer-state bits to event buttons.
var buttonMasks = []struct {
	mask   uint16
	button types.Button
}{
	{xproto.ButtonMask1, types.ButtonLeft},
	{xproto.ButtonMask2, types.ButtonMiddle},
	{xproto.ButtonMask3, types.ButtonRight},
}

// X11Hook observes the global pointer by sampling the X server at a fixed
// interval and synthesizing down/up/move events from state differences.
// Sampling cannot see a press and release that both happen inside one
// interval; that loss is accepted, the whole selection heuristic is an
// approximation. Move events are only reported while a button is held,
// which is all the gesture classifier needs.
//
// When an exit hotkey is configured the hook also takes a passive grab on
// it and reports presses on the Exit channel.
type X11Hook struct {
	xu       *xgbutil.XUtil
	interval time.Duration
	exitKey  string
	logger   *zap.Logger

	events chan types.MouseEvent
	exit   chan struct{}
	done   chan struct{}

	grabbed []xproto.Keycode
	held    map[types.Button]bool
	lastPos types.Position

	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewHook connects to the X server. pollInterval bounds the sampling rate;
// exitKey names an X11 keysym ("End") or is empty to disable the hotkey.
func NewHook(pollInterval time.Duration, exitKey string, logger *zap.Logger) (Hook, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X server: %w", err)
	}

	return &X11Hook{
		xu:       xu,
		interval: pollInterval,
		exitKey:  exitKey,
		logger:   logger,
		events:   make(chan types.MouseEvent, hookEventBuffer),
		exit:     make(chan struct{}, 1),
		done:     make(chan struct{}),
		held:     make(map[types.Button]bool),
	}, nil
}

// Start grabs the exit hotkey and launches the sampling loop.
func (h *X11Hook) Start() error {
	if h.exitKey != "" {
		if err := h.grabExitKey(); err != nil {
			return err
		}
		h.wg.Add(1)
		go h.keyLoop()
	}

	h.wg.Add(1)
	go h.pollLoop()

	h.logger.Info("pointer hook started",
		zap.Duration("poll_interval", h.interval),
		zap.String("exit_key", h.exitKey))
	return nil
}

// Stop releases the grab and closes the X connection, ending both loops.
func (h *X11Hook) Stop() {
	h.stopOnce.Do(func() {
		close(h.done)
		h.ungrabExitKey()
		h.xu.Conn().Close()
	})
	h.wg.Wait()
}

// Events streams observed pointer changes.
func (h *X11Hook) Events() <-chan types.MouseEvent {
	return h.events
}

// Exit fires when the exit hotkey is pressed.
func (h *X11Hook) Exit() <-chan struct{} {
	return h.exit
}

func (h *X11Hook) pollLoop() {
	defer h.wg.Done()

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-h.done:
			return
		case <-ticker.C:
			h.sample()
		}
	}
}

// sample reads the pointer state once and emits events for every observed
// difference since the previous sample.
func (h *X11Hook) sample() {
	reply, err := xproto.QueryPointer(h.xu.Conn(), h.xu.RootWin()).Reply()
	if err != nil {
		h.logger.Debug("pointer query failed", zap.Error(err))
		return
	}

	now := time.Now()
	pos := types.Position{X: int(reply.RootX), Y: int(reply.RootY)}

	anyHeld := false
	for _, bm := range buttonMasks {
		held := reply.Mask&bm.mask != 0
		if held {
			anyHeld = true
		}
		if held == h.held[bm.button] {
			continue
		}
		h.held[bm.button] = held

		action := types.ActionUp
		if held {
			action = types.ActionDown
		}
		h.deliver(types.MouseEvent{Button: bm.button, Action: action, Pos: pos, Time: now})
	}

	if pos != h.lastPos {
		h.lastPos = pos
		if anyHeld {
			h.deliver(types.MouseEvent{Button: types.ButtonNone, Action: types.ActionMove, Pos: pos, Time: now})
		}
	}
}

func (h *X11Hook) deliver(ev types.MouseEvent) {
	select {
	case h.events <- ev:
	default:
		// The consumer is behind; dropping is safe, the classifier
		// resets on inconsistent streams.
		h.logger.Warn("dropping pointer event, consumer too slow",
			zap.String("button", ev.Button.String()),
			zap.String("action", ev.Action.String()))
	}
}

// keyLoop waits for grabbed key events and signals exit requests.
func (h *X11Hook) keyLoop() {
	defer h.wg.Done()

	for {
		ev, xerr := h.xu.Conn().WaitForEvent()
		if xerr != nil {
			h.logger.Debug("x event error", zap.Error(xerr))
			continue
		}
		if ev == nil {
			// Connection closed.
			return
		}

		if release, ok := ev.(xproto.KeyReleaseEvent); ok {
			if !containsKeycode(h.grabbed, release.Detail) {
				continue
			}
			h.logger.Info("exit hotkey pressed", zap.String("key", h.exitKey))
			select {
			case h.exit <- struct{}{}:
			default:
			}
		}
	}
}

// grabExitKey registers a passive grab for the exit key on the root
// window, so presses reach the daemon no matter which window has focus.
func (h *X11Hook) grabExitKey() error {
	keybind.Initialize(h.xu)

	codes := keybind.StrToKeycodes(h.xu, h.exitKey)
	if len(codes) == 0 {
		return fmt.Errorf("no keycode found for exit key %q", h.exitKey)
	}

	root := h.xu.RootWin()
	for _, code := range codes {
		err := xproto.GrabKeyChecked(
			h.xu.Conn(),
			false,
			root,
			xproto.ModMaskAny,
			code,
			xproto.GrabModeAsync,
			xproto.GrabModeAsync,
		).Check()
		if err != nil {
			return fmt.Errorf("failed to grab exit key %q (keycode %d): %w", h.exitKey, code, err)
		}
	}

	h.grabbed = codes
	return nil
}

func (h *X11Hook) ungrabExitKey() {
	root := h.xu.RootWin()
	for _, code := range h.grabbed {
		xproto.UngrabKey(h.xu.Conn(), code, root, xproto.ModMaskAny)
	}
	h.grabbed = nil
}

func containsKeycode(codes []xproto.Keycode, code xproto.Keycode) bool {
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}
