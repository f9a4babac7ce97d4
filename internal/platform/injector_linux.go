//go:build linux
// +build linux

package platform

import (
	"fmt"
	"time"

	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgb/xtest"
	"github.com/jezek/xgbutil"
	"github.com/jezek/xgbutil/keybind"
	"go.uber.org/zap"

	"github.com/selclip/selclip-daemon/internal/clipboard"
)

// X11Injector delivers synthetic Ctrl+C / Ctrl+V gestures through the
// XTEST extension. Fake key events land in whatever window has input
// focus, exactly like real keystrokes.
type X11Injector struct {
	xu     *xgbutil.XUtil
	logger *zap.Logger
	combos map[clipboard.KeyCombo][]xproto.Keycode
}

// NewInjector connects to the X server and resolves the keycodes for the
// copy and paste combos.
func NewInjector(logger *zap.Logger) (clipboard.Injector, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X server: %w", err)
	}
	if err := xtest.Init(xu.Conn()); err != nil {
		xu.Conn().Close()
		return nil, fmt.Errorf("XTEST extension unavailable: %w", err)
	}

	keybind.Initialize(xu)

	ctrl, err := firstKeycode(xu, "Control_L")
	if err != nil {
		xu.Conn().Close()
		return nil, err
	}
	copyKey, err := firstKeycode(xu, "c")
	if err != nil {
		xu.Conn().Close()
		return nil, err
	}
	pasteKey, err := firstKeycode(xu, "v")
	if err != nil {
		xu.Conn().Close()
		return nil, err
	}

	return &X11Injector{
		xu:     xu,
		logger: logger,
		combos: map[clipboard.KeyCombo][]xproto.Keycode{
			clipboard.ComboCopy:  {ctrl, copyKey},
			clipboard.ComboPaste: {ctrl, pasteKey},
		},
	}, nil
}

// Press holds the combo for the given duration. Keys are pressed in order
// (modifier first) and released in reverse; if a press fails midway the
// already-pressed keys are released so no modifier stays stuck.
func (inj *X11Injector) Press(combo clipboard.KeyCombo, hold time.Duration) error {
	keys, ok := inj.combos[combo]
	if !ok {
		return fmt.Errorf("unknown key combo %v", combo)
	}

	for i, code := range keys {
		if err := inj.fake(xproto.KeyPress, code); err != nil {
			inj.releaseKeys(keys[:i])
			return fmt.Errorf("failed to press %s combo: %w", combo, err)
		}
	}

	time.Sleep(hold)

	if err := inj.releaseKeys(keys); err != nil {
		return fmt.Errorf("failed to release %s combo: %w", combo, err)
	}

	inj.logger.Debug("injected key combo",
		zap.String("combo", combo.String()),
		zap.Duration("hold", hold))
	return nil
}

func (inj *X11Injector) releaseKeys(keys []xproto.Keycode) error {
	var firstErr error
	for i := len(keys) - 1; i >= 0; i-- {
		if err := inj.fake(xproto.KeyRelease, keys[i]); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// fake sends one synthetic key event. Root window and coordinates only
// apply to motion events and are left zero.
func (inj *X11Injector) fake(typ byte, code xproto.Keycode) error {
	return xtest.FakeInputChecked(
		inj.xu.Conn(),
		typ,
		byte(code),
		xproto.TimeCurrentTime,
		0, 0, 0, 0,
	).Check()
}

// Close releases the X connection.
func (inj *X11Injector) Close() {
	inj.xu.Conn().Close()
}

func firstKeycode(xu *xgbutil.XUtil, name string) (xproto.Keycode, error) {
	codes := keybind.StrToKeycodes(xu, name)
	if len(codes) == 0 {
		return 0, fmt.Errorf("no keycode found for %q", name)
	}
	return codes[0], nil
}
