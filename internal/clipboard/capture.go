package clipboard

import (
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/selclip/selclip-daemon/internal/types"
	"github.com/selclip/selclip-daemon/pkg/utils"
)

// CaptureConfig holds the copy cycle delays.
type CaptureConfig struct {
	// WaitBeforeCopy lets the application finish committing the selection
	// before the copy gesture fires.
	WaitBeforeCopy time.Duration

	// PressDuration is how long the copy combo is held.
	PressDuration time.Duration

	// CheckInterval is the clipboard polling interval after the gesture.
	CheckInterval time.Duration

	// Timeout bounds the whole poll. Expiry means "nothing was selected",
	// not an error.
	Timeout time.Duration

	// RestoreDelay is the pause before the original clipboard content is
	// written back.
	RestoreDelay time.Duration
}

// Capturer runs the copy cycle that pulls a fresh selection into the
// secondary clipboard without disturbing the system clipboard's final
// state.
type Capturer struct {
	cfg       CaptureConfig
	gateway   Gateway
	injector  Injector
	secondary *Secondary
	clk       clock.Clock
	logger    *zap.Logger

	recorder Recorder
	deviceID string
}

// NewCapturer creates a capture orchestrator.
func NewCapturer(cfg CaptureConfig, gateway Gateway, injector Injector, secondary *Secondary, clk clock.Clock, logger *zap.Logger) *Capturer {
	return &Capturer{
		cfg:       cfg,
		gateway:   gateway,
		injector:  injector,
		secondary: secondary,
		clk:       clk,
		logger:    logger,
	}
}

// AttachRecorder registers a sink for successful captures. The device id
// is stamped into each record.
func (c *Capturer) AttachRecorder(rec Recorder, deviceID string) {
	c.recorder = rec
	c.deviceID = deviceID
}

// Capture runs one copy cycle for a classified selection. It returns true
// when a new value landed in the secondary clipboard. A timeout with no
// clipboard change is not an error: it means the gesture selected nothing.
//
// Whatever happens after the initial snapshot, the system clipboard is
// restored to the snapshot value before Capture returns.
func (c *Capturer) Capture(sel types.SelectionEvent) (bool, error) {
	log := c.logger.With(zap.String("selection", string(sel.Kind)))
	log.Debug("starting capture cycle")

	before, err := c.gateway.Read()
	if err != nil {
		return false, fmt.Errorf("snapshot clipboard: %w", err)
	}

	c.clk.Sleep(c.cfg.WaitBeforeCopy)

	defer func() {
		c.clk.Sleep(c.cfg.RestoreDelay)
		if err := c.gateway.Write(before); err != nil {
			log.Warn("failed to restore clipboard after capture", zap.Error(err))
		}
	}()

	if err := c.injector.Press(ComboCopy, c.cfg.PressDuration); err != nil {
		return false, fmt.Errorf("inject copy gesture: %w", err)
	}

	var captured string
	changed := utils.WaitUntil(c.clk, c.cfg.CheckInterval, c.cfg.Timeout, func() bool {
		text, err := c.gateway.Read()
		if err != nil {
			log.Debug("clipboard read failed while polling", zap.Error(err))
			return false
		}
		captured = text
		return text != "" && text != before
	})

	if !changed {
		// The change may land between the final poll and the deadline;
		// one last read before giving up.
		if text, err := c.gateway.Read(); err == nil {
			captured = text
		}
		if captured == "" || captured == before {
			log.Debug("no clipboard change detected, nothing selected",
				zap.Duration("timeout", c.cfg.Timeout))
			return false, nil
		}
	}

	now := c.clk.Now()
	c.secondary.Set(captured, sel.Kind, now)
	log.Info("captured selection",
		zap.Int("chars", len(captured)),
		zap.String("preview", utils.Preview(captured, 50)))

	if c.recorder != nil {
		record := &types.CaptureRecord{
			ID:         uuid.New().String(),
			Kind:       sel.Kind,
			Text:       captured,
			Hash:       utils.HashContent([]byte(captured)),
			DeviceID:   c.deviceID,
			CapturedAt: now,
		}
		if err := c.recorder.Record(record); err != nil {
			log.Warn("failed to journal capture", zap.Error(err))
		}
	}

	return true, nil
}
