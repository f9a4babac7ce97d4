package clipboard

import (
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/selclip/selclip-daemon/pkg/utils"
)

// PasteConfig holds the paste cycle delays.
type PasteConfig struct {
	// PressDuration is how long the paste combo is held.
	PressDuration time.Duration

	// SettleDelay lets clipboard listeners observe the installed content
	// before the paste gesture fires.
	SettleDelay time.Duration

	// RestoreDelay is the pause after the gesture before the original
	// clipboard content is written back, so the paste reads the installed
	// value rather than the restored one.
	RestoreDelay time.Duration
}

// Paster runs the paste cycle: it temporarily installs the secondary
// clipboard content as the system clipboard, fires a synthetic paste into
// the focused application, and restores the original content.
type Paster struct {
	cfg       PasteConfig
	gateway   Gateway
	injector  Injector
	secondary *Secondary
	clk       clock.Clock
	logger    *zap.Logger
}

// NewPaster creates a paste orchestrator.
func NewPaster(cfg PasteConfig, gateway Gateway, injector Injector, secondary *Secondary, clk clock.Clock, logger *zap.Logger) *Paster {
	return &Paster{
		cfg:       cfg,
		gateway:   gateway,
		injector:  injector,
		secondary: secondary,
		clk:       clk,
		logger:    logger,
	}
}

// Paste runs one paste cycle. It returns true when a paste gesture was
// injected. An empty secondary clipboard is a no-op: no gateway access, no
// gesture.
//
// Once the original clipboard has been snapshotted, restoration is
// attempted on every path; the secondary content is never left installed
// as the system clipboard.
func (p *Paster) Paste() (bool, error) {
	val, ok := p.secondary.Snapshot()
	if !ok {
		p.logger.Debug("secondary clipboard empty, nothing to paste")
		return false, nil
	}

	before, err := p.gateway.Read()
	if err != nil {
		return false, fmt.Errorf("snapshot clipboard: %w", err)
	}

	defer func() {
		p.clk.Sleep(p.cfg.RestoreDelay)
		if err := p.gateway.Write(before); err != nil {
			p.logger.Warn("failed to restore clipboard after paste", zap.Error(err))
		}
	}()

	if err := p.gateway.Write(val.Text); err != nil {
		return false, fmt.Errorf("install secondary content: %w", err)
	}

	p.clk.Sleep(p.cfg.SettleDelay)

	if err := p.injector.Press(ComboPaste, p.cfg.PressDuration); err != nil {
		return false, fmt.Errorf("inject paste gesture: %w", err)
	}

	p.logger.Info("pasted selection",
		zap.Int("chars", len(val.Text)),
		zap.String("preview", utils.Preview(val.Text, 50)),
		zap.Time("captured_at", val.CapturedAt))
	return true, nil
}
