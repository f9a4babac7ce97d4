package config

import (
	"fmt"
	"strings"
)

// ValidationError aggregates every problem found in a config so the user
// can fix them in one pass.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return "invalid config: " + e.Problems[0]
	}
	return fmt.Sprintf("invalid config (%d problems):\n  - %s",
		len(e.Problems), strings.Join(e.Problems, "\n  - "))
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
	"fatal": true,
}

// Validate checks the configuration for values that would break the daemon
// at runtime. It returns a *ValidationError listing every problem, or nil.
func (c *Config) Validate() error {
	var problems []string

	add := func(format string, args ...interface{}) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if c.DeviceID == "" {
		add("device_id must not be empty")
	}

	if c.Selection.MinDragDistance < 0 {
		add("selection.min_drag_distance must not be negative, got %v", c.Selection.MinDragDistance)
	}
	if c.Selection.MaxClickDuration.D() <= 0 {
		add("selection.max_click_duration must be positive, got %v", c.Selection.MaxClickDuration)
	}
	if c.Selection.DoubleClickMaxInterval.D() <= 0 {
		add("selection.double_click_max_interval must be positive, got %v", c.Selection.DoubleClickMaxInterval)
	}
	if c.Selection.DoubleClickMaxDistance < 0 {
		add("selection.double_click_max_distance must not be negative, got %v", c.Selection.DoubleClickMaxDistance)
	}

	for _, d := range []struct {
		name string
		val  Duration
	}{
		{"capture.wait_before_copy", c.Capture.WaitBeforeCopy},
		{"capture.press_duration", c.Capture.PressDuration},
		{"capture.check_interval", c.Capture.CheckInterval},
		{"capture.timeout", c.Capture.Timeout},
		{"paste.press_duration", c.Paste.PressDuration},
		{"paste.settle_delay", c.Paste.SettleDelay},
		{"daemon.main_loop_sleep", c.Daemon.MainLoopSleep},
	} {
		if d.val.D() <= 0 {
			add("%s must be positive, got %v", d.name, d.val)
		}
	}

	// Restore delays may be zero (restore immediately) but not negative.
	if c.Capture.RestoreDelay.D() < 0 {
		add("capture.restore_delay must not be negative, got %v", c.Capture.RestoreDelay)
	}
	if c.Paste.RestoreDelay.D() < 0 {
		add("paste.restore_delay must not be negative, got %v", c.Paste.RestoreDelay)
	}

	if c.Capture.CheckInterval.D() > c.Capture.Timeout.D() {
		add("capture.check_interval (%v) must not exceed capture.timeout (%v)",
			c.Capture.CheckInterval, c.Capture.Timeout)
	}

	if c.Storage.KeepItems <= 0 {
		add("storage.keep_items must be positive, got %d", c.Storage.KeepItems)
	}
	if c.Storage.RecentItems <= 0 {
		add("storage.recent_items must be positive, got %d", c.Storage.RecentItems)
	}

	if !validLogLevels[c.Log.Level] {
		add("log.level must be one of debug, info, warn, error, fatal; got %q", c.Log.Level)
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		add("log.format must be json or console, got %q", c.Log.Format)
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
