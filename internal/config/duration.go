package config

import (
	"fmt"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML configs can use human-readable values
// like "50ms" or "1.5s" instead of raw nanosecond integers.
type Duration time.Duration

// D returns the wrapped time.Duration.
func (d Duration) D() time.Duration { return time.Duration(d) }

// String returns the standard time.Duration formatting.
func (d Duration) String() string { return time.Duration(d).String() }

// MarshalYAML encodes the duration as its string form.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalYAML decodes either a duration string ("500ms") or a bare number,
// which is interpreted as seconds for compatibility with flat numeric
// configs. Any scalar decodes into a string in yaml.v3, so both forms are
// parsed from the raw text.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return fmt.Errorf("duration must be a string or a number of seconds: %w", err)
	}
	if parsed, err := time.ParseDuration(s); err == nil {
		*d = Duration(parsed)
		return nil
	}
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		*d = Duration(time.Duration(secs * float64(time.Second)))
		return nil
	}
	return fmt.Errorf("invalid duration %q", s)
}
