package format

// ANSI escape sequences for terminal output.
const (
	Reset   = "\033[0m"
	Bold    = "\033[1m"
	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Blue    = "\033[34m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"
	Gray    = "\033[90m"
)

// Colorize wraps s in the given color code.
func Colorize(s, color string) string {
	return color + s + Reset
}

// ColorizeIf wraps s in the given color code only when enabled, so the
// same call sites serve both terminals and plain output.
func ColorizeIf(s, color string, enabled bool) string {
	if !enabled {
		return s
	}
	return Colorize(s, color)
}
