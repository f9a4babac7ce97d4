package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/selclip/selclip-daemon/pkg/utils"
)

// ConfigPaths holds all relevant paths for the application
type ConfigPaths struct {
	BaseDir      string // Base directory for all config files
	ActiveConfig string // Path to active config file
	DataDir      string // Directory for application data
	DBFile       string // Path to capture journal database
	RunDir       string // Directory for pid file and control socket
	SocketFile   string // Path to IPC control socket
	PidFile      string // Path to daemon pid file
}

// Config holds all application configuration
type Config struct {
	// General settings
	DeviceID   string `yaml:"device_id"`
	DeviceName string `yaml:"device_name"`

	// Gesture classification tuning
	Selection SelectionConfig `yaml:"selection"`

	// Copy-cycle tuning
	Capture CaptureConfig `yaml:"capture"`

	// Paste-cycle tuning
	Paste PasteConfig `yaml:"paste"`

	// Event loop and process options
	Daemon DaemonConfig `yaml:"daemon"`

	// Logging configuration
	Log LogConfig `yaml:"log"`

	// Capture journal configuration
	Storage StorageConfig `yaml:"storage"`

	paths *ConfigPaths
}

// SelectionConfig tunes the selection classifier. The thresholds are
// heuristic: without access to the target application's text APIs the
// daemon can only guess from timing and distance whether a gesture
// selected text.
type SelectionConfig struct {
	// MinDragDistance is the pointer travel, in pixels, beyond which a
	// press-move-release counts as a drag selection.
	MinDragDistance float64 `yaml:"min_drag_distance"`

	// MaxClickDuration is the longest press still considered a click.
	// Anything held longer is classified as a drag even without movement.
	MaxClickDuration Duration `yaml:"max_click_duration"`

	// DoubleClickMaxInterval is the window after a release within which the
	// next press continues a multi-click sequence.
	DoubleClickMaxInterval Duration `yaml:"double_click_max_interval"`

	// DoubleClickMaxDistance is how far apart, in pixels, consecutive
	// clicks may land and still count as a multi-click.
	DoubleClickMaxDistance float64 `yaml:"double_click_max_distance"`
}

// CaptureConfig tunes the copy cycle that pulls a fresh selection into the
// secondary clipboard.
type CaptureConfig struct {
	WaitBeforeCopy Duration `yaml:"wait_before_copy"`
	PressDuration  Duration `yaml:"press_duration"`
	CheckInterval  Duration `yaml:"check_interval"`
	Timeout        Duration `yaml:"timeout"`
	RestoreDelay   Duration `yaml:"restore_delay"`
}

// PasteConfig tunes the paste cycle that temporarily installs the secondary
// clipboard into the system clipboard.
type PasteConfig struct {
	PressDuration Duration `yaml:"press_duration"`
	SettleDelay   Duration `yaml:"settle_delay"`
	RestoreDelay  Duration `yaml:"restore_delay"`
}

// DaemonConfig holds event loop and lifecycle options.
type DaemonConfig struct {
	// MainLoopSleep is the pointer-hook polling interval.
	MainLoopSleep Duration `yaml:"main_loop_sleep"`

	// ExitHotkey names a key that shuts the daemon down when pressed
	// (X11 keysym name, e.g. "End"). Empty disables the hotkey.
	ExitHotkey string `yaml:"exit_hotkey"`

	// SocketPath overrides the control-socket location. Empty uses the
	// default under RunDir.
	SocketPath string `yaml:"socket_path,omitempty"`
}

// LogConfig holds logging-related configuration
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "json" or "console"
}

// StorageConfig holds capture-journal configuration
type StorageConfig struct {
	// DBPath overrides the journal database location. Empty uses the
	// default under DataDir.
	DBPath string `yaml:"db_path,omitempty"`

	// KeepItems is how many capture records the journal retains.
	KeepItems int `yaml:"keep_items"`

	// RecentItems is the size of the in-memory recent-capture ring used
	// for status reporting.
	RecentItems int `yaml:"recent_items"`
}

// GetConfigPaths returns the platform-specific configuration paths
func GetConfigPaths() (*ConfigPaths, error) {
	// First check environment variable for base directory
	baseDir := os.Getenv("SELCLIP_CONFIG_DIR")
	if baseDir == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}

		switch runtime.GOOS {
		case "windows":
			baseDir = filepath.Join(configDir, "Selclip")
		case "darwin":
			baseDir = filepath.Join(configDir, "io.selclip.daemon")
		default: // Linux and others
			baseDir = filepath.Join(configDir, "selclip")
		}
	}

	dataDir := os.Getenv("SELCLIP_DATA_DIR")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}

		switch runtime.GOOS {
		case "windows":
			appData, err := os.UserConfigDir()
			if err == nil {
				dataDir = filepath.Join(appData, "Selclip", "Data")
			} else {
				dataDir = filepath.Join(homeDir, "AppData", "Local", "Selclip")
			}
		case "darwin":
			dataDir = filepath.Join(homeDir, "Library", "Application Support", "Selclip")
		default: // Linux and others
			if xdgDataHome := os.Getenv("XDG_DATA_HOME"); xdgDataHome != "" {
				dataDir = filepath.Join(xdgDataHome, "selclip")
			} else {
				dataDir = filepath.Join(homeDir, ".selclip")
			}
		}
	}

	paths := &ConfigPaths{
		BaseDir:      baseDir,
		ActiveConfig: filepath.Join(baseDir, "config.yaml"),
		DataDir:      dataDir,
		DBFile:       filepath.Join(dataDir, "selclip.db"),
		RunDir:       filepath.Join(dataDir, "run"),
		SocketFile:   filepath.Join(dataDir, "run", "selclipd.sock"),
		PidFile:      filepath.Join(dataDir, "run", "selclipd.pid"),
	}

	for _, dir := range []string{paths.BaseDir, paths.DataDir, paths.RunDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	return paths, nil
}

// DefaultConfig returns a new Config with default values. The tuning
// defaults keep copy/paste cycles well under a second and use a 350ms
// multi-click window.
func DefaultConfig() *Config {
	return &Config{
		DeviceID:   uuid.New().String(),
		DeviceName: utils.GetHostname(),
		Selection: SelectionConfig{
			MinDragDistance:        5,
			MaxClickDuration:       Duration(150 * time.Millisecond),
			DoubleClickMaxInterval: Duration(350 * time.Millisecond),
			DoubleClickMaxDistance: 5,
		},
		Capture: CaptureConfig{
			WaitBeforeCopy: Duration(50 * time.Millisecond),
			PressDuration:  Duration(50 * time.Millisecond),
			CheckInterval:  Duration(50 * time.Millisecond),
			Timeout:        Duration(500 * time.Millisecond),
			RestoreDelay:   Duration(10 * time.Millisecond),
		},
		Paste: PasteConfig{
			PressDuration: Duration(50 * time.Millisecond),
			SettleDelay:   Duration(20 * time.Millisecond),
			RestoreDelay:  Duration(80 * time.Millisecond),
		},
		Daemon: DaemonConfig{
			MainLoopSleep: Duration(100 * time.Millisecond),
			ExitHotkey:    "End",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Storage: StorageConfig{
			KeepItems:   100,
			RecentItems: 20,
		},
	}
}

// Load loads the configuration from the specified file or creates default
// if not exists. A .env file in the working directory is applied to the
// environment first, then SELCLIP_* environment variables override file
// values.
func Load(configPath string) (*Config, error) {
	// .env is optional; ignore a missing file
	_ = godotenv.Load()

	paths, err := GetConfigPaths()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config paths: %w", err)
	}
	if configPath == "" {
		configPath = paths.ActiveConfig
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(configPath)
	switch {
	case os.IsNotExist(err):
		// First run: persist the defaults so the user has a file to edit
		if err := cfg.Save(configPath); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		// Unmarshal over the defaults: absent keys keep their default value
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	overrideFromEnv(cfg)
	cfg.paths = paths

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save saves the configuration to the specified file
func (c *Config) Save(configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetPaths returns the resolved system paths, computing them on first use.
func (c *Config) GetPaths() (*ConfigPaths, error) {
	if c.paths != nil {
		return c.paths, nil
	}
	paths, err := GetConfigPaths()
	if err != nil {
		return nil, err
	}
	c.paths = paths
	return paths, nil
}

// JournalPath returns the capture-journal database path, honoring the
// configured override.
func (c *Config) JournalPath() (string, error) {
	if c.Storage.DBPath != "" {
		return c.Storage.DBPath, nil
	}
	paths, err := c.GetPaths()
	if err != nil {
		return "", err
	}
	return paths.DBFile, nil
}

// SocketPath returns the control-socket path, honoring the configured
// override.
func (c *Config) SocketPath() (string, error) {
	if c.Daemon.SocketPath != "" {
		return c.Daemon.SocketPath, nil
	}
	paths, err := c.GetPaths()
	if err != nil {
		return "", err
	}
	return paths.SocketFile, nil
}

// overrideFromEnv overrides configuration values from environment variables
func overrideFromEnv(config *Config) {
	// General settings
	if val := os.Getenv("SELCLIP_DEVICE_ID"); val != "" {
		config.DeviceID = val
	}
	if val := os.Getenv("SELCLIP_DEVICE_NAME"); val != "" {
		config.DeviceName = val
	}
	if val := os.Getenv("SELCLIP_LOG_LEVEL"); val != "" {
		config.Log.Level = val
	}
	if val := os.Getenv("SELCLIP_EXIT_HOTKEY"); val != "" {
		config.Daemon.ExitHotkey = val
	}

	// Selection tuning
	envFloat("SELCLIP_MIN_DRAG_DISTANCE", &config.Selection.MinDragDistance)
	envDuration("SELCLIP_MAX_CLICK_DURATION", &config.Selection.MaxClickDuration)
	envDuration("SELCLIP_DOUBLE_CLICK_MAX_INTERVAL", &config.Selection.DoubleClickMaxInterval)
	envFloat("SELCLIP_DOUBLE_CLICK_MAX_DISTANCE", &config.Selection.DoubleClickMaxDistance)

	// Capture tuning
	envDuration("SELCLIP_WAIT_BEFORE_COPY", &config.Capture.WaitBeforeCopy)
	envDuration("SELCLIP_COPY_PRESS_DURATION", &config.Capture.PressDuration)
	envDuration("SELCLIP_CLIPBOARD_CHECK_INTERVAL", &config.Capture.CheckInterval)
	envDuration("SELCLIP_CLIPBOARD_TIMEOUT", &config.Capture.Timeout)
	envDuration("SELCLIP_COPY_RESTORE_DELAY", &config.Capture.RestoreDelay)

	// Paste tuning
	envDuration("SELCLIP_PASTE_PRESS_DURATION", &config.Paste.PressDuration)
	envDuration("SELCLIP_PASTE_SETTLE_DELAY", &config.Paste.SettleDelay)
	envDuration("SELCLIP_PASTE_RESTORE_DELAY", &config.Paste.RestoreDelay)

	// Daemon tuning
	envDuration("SELCLIP_MAIN_LOOP_SLEEP", &config.Daemon.MainLoopSleep)
	if val := os.Getenv("SELCLIP_SOCKET_PATH"); val != "" {
		config.Daemon.SocketPath = val
	}

	// Storage
	if val := os.Getenv("SELCLIP_KEEP_ITEMS"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			config.Storage.KeepItems = n
		}
	}
}

// envDuration parses an environment variable as a Go duration string, or as
// a float number of seconds the way the flat .env configs wrote them.
func envDuration(name string, dst *Duration) {
	val := os.Getenv(name)
	if val == "" {
		return
	}
	if d, err := time.ParseDuration(val); err == nil {
		*dst = Duration(d)
		return
	}
	if secs, err := strconv.ParseFloat(val, 64); err == nil {
		*dst = Duration(time.Duration(secs * float64(time.Second)))
	}
}

func envFloat(name string, dst *float64) {
	val := os.Getenv(name)
	if val == "" {
		return
	}
	if f, err := strconv.ParseFloat(val, 64); err == nil {
		*dst = f
	}
}
