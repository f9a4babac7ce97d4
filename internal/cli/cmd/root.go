package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/selclip/selclip-daemon/internal/config"
)

var (
	// Global flags
	configFile string
	verbose    bool
	quiet      bool
	useJSON    bool

	// Loaded by the root PersistentPreRunE, shared by all commands
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "selclipd",
	Short: "Select-to-copy and middle-click paste for explicit-clipboard desktops",
	Long: `Selclipd brings the X11 selection workflow to desktops that only have
an explicit clipboard:

  - Text selected by mouse drag, double-click or triple-click is captured
    into a separate secondary clipboard.
  - Middle-click pastes the captured text at the cursor.
  - The system clipboard is put back the way it was after every capture
    and paste.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		logger, err = buildLogger()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is <config dir>/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug output")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "only log warnings and errors")
	rootCmd.PersistentFlags().BoolVar(&useJSON, "json", false, "machine-readable output where supported")

	rootCmd.AddCommand(
		runCmd,
		newStatusCmd(),
		newPasteCmd(),
		newClearCmd(),
		newHistoryCmd(),
		newConfigCmd(),
		versionCmd,
	)
}

// buildLogger maps the configured log settings and verbosity flags onto a
// zap logger. Flags win over the config file.
func buildLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
	}
	switch {
	case verbose:
		level = zapcore.DebugLevel
	case quiet:
		level = zapcore.WarnLevel
	}

	var zcfg zap.Config
	if cfg.Log.Format == "console" {
		zcfg = zap.NewDevelopmentConfig()
	} else {
		zcfg = zap.NewProductionConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}
