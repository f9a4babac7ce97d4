package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/selclip/selclip-daemon/internal/daemon"
	"github.com/selclip/selclip-daemon/internal/platform"
)

var (
	detach      bool
	runDuration time.Duration
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the selection watcher",
	Long: `Run the selection watcher in the foreground.

Text selected with the mouse is captured into the secondary clipboard and
middle-click pastes it. The watcher runs until interrupted, until the exit
hotkey is pressed, or until --duration elapses.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if detach {
			return detachAndRun()
		}

		d, err := daemon.New(cfg, logger, version)
		if err != nil {
			return fmt.Errorf("failed to start daemon: %w", err)
		}

		// A detached child has no terminal to print to.
		if !platform.IsRunningAsDaemon() {
			printBanner()
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		if runDuration > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, runDuration)
			defer cancel()
			logger.Info("Running for a bounded duration", zap.Duration("duration", runDuration))
		}

		return d.Run(ctx)
	},
}

func init() {
	runCmd.Flags().BoolVar(&detach, "detach", false, "run in the background")
	runCmd.Flags().DurationVarP(&runDuration, "duration", "d", 0, "stop after this long (for testing)")
}

// detachAndRun re-executes the current binary in the background with the
// --detach flag stripped, so the child takes the foreground path.
func detachAndRun() error {
	executable, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to resolve executable: %w", err)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	paths, err := cfg.GetPaths()
	if err != nil {
		return err
	}

	childArgs := make([]string, 0, len(os.Args)-1)
	for _, arg := range os.Args[1:] {
		if arg == "--detach" {
			continue
		}
		childArgs = append(childArgs, arg)
	}

	pid, err := platform.Daemonize(executable, childArgs, cwd, paths.PidFile)
	if err != nil {
		return fmt.Errorf("failed to detach: %w", err)
	}
	fmt.Printf("selclipd started in background (PID: %d)\n", pid)
	return nil
}

func printBanner() {
	fmt.Println("---------------------- selclipd " + version + " ----------------------")
	fmt.Println("| Select text (drag, double- or triple-click) to capture it. |")
	fmt.Println("| Click the middle mouse button to paste the captured text.  |")
	fmt.Printf("| Press Ctrl+C or the %s key to exit.\n", cfg.Daemon.ExitHotkey)
	fmt.Println("--------------------------------------------------------------")
}
