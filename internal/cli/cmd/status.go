package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/selclip/selclip-daemon/internal/daemon"
	"github.com/selclip/selclip-daemon/internal/ipc"
	"github.com/selclip/selclip-daemon/pkg/format"
)

// newStatusCmd creates the status command
func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether the daemon is running and what it holds",
		RunE: func(cmd *cobra.Command, args []string) error {
			socketPath, err := cfg.SocketPath()
			if err != nil {
				return err
			}

			resp, err := ipc.SendRequest(socketPath, &ipc.Request{Command: ipc.CommandStatus})
			if err != nil {
				return printOfflineStatus()
			}
			if !resp.IsOK() {
				return fmt.Errorf("daemon error: %s", resp.Message)
			}

			var status ipc.StatusData
			if err := resp.DecodeData(&status); err != nil {
				return fmt.Errorf("failed to decode status: %w", err)
			}

			if useJSON {
				out, err := json.MarshalIndent(status, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(out))
				return nil
			}

			fmt.Print(format.NewDefault().Status(status))
			return nil
		},
	}
}

// printOfflineStatus falls back to the pid file when the control socket
// does not answer. The recorded process is only probed, never signalled.
func printOfflineStatus() error {
	paths, err := cfg.GetPaths()
	if err != nil {
		return err
	}

	pid, alive := daemon.Probe(paths.PidFile)
	switch {
	case alive:
		if useJSON {
			fmt.Printf("{\"status\":\"unreachable\",\"pid\":%d}\n", pid)
			return nil
		}
		fmt.Printf("Status: running (PID %d), but the control socket is not answering\n", pid)
	default:
		if useJSON {
			fmt.Println(`{"status":"stopped"}`)
			return nil
		}
		fmt.Println("Status: not running")
	}
	return nil
}
