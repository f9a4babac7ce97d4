package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/selclip/selclip-daemon/internal/ipc"
)

// newClearCmd creates the clear command
func newClearCmd() *cobra.Command {
	var clearJournal bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Drop the captured text",
		Long: `Drop whatever the daemon currently holds in the secondary clipboard.
The system clipboard is not touched. Pass --journal to also wipe the
on-disk capture journal.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			socketPath, err := cfg.SocketPath()
			if err != nil {
				return err
			}

			req := &ipc.Request{Command: ipc.CommandClear}
			if clearJournal {
				req.Args = map[string]interface{}{"journal": true}
			}

			resp, err := ipc.SendRequest(socketPath, req)
			if err != nil {
				return fmt.Errorf("is the daemon running? %w", err)
			}
			if !resp.IsOK() {
				return fmt.Errorf("daemon refused: %s", resp.Message)
			}
			fmt.Println(resp.Message)
			return nil
		},
	}

	cmd.Flags().BoolVar(&clearJournal, "journal", false, "also clear the capture journal")
	return cmd
}
