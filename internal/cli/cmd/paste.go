package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/selclip/selclip-daemon/internal/ipc"
)

// newPasteCmd creates the paste command
func newPasteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paste",
		Short: "Paste the captured text at the cursor",
		Long: `Ask the running daemon to paste the secondary clipboard, exactly as a
middle-click would. Useful for keybindings on mice without a middle
button.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			socketPath, err := cfg.SocketPath()
			if err != nil {
				return err
			}

			resp, err := ipc.SendRequest(socketPath, &ipc.Request{Command: ipc.CommandPaste})
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
}
