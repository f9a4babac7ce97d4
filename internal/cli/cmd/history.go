package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/selclip/selclip-daemon/internal/ipc"
	"github.com/selclip/selclip-daemon/pkg/format"
)

// newHistoryCmd creates the history command
func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent captures",
		Long: `List the most recent entries of the capture journal, newest first.
Entries show a preview only; the full text never leaves the daemon.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			socketPath, err := cfg.SocketPath()
			if err != nil {
				return err
			}

			resp, err := ipc.SendRequest(socketPath, &ipc.Request{
				Command: ipc.CommandHistory,
				Args:    map[string]interface{}{"limit": limit},
			})
			if err != nil {
				return fmt.Errorf("is the daemon running? %w", err)
			}
			if !resp.IsOK() {
				return fmt.Errorf("daemon refused: %s", resp.Message)
			}

			var hist ipc.HistoryData
			if err := resp.DecodeData(&hist); err != nil {
				return fmt.Errorf("failed to decode history: %w", err)
			}

			if useJSON {
				out, err := json.MarshalIndent(hist, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(out))
				return nil
			}

			fmt.Print(format.NewDefault().HistoryList(hist.Entries))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of entries to show")
	return cmd
}
