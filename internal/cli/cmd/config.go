package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/selclip/selclip-daemon/internal/config"
)

// newConfigCmd creates the config command
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and manage the configuration",
		Long: `Inspect and manage the selclipd configuration:

  - Show the effective configuration after file and environment overrides.
  - Print the paths the daemon uses.
  - Write a fresh default configuration file.`,
	}

	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigPathsCmd())
	cmd.AddCommand(newConfigInitCmd())

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("failed to render config: %w", err)
			}
			fmt.Print(string(out))
			return nil
		},
	}
}

func newConfigPathsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Print the file and socket paths in use",
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := cfg.GetPaths()
			if err != nil {
				return err
			}
			journalPath, err := cfg.JournalPath()
			if err != nil {
				return err
			}
			socketPath, err := cfg.SocketPath()
			if err != nil {
				return err
			}

			fmt.Printf("Config:  %s\n", paths.ActiveConfig)
			fmt.Printf("Data:    %s\n", paths.DataDir)
			fmt.Printf("Journal: %s\n", journalPath)
			fmt.Printf("Socket:  %s\n", socketPath)
			fmt.Printf("PID:     %s\n", paths.PidFile)
			return nil
		},
	}
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := config.GetConfigPaths()
			if err != nil {
				return err
			}

			if _, err := os.Stat(paths.ActiveConfig); err == nil && !force {
				return fmt.Errorf("configuration already exists at %s, use --force to overwrite", paths.ActiveConfig)
			}

			fresh := config.DefaultConfig()
			if err := fresh.Save(paths.ActiveConfig); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
			fmt.Printf("Wrote default configuration to %s\n", paths.ActiveConfig)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing config file")
	return cmd
}
