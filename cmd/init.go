/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/nakachan-ing/expert-notes/internal/model"
	"github.com/nakachan-ing/expert-notes/internal/store"
	"github.com/spf13/cobra"
)

// newInitCmd builds the init command.
func newInitCmd(opts *rootOptions) *cobra.Command {
	var force bool

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize config.yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configFile, err := opts.configPath()
			if err != nil {
				return fmt.Errorf("failed to get config path: %w", err)
			}

			if _, err := os.Stat(configFile); err == nil && !force {
				return fmt.Errorf("config file already exists at %s (use --force to overwrite)", configFile)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("failed to check config file: %w", err)
			}

			if err := store.SaveConfigTo(configFile, model.DefaultConfig()); err != nil {
				return fmt.Errorf("❌ Failed to create config file: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "✅ notes initialized successfully!")
			fmt.Fprintln(out, "📄 Config file created at:", configFile)
			return nil
		},
	}

	initCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config file")
	return initCmd
}
