/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/nakachan-ing/expert-notes/internal/tui"
	"github.com/spf13/cobra"
)

func newUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive notes UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd, opts)
		},
	}
}

func runUI(cmd *cobra.Command, opts *rootOptions) error {
	a, err := opts.newApp(nil)
	if err != nil {
		return err
	}
	defer a.Close()

	m := tui.New(a.store, a.bridge,
		tui.WithLogger(a.logger),
		tui.WithNotifyConfig(a.config.Notify),
	)
	if err := tui.Run(cmd.Context(), m); err != nil {
		return fmt.Errorf("❌ Error running TUI: %w", err)
	}
	return nil
}
