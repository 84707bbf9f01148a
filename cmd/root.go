/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootOptions holds the persistent flags. Each command tree gets its own, so
// one run never sees another run's flags or arguments.
type rootOptions struct {
	cfgFile string
	verbose bool
}

// newRootCmd builds the base command with every subcommand attached.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "notes",
		Short: "Take notes by typing or by dictation",
		Long: `notes keeps short notes in a local file and lets you find them again
with a live search.

Run without a subcommand to open the interactive UI, or use the
subcommands to add, list, show and delete notes from the shell.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd, opts)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default $NOTES_CONFIG or <user config dir>/expert-notes/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log at the configured level instead of warnings only")

	rootCmd.AddCommand(
		newInitCmd(opts),
		newAddCmd(opts),
		newListCmd(opts),
		newShowCmd(opts),
		newDeleteCmd(opts),
		newUICmd(opts),
		newConfigCmd(opts),
	)
	return rootCmd
}

// Execute runs the command line.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
