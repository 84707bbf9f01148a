/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/nakachan-ing/expert-notes/internal/util"
	"github.com/spf13/cobra"
)

func newShowCmd(opts *rootOptions) *cobra.Command {
	var raw bool

	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a note",
		Long:  "Show a note rendered as Markdown. The ID may be shortened to any unique prefix.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			note, err := resolveNote(a.store, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "📄 %s (%s)\n", note.ID, util.RelativeTime(note.CreatedAt, time.Now()))

			if raw {
				fmt.Fprintln(out, note.Content)
				return nil
			}

			renderedContent, err := glamour.Render(note.Content, "dark")
			if err != nil {
				a.logger.Warn("markdown render failed", "error", err)
				fmt.Fprintln(out, note.Content)
				return nil
			}
			fmt.Fprint(out, renderedContent)
			return nil
		},
	}

	showCmd.Flags().BoolVar(&raw, "raw", false, "Print the content without Markdown rendering")
	return showCmd
}
