/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/nakachan-ing/expert-notes/internal/util"
	"github.com/spf13/cobra"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	var searchQuery string

	listCmd := &cobra.Command{
		Use:     "list [query]",
		Short:   "List notes, newest first",
		Args:    cobra.MaximumNArgs(1),
		Aliases: []string{"ls"},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			query := searchQuery
			if len(args) == 1 {
				query = args[0]
			}
			notes := a.store.Search(query)

			out := cmd.OutOrStdout()
			if len(notes) == 0 {
				fmt.Fprintln(out, "No matching notes found.")
				return nil
			}

			fmt.Fprintln(out, strings.Repeat("=", 30))
			fmt.Fprintf(out, "Notes: %v shown\n", len(notes))
			fmt.Fprintln(out, strings.Repeat("=", 30))

			t := table.NewWriter()
			t.SetOutputMirror(out)
			t.SetStyle(table.StyleDouble)
			t.Style().Options.SeparateRows = false

			t.AppendHeader(table.Row{
				text.FgGreen.Sprintf("ID"), text.FgGreen.Sprintf("Created"),
				text.FgGreen.Sprintf("%s", text.Bold.Sprintf("Content")),
			})

			now := time.Now()
			for _, note := range notes {
				t.AppendRow(table.Row{
					shortID(note.ID),
					text.FgHiBlack.Sprintf("%s", util.RelativeTime(note.CreatedAt, now)),
					util.Truncate(note.Content, 60),
				})
			}

			t.Render()
			return nil
		},
	}

	listCmd.Flags().StringVarP(&searchQuery, "search", "q", "", "Search note content")
	return listCmd
}
