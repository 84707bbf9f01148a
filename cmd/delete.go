/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/nakachan-ing/expert-notes/internal/notify"
	"github.com/spf13/cobra"
)

func newDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Short:   "Delete a note",
		Long:    "Delete a note. The ID may be shortened to any unique prefix.",
		Args:    cobra.ExactArgs(1),
		Aliases: []string{"rm"},
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

			n := notifier(cmd)
			if _, err := a.store.Delete(note.ID); err != nil {
				n.Notify(notify.PersistFailed(err))
				return err
			}
			n.Notify(notify.NoteDeleted())
			return nil
		},
	}
}
