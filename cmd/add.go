/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/nakachan-ing/expert-notes/internal/dictation"
	"github.com/nakachan-ing/expert-notes/internal/notify"
	"github.com/nakachan-ing/expert-notes/internal/store"
	"github.com/nakachan-ing/expert-notes/internal/util"
	"github.com/spf13/cobra"
)

func newAddCmd(opts *rootOptions) *cobra.Command {
	var useEditor, useDictation bool

	addCmd := &cobra.Command{
		Use:     "add [content...]",
		Short:   "Add a new note",
		Aliases: []string{"n"},
		Example: `  notes add buy milk
  notes add --editor
  notes add --dictate`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			n := notifier(cmd)
			content := strings.Join(args, " ")

			switch {
			case useDictation:
				content, err = dictate(cmd, a, n)
			case useEditor:
				content, err = util.ComposeInEditor(util.ResolveEditor(a.config.Editor), content)
			case len(args) == 0:
				return errors.New("nothing to add: pass the note text, --editor or --dictate")
			}
			if err != nil {
				return err
			}

			note, err := a.store.Create(content)
			switch {
			case errors.Is(err, store.ErrEmptyContent):
				n.Notify(notify.EmptyNote())
				return nil
			case err != nil:
				n.Notify(notify.PersistFailed(err))
				return err
			}

			n.Notify(notify.NoteSaved())
			fmt.Fprintf(cmd.OutOrStdout(), "📄 %s\n", note.ID)
			return nil
		},
	}

	addCmd.Flags().BoolVarP(&useEditor, "editor", "e", false, "Compose the note in $EDITOR")
	addCmd.Flags().BoolVarP(&useDictation, "dictate", "d", false, "Dictate the note; press Enter to stop")
	addCmd.MarkFlagsMutuallyExclusive("editor", "dictate")
	return addCmd
}

// dictate records until Enter (or the session ends) and returns the text.
func dictate(cmd *cobra.Command, a *app, n notify.Notifier) (string, error) {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if err := a.bridge.Start(ctx); err != nil {
		if errors.Is(err, dictation.ErrUnsupported) {
			n.Notify(notify.DictationUnavailable())
		}
		return "", err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "🎙️  Recording... press Enter to stop.")

	enter := make(chan struct{})
	go func() {
		_, _ = bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		close(enter)
	}()

	for {
		select {
		case u := <-a.bridge.Updates():
			if u.Err != nil {
				n.Notify(notify.DictationError(u.Err))
			}
			if u.Text != "" {
				fmt.Fprintf(out, "\r\033[K%s", u.Text)
			}
			if u.State == dictation.Idle {
				fmt.Fprintln(out)
				return a.bridge.Text(), nil
			}
		case <-enter:
			if err := a.bridge.Stop(); err != nil {
				return "", err
			}
			fmt.Fprintln(out)
			return a.bridge.Text(), nil
		case <-ctx.Done():
			_ = a.bridge.Stop()
			fmt.Fprintln(out)
			return "", fmt.Errorf("dictation cancelled: %w", ctx.Err())
		}
	}
}
