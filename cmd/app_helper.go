package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/nakachan-ing/expert-notes/internal/dictation"
	"github.com/nakachan-ing/expert-notes/internal/logging"
	"github.com/nakachan-ing/expert-notes/internal/model"
	"github.com/nakachan-ing/expert-notes/internal/notify"
	"github.com/nakachan-ing/expert-notes/internal/store"
	"github.com/spf13/cobra"
)

// app is everything a command needs, wired from the config.
type app struct {
	config *model.Config
	logger *slog.Logger
	store  *store.NoteStore
	bridge *dictation.Bridge
	closer io.Closer
}

func (o *rootOptions) loadConfig() (*model.Config, error) {
	if o.cfgFile != "" {
		return store.LoadConfigFrom(o.cfgFile)
	}
	return store.LoadConfig()
}

func (o *rootOptions) configPath() (string, error) {
	if o.cfgFile != "" {
		return o.cfgFile, nil
	}
	return store.GetConfigPath()
}

// newApp loads the config and the notes. A nil console keeps logs in the log
// file only, which is what the full-screen UI needs; it then defaults the log
// file to <data_dir>/notes.log.
func (o *rootOptions) newApp(console io.Writer) (*app, error) {
	config, err := o.loadConfig()
	if err != nil {
		return nil, fmt.Errorf("❌ Error loading config: %w", err)
	}

	logCfg := config.Log
	if console == nil && logCfg.File == "" {
		logCfg.File = filepath.Join(config.DataDir, "notes.log")
	}
	if console != nil && !o.verbose && logging.ParseLevel(logCfg.Level) < slog.LevelWarn {
		logCfg.Level = "warn"
	}
	logger, closer := logging.New(logCfg, console)

	notes := store.NewNoteStore(
		store.NewFileMirror(config.DataDir),
		store.WithStorageKey(config.StorageKey),
		store.WithLogger(logger),
	)
	notes.Load()

	return &app{
		config: config,
		logger: logger,
		store:  notes,
		bridge: newBridge(config.Dictation, logger),
		closer: closer,
	}, nil
}

func newBridge(cfg model.DictationConfig, logger *slog.Logger) *dictation.Bridge {
	var rec dictation.Recognizer
	if strings.TrimSpace(cfg.Command) != "" {
		rec = &dictation.CommandRecognizer{Command: cfg.Command, Args: cfg.Args}
	}
	return dictation.NewBridge(rec,
		dictation.SessionConfig{
			Language:        cfg.Language,
			Continuous:      cfg.Continuous,
			InterimResults:  cfg.InterimResults,
			MaxAlternatives: cfg.MaxAlternatives,
		},
		dictation.WithLogger(logger),
		dictation.WithStopOnError(cfg.StopOnError),
	)
}

func (a *app) Close() {
	if err := a.bridge.Stop(); err != nil {
		a.logger.Warn("failed to stop dictation", "error", err)
	}
	if err := a.closer.Close(); err != nil {
		a.logger.Warn("failed to close log file", "error", err)
	}
}

func notifier(cmd *cobra.Command) notify.Notifier {
	return notify.NewConsole(cmd.OutOrStdout())
}

// resolveNote finds a note by its full ID or a unique ID prefix.
func resolveNote(notes *store.NoteStore, id string) (model.Note, error) {
	if note, ok := notes.Get(id); ok {
		return note, nil
	}
	if id == "" {
		return model.Note{}, errors.New("no note ID given")
	}

	var matches []model.Note
	for _, n := range notes.All() {
		if strings.HasPrefix(n.ID, id) {
			matches = append(matches, n)
		}
	}
	switch len(matches) {
	case 0:
		return model.Note{}, fmt.Errorf("no note matches ID %q", id)
	case 1:
		return matches[0], nil
	default:
		return model.Note{}, fmt.Errorf("ID %q is ambiguous: it matches %d notes", id, len(matches))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
