// Package logging builds the slog.Logger shared by the CLI and the TUI.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/m-mizutani/masq"
	"github.com/nakachan-ing/expert-notes/internal/model"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New returns a logger writing to console in cfg.Format and, when cfg.File is
// set, JSON to a rolling file as well. The returned closer releases the file.
func New(cfg model.LogConfig, console io.Writer) (*slog.Logger, io.Closer) {
	level := ParseLevel(cfg.Level)

	var handlers []slog.Handler
	if console != nil && console != io.Discard {
		handlers = append(handlers, consoleHandler(cfg.Format, level, console))
	}

	var closer io.Closer = nopCloser{}
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err == nil {
			rotator := &lumberjack.Logger{
				Filename:   cfg.File,
				MaxSize:    cfg.MaxSizeMB,
				MaxBackups: cfg.MaxBackups,
				MaxAge:     cfg.MaxAgeDays,
			}
			closer = rotator
			handlers = append(handlers, slog.NewJSONHandler(rotator, &slog.HandlerOptions{
				Level:       level,
				ReplaceAttr: NewReplaceAttr(),
			}))
		}
	}

	switch len(handlers) {
	case 0:
		return slog.New(slog.DiscardHandler), closer
	case 1:
		return slog.New(handlers[0]), closer
	default:
		return slog.New(NewMultiHandler(handlers...)), closer
	}
}

func consoleHandler(format string, level slog.Level, w io.Writer) slog.Handler {
	opts := &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: NewReplaceAttr(),
	}

	switch strings.ToLower(format) {
	case "json":
		return slog.NewJSONHandler(w, opts)
	case "text":
		return slog.NewTextHandler(w, opts)
	default:
		return charmlog.NewWithOptions(w, charmlog.Options{
			Level:           charmLevel(level),
			ReportTimestamp: true,
			TimeFormat:      time.Kitchen,
		})
	}
}

// ParseLevel converts a config level to slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func charmLevel(level slog.Level) charmlog.Level {
	switch {
	case level <= slog.LevelDebug:
		return charmlog.DebugLevel
	case level <= slog.LevelInfo:
		return charmlog.InfoLevel
	case level <= slog.LevelWarn:
		return charmlog.WarnLevel
	default:
		return charmlog.ErrorLevel
	}
}

// NewReplaceAttr redacts note text so it never reaches log output.
func NewReplaceAttr(opts ...masq.Option) func(groups []string, a slog.Attr) slog.Attr {
	all := append([]masq.Option{
		masq.WithFieldName("content"),
		masq.WithFieldName("Content"),
		masq.WithFieldName("transcript"),
		masq.WithFieldName("Transcript"),
	}, opts...)
	return masq.New(all...)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
