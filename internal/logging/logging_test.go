package logging

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nakachan-ing/expert-notes/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNew_TextFormatRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, closer := New(model.LogConfig{Level: "warn", Format: "text"}, &buf)
	defer closer.Close()

	logger.Info("hidden")
	logger.Warn("shown", "k", "v")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "k=v")
}

func TestNew_RedactsNoteText(t *testing.T) {
	var buf bytes.Buffer
	logger, closer := New(model.LogConfig{Level: "debug", Format: "json"}, &buf)
	defer closer.Close()

	logger.Info("composed", "content", "my diary entry", "transcript", "spoken words", "id", "n1")

	out := buf.String()
	assert.NotContains(t, out, "my diary entry")
	assert.NotContains(t, out, "spoken words")
	assert.Contains(t, out, `"id":"n1"`)
}

func TestNew_PrettyFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, closer := New(model.LogConfig{Level: "info", Format: "pretty"}, &buf)
	defer closer.Close()

	logger.Info("note created", "count", 2)

	out := buf.String()
	assert.Contains(t, out, "note created")
	assert.Contains(t, out, "count")
}

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "notes.log")
	var console bytes.Buffer

	logger, closer := New(model.LogConfig{Level: "info", Format: "text", File: path, MaxSizeMB: 1}, &console)
	logger.Info("to both")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"to both"`)
	assert.Contains(t, console.String(), "msg=\"to both\"")
}

func TestNew_NoOutputsDiscards(t *testing.T) {
	logger, closer := New(model.LogConfig{Level: "info"}, nil)
	defer closer.Close()

	assert.False(t, logger.Enabled(context.Background(), slog.LevelError))
}

func TestMultiHandler_FansOut(t *testing.T) {
	var a, b bytes.Buffer
	h := NewMultiHandler(
		slog.NewTextHandler(&a, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&b, &slog.HandlerOptions{Level: slog.LevelError}),
	)
	logger := slog.New(h).With("component", "test")

	logger.Debug("only a")
	logger.Error("both")

	assert.Contains(t, a.String(), "only a")
	assert.Contains(t, a.String(), "component=test")
	assert.NotContains(t, b.String(), "only a")
	assert.Contains(t, b.String(), "both")
}

type failingHandler struct {
	slog.Handler
	err error
}

func (h failingHandler) Handle(context.Context, slog.Record) error { return h.err }

func TestMultiHandler_JoinsErrorsAndKeepsWriting(t *testing.T) {
	var buf bytes.Buffer
	first := errors.New("first sink down")
	second := errors.New("second sink down")
	h := NewMultiHandler(
		failingHandler{Handler: slog.NewTextHandler(io.Discard, nil), err: first},
		nil,
		slog.NewTextHandler(&buf, nil),
		failingHandler{Handler: slog.NewTextHandler(io.Discard, nil), err: second},
	)

	err := h.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelInfo, "still written", 0))

	assert.ErrorIs(t, err, first)
	assert.ErrorIs(t, err, second)
	assert.Contains(t, buf.String(), "still written")
}
