package util

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/nakachan-ing/expert-notes/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFullTextSearch(t *testing.T) {
	notes := []model.Note{
		{ID: "1", Content: "Buy MILK"},
		{ID: "2", Content: "write report"},
		{ID: "3", Content: "milkshake recipe"},
	}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty returns all in order", "", []string{"1", "2", "3"}},
		{"case insensitive", "milk", []string{"1", "3"}},
		{"upper query", "REPORT", []string{"2"}},
		{"no match", "zebra", []string{}},
		{"space is a real query", " ", []string{"1", "2", "3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FullTextSearch(notes, tt.query)
			ids := []string{}
			for _, n := range got {
				ids = append(ids, n.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		ago  time.Duration
		want string
	}{
		{0, "now"},
		{-time.Hour, "now"},
		{10 * time.Second, "10 seconds ago"},
		{time.Minute, "1 minute ago"},
		{45 * time.Minute, "45 minutes ago"},
		{3 * time.Hour, "3 hours ago"},
		{24 * time.Hour, "1 day ago"},
		{4 * 24 * time.Hour, "4 days ago"},
		{65 * 24 * time.Hour, "2 months ago"},
		{800 * 24 * time.Hour, "2 years ago"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeTime(now.Add(-tt.ago), now))
		})
	}
	assert.Equal(t, "some time ago", RelativeTime(time.Time{}, now))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", Truncate("hello", 10))
	assert.Equal(t, "hell…", Truncate("hello world", 5))
	assert.Equal(t, "a b c", Truncate("a\n b\t\tc", 10))
	assert.Equal(t, "ação…", Truncate("açãozinha", 5))
	assert.Equal(t, "…", Truncate("abc", 1))
	assert.Equal(t, "", Truncate("abc", 0))
}

func TestTruncate_WideCharacters(t *testing.T) {
	got := Truncate("日本語のメモです", 7)

	assert.Equal(t, "日本語…", got)
	assert.LessOrEqual(t, ansi.StringWidth(got), 7)
	assert.Equal(t, "日本", Truncate("日本", 4))
}

func TestComposeInEditor(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a shell script as editor")
	}

	script := filepath.Join(t.TempDir(), "fake-editor.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\nprintf 'typed in editor\\n' >> \"$1\"\n"), 0755))

	got, err := ComposeInEditor(script, "seed ")
	require.NoError(t, err)
	assert.Equal(t, "seed typed in editor", got)
}

func TestComposeInEditor_NoEditor(t *testing.T) {
	_, err := ComposeInEditor("  ", "")
	assert.Error(t, err)
}

func TestResolveEditor(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "")
	assert.Equal(t, "vim", ResolveEditor("vim"))

	t.Setenv("EDITOR", "nano")
	assert.Equal(t, "nano", ResolveEditor("vim"))

	t.Setenv("VISUAL", "code --wait")
	assert.Equal(t, "code --wait", ResolveEditor("vim"))
}
