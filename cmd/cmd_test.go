package cmd

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/nakachan-ing/expert-notes/internal/dictation"
	"github.com/nakachan-ing/expert-notes/internal/model"
	"github.com/nakachan-ing/expert-notes/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var idLine = regexp.MustCompile(`📄 ([0-9a-f-]{36})`)

func TestMain(m *testing.M) {
	color.NoColor = true
	text.DisableColors()
	os.Exit(m.Run())
}

// execute runs a fresh command tree, the way a new process would.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	rootCmd := newRootCmd()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

// setupConfig writes a config that keeps data in a temp dir.
func setupConfig(t *testing.T) (configFile, dataDir string) {
	t.Helper()
	dir := t.TempDir()
	dataDir = filepath.Join(dir, "data")
	configFile = filepath.Join(dir, "config.yaml")

	cfg := model.DefaultConfig()
	cfg.DataDir = dataDir
	require.NoError(t, store.SaveConfigTo(configFile, cfg))
	t.Setenv("NOTES_CONFIG", configFile)
	return configFile, dataDir
}

func addNote(t *testing.T, words ...string) string {
	t.Helper()
	out, err := execute(t, append([]string{"add"}, words...)...)
	require.NoError(t, err, out)
	m := idLine.FindStringSubmatch(out)
	require.Len(t, m, 2, out)
	return m[1]
}

func TestInit(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "nested", "config.yaml")

	out, err := execute(t, "init", "--config", configFile)
	require.NoError(t, err)
	assert.Contains(t, out, "Config file created at: "+configFile)

	cfg, err := store.LoadConfigFrom(configFile)
	require.NoError(t, err)
	assert.Equal(t, "notes", cfg.StorageKey)

	_, err = execute(t, "init", "--config", configFile)
	assert.ErrorContains(t, err, "already exists")

	_, err = execute(t, "init", "--config", configFile, "--force")
	assert.NoError(t, err)
}

func TestAddListShowDelete(t *testing.T) {
	_, dataDir := setupConfig(t)

	milk := addNote(t, "buy", "milk")
	addNote(t, "write report")
	assert.FileExists(t, filepath.Join(dataDir, "notes.json"))

	out, err := execute(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Notes: 2 shown")
	assert.Less(t, strings.Index(out, "write report"), strings.Index(out, "buy milk"), "newest first")

	out, err = execute(t, "ls", "-q", "MILK")
	require.NoError(t, err)
	assert.Contains(t, out, "buy milk")
	assert.NotContains(t, out, "write report")

	out, err = execute(t, "show", "--raw", shortID(milk))
	require.NoError(t, err)
	assert.Contains(t, out, milk)
	assert.Contains(t, out, "buy milk")

	out, err = execute(t, "rm", shortID(milk))
	require.NoError(t, err)
	assert.Contains(t, out, "Note deleted")

	out, err = execute(t, "list", "milk")
	require.NoError(t, err)
	assert.Contains(t, out, "No matching notes found.")
}

func TestAdd_NoContent(t *testing.T) {
	setupConfig(t)

	_, err := execute(t, "add")
	assert.ErrorContains(t, err, "nothing to add")
}

func TestRuns_DoNotShareArgsOrFlags(t *testing.T) {
	setupConfig(t)
	addNote(t, "first")
	addNote(t, "buy", "milk")

	out, err := execute(t, "list", "milk")
	require.NoError(t, err)
	assert.NotContains(t, out, "first")

	out, err = execute(t, "add")
	assert.ErrorContains(t, err, "nothing to add", out)

	out, err = execute(t, "list", "-q", "first")
	require.NoError(t, err)
	assert.NotContains(t, out, "buy milk")

	out, err = execute(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Notes: 2 shown")
	assert.Contains(t, out, "first")
	assert.Contains(t, out, "buy milk")
}

func TestAdd_WhitespaceIsRejected(t *testing.T) {
	_, dataDir := setupConfig(t)

	out, err := execute(t, "add", "   ")

	require.NoError(t, err)
	assert.Contains(t, out, "Nothing to save")
	assert.NoFileExists(t, filepath.Join(dataDir, "notes.json"))
}

func TestAdd_DictateWithoutRecognizer(t *testing.T) {
	setupConfig(t)

	out, err := execute(t, "add", "--dictate")

	assert.ErrorIs(t, err, dictation.ErrUnsupported)
	assert.Contains(t, out, "Dictation unavailable")
}

func TestShow_UnknownID(t *testing.T) {
	setupConfig(t)

	_, err := execute(t, "show", "nope")
	assert.ErrorContains(t, err, `no note matches ID "nope"`)
}

func TestResolveNote(t *testing.T) {
	ids := []string{"abc-111", "abc-222", "def-333"}
	i := 0
	s := store.NewNoteStore(store.NewFileMirror(t.TempDir()),
		store.WithLogger(slog.New(slog.DiscardHandler)),
		store.WithIDGenerator(func() string { id := ids[i]; i++; return id }),
	)
	for range ids {
		_, err := s.Create("x")
		require.NoError(t, err)
	}

	n, err := resolveNote(s, "def")
	require.NoError(t, err)
	assert.Equal(t, "def-333", n.ID)

	n, err = resolveNote(s, "abc-111")
	require.NoError(t, err)
	assert.Equal(t, "abc-111", n.ID)

	_, err = resolveNote(s, "abc")
	assert.ErrorContains(t, err, "ambiguous")

	_, err = resolveNote(s, "")
	assert.Error(t, err)
}

func TestNewBridge_RecognizerFromConfig(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)

	b := newBridge(model.DefaultConfig().Dictation, logger)
	assert.ErrorIs(t, b.Start(t.Context()), dictation.ErrUnsupported)

	cfg := model.DefaultConfig().Dictation
	cfg.Command = "definitely-not-a-recognizer-binary"
	b = newBridge(cfg, logger)
	assert.ErrorIs(t, b.Start(t.Context()), dictation.ErrUnsupported)
}

func TestConfigModel_EditAndSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	m := newConfigModel(model.DefaultConfig(), path)

	require.NoError(t, m.setFieldValue("Dictation.Command", "my-rec"))
	require.NoError(t, m.setFieldValue("Dictation.Args", "--lang  auto"))
	require.NoError(t, m.setFieldValue("Dictation.StopOnError", "true"))
	require.NoError(t, m.setFieldValue("Notify.SuccessDuration", "2s"))
	assert.Error(t, m.setFieldValue("Dictation.MaxAlternatives", "many"))
	assert.Equal(t, "1", m.getFieldValue("Dictation.MaxAlternatives"))
	assert.Equal(t, "--lang auto", m.getFieldValue("Dictation.Args"))

	m.cursor = len(m.fields) - 1
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, m.saved)

	cfg, err := store.LoadConfigFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "my-rec", cfg.Dictation.Command)
	assert.Equal(t, []string{"--lang", "auto"}, cfg.Dictation.Args)
	assert.True(t, cfg.Dictation.StopOnError)
	assert.Equal(t, "2s", cfg.Notify.SuccessDuration.String())
}

func TestConfigModel_InvalidSaveShowsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	m := newConfigModel(model.DefaultConfig(), path)
	require.NoError(t, m.setFieldValue("Log.Level", "loud"))

	m.cursor = len(m.fields) - 1
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, m.saved)
	assert.Contains(t, m.View(), "log.level must be one of")
	assert.NoFileExists(t, path)
}

func TestConfigModel_EditField(t *testing.T) {
	m := newConfigModel(model.DefaultConfig(), filepath.Join(t.TempDir(), "c.yaml"))
	m.cursor = 2 // Editor

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.editMode)
	m.textInput.SetValue("nano")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, m.editMode)
	assert.Equal(t, "nano", m.config.Editor)
	assert.Equal(t, fmt.Sprintf("👉 Editor: %s", "nano"), strings.TrimSpace(strings.Split(m.View(), "\n")[5]))
}
