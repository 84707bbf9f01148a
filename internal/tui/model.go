// Package tui is the interactive front end: a live search box over a grid of
// note cards, a compose dialog that types or dictates, and a detail view.
package tui

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nakachan-ing/expert-notes/internal/dictation"
	"github.com/nakachan-ing/expert-notes/internal/model"
	"github.com/nakachan-ing/expert-notes/internal/notify"
)

// NoteStore is the part of store.NoteStore the UI needs.
type NoteStore interface {
	Search(query string) []model.Note
	Create(content string) (model.Note, error)
	Delete(id string) (bool, error)
}

// Dictation is the part of dictation.Bridge the UI needs.
type Dictation interface {
	Start(ctx context.Context) error
	Stop() error
	State() dictation.State
	Text() string
	Updates() <-chan dictation.Update
}

type mode int

const (
	modeGrid mode = iota
	modeCompose
	modeDetail
)

type dictationMsg dictation.Update

type copiedMsg struct{ err error }

type Model struct {
	ctx       context.Context
	notes     NoteStore
	dict      Dictation
	logger    *slog.Logger
	now       func() time.Time
	notifyCfg model.NotifyConfig
	copy      func(string) error

	keys   keyMap
	help   help.Model
	search textinput.Model

	mode    mode
	cursor  int
	width   int
	height  int
	compose composeModel
	detail  detailModel

	toasts    []toast
	nextToast int
}

type Option func(*Model)

func WithContext(ctx context.Context) Option {
	return func(m *Model) { m.ctx = ctx }
}

func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

func WithNotifyConfig(cfg model.NotifyConfig) Option {
	return func(m *Model) { m.notifyCfg = cfg }
}

func WithClipboard(write func(string) error) Option {
	return func(m *Model) { m.copy = write }
}

func New(notes NoteStore, dict Dictation, opts ...Option) *Model {
	search := textinput.New()
	search.Placeholder = "Search your notes..."
	search.Prompt = "🔍 "
	search.Focus()

	m := &Model{
		ctx:       context.Background(),
		notes:     notes,
		dict:      dict,
		logger:    slog.Default(),
		now:       time.Now,
		notifyCfg: model.DefaultConfig().Notify,
		copy:      clipboard.WriteAll,
		keys:      defaultKeyMap(),
		help:      help.New(),
		search:    search,
		compose:   newCompose(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run blocks until the program exits and leaves dictation stopped.
func Run(ctx context.Context, m *Model, opts ...tea.ProgramOption) error {
	m.ctx = ctx
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	_, err := tea.NewProgram(m, opts...).Run()
	m.stopDictation()
	return err
}

func listen(updates <-chan dictation.Update) tea.Cmd {
	return func() tea.Msg {
		u, ok := <-updates
		if !ok {
			return nil
		}
		return dictationMsg(u)
	}
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.dict != nil {
		cmds = append(cmds, listen(m.dict.Updates()))
	}
	return tea.Batch(cmds...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.search.Width = max(10, msg.Width-6)
		m.compose.resize(msg.Width)
		if m.mode == modeDetail {
			m.renderDetail()
		}
		return m, nil

	case dictationMsg:
		cmd := m.applyDictation(dictation.Update(msg))
		return m, tea.Batch(cmd, listen(m.dict.Updates()))

	case toastExpiredMsg:
		m.dropToast(msg.id)
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.logger.Warn("clipboard copy failed", "error", msg.err)
			return m, m.toast(notify.Notification{Level: notify.Warning, Title: "Copy failed", Description: msg.err.Error()})
		}
		return m, m.toast(notify.Notification{Level: notify.Success, Title: "Copied to clipboard"})

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.stopDictation()
			return m, tea.Quit
		}
		switch m.mode {
		case modeCompose:
			return m, m.updateCompose(msg)
		case modeDetail:
			return m, m.updateDetail(msg)
		default:
			return m, m.updateGrid(msg)
		}
	}

	var cmd tea.Cmd
	switch m.mode {
	case modeGrid:
		m.search, cmd = m.search.Update(msg)
	case modeCompose:
		m.compose.textarea, cmd = m.compose.textarea.Update(msg)
	}
	return m, cmd
}

func (m *Model) updateGrid(msg tea.KeyMsg) tea.Cmd {
	cards := m.cards()
	cols := columns(m.width)

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor-cols >= 0 {
			m.cursor -= cols
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor+cols < len(cards) {
			m.cursor += cols
		}
	case key.Matches(msg, m.keys.Left):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Right):
		if m.cursor < len(cards)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Open):
		c := cards[m.cursor]
		if c.add {
			m.openCompose()
			return nil
		}
		m.openDetail(c.note)
	case key.Matches(msg, m.keys.New):
		m.openCompose()
	case key.Matches(msg, m.keys.Clear):
		m.search.SetValue("")
		m.cursor = 0
	default:
		prev := m.search.Value()
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		if m.search.Value() != prev {
			m.cursor = 0
		}
		return cmd
	}
	return nil
}

func (m *Model) updateDetail(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.mode = modeGrid
	case key.Matches(msg, m.keys.Delete):
		return m.deleteNote(m.detail.note.ID)
	case key.Matches(msg, m.keys.Copy):
		content, write := m.detail.note.Content, m.copy
		return func() tea.Msg { return copiedMsg{err: write(content)} }
	}
	return nil
}

func (m *Model) deleteNote(id string) tea.Cmd {
	ok, err := m.notes.Delete(id)
	m.mode = modeGrid
	m.clampCursor()
	if err != nil {
		// the note is gone from memory even when the mirror write failed
		return m.toast(notify.PersistFailed(err))
	}
	if !ok {
		return nil
	}
	return m.toast(notify.NoteDeleted())
}

// cards lists the grid in display order. The "Add note" card leads an
// unfiltered grid and trails a search that matches nothing.
func (m *Model) cards() []card {
	query := m.search.Value()
	notes := m.notes.Search(query)

	out := make([]card, 0, len(notes)+1)
	if query == "" {
		out = append(out, card{add: true})
	}
	for _, n := range notes {
		out = append(out, card{note: n})
	}
	if query != "" && len(notes) == 0 {
		out = append(out, card{add: true})
	}
	return out
}

func (m *Model) clampCursor() {
	if n := len(m.cards()); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) stopDictation() {
	if m.dict == nil || m.dict.State() != dictation.Recording {
		return
	}
	if err := m.dict.Stop(); err != nil {
		m.logger.Warn("failed to stop dictation", "error", err)
	}
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("expert notes"))
	b.WriteString("\n\n")

	switch m.mode {
	case modeCompose:
		b.WriteString(m.composeView())
	case modeDetail:
		b.WriteString(m.detailView())
	default:
		b.WriteString(m.search.View())
		b.WriteString("\n")
		b.WriteString(dividerStyle.Render(strings.Repeat("─", max(10, m.viewWidth()-2))))
		b.WriteString("\n")
		b.WriteString(m.gridView(m.cards()))
		b.WriteString("\n")
		b.WriteString(m.help.ShortHelpView(m.keys.gridHelp()))
	}

	if len(m.toasts) > 0 {
		b.WriteString("\n\n")
		b.WriteString(m.toastsView())
	}
	return b.String()
}

func (m *Model) viewWidth() int {
	if m.width <= 0 {
		return 80
	}
	return m.width
}
