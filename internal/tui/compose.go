package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nakachan-ing/expert-notes/internal/dictation"
	"github.com/nakachan-ing/expert-notes/internal/notify"
	"github.com/nakachan-ing/expert-notes/internal/store"
)

// composeModel is the new-note dialog. It starts in onboarding, where the
// user picks recording or typing, and goes back there whenever the text is
// cleared.
type composeModel struct {
	textarea   textarea.Model
	onboarding bool
	recording  bool
}

func newCompose() composeModel {
	ta := textarea.New()
	ta.Placeholder = "Write your note..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(8)
	return composeModel{textarea: ta, onboarding: true}
}

func (c *composeModel) reset() {
	c.textarea.Reset()
	c.textarea.Blur()
	c.onboarding = true
	c.recording = false
}

func (c *composeModel) resize(width int) {
	if width <= 0 {
		return
	}
	c.textarea.SetWidth(max(20, width-6))
}

func (m *Model) openCompose() {
	m.compose.reset()
	m.compose.resize(m.width)
	m.mode = modeCompose
}

func (m *Model) closeCompose() {
	m.compose.reset()
	m.mode = modeGrid
}

func (m *Model) updateCompose(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Back) {
		m.stopDictation()
		m.closeCompose()
		return nil
	}

	if m.compose.onboarding {
		switch {
		case key.Matches(msg, m.keys.Record):
			return m.startRecording()
		case key.Matches(msg, m.keys.Type):
			m.compose.onboarding = false
			return m.compose.textarea.Focus()
		case key.Matches(msg, m.keys.Save):
			return m.save()
		}
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Save):
		return m.save()
	case key.Matches(msg, m.keys.Toggle):
		if m.compose.recording {
			return m.stopRecording()
		}
		return m.startRecording()
	}

	// read-only while the recognizer owns the text
	if m.compose.recording {
		return nil
	}

	var cmd tea.Cmd
	m.compose.textarea, cmd = m.compose.textarea.Update(msg)
	if m.compose.textarea.Value() == "" {
		m.compose.onboarding = true
		m.compose.textarea.Blur()
	}
	return cmd
}

func (m *Model) startRecording() tea.Cmd {
	if m.dict == nil {
		return m.toast(notify.DictationUnavailable())
	}

	err := m.dict.Start(m.ctx)
	switch {
	case errors.Is(err, dictation.ErrUnsupported):
		return m.toast(notify.DictationUnavailable())
	case err != nil:
		return m.toast(notify.DictationError(err))
	}

	m.compose.onboarding = false
	m.compose.recording = true
	m.compose.textarea.Blur()
	m.compose.textarea.SetValue("")
	return nil
}

func (m *Model) stopRecording() tea.Cmd {
	m.stopDictation()
	m.compose.recording = false
	return m.settleText(m.dict.Text())
}

// settleText shows the final transcript for editing, or onboarding if empty.
func (m *Model) settleText(text string) tea.Cmd {
	m.compose.textarea.SetValue(text)
	if text == "" {
		m.compose.onboarding = true
		return nil
	}
	return m.compose.textarea.Focus()
}

func (m *Model) applyDictation(u dictation.Update) tea.Cmd {
	var cmds []tea.Cmd
	if u.Err != nil {
		cmds = append(cmds, m.toast(notify.DictationError(u.Err)))
	}
	if m.mode != modeCompose || !m.compose.recording {
		return tea.Batch(cmds...)
	}

	if u.State == dictation.Idle {
		// a late snapshot of an earlier session
		if m.dict.State() == dictation.Recording {
			return tea.Batch(cmds...)
		}
		m.compose.recording = false
		cmds = append(cmds, m.settleText(u.Text))
		return tea.Batch(cmds...)
	}

	m.compose.textarea.SetValue(u.Text)
	return tea.Batch(cmds...)
}

func (m *Model) save() tea.Cmd {
	if m.compose.recording {
		m.stopDictation()
		m.compose.recording = false
		m.compose.textarea.SetValue(m.dict.Text())
	}

	note, err := m.notes.Create(m.compose.textarea.Value())
	switch {
	case errors.Is(err, store.ErrEmptyContent):
		m.compose.reset()
		return m.toast(notify.EmptyNote())
	case err != nil:
		m.closeCompose()
		return m.toast(notify.PersistFailed(err))
	}

	m.logger.Debug("note saved", "id", note.ID, "content_len", len(note.Content))
	m.closeCompose()
	return m.toast(notify.NoteSaved())
}

func (m *Model) composeView() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("New note"))
	b.WriteString("\n\n")

	switch {
	case m.compose.onboarding:
		b.WriteString(mutedStyle.Render("Start by ") + accentStyle.Render("[r] recording an audio note"))
		b.WriteString(mutedStyle.Render(" or, if you prefer, ") + accentStyle.Render("[t] use only text"))
		b.WriteString(mutedStyle.Render("."))
		b.WriteString("\n\n")
		b.WriteString(m.help.ShortHelpView(m.keys.onboardingHelp()))
	default:
		b.WriteString(m.compose.textarea.View())
		b.WriteString("\n\n")
		if m.compose.recording {
			b.WriteString(recordingStyle.Render("● Recording (ctrl+r to stop)"))
			b.WriteString("\n")
		}
		b.WriteString(m.help.ShortHelpView(m.keys.editorHelp()))
	}
	return dialogStyle.Width(max(20, m.viewWidth()-4)).Render(b.String())
}
