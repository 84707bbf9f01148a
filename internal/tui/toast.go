package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/nakachan-ing/expert-notes/internal/notify"
)

const maxToasts = 3

var (
	successToastStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#22C55E")).Padding(0, 1)
	warningToastStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#EAB308")).Padding(0, 1)
)

type toast struct {
	id int
	n  notify.Notification
}

type toastExpiredMsg struct{ id int }

// toast shows n and schedules its dismissal.
func (m *Model) toast(n notify.Notification) tea.Cmd {
	m.nextToast++
	id := m.nextToast
	m.toasts = append(m.toasts, toast{id: id, n: n})
	if len(m.toasts) > maxToasts {
		m.toasts = m.toasts[len(m.toasts)-maxToasts:]
	}

	d := n.DurationOr(m.notifyCfg.SuccessDuration, m.notifyCfg.WarningDuration)
	m.logger.Debug("toast", "level", n.Level, "title", n.Title, "duration", d)
	return tea.Tick(d, func(time.Time) tea.Msg { return toastExpiredMsg{id: id} })
}

func (m *Model) dropToast(id int) {
	for i, t := range m.toasts {
		if t.id == id {
			m.toasts = append(m.toasts[:i:i], m.toasts[i+1:]...)
			return
		}
	}
}

func (m *Model) toastsView() string {
	views := make([]string, 0, len(m.toasts))
	for _, t := range m.toasts {
		style, icon := successToastStyle, "✅"
		if t.n.Level == notify.Warning {
			style, icon = warningToastStyle, "⚠️"
		}
		text := icon + " " + headerStyle.Render(t.n.Title)
		if t.n.Description != "" {
			text += "\n" + mutedStyle.Render(t.n.Description)
		}
		views = append(views, style.Render(text))
	}
	return strings.Join(views, "\n")
}
