package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/nakachan-ing/expert-notes/internal/model"
	"github.com/nakachan-ing/expert-notes/internal/util"
)

const cardHeight = 7

var (
	accent = lipgloss.Color("#A3E635")
	slate  = lipgloss.Color("#475569")

	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(accent)
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#CBD5E1"))
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8"))
	accentStyle    = lipgloss.NewStyle().Foreground(accent)
	recordingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F43F5E"))
	dividerStyle   = lipgloss.NewStyle().Foreground(slate)
	dialogStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(slate).Padding(1, 2)
	cardStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(slate).Padding(0, 1).MarginRight(1)
	addCardStyle   = cardStyle.Background(lipgloss.Color("#334155"))
)

type card struct {
	add  bool
	note model.Note
}

// columns mirrors a responsive grid: three columns on wide terminals, two on
// medium ones, otherwise one.
func columns(width int) int {
	switch {
	case width >= 120:
		return 3
	case width >= 80:
		return 2
	default:
		return 1
	}
}

func (m *Model) gridView(cards []card) string {
	cols := columns(m.width)
	// border and margin take three cells per card
	cardWidth := max(16, m.viewWidth()/cols-3)

	rows := make([]string, 0, len(cards)/cols+1)
	for i := 0; i < len(cards); i += cols {
		cells := make([]string, 0, cols)
		for j := i; j < len(cards) && j < i+cols; j++ {
			cells = append(cells, m.cardView(cards[j], cardWidth, j == m.cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *Model) cardView(c card, width int, selected bool) string {
	style := cardStyle
	header := util.RelativeTime(c.note.CreatedAt, m.now())
	body := c.note.Content
	if c.add {
		style = addCardStyle
		header = "Add note"
		body = "Record an audio note that will be converted to text automatically."
	}
	if selected {
		style = style.BorderForeground(accent)
	}

	inner := width - 2
	lines := []string{headerStyle.Render(header)}
	lines = append(lines, wrap(body, inner, cardHeight-2)...)
	return style.Width(width).Height(cardHeight).Render(strings.Join(lines, "\n"))
}

// wrap fits text into at most maxLines lines of width cells, truncating the
// last one.
func wrap(text string, width, maxLines int) []string {
	text = strings.Join(strings.Fields(text), " ")
	if text == "" || width <= 0 || maxLines <= 0 {
		return nil
	}
	lines := strings.Split(ansi.Wrap(text, width, ""), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	if len(lines) > maxLines {
		rest := strings.Join(lines[maxLines-1:], " ")
		lines = append(lines[:maxLines-1], util.Truncate(rest, width))
	}
	return lines
}
