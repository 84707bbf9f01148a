package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/nakachan-ing/expert-notes/internal/model"
	"github.com/nakachan-ing/expert-notes/internal/util"
)

type detailModel struct {
	note     model.Note
	rendered string
}

func (m *Model) openDetail(note model.Note) {
	m.detail = detailModel{note: note}
	m.mode = modeDetail
	m.renderDetail()
}

func (m *Model) renderDetail() {
	content := m.detail.note.Content
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(max(20, m.viewWidth()-8)),
	)
	if err == nil {
		var out string
		if out, err = r.Render(content); err == nil {
			m.detail.rendered = strings.TrimRight(out, "\n")
			return
		}
	}
	m.logger.Warn("markdown render failed, showing raw text", "error", err)
	m.detail.rendered = content
}

func (m *Model) detailView() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(util.RelativeTime(m.detail.note.CreatedAt, m.now())))
	b.WriteString("\n")
	b.WriteString(m.detail.rendered)
	b.WriteString("\n\n")
	b.WriteString(m.help.ShortHelpView(m.keys.detailHelp()))
	return dialogStyle.Width(max(20, m.viewWidth()-4)).Render(b.String())
}
