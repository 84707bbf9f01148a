package util

import (
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
	"github.com/nakachan-ing/expert-notes/internal/model"
)

// FullTextSearch keeps the notes whose content contains query, ignoring case.
// An empty query returns notes unchanged.
func FullTextSearch(notes []model.Note, query string) []model.Note {
	if query == "" {
		return notes
	}

	query = strings.ToLower(query)
	filteredNotes := []model.Note{}

	for _, note := range notes {
		if strings.Contains(strings.ToLower(note.Content), query) {
			filteredNotes = append(filteredNotes, note)
		}
	}

	return filteredNotes
}

// RelativeTime describes t relative to now, e.g. "3 days ago". Times ahead
// of now read as "now".
func RelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return "some time ago"
	}
	if t.After(now) {
		t = now
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// Truncate shortens s to at most width terminal cells, ending with an
// ellipsis when cut. Whitespace runs collapse to single spaces.
func Truncate(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= width {
		return s
	}
	return strings.TrimRight(ansi.Truncate(s, width-1, ""), " ") + "…"
}
