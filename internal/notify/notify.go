// Package notify carries fire-and-forget user notifications.
package notify

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fatih/color"
)

type Level string

const (
	Success Level = "success"
	Warning Level = "warning"
)

type Notification struct {
	Level       Level
	Title       string
	Description string
	// Duration is how long a toast stays visible; zero means the surface default.
	Duration time.Duration
}

// DurationOr returns n.Duration, or the default for its level when unset.
func (n Notification) DurationOr(success, warning time.Duration) time.Duration {
	if n.Duration > 0 {
		return n.Duration
	}
	if n.Level == Warning {
		return warning
	}
	return success
}

type Notifier interface {
	Notify(n Notification)
}

func NoteSaved() Notification {
	return Notification{Level: Success, Title: "Note saved", Description: "Your note was saved."}
}

func EmptyNote() Notification {
	return Notification{Level: Warning, Title: "Nothing to save", Description: "Empty notes are not saved.", Duration: 3500 * time.Millisecond}
}

func NoteDeleted() Notification {
	return Notification{Level: Success, Title: "Note deleted", Duration: 3 * time.Second}
}

func DictationUnavailable() Notification {
	return Notification{Level: Warning, Title: "Dictation unavailable", Description: "No speech recognizer is configured on this system.", Duration: 3 * time.Second}
}

func PersistFailed(err error) Notification {
	return Notification{Level: Warning, Title: "Changes not saved to disk", Description: err.Error()}
}

func DictationError(err error) Notification {
	return Notification{Level: Warning, Title: "Recognition error", Description: err.Error()}
}

// Console prints notifications as single colored lines.
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Notify(n Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var icon string
	var title func(a ...interface{}) string
	switch n.Level {
	case Warning:
		icon = "⚠️"
		title = color.New(color.FgYellow, color.Bold).SprintFunc()
	default:
		icon = "✅"
		title = color.New(color.FgGreen, color.Bold).SprintFunc()
	}

	if n.Description != "" {
		fmt.Fprintf(c.w, "%s %s %s\n", icon, title(n.Title), n.Description)
		return
	}
	fmt.Fprintf(c.w, "%s %s\n", icon, title(n.Title))
}

// Recorder keeps every notification; useful where output is not wanted.
type Recorder struct {
	mu  sync.Mutex
	all []Notification
}

func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	r.all = append(r.all, n)
	r.mu.Unlock()
}

func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.all))
	copy(out, r.all)
	return out
}
