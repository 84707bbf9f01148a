// Package dictation turns a stream of speech-recognition events into a
// single composed text value.
//
// A Recognizer is the platform capability. It opens Sessions, and every
// Session delivers Events whose Result holds all segments recognized so far.
// The Bridge owns at most one live Session and rebuilds the composed text
// from the full result on every event.
package dictation

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrUnsupported means the platform offers no speech recognition.
	ErrUnsupported = errors.New("speech recognition is not supported")

	// ErrRecording is returned by SetText while a session owns the text.
	ErrRecording = errors.New("cannot edit text while recording")
)

type SessionConfig struct {
	Language        string
	Continuous      bool
	InterimResults  bool
	MaxAlternatives int
}

func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		Language:        "pt-BR",
		Continuous:      true,
		InterimResults:  true,
		MaxAlternatives: 1,
	}
}

type Alternative struct {
	Transcript string
	Confidence float64
}

// Segment is one recognized utterance. Interim segments may still change.
type Segment struct {
	Alternatives []Alternative
	Final        bool
}

// Result is cumulative: it carries every segment of the session so far.
type Result struct {
	Segments []Segment
}

// Event is either a Result or a recognition error.
type Event struct {
	Result *Result
	Err    error
}

type Session interface {
	Start(ctx context.Context) error
	// Stop ends recognition. Events may still be buffered in the channel.
	Stop() error
	// Events is closed when the session ends.
	Events() <-chan Event
}

type Recognizer interface {
	NewSession(cfg SessionConfig) (Session, error)
}

// Transcript concatenates the first alternative of every segment.
func Transcript(r Result) string {
	var b strings.Builder
	for _, seg := range r.Segments {
		if len(seg.Alternatives) == 0 {
			continue
		}
		b.WriteString(seg.Alternatives[0].Transcript)
	}
	return b.String()
}

// Accumulator converts a delta-emitting capability into cumulative Results.
// Interim deltas replace the trailing interim segment; final deltas commit it.
type Accumulator struct {
	segments []Segment
}

func (a *Accumulator) Add(seg Segment) Result {
	if n := len(a.segments); n > 0 && !a.segments[n-1].Final {
		a.segments[n-1] = seg
	} else {
		a.segments = append(a.segments, seg)
	}

	out := make([]Segment, len(a.segments))
	copy(out, a.segments)
	return Result{Segments: out}
}

func (a *Accumulator) Reset() {
	a.segments = nil
}
