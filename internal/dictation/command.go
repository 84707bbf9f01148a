package dictation

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"
)

const stopGracePeriod = 2 * time.Second

// CommandRecognizer runs an external recognizer process per session. The
// process receives the session config in DICTATION_* environment variables
// and writes one event per stdout line:
//
//	{"results":[{"transcript":"hello","confidence":0.9,"final":true}]}
//	{"error":"no-speech"}
//
// JSON results are cumulative. Any other non-empty line is taken as a final
// delta segment and accumulated.
type CommandRecognizer struct {
	Command string
	Args    []string
	// Env is appended to the current environment.
	Env []string
}

func (r *CommandRecognizer) NewSession(cfg SessionConfig) (Session, error) {
	if r == nil || strings.TrimSpace(r.Command) == "" {
		return nil, ErrUnsupported
	}
	path, err := exec.LookPath(r.Command)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupported, err)
	}

	env := append(os.Environ(), r.Env...)
	env = append(env,
		"DICTATION_LANG="+cfg.Language,
		"DICTATION_CONTINUOUS="+strconv.FormatBool(cfg.Continuous),
		"DICTATION_INTERIM_RESULTS="+strconv.FormatBool(cfg.InterimResults),
		"DICTATION_MAX_ALTERNATIVES="+strconv.Itoa(cfg.MaxAlternatives),
	)

	return &commandSession{
		path:   path,
		args:   append([]string(nil), r.Args...),
		env:    env,
		events: make(chan Event, 16),
	}, nil
}

type commandSession struct {
	path   string
	args   []string
	env    []string
	events chan Event

	mu      sync.Mutex
	cmd     *exec.Cmd
	cancel  context.CancelFunc
	stopped bool
	exited  chan struct{}
}

func (s *commandSession) Events() <-chan Event {
	return s.events
}

func (s *commandSession) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cmd != nil {
		return errors.New("session already started")
	}

	ctx, cancel := context.WithCancel(ctx)
	cmd := exec.CommandContext(ctx, s.path, s.args...)
	cmd.Env = s.env
	cmd.Cancel = func() error { return cmd.Process.Signal(os.Interrupt) }
	cmd.WaitDelay = stopGracePeriod

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return fmt.Errorf("failed to open recognizer output: %w", err)
	}
	if err := cmd.Start(); err != nil {
		cancel()
		return fmt.Errorf("failed to start recognizer %s: %w", s.path, err)
	}

	s.cmd = cmd
	s.cancel = cancel
	s.exited = make(chan struct{})

	go s.read(ctx, stdout)
	return nil
}

func (s *commandSession) read(ctx context.Context, stdout io.Reader) {
	defer close(s.events)
	defer close(s.exited)

	var acc Accumulator
	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		ev, ok := ParseLine(scanner.Text(), &acc)
		if !ok {
			continue
		}
		select {
		case s.events <- ev:
		case <-ctx.Done():
			_ = s.cmd.Wait()
			return
		}
	}

	scanErr := scanner.Err()
	waitErr := s.cmd.Wait()

	s.mu.Lock()
	stopped := s.stopped
	s.mu.Unlock()
	if stopped || ctx.Err() != nil {
		return
	}
	if scanErr != nil {
		s.deliver(ctx, Event{Err: fmt.Errorf("failed to read recognizer output: %w", scanErr)})
	}
	if waitErr != nil {
		s.deliver(ctx, Event{Err: fmt.Errorf("recognizer exited: %w", waitErr)})
	}
}

func (s *commandSession) deliver(ctx context.Context, ev Event) {
	select {
	case s.events <- ev:
	case <-ctx.Done():
	}
}

// Stop interrupts the recognizer and waits for it to exit; it is killed if
// it outlives the grace period.
func (s *commandSession) Stop() error {
	s.mu.Lock()
	if s.cmd == nil || s.stopped {
		s.mu.Unlock()
		return nil
	}
	s.stopped = true
	cancel, exited := s.cancel, s.exited
	s.mu.Unlock()

	cancel()
	select {
	case <-exited:
	case <-time.After(2 * stopGracePeriod):
		return errors.New("recognizer did not exit")
	}
	return nil
}

type wireAlternative struct {
	Transcript string  `json:"transcript"`
	Confidence float64 `json:"confidence"`
	Final      bool    `json:"final"`
}

// Results is a pointer so a status object without the key is told apart
// from an explicit empty result list.
type wireEvent struct {
	Results *[]wireAlternative `json:"results"`
	Error   string             `json:"error"`
}

// ParseLine decodes one recognizer output line. Plain text lines are deltas
// added to acc. It reports false for lines that carry no event, including
// JSON objects with neither results nor an error.
func ParseLine(line string, acc *Accumulator) (Event, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Event{}, false
	}

	if strings.HasPrefix(line, "{") {
		var we wireEvent
		if err := json.Unmarshal([]byte(line), &we); err == nil {
			if we.Error != "" {
				return Event{Err: errors.New(we.Error)}, true
			}
			if we.Results == nil {
				return Event{}, false
			}
			res := Result{Segments: make([]Segment, 0, len(*we.Results))}
			for _, r := range *we.Results {
				res.Segments = append(res.Segments, Segment{
					Alternatives: []Alternative{{Transcript: r.Transcript, Confidence: r.Confidence}},
					Final:        r.Final,
				})
			}
			return Event{Result: &res}, true
		}
	}

	res := acc.Add(Segment{
		Alternatives: []Alternative{{Transcript: deltaText(line, acc)}},
		Final:        true,
	})
	return Event{Result: &res}, true
}

// deltaText separates successive plain-text deltas with a space.
func deltaText(line string, acc *Accumulator) string {
	if len(acc.segments) == 0 {
		return line
	}
	return " " + line
}
