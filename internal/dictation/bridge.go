package dictation

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

type State int

const (
	Idle State = iota
	Recording
)

func (s State) String() string {
	switch s {
	case Recording:
		return "recording"
	default:
		return "idle"
	}
}

// Update is a snapshot of the bridge after an event.
type Update struct {
	State State
	Text  string
	Err   error
}

// Bridge owns at most one recognition session and the text it composes.
type Bridge struct {
	mu          sync.Mutex
	recognizer  Recognizer
	cfg         SessionConfig
	logger      *slog.Logger
	stopOnError bool

	state   State
	text    string
	session Session
	cancel  context.CancelFunc
	done    chan struct{}

	updates chan Update
}

type BridgeOption func(*Bridge)

func WithLogger(logger *slog.Logger) BridgeOption {
	return func(b *Bridge) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithStopOnError makes a recognition error end the session. By default
// errors are reported and recording continues until Stop.
func WithStopOnError(stop bool) BridgeOption {
	return func(b *Bridge) { b.stopOnError = stop }
}

// NewBridge returns an idle bridge. A nil recognizer means the platform has
// no speech capability and Start will report ErrUnsupported.
func NewBridge(rec Recognizer, cfg SessionConfig, opts ...BridgeOption) *Bridge {
	b := &Bridge{
		recognizer: rec,
		cfg:        cfg,
		logger:     slog.Default(),
		updates:    make(chan Update, 1),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Start opens a session and begins applying its events. It is a no-op while
// already recording.
func (b *Bridge) Start(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == Recording {
		return nil
	}
	if b.recognizer == nil {
		return ErrUnsupported
	}

	sess, err := b.recognizer.NewSession(b.cfg)
	if err != nil {
		b.logger.Warn("dictation unavailable", "error", err)
		return err
	}

	sessCtx, cancel := context.WithCancel(ctx)
	if err := sess.Start(sessCtx); err != nil {
		cancel()
		b.logger.Warn("dictation failed to start", "error", err)
		return fmt.Errorf("failed to start recognition: %w", err)
	}

	b.state = Recording
	b.text = ""
	b.session = sess
	b.cancel = cancel
	b.done = make(chan struct{})
	b.publish(Update{State: Recording})

	go b.pump(sessCtx, sess, b.done)

	b.logger.Info("dictation started", "language", b.cfg.Language)
	return nil
}

// Stop ends the active session and returns once no further events will be
// applied. It is a no-op while idle.
func (b *Bridge) Stop() error {
	b.mu.Lock()
	if b.state != Recording {
		b.mu.Unlock()
		return nil
	}
	sess, cancel, done := b.session, b.cancel, b.done
	b.release()
	b.publish(Update{State: Idle, Text: b.text})
	b.mu.Unlock()

	err := sess.Stop()
	cancel()
	<-done

	b.logger.Info("dictation stopped", "text_len", len(b.Text()))
	if err != nil {
		return fmt.Errorf("failed to stop recognition: %w", err)
	}
	return nil
}

func (b *Bridge) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Bridge) Text() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.text
}

// SetText replaces the composed text, as typing does. It fails while
// recording since the session owns the text then.
func (b *Bridge) SetText(text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == Recording {
		return ErrRecording
	}
	b.text = text
	return nil
}

// Updates delivers the latest snapshot; older unread snapshots are replaced.
func (b *Bridge) Updates() <-chan Update {
	return b.updates
}

func (b *Bridge) pump(ctx context.Context, sess Session, done chan struct{}) {
	defer close(done)

	events := sess.Events()
	for {
		select {
		case <-ctx.Done():
			b.endSession(sess, nil, true)
			return
		case ev, ok := <-events:
			switch {
			case !ok:
				b.endSession(sess, nil, false)
				return
			case ev.Err != nil && b.stopOnError:
				b.logger.Warn("recognition error", "error", ev.Err)
				b.endSession(sess, ev.Err, true)
				return
			}
			if !b.apply(sess, ev) {
				return
			}
		}
	}
}

// apply reports whether the pump should keep reading.
func (b *Bridge) apply(sess Session, ev Event) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.session != sess || b.state != Recording {
		return false
	}

	if ev.Err != nil {
		b.logger.Warn("recognition error", "error", ev.Err)
		b.publish(Update{State: Recording, Text: b.text, Err: ev.Err})
		return true
	}

	if ev.Result != nil {
		b.text = Transcript(*ev.Result)
		b.publish(Update{State: Recording, Text: b.text})
	}
	return true
}

// endSession returns the bridge to Idle when sess is still the active session.
// The pump uses it for every ending that does not come from Stop. With stop
// set the session is told to stop too.
func (b *Bridge) endSession(sess Session, cause error, stop bool) {
	b.mu.Lock()
	if b.session != sess {
		b.mu.Unlock()
		return
	}
	cancel := b.cancel
	b.release()
	b.publish(Update{State: Idle, Text: b.text, Err: cause})
	textLen := len(b.text)
	b.mu.Unlock()

	if stop {
		if err := sess.Stop(); err != nil {
			b.logger.Warn("failed to stop recognition", "error", err)
		}
	}
	cancel()
	b.logger.Info("dictation session ended", "text_len", textLen)
}

// release must be called with mu held.
func (b *Bridge) release() {
	b.state = Idle
	b.session = nil
	b.cancel = nil
	b.done = nil
}

// publish must be called with mu held.
func (b *Bridge) publish(u Update) {
	select {
	case <-b.updates:
	default:
	}
	b.updates <- u
}
