package store

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nakachan-ing/expert-notes/internal/model"
	"github.com/nakachan-ing/expert-notes/internal/util"
)

const DefaultStorageKey = "notes"

var (
	ErrEmptyContent = errors.New("note content is empty")
	ErrPersist      = errors.New("failed to persist notes")
)

// NoteStore owns the ordered note collection (newest first) and rewrites the
// whole of it to the mirror after every mutation.
type NoteStore struct {
	mu     sync.RWMutex
	notes  []model.Note
	mirror Mirror
	key    string
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

type Option func(*NoteStore)

func WithStorageKey(key string) Option {
	return func(s *NoteStore) {
		if key != "" {
			s.key = key
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *NoteStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *NoteStore) { s.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *NoteStore) { s.newID = newID }
}

func NewNoteStore(mirror Mirror, opts ...Option) *NoteStore {
	s := &NoteStore{
		notes:  []model.Note{},
		mirror: mirror,
		key:    DefaultStorageKey,
		logger: slog.Default(),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load seeds memory from the mirror. Unreadable or corrupt data is treated as
// an empty collection.
func (s *NoteStore) Load() []model.Note {
	var notes []model.Note
	if err := LoadJson(s.mirror, s.key, &notes); err != nil {
		s.logger.Warn("notes unreadable, starting empty", "key", s.key, "error", err)
		notes = []model.Note{}
	}

	seen := make(map[string]struct{}, len(notes))
	unique := notes[:0]
	for _, n := range notes {
		if n.ID == "" {
			s.logger.Warn("dropping note without id", "created_at", n.CreatedAt)
			continue
		}
		if _, dup := seen[n.ID]; dup {
			s.logger.Warn("dropping note with duplicate id", "id", n.ID)
			continue
		}
		seen[n.ID] = struct{}{}
		unique = append(unique, n)
	}

	s.mu.Lock()
	s.notes = unique
	s.mu.Unlock()

	s.logger.Debug("notes loaded", "key", s.key, "count", len(unique))
	return s.All()
}

// Create prepends a new note. On a persist failure the note is still kept in
// memory and returned together with an error wrapping ErrPersist.
func (s *NoteStore) Create(content string) (model.Note, error) {
	if strings.TrimSpace(content) == "" {
		return model.Note{}, ErrEmptyContent
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	note := model.Note{
		ID:        s.uniqueID(),
		CreatedAt: s.now(),
		Content:   content,
	}
	s.notes = append([]model.Note{note}, s.notes...)

	if err := s.persist(); err != nil {
		return note, err
	}
	s.logger.Info("note created", "id", note.ID, "content_len", len(content))
	return note, nil
}

// Delete removes the note with id. An absent id is a no-op and does not touch
// the mirror.
func (s *NoteStore) Delete(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return false, nil
	}
	s.notes = append(s.notes[:idx:idx], s.notes[idx+1:]...)

	if err := s.persist(); err != nil {
		return true, err
	}
	s.logger.Info("note deleted", "id", id)
	return true, nil
}

// Search returns the notes whose content contains query, ignoring case.
func (s *NoteStore) Search(query string) []model.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return util.FullTextSearch(clone(s.notes), query)
}

func (s *NoteStore) All() []model.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.notes)
}

func (s *NoteStore) Get(id string) (model.Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx := s.indexOf(id); idx >= 0 {
		return s.notes[idx], true
	}
	return model.Note{}, false
}

func (s *NoteStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.notes)
}

func (s *NoteStore) indexOf(id string) int {
	for i := range s.notes {
		if s.notes[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *NoteStore) uniqueID() string {
	for {
		id := s.newID()
		if id != "" && s.indexOf(id) < 0 {
			return id
		}
	}
}

// persist must be called with mu held.
func (s *NoteStore) persist() error {
	if err := SaveJson(s.mirror, s.key, s.notes); err != nil {
		s.logger.Error("notes not saved", "key", s.key, "error", err)
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

func clone(notes []model.Note) []model.Note {
	out := make([]model.Note, len(notes))
	copy(out, notes)
	return out
}
