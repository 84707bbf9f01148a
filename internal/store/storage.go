package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const tempFilePrefix = "notes-tmp-"

// Mirror is a durable key-value slot. Get of an absent key returns an error
// matching os.ErrNotExist.
type Mirror interface {
	Get(key string) ([]byte, error)
	Set(key string, data []byte) error
}

// FileMirror keeps each key in Dir/<key>.json.
type FileMirror struct {
	Dir string
}

func NewFileMirror(dir string) *FileMirror {
	return &FileMirror{Dir: dir}
}

func (m *FileMirror) Path(key string) string {
	return filepath.Join(m.Dir, key+".json")
}

func (m *FileMirror) Get(key string) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(m.Path(key))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

func (m *FileMirror) Set(key string, data []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if err := os.MkdirAll(m.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return writeFileAtomic(m.Path(key), data, 0644)
}

func checkKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\`) {
		return fmt.Errorf("invalid storage key %q", key)
	}
	return nil
}

// LoadJson decodes the slot at key into v. An absent or empty slot leaves v
// as an empty slice.
func LoadJson[T any](m Mirror, key string, v *[]T) error {
	data, err := m.Get(key)
	if errors.Is(err, os.ErrNotExist) {
		*v = []T{}
		return nil
	} else if err != nil {
		return err
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		*v = []T{}
		return nil
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}
	if *v == nil {
		*v = []T{}
	}
	return nil
}

// SaveJson overwrites the slot at key with the whole of v.
func SaveJson[T any](m Mirror, key string, v []T) error {
	if v == nil {
		v = []T{}
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to convert to JSON: %w", err)
	}
	if err := m.Set(key, data); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}

// writeFileAtomic replaces filename in one rename, so readers see either the
// old content or the new one. The temp file is removed on any failure.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(filename), tempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = tmp.Chmod(perm); err != nil {
		return fmt.Errorf("failed to set mode on %s: %w", tmp.Name(), err)
	}
	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp.Name(), err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", tmp.Name(), err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmp.Name(), err)
	}
	if err = os.Rename(tmp.Name(), filename); err != nil {
		return fmt.Errorf("failed to replace %s: %w", filename, err)
	}
	committed = true
	return nil
}
