package draft

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dojouemura/go-matricula/pkg/session"
)

// FileStore keeps the draft as one JSON document on disk. Writes go through a
// temp file and rename so a crash mid-save never leaves a torn draft behind.
type FileStore struct {
	path string
}

// NewFileStore creates a store writing to the given path. An empty path
// defaults to Key + ".json" in the user config directory, falling back to the
// working directory when none is available.
func NewFileStore(path string) *FileStore {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			dir = "."
		}
		path = filepath.Join(dir, Key+".json")
	}
	return &FileStore{path: path}
}

// Path returns the backing file location.
func (s *FileStore) Path() string {
	return s.path
}

// Save serializes the draft and replaces the stored document.
func (s *FileStore) Save(d session.Draft) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("draft: encode: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("draft: prepare directory: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("draft: write: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("draft: replace: %w", err)
	}
	return nil
}

// Load reads the stored draft. A missing or unparseable file loads as empty.
func (s *FileStore) Load() (session.Draft, bool, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return session.Draft{}, false, nil
	}
	if err != nil {
		return session.Draft{}, false, fmt.Errorf("draft: read: %w", err)
	}
	var d session.Draft
	if err := json.Unmarshal(data, &d); err != nil {
		return session.Draft{}, false, nil
	}
	return d, true, nil
}

// Clear removes the stored draft file.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("draft: clear: %w", err)
	}
	return nil
}
