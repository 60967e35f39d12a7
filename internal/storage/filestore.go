// Package storage persists the whole planner store as a single JSON
// document. Every save serializes the full store and replaces the file
// atomically; there are no partial writes.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sandeepkv93/plannerd/internal/model"
)

// ErrCorrupt marks a data file that existed but could not be decoded.
// Load still returns a usable default store alongside it so a damaged
// file never blocks startup; callers decide whether to log or abort.
var ErrCorrupt = errors.New("storage: data file corrupt")

const tmpSuffix = ".tmp"

// FileStore reads and writes one data file. It holds no state beyond
// the path; the repository owns the in-memory store.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Path() string { return f.path }

// Load reads the data file. A missing file is first run and yields the
// default store with no error. An unreadable or undecodable file also
// yields the default store, but with an ErrCorrupt-wrapped error so
// the silent-data-loss case is visible to the caller.
func (f *FileStore) Load() (model.Store, error) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.DefaultStore(), nil
		}
		return model.DefaultStore(), fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	var store model.Store
	if err := json.Unmarshal(raw, &store); err != nil {
		return model.DefaultStore(), fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	normalize(&store)
	return store, nil
}

// Save atomically replaces the data file with the serialized store:
// write to a temp file in the same directory, then rename over the
// real path. On failure the temp artifact is removed and the error
// returned; the previous file content survives untouched.
func (f *FileStore) Save(store model.Store) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("storage: create data dir: %w", err)
	}

	raw, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: encode store: %w", err)
	}

	tmp := f.path + tmpSuffix
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("storage: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("storage: replace %s: %w", f.path, err)
	}
	return nil
}

// normalize fills nil collections so decoded stores behave like fresh
// ones (a hand-edited file may omit a key entirely).
func normalize(s *model.Store) {
	if s.Categories == nil {
		s.Categories = []model.Category{}
	}
	if s.Schedules == nil {
		s.Schedules = []model.Schedule{}
	}
	if s.Plans == nil {
		s.Plans = []model.Plan{}
	}
}
