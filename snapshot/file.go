package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileStore persists snapshots as JSON files. Writes go through a
// temporary file and rename so a crash never leaves a torn snapshot.
type FileStore[T any] struct {
	Path string
}

// NewFileStore creates a file store rooted at path.
func NewFileStore[T any](path string) *FileStore[T] {
	return &FileStore[T]{Path: path}
}

// Save writes the snapshot to the store path.
func (f *FileStore[T]) Save(s *Snapshot[T]) error {
	b, err := Encode(s)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(f.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("snapshot: create dir: %w", err)
		}
	}
	tmp := f.Path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("snapshot: write: %w", err)
	}
	if err := os.Rename(tmp, f.Path); err != nil {
		return fmt.Errorf("snapshot: rename: %w", err)
	}
	return nil
}

// Load reads and validates the snapshot at the store path.
func (f *FileStore[T]) Load() (*Snapshot[T], error) {
	b, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("snapshot: read: %w", err)
	}
	return Decode[T](b)
}
