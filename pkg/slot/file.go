package slot

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// File is a Slot backed by a single JSON document mapping keys to values.
// Every Get reads the file and every Set rewrites it atomically, so a
// separate process always observes the last completed Set.
type File struct {
	path string
	mu   sync.Mutex
}

// NewFile creates a file slot at path. The file is created on first Set.
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the file path of the slot.
func (f *File) Path() string {
	return f.path
}

// Get implements Slot.
func (f *File) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.read()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

// Set implements Slot.
func (f *File) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.read()
	if errors.Is(err, ErrCorrupt) {
		if err := f.quarantine(); err != nil {
			return err
		}
		values = make(map[string]string)
	} else if err != nil {
		return err
	}
	values[key] = value
	return f.write(values)
}

func (f *File) read() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, fmt.Errorf("failed to read slot file: %w", err)
	}

	values := make(map[string]string)
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, f.path, err)
	}
	return values, nil
}

// quarantine moves an undecodable document to path+CorruptSuffix so it is
// not lost when a new document replaces it.
func (f *File) quarantine() error {
	if err := os.Rename(f.path, f.path+CorruptSuffix); err != nil {
		return fmt.Errorf("failed to move corrupt slot file aside: %w", err)
	}
	return nil
}

func (f *File) write(values map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0750); err != nil {
		return fmt.Errorf("failed to create slot directory: %w", err)
	}

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode slot file: %w", err)
	}

	tempPath := f.path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to write temp slot file: %w", err)
	}

	if err := os.Rename(tempPath, f.path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}
