package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/entrhq/memo/pkg/slot"
)

const (
	// SectionIDStorage is the identifier for the storage settings section
	SectionIDStorage = "storage"

	defaultBackend    = slot.BackendFile
	defaultStorageKey = "memos"
)

// StorageSection configures where memos are persisted.
type StorageSection struct {
	Backend string // memory, file or sqlite
	Path    string // slot location; empty means <data dir>/memos.json or memos.db
	Key     string // slot key the memo list is stored under
	mu      sync.RWMutex
}

// NewStorageSection creates a storage section with default settings.
func NewStorageSection() *StorageSection {
	return &StorageSection{
		Backend: defaultBackend,
		Key:     defaultStorageKey,
	}
}

// ID returns the section identifier.
func (s *StorageSection) ID() string {
	return SectionIDStorage
}

// Title returns the section title.
func (s *StorageSection) Title() string {
	return "Storage"
}

// Description returns the section description.
func (s *StorageSection) Description() string {
	return "Choose the slot backend (memory, file or sqlite), its path and the key memos are stored under."
}

// Data returns the current configuration data.
func (s *StorageSection) Data() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"backend": s.Backend,
		"path":    s.Path,
		"key":     s.Key,
	}
}

// SetData updates the configuration from the provided data.
func (s *StorageSection) SetData(data map[string]interface{}) error {
	if data == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, value := range data {
		str, ok := value.(string)
		if !ok {
			if key == "backend" || key == "path" || key == "key" {
				return fmt.Errorf("invalid value type for %s: expected string, got %T", key, value)
			}
			continue
		}

		switch key {
		case "backend":
			s.Backend = strings.ToLower(strings.TrimSpace(str))
		case "path":
			s.Path = str
		case "key":
			s.Key = str
		}
	}

	return nil
}

// Validate validates the current configuration.
func (s *StorageSection) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch s.Backend {
	case slot.BackendMemory, slot.BackendFile, slot.BackendSQLite:
	default:
		return fmt.Errorf("backend must be memory, file or sqlite, got %q", s.Backend)
	}

	if strings.TrimSpace(s.Key) == "" {
		return fmt.Errorf("storage key cannot be empty")
	}
	return nil
}

// Reset resets the section to default configuration.
func (s *StorageSection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Backend = defaultBackend
	s.Path = ""
	s.Key = defaultStorageKey
}

// Get returns backend, path and key.
func (s *StorageSection) Get() (backend, path, key string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Backend, s.Path, s.Key
}
