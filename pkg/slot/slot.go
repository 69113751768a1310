// Package slot provides the durable key-value slot memo state is mirrored to.
//
// A slot is a synchronous, string-keyed store in the spirit of a browser's
// localStorage: one Get at startup, one Set after every change.
package slot

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCorrupt is returned by Get when the slot's backing document cannot be
// decoded. The slot stays writable: the next Set starts a fresh document.
var ErrCorrupt = errors.New("slot: corrupt document")

// CorruptSuffix is appended to the path of a file slot document that was
// moved aside because it could not be decoded.
const CorruptSuffix = ".corrupt"

// Slot is a synchronous string-keyed storage service.
type Slot interface {
	// Get returns the value stored under key. ok is false when the key
	// has never been set.
	Get(key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(key, value string) error
}

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Closer is implemented by slots that hold an open resource.
type Closer interface {
	Close() error
}

// Open creates the slot for a backend name. path is ignored for the memory
// backend.
func Open(backend, path string) (Slot, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case BackendMemory:
		return NewMemory(), nil
	case BackendFile, "":
		if path == "" {
			return nil, fmt.Errorf("slot: file backend requires a path")
		}
		return NewFile(path), nil
	case BackendSQLite:
		if path == "" {
			return nil, fmt.Errorf("slot: sqlite backend requires a path")
		}
		db, err := NewSQLite(path)
		if err != nil {
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("slot: unknown backend %q (must be memory, file or sqlite)", backend)
	}
}

// Close releases s if it holds a resource.
func Close(s Slot) error {
	if c, ok := s.(Closer); ok {
		return c.Close()
	}
	return nil
}
