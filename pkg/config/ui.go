package config

import (
	"fmt"
	"strings"
	"sync"
)

const (
	// SectionIDUI is the identifier for the UI settings section
	SectionIDUI = "ui"

	// Default values for UI settings
	defaultTitle         = "Memo"
	defaultConfirmDelete = true
	defaultDateFormat    = "2006-01-02 15:04"
)

// UISection manages user interface configuration settings.
type UISection struct {
	Heading       string `json:"title"`
	ConfirmDelete bool   `json:"confirm_delete"`
	DateFormat    string `json:"date_format"` // Go reference layout
	mu            sync.RWMutex
}

// NewUISection creates a new UI section with default settings.
func NewUISection() *UISection {
	return &UISection{
		Heading:       defaultTitle,
		ConfirmDelete: defaultConfirmDelete,
		DateFormat:    defaultDateFormat,
	}
}

// ID returns the section identifier.
func (s *UISection) ID() string {
	return SectionIDUI
}

// Title returns the section title.
func (s *UISection) Title() string {
	return "UI Settings"
}

// Description returns the section description.
func (s *UISection) Description() string {
	return "Configure the header title, delete confirmation and how memo dates are shown."
}

// Data returns the current configuration data.
func (s *UISection) Data() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"title":          s.Heading,
		"confirm_delete": s.ConfirmDelete,
		"date_format":    s.DateFormat,
	}
}

// SetData updates the configuration from the provided data.
func (s *UISection) SetData(data map[string]interface{}) error {
	if data == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, value := range data {
		switch key {
		case "title":
			if title, ok := value.(string); ok {
				s.Heading = title
			} else {
				return fmt.Errorf("invalid value type for title: expected string, got %T", value)
			}

		case "confirm_delete":
			if enabled, ok := value.(bool); ok {
				s.ConfirmDelete = enabled
			} else {
				return fmt.Errorf("invalid value type for confirm_delete: expected bool, got %T", value)
			}

		case "date_format":
			if layout, ok := value.(string); ok {
				s.DateFormat = layout
			} else {
				return fmt.Errorf("invalid value type for date_format: expected string, got %T", value)
			}

		default:
			// Ignore unknown keys for forward compatibility
			continue
		}
	}

	return nil
}

// Validate validates the current configuration.
func (s *UISection) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if strings.TrimSpace(s.DateFormat) == "" {
		return fmt.Errorf("date_format cannot be empty")
	}
	return nil
}

// Reset resets the section to default configuration.
func (s *UISection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Heading = defaultTitle
	s.ConfirmDelete = defaultConfirmDelete
	s.DateFormat = defaultDateFormat
}

// Get returns title, confirm-delete and date layout.
func (s *UISection) Get() (title string, confirmDelete bool, dateFormat string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Heading, s.ConfirmDelete, s.DateFormat
}
