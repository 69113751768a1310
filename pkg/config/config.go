// Package config loads memo settings from the environment and from the
// YAML settings file, and resolves them into the values the commands use.
package config

import (
	"sync"
)

var (
	// globalManager is the singleton configuration manager instance
	globalManager *Manager
	globalMu      sync.Mutex
)

// Initialize creates the global configuration manager over the settings
// file at configPath (empty for ~/.memo/config.yaml), registers the default
// sections and loads them. It should be called once at startup.
func Initialize(configPath string) error {
	globalMu.Lock()
	defer globalMu.Unlock()

	store, err := NewFileStore(configPath)
	if err != nil {
		return err
	}

	manager := NewManager(store)

	if err := manager.RegisterSection(NewStorageSection()); err != nil {
		return err
	}

	if err := manager.RegisterSection(NewUISection()); err != nil {
		return err
	}

	if err := manager.LoadAll(); err != nil {
		return err
	}

	globalManager = manager
	return nil
}

// Global returns the global configuration manager.
// Panics if Initialize has not been called.
func Global() *Manager {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalManager == nil {
		panic("config not initialized: call config.Initialize first")
	}

	return globalManager
}

// IsInitialized returns true if the global configuration has been initialized.
func IsInitialized() bool {
	globalMu.Lock()
	defer globalMu.Unlock()
	return globalManager != nil
}

// GetStorage returns the storage section from global config.
// Returns nil if config is not initialized.
func GetStorage() *StorageSection {
	if !IsInitialized() {
		return nil
	}

	section, ok := Global().GetSection(SectionIDStorage)
	if !ok {
		return nil
	}

	storage, ok := section.(*StorageSection)
	if !ok {
		return nil
	}

	return storage
}

// GetUI returns the UI section from global config.
// Returns nil if config is not initialized.
func GetUI() *UISection {
	if !IsInitialized() {
		return nil
	}

	section, ok := Global().GetSection(SectionIDUI)
	if !ok {
		return nil
	}

	ui, ok := section.(*UISection)
	if !ok {
		return nil
	}

	return ui
}
