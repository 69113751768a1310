package config

import (
	"fmt"
	"path/filepath"

	"github.com/entrhq/memo/pkg/slot"
)

// Overrides are values given on the command line. Empty fields are unset.
type Overrides struct {
	Backend string
	DataDir string
	Key     string
}

// Settings are the resolved values a memo process runs with.
type Settings struct {
	DataDir       string
	Backend       string
	SlotPath      string
	Key           string
	Title         string
	Version       string
	ConfirmDelete bool
	DateFormat    string
}

// ResolveDataDir picks the data directory: CLI flag > environment > ~/.memo.
func ResolveDataDir(over Overrides, env Env) (string, error) {
	if dir := firstNonEmpty(over.DataDir, env.DataDir); dir != "" {
		return dir, nil
	}
	return DefaultDataDir()
}

// Resolve merges the sources with precedence
// CLI flags > environment > settings file > defaults.
// The settings file is read through the global manager when initialized.
func Resolve(over Overrides, env Env, buildVersion string) (Settings, error) {
	dataDir, err := ResolveDataDir(over, env)
	if err != nil {
		return Settings{}, err
	}

	fileBackend, filePath, fileKey := "", "", ""
	if storage := GetStorage(); storage != nil {
		fileBackend, filePath, fileKey = storage.Get()
	}

	title, confirmDelete, dateFormat := defaultTitle, defaultConfirmDelete, defaultDateFormat
	if ui := GetUI(); ui != nil {
		title, confirmDelete, dateFormat = ui.Get()
	}

	settings := Settings{
		DataDir:       dataDir,
		Backend:       firstNonEmpty(over.Backend, env.Backend, fileBackend, defaultBackend),
		Key:           firstNonEmpty(over.Key, env.StorageKey, fileKey, defaultStorageKey),
		Title:         firstNonEmpty(env.AppTitle, title, defaultTitle),
		Version:       firstNonEmpty(env.AppVersion, buildVersion),
		ConfirmDelete: confirmDelete,
		DateFormat:    firstNonEmpty(dateFormat, defaultDateFormat),
	}

	// A path from the settings file only applies to the backend it was set for
	if fileBackend != settings.Backend {
		filePath = ""
	}

	switch settings.Backend {
	case slot.BackendMemory:
	case slot.BackendFile:
		settings.SlotPath = firstNonEmpty(filePath, filepath.Join(dataDir, "memos.json"))
	case slot.BackendSQLite:
		settings.SlotPath = firstNonEmpty(filePath, filepath.Join(dataDir, "memos.db"))
	default:
		return Settings{}, fmt.Errorf("unknown storage backend %q (must be memory, file or sqlite)", settings.Backend)
	}

	return settings, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
