package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the prefix of every environment variable memo reads.
const EnvPrefix = "MEMO"

// Env holds the settings that can be supplied through the environment.
// Unset variables stay empty so lower-precedence sources can fill them.
type Env struct {
	// StorageKey is the slot key memos are stored under (MEMO_STORAGE_KEY)
	StorageKey string `envconfig:"STORAGE_KEY"`

	// AppTitle is shown in the header (MEMO_APP_TITLE)
	AppTitle string `envconfig:"APP_TITLE"`

	// AppVersion is shown in the footer (MEMO_APP_VERSION)
	AppVersion string `envconfig:"APP_VERSION"`

	// Backend selects the slot backend (MEMO_BACKEND)
	Backend string `envconfig:"BACKEND"`

	// DataDir holds the settings file, logs and file slots (MEMO_DATA_DIR)
	DataDir string `envconfig:"DATA_DIR"`
}

// LoadEnv reads MEMO_* variables.
func LoadEnv() (Env, error) {
	var env Env
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return Env{}, fmt.Errorf("failed to read environment: %w", err)
	}
	return env, nil
}
