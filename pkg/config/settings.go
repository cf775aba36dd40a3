package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the prefix of every environment variable read into Settings
const EnvPrefix = "CAMPUSSIM"

// Settings contains process settings controlled by CAMPUSSIM_* variables.
// Command-line flags override them.
type Settings struct {
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat   string `envconfig:"LOG_FORMAT" default:"text"`
	CatalogPath string `envconfig:"CATALOG"`
	Seed        int64  `envconfig:"SEED"`
	UserCount   int    `envconfig:"USER_COUNT" default:"5"`
	Trace       bool   `envconfig:"TRACE"`
}

// LoadSettings reads Settings from the environment
func LoadSettings() (*Settings, error) {
	var s Settings
	if err := envconfig.Process(EnvPrefix, &s); err != nil {
		return nil, fmt.Errorf("failed to read %s_* environment: %w", EnvPrefix, err)
	}
	if s.LogFormat != "text" && s.LogFormat != "json" {
		return nil, fmt.Errorf("invalid log format %q (must be text or json)", s.LogFormat)
	}
	return &s, nil
}
