package config

import (
	"os"
	"testing"
)

func TestLoadSettingsDefaults(t *testing.T) {
	for _, key := range []string{"LOG_LEVEL", "LOG_FORMAT", "CATALOG", "SEED", "USER_COUNT", "TRACE"} {
		// envconfig falls back to the unprefixed name
		for _, name := range []string{EnvPrefix + "_" + key, key} {
			t.Setenv(name, "")
			os.Unsetenv(name)
		}
	}

	s, err := LoadSettings()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if s.LogLevel != "info" {
		t.Errorf("Expected log level info, got %s", s.LogLevel)
	}
	if s.LogFormat != "text" {
		t.Errorf("Expected log format text, got %s", s.LogFormat)
	}
	if s.UserCount != 5 {
		t.Errorf("Expected user count 5, got %d", s.UserCount)
	}
	if s.Seed != 0 {
		t.Errorf("Expected seed 0, got %d", s.Seed)
	}
}

func TestLoadSettingsFromEnv(t *testing.T) {
	t.Setenv("CAMPUSSIM_LOG_LEVEL", "debug")
	t.Setenv("CAMPUSSIM_LOG_FORMAT", "json")
	t.Setenv("CAMPUSSIM_SEED", "42")
	t.Setenv("CAMPUSSIM_CATALOG", "/tmp/catalog.yaml")
	t.Setenv("CAMPUSSIM_TRACE", "true")

	s, err := LoadSettings()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if s.LogLevel != "debug" || s.LogFormat != "json" {
		t.Errorf("Expected debug/json, got %s/%s", s.LogLevel, s.LogFormat)
	}
	if s.Seed != 42 {
		t.Errorf("Expected seed 42, got %d", s.Seed)
	}
	if s.CatalogPath != "/tmp/catalog.yaml" {
		t.Errorf("Expected catalog path, got %s", s.CatalogPath)
	}
	if !s.Trace {
		t.Error("Expected trace enabled")
	}
}

func TestLoadSettingsInvalid(t *testing.T) {
	t.Setenv("CAMPUSSIM_LOG_FORMAT", "xml")
	if _, err := LoadSettings(); err == nil {
		t.Error("Expected error for invalid log format")
	}

	t.Setenv("CAMPUSSIM_LOG_FORMAT", "text")
	t.Setenv("CAMPUSSIM_SEED", "not-a-number")
	if _, err := LoadSettings(); err == nil {
		t.Error("Expected error for invalid seed")
	}
}
