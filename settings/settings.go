// Package settings holds run configuration for the search loop,
// loadable from a yaml file.
package settings

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Settings configures one search run.
type Settings struct {
	// MaxExamples bounds how many values are drawn while looking for
	// a satisfying example.
	MaxExamples int `yaml:"max_examples"`

	// MaxShrinks bounds how many simplification candidates are tried
	// during minimization.
	MaxShrinks int `yaml:"max_shrinks"`

	// Seed fixes the deterministic random source. Two runs with the
	// same seed and the same strategies see identical draws.
	Seed uint64 `yaml:"seed"`

	// Timeout bounds the wall-clock duration of one run. Zero means
	// no limit.
	Timeout time.Duration `yaml:"timeout,omitempty"`

	// DatabasePath points the example database at a SQLite file.
	DatabasePath string `yaml:"database_path,omitempty"`

	// DatabaseURL points the example database at a Redis instance
	// (redis:// URL). Mutually exclusive with DatabasePath.
	DatabaseURL string `yaml:"database_url,omitempty"`
}

// Default returns the settings used when nothing is configured.
func Default() Settings {
	return Settings{
		MaxExamples: 1000,
		MaxShrinks:  5000,
		Seed:        0x6d6f727068, // "morph"
	}
}

// Validate checks internal consistency.
func (s Settings) Validate() error {
	if s.MaxExamples <= 0 {
		return fmt.Errorf("settings: max_examples must be positive, got %d", s.MaxExamples)
	}
	if s.MaxShrinks < 0 {
		return fmt.Errorf("settings: max_shrinks must be non-negative, got %d", s.MaxShrinks)
	}
	if s.Timeout < 0 {
		return fmt.Errorf("settings: timeout must be non-negative, got %s", s.Timeout)
	}
	if s.DatabasePath != "" && s.DatabaseURL != "" {
		return fmt.Errorf("settings: database_path and database_url are mutually exclusive")
	}
	return nil
}

// Load reads settings from a yaml file. Fields absent from the file
// keep their defaults.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("settings: read %s: %w", path, err)
	}
	s := Default()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("settings: parse %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}
