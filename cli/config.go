package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds CLI defaults read from a YAML file. Flags always win over the
// config file.
type Config struct {
	// File is the journal loaded when a command gets no file argument.
	File string `yaml:"file"`

	// Recover makes parses collect errors instead of stopping at the first.
	Recover bool `yaml:"recover"`

	// Telemetry enables timing output as if --telemetry was passed.
	Telemetry bool `yaml:"telemetry"`
}

// LoadConfig reads a config file. An empty path falls back to the default
// location (~/.config/ledger/config.yaml); a missing file at the default
// location yields an empty config, while a missing explicit path is an
// error.
func LoadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		home, err := os.UserHomeDir()
		if err != nil {
			return &Config{}, nil
		}
		path = filepath.Join(home, ".config", "ledger", "config.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &cfg, nil
}
