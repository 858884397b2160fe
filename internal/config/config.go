// Package config loads the optional lmimport.yaml defaults file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is looked for next to the export file when no --config
// flag is given.
const DefaultFileName = "lmimport.yaml"

// Config holds run defaults. CLI flags override every field.
type Config struct {
	// Model stamped into converted documents.
	Model string `yaml:"model"`
	// OutDir overrides the default output root.
	OutDir string `yaml:"outdir"`
	// Temperature for the per-chat prediction config.
	Temperature float64 `yaml:"temperature"`
}

// Load reads a config file. The zero Config is valid; callers treat a
// missing optional file as empty.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Find resolves which config file to use. An explicit path wins and must
// exist; otherwise lmimport.yaml next to the export file is used when
// present, and "" means no config.
func Find(explicit, exportPath string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file: %w", err)
		}
		return explicit, nil
	}
	candidate := filepath.Join(filepath.Dir(exportPath), DefaultFileName)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}
	return "", nil
}
