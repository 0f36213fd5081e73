package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/valorisation/coherence/internal/domain"
)

// FileName is the project config file looked up in a directory.
const FileName = ".coherence.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .coherence.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads the config at path. When path is a directory, .coherence.yaml
// inside it is read. Returns DefaultConfig if the file does not exist.
func (l *YAMLLoader) Load(path string) (domain.Config, error) {
	if path == "" {
		path = "."
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, FileName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.Config{}, err
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}

	if err := cfg.Validate(); err != nil {
		return domain.Config{}, fmt.Errorf("invalid %s: %w", filepath.Base(path), err)
	}

	if cfg.Locale == "" {
		cfg.Locale = domain.LocaleFR
	}
	return cfg, nil
}
