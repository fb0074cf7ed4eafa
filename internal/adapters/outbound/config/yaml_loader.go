package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdidvp/minimart/internal/domain"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up when no explicit path is given.
const FileName = ".minimart.yaml"

// YAMLLoader implements domain.ConfigLoader by reading a YAML file.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads the config at path. Returns DefaultConfig if the file does not
// exist. Keys missing from the file keep their default values.
func (l *YAMLLoader) Load(path string) (domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.Config{}, err
	}

	name := filepath.Base(path)
	cfg := domain.DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parsing %s: %w", name, err)
	}

	if err := cfg.Validate(); err != nil {
		return domain.Config{}, fmt.Errorf("invalid %s: %w", name, err)
	}

	return cfg, nil
}

// Render returns cfg as YAML with a short header, for `minimart init`.
func Render(cfg domain.Config) (string, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("encoding config: %w", err)
	}
	return "# minimart session configuration\n" + string(data), nil
}
