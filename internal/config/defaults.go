package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/quantmind-br/pkgfile-go/internal/domain"
	"github.com/quantmind-br/pkgfile-go/internal/utils"
)

// ErrConfigExists indicates a config file is already present
var ErrConfigExists = errors.New("config file already exists")

// Default values
const (
	// Format defaults
	DefaultIndent              = domain.DefaultIndent
	DefaultPreserveBOM         = true
	DefaultPreserveLineEndings = true

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "pretty"
)

// ConfigDir returns the config directory path
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".pkgfile"
	}
	return filepath.Join(home, ".pkgfile")
}

// ConfigFilePath returns the config file path
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Format: FormatConfig{
			DefaultIndent:       DefaultIndent,
			PreserveBOM:         DefaultPreserveBOM,
			PreserveLineEndings: DefaultPreserveLineEndings,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// WriteDefault writes the default configuration as YAML to path.
// An existing file is never overwritten.
func WriteDefault(path string) error {
	exists, err := utils.FileExists(path)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
