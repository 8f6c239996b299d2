package config

import (
	"fmt"
	"strings"

	"github.com/quantmind-br/pkgfile-go/internal/domain"
)

// Config represents the application configuration
type Config struct {
	Format  FormatConfig  `mapstructure:"format" yaml:"format"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// FormatConfig contains settings for how manifests are written back
type FormatConfig struct {
	DefaultIndent       string `mapstructure:"default_indent" yaml:"default_indent"`
	PreserveBOM         bool   `mapstructure:"preserve_bom" yaml:"preserve_bom"`
	PreserveLineEndings bool   `mapstructure:"preserve_line_endings" yaml:"preserve_line_endings"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if !isIndent(c.Format.DefaultIndent) {
		c.Format.DefaultIndent = DefaultIndent
	}
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = DefaultLogFormat
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging.level %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "pretty", "json":
	default:
		return fmt.Errorf("invalid logging.format %q", c.Logging.Format)
	}
	return nil
}

// FormatOptions converts the format section into service options
func (c *Config) FormatOptions() domain.FormatOptions {
	return domain.FormatOptions{
		DefaultIndent:        c.Format.DefaultIndent,
		StripBOM:             !c.Format.PreserveBOM,
		NormalizeLineEndings: !c.Format.PreserveLineEndings,
	}
}

// isIndent reports whether s is a non-empty run of spaces or tabs
func isIndent(s string) bool {
	return s != "" && strings.Trim(s, " \t") == ""
}
