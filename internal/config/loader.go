package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides (PKGFILE_FORMAT_DEFAULT_INDENT, ...)
const EnvPrefix = "PKGFILE"

// Load loads configuration from file, environment, and defaults.
// It uses the global viper instance so CLI flag bindings and an explicit
// config file set with viper.SetConfigFile apply.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom loads configuration through v
func LoadFrom(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	explicit := v.ConfigFileUsed()

	// Config file search, unless a file was set explicitly
	if explicit == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(ConfigDir())
		v.AddConfigPath(".")
	}

	// Read config file (ignore if not found, unless it was named explicitly)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	// Environment variables (PKGFILE_*)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Validate and apply defaults for invalid values
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults sets default values in viper
func setDefaults(v *viper.Viper) {
	v.SetDefault("format.default_indent", DefaultIndent)
	v.SetDefault("format.preserve_bom", DefaultPreserveBOM)
	v.SetDefault("format.preserve_line_endings", DefaultPreserveLineEndings)

	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir() error {
	return os.MkdirAll(ConfigDir(), 0755)
}
