// Package config loads application configuration with the priority
// CLI flags > environment variables > config file > defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of all environment variable overrides.
const EnvPrefix = "FITKIT"

// AppConfig holds application configuration.
type AppConfig struct {
	Storage StorageConfig
	Fit     FitConfig
	Output  OutputConfig
	Log     LogConfig
}

// StorageConfig holds fit configuration persistence settings.
type StorageConfig struct {
	// Path is the YAML file holding the saved fit configurations.
	Path string
}

// FitConfig holds fit execution settings.
type FitConfig struct {
	// Timeout bounds a single fit execution.
	Timeout time.Duration
	// Units maps parameter names to display units for formatted output.
	Units map[string]string
}

// OutputConfig holds presentation settings.
type OutputConfig struct {
	// Quiet suppresses progress output.
	Quiet bool
	// Verbose enables diagnostic output after runs.
	Verbose bool
	// Format selects the result rendering: "text" or "dict".
	Format string
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is the minimum level emitted: debug, info, warn or error.
	Level string
}

// Load reads configuration from file and env. Env var overrides use prefix
// FITKIT_ with underscores for nesting (e.g. FITKIT_STORAGE_PATH). The config
// file is taken from FITKIT_CONFIG, falling back to
// ~/.config/fitkit/config.yaml; a missing file is not an error.
//
// Returns:
//   - AppConfig: The merged configuration.
//   - error: An error if the configuration cannot be decoded.
func Load() (AppConfig, error) {
	v := viper.New()

	// default values
	v.SetDefault("storage.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "fitkit", "fit_configs.yaml"))
	v.SetDefault("fit.timeout", "30s")
	v.SetDefault("fit.units", map[string]string{})
	v.SetDefault("output.quiet", false)
	v.SetDefault("output.verbose", false)
	v.SetDefault("output.format", "text")
	v.SetDefault("log.level", "info")

	v.SetConfigType("yaml")

	cfgPath := os.Getenv(EnvPrefix + "_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "fitkit"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c AppConfig
	if err := v.Unmarshal(&c); err != nil {
		return AppConfig{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.validate(); err != nil {
		return AppConfig{}, err
	}
	return c, nil
}

// validate rejects values the rest of the application cannot act on.
func (c AppConfig) validate() error {
	switch c.Output.Format {
	case "text", "dict":
	default:
		return fmt.Errorf("invalid output format %q (want text or dict)", c.Output.Format)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	if c.Fit.Timeout <= 0 {
		return fmt.Errorf("fit timeout must be positive, got %v", c.Fit.Timeout)
	}
	return nil
}
