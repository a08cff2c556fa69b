// Package config loads the process-level settings that sit outside the
// engine's core (spec.md §1): log level/format, the app-data root, and the
// test-mode flag. The engine itself never reads env or files directly — it
// takes a Paths collaborator built from this config.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config is the process-level configuration for notebookd.
type Config struct {
	// Logging controls internal/logger's output.
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`

	// AppDataDir overrides the resolved app-data root (spec.md §6.2's store
	// location, and raw notebooks' app-local config). Empty uses the
	// platform default (XDG_DATA_HOME or ~/.local/share/notebookd).
	AppDataDir string `mapstructure:"app_data_dir" yaml:"app_data_dir"`

	// TestMode redirects the resolved app-data root under a throwaway
	// subdirectory, so tests never touch a developer's real notebookd state
	// (spec.md §9's set_test_mode).
	TestMode bool `mapstructure:"test_mode" yaml:"test_mode"`
}

// LoggingConfig controls internal/logger.
type LoggingConfig struct {
	// Level is the minimum log level: DEBUG, INFO, WARN, ERROR.
	Level string `mapstructure:"level" yaml:"level" validate:"required,oneof=DEBUG INFO WARN ERROR debug info warn error"`

	// Format is the log output format: text or json.
	Format string `mapstructure:"format" yaml:"format" validate:"required,oneof=text json"`

	// Output is stdout, stderr, or a file path.
	Output string `mapstructure:"output" yaml:"output" validate:"required"`
}

// Load loads configuration from file, environment, and defaults.
//
// Precedence (highest to lowest): environment variables (NOTEBOOKD_*),
// configuration file, default values.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setupViper(v, configPath)
	// Bind every key explicitly so NOTEBOOKD_* variables apply even for keys
	// absent from the config file (or when there is no file at all).
	for _, key := range []string{"logging.level", "logging.format", "logging.output", "app_data_dir", "test_mode"} {
		_ = v.BindEnv(key)
	}

	if _, err := readConfigFile(v); err != nil {
		return nil, err
	}

	cfg := defaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	ApplyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// setupViper wires NOTEBOOKD_-prefixed environment variables and, when
// configPath is empty, the default config-file search path.
func setupViper(v *viper.Viper, configPath string) {
	v.SetEnvPrefix("NOTEBOOKD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		return
	}
	v.AddConfigPath(defaultConfigDir())
	v.SetConfigName("config")
	v.SetConfigType("yaml")
}

func readConfigFile(v *viper.Viper) (bool, error) {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return false, nil
		}
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read config file: %w", err)
	}
	return true, nil
}

// defaultConfigDir returns $XDG_CONFIG_HOME/notebookd, or ~/.config/notebookd,
// or "." if the home directory cannot be resolved.
func defaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return xdg + "/notebookd"
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home + "/.config/notebookd"
}
