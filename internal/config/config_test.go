package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaultsWhenFileMinimal(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("logging:\n  level: DEBUG\n"), 0o644))

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "DEBUG", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "stdout", cfg.Logging.Output)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "INFO", cfg.Logging.Level)
}

func TestValidateRejectsUnknownLevel(t *testing.T) {
	cfg := defaultConfig()
	cfg.Logging.Level = "NOISY"
	assert.Error(t, Validate(cfg))
}

func TestValidateRejectsUnknownFormat(t *testing.T) {
	cfg := defaultConfig()
	cfg.Logging.Format = "xml"
	assert.Error(t, Validate(cfg))
}
