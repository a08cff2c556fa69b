package config

import (
	"os"
	"path/filepath"
)

// ProcessPaths implements notebook.Paths against the process's resolved
// app-data root. Built from Config so the engine never reads env/files
// itself (SPEC_FULL.md's Configuration section).
type ProcessPaths struct {
	root string
}

// NewProcessPaths resolves the app-data root: cfg.AppDataDir if set,
// otherwise the platform default (XDG_DATA_HOME or ~/.local/share/notebookd),
// redirected under a throwaway subdirectory when cfg.TestMode is set
// (spec.md §9's set_test_mode).
func NewProcessPaths(cfg *Config) *ProcessPaths {
	root := cfg.AppDataDir
	if root == "" {
		root = defaultDataDir()
	}
	if cfg.TestMode {
		root = filepath.Join(root, "test-mode")
	}
	return &ProcessPaths{root: root}
}

// AppDataDir implements notebook.Paths.
func (p *ProcessPaths) AppDataDir() string { return p.root }

// NotebookLocalDataDir implements notebook.Paths.
func (p *ProcessPaths) NotebookLocalDataDir(id string) string {
	return filepath.Join(p.root, "notebooks", id)
}

// defaultDataDir returns $XDG_DATA_HOME/notebookd, or ~/.local/share/notebookd,
// or "." if the home directory cannot be resolved.
func defaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "notebookd")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "notebookd")
}
