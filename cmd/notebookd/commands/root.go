// Package commands implements the notebookd CLI command tree.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	applog "github.com/vxnote/notebookd/internal/logger"

	"github.com/vxnote/notebookd/internal/config"
	"github.com/vxnote/notebookd/pkg/engine"
	"github.com/vxnote/notebookd/pkg/notebook"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"

	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "notebookd",
	Short: "notebookd - personal notebook library storage engine",
	Long: `notebookd is a content-on-disk, index-in-database storage engine for a
personal notebook library: folders, files, and tags whose on-disk
representation remains human-readable and directly editable, with a
rebuildable metadata index for fast search.

Use "notebookd [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/notebookd/config.yaml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(notebookCmd)
	rootCmd.AddCommand(tagCmd)
}

// Execute runs the root command. Called by main.main.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig loads process configuration from the --config flag (or the
// default search path).
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// buildEngine loads configuration and wires an Engine against it, mirroring
// spec.md §6.6's "thin, delegate to engine" CLI. Every call is a fresh
// process-facing Engine, so it rehydrates the open-notebook set from the
// persisted session record first — otherwise a notebook opened by one
// invocation would look closed to the next.
func buildEngine() (*engine.Engine, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	paths := config.NewProcessPaths(cfg)
	recorder := config.NewFileSessionRecorder(paths)
	e := engine.New(paths, recorder)
	restoreSession(e, recorder)
	return e, nil
}

// restoreSession reopens every bundled notebook recorded as open by a prior
// invocation, skipping any whose root folder (or bundled config) no longer
// exists on disk. Raw notebooks cannot be rederived from their root path
// alone (engine.OpenNotebook only resolves bundled config on disk), so they
// are logged and left out of the restored set rather than guessed at.
func restoreSession(e *engine.Engine, recorder *config.FileSessionRecorder) {
	records, err := recorder.Records()
	if err != nil {
		applog.Warn("session restore: failed to read session record", applog.Err(err))
		return
	}
	for _, rec := range records {
		if rec.Kind != notebook.Bundled.String() {
			applog.Debug("session restore: skipping raw notebook, reopen explicitly", applog.NotebookID(rec.ID), applog.Path(rec.RootFolder))
			continue
		}
		if _, err := e.OpenNotebook(rec.RootFolder); err != nil {
			applog.Debug("session restore: notebook not reopened", applog.NotebookID(rec.ID), applog.Path(rec.RootFolder), applog.Err(err))
		}
	}
}
