package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	applog "github.com/vxnote/notebookd/internal/logger"
	"github.com/vxnote/notebookd/pkg/engine"
	"github.com/vxnote/notebookd/pkg/foldermanager"
	"github.com/vxnote/notebookd/pkg/notebook"
)

var notebookCmd = &cobra.Command{
	Use:   "notebook",
	Short: "Notebook lifecycle commands",
}

var (
	notebookPath       string
	notebookName       string
	notebookType       string
	notebookID         string
	notebookPropsJSON  string
	notebookListAsJSON bool
	notebookWatch      bool
)

var notebookCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new notebook",
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := notebook.Bundled
		switch notebookType {
		case "", "bundled":
			kind = notebook.Bundled
		case "raw":
			kind = notebook.Raw
		default:
			return fmt.Errorf("invalid type %q: use 'bundled' or 'raw'", notebookType)
		}

		e, err := buildEngine()
		if err != nil {
			return err
		}
		id, err := e.CreateNotebook(notebookPath, notebookName, kind, notebookPropsJSON)
		if err != nil {
			return err
		}
		fmt.Println(id)
		return nil
	},
}

var notebookOpenCmd = &cobra.Command{
	Use:   "open",
	Short: "Open an existing notebook",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := buildEngine()
		if err != nil {
			return err
		}
		id, err := e.OpenNotebook(notebookPath)
		if err != nil {
			return err
		}
		fmt.Println(id)
		return nil
	},
}

var notebookCloseCmd = &cobra.Command{
	Use:   "close",
	Short: "Close an open notebook",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := buildEngine()
		if err != nil {
			return err
		}
		if err := e.CloseNotebook(notebookID); err != nil {
			return err
		}
		fmt.Println("Notebook closed")
		return nil
	},
}

var notebookListCmd = &cobra.Command{
	Use:   "list",
	Short: "List open notebooks",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := buildEngine()
		if err != nil {
			return err
		}
		infos, err := e.ListNotebooks()
		if err != nil {
			return err
		}

		if notebookListAsJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(infos)
		}
		if len(infos) == 0 {
			fmt.Println("No notebooks opened")
			return nil
		}
		fmt.Println("Opened notebooks:")
		for _, info := range infos {
			fmt.Printf("  %s - %s (%s)\n", info.ID, info.Root, info.Kind)
		}
		return nil
	},
}

var notebookGetPropsCmd = &cobra.Command{
	Use:   "get-props",
	Short: "Print a notebook's configuration as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := buildEngine()
		if err != nil {
			return err
		}
		props, err := e.GetNotebookConfig(notebookID)
		if err != nil {
			return err
		}
		fmt.Println(props)
		return nil
	},
}

var notebookSetPropsCmd = &cobra.Command{
	Use:   "set-props",
	Short: "Replace a notebook's configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := buildEngine()
		if err != nil {
			return err
		}
		if err := e.UpdateNotebookConfig(notebookID, notebookPropsJSON); err != nil {
			return err
		}
		fmt.Println("Properties updated")
		return nil
	},
}

var notebookRebuildCacheCmd = &cobra.Command{
	Use:   "rebuild-cache",
	Short: "Resync a notebook's metadata store from its on-disk configs",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := buildEngine()
		if err != nil {
			return err
		}
		if err := e.RebuildCache(notebookID); err != nil {
			return err
		}
		fmt.Println("Cache rebuilt")

		if !notebookWatch {
			return nil
		}

		root, err := notebookRoot(e, notebookID)
		if err != nil {
			return err
		}
		return watchAndRebuild(e, notebookID, root)
	},
}

// notebookRoot looks up the root folder of an open notebook by id, needed to
// set up a filesystem watch (engine.ListNotebooks is the only place the
// CLI can learn a notebook's root without reaching into pkg/notebook).
func notebookRoot(e *engine.Engine, id string) (string, error) {
	infos, err := e.ListNotebooks()
	if err != nil {
		return "", err
	}
	for _, info := range infos {
		if info.ID == id {
			return info.Root, nil
		}
	}
	return "", fmt.Errorf("notebook not open: %s", id)
}

// watchAndRebuild blocks, rebuilding the cache whenever the notebook's tree
// changes on disk, until interrupted (spec.md §6.6's optional watch
// affordance; the engine itself never runs a background watch loop).
func watchAndRebuild(e *engine.Engine, id, root string) error {
	w, err := foldermanager.NewWatcher(root)
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Println("Watching for changes (Ctrl+C to stop)...")
	return w.Run(ctx, func() error {
		if err := e.RebuildCache(id); err != nil {
			applog.Warn("watch rebuild failed", applog.NotebookID(id), applog.Err(err))
			return err
		}
		fmt.Println("Cache rebuilt")
		return nil
	})
}

func init() {
	notebookCreateCmd.Flags().StringVar(&notebookPath, "path", "", "notebook root folder (required)")
	notebookCreateCmd.Flags().StringVar(&notebookName, "name", "", "notebook name")
	notebookCreateCmd.Flags().StringVar(&notebookType, "type", "bundled", "notebook type: bundled or raw")
	notebookCreateCmd.Flags().StringVar(&notebookPropsJSON, "props-json", "", "initial properties as a JSON object")
	_ = notebookCreateCmd.MarkFlagRequired("path")

	notebookOpenCmd.Flags().StringVar(&notebookPath, "path", "", "notebook root folder (required)")
	_ = notebookOpenCmd.MarkFlagRequired("path")

	notebookCloseCmd.Flags().StringVar(&notebookID, "id", "", "notebook id (required)")
	_ = notebookCloseCmd.MarkFlagRequired("id")

	notebookRebuildCacheCmd.Flags().StringVar(&notebookID, "id", "", "notebook id (required)")
	notebookRebuildCacheCmd.Flags().BoolVar(&notebookWatch, "watch", false, "keep running and rebuild on further changes")
	_ = notebookRebuildCacheCmd.MarkFlagRequired("id")

	notebookListCmd.Flags().BoolVar(&notebookListAsJSON, "json", false, "output as JSON")

	notebookGetPropsCmd.Flags().StringVar(&notebookID, "id", "", "notebook id (required)")
	_ = notebookGetPropsCmd.MarkFlagRequired("id")

	notebookSetPropsCmd.Flags().StringVar(&notebookID, "id", "", "notebook id (required)")
	notebookSetPropsCmd.Flags().StringVar(&notebookPropsJSON, "props-json", "", "properties as a JSON object (required)")
	_ = notebookSetPropsCmd.MarkFlagRequired("id")
	_ = notebookSetPropsCmd.MarkFlagRequired("props-json")

	notebookCmd.AddCommand(notebookCreateCmd, notebookOpenCmd, notebookCloseCmd, notebookListCmd, notebookGetPropsCmd, notebookSetPropsCmd, notebookRebuildCacheCmd)
}
