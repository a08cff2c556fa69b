package foldermanager

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	applog "github.com/vxnote/notebookd/internal/logger"
)

// Watcher is an optional, CLI-side filesystem-change detector: it notices
// when a notebook root changes on disk and signals that a cache rebuild
// (Manager.SyncMetadataStoreFromConfigs) is due. The core engine never
// depends on it; nothing in pkg/notebook or pkg/engine imports this file.
// Wired only by "notebookd notebook rebuild-cache --watch".
type Watcher struct {
	root     string
	watcher  *fsnotify.Watcher
	debounce time.Duration
}

// NewWatcher creates a Watcher rooted at root. The caller must call Close
// when done.
func NewWatcher(root string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &Watcher{root: filepath.Clean(root), watcher: fw, debounce: 500 * time.Millisecond}
	if err := w.addTree(w.root); err != nil {
		_ = fw.Close()
		return nil, err
	}
	return w, nil
}

// addTree walks root and registers every directory (fsnotify is not
// recursive) so renames, creates, and deletes anywhere under root surface.
func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return w.watcher.Add(path)
	})
}

// Close releases the underlying OS watch handles.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// Run blocks, invoking onChange whenever the tree under root settles after a
// burst of filesystem events, until ctx is canceled. A newly created
// directory is added to the watch set so the tree stays fully covered.
func (w *Watcher) Run(ctx context.Context, onChange func() error) error {
	var pending *time.Timer
	defer func() {
		if pending != nil {
			pending.Stop()
		}
	}()

	fire := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Create == fsnotify.Create {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = w.watcher.Add(event.Name)
				}
			}
			if pending == nil {
				pending = time.AfterFunc(w.debounce, func() {
					select {
					case fire <- struct{}{}:
					default:
					}
				})
			} else {
				pending.Reset(w.debounce)
			}

		case <-fire:
			if err := onChange(); err != nil {
				applog.Warn("watcher: rebuild failed", applog.Path(w.root), applog.Err(err))
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}
