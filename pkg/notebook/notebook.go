package notebook

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	applog "github.com/vxnote/notebookd/internal/logger"
	"github.com/vxnote/notebookd/pkg/foldermanager"
	"github.com/vxnote/notebookd/pkg/metastore"
	"github.com/vxnote/notebookd/pkg/pathid"
)

// Kind is the sealed choice of notebook variant (spec.md §9): Bundled stores
// its sidecar metadata under root_folder/vx_notebook/; Raw keeps metadata
// only in app-local data and rejects most mutations.
type Kind int

const (
	Bundled Kind = iota
	Raw
)

func (k Kind) String() string {
	if k == Raw {
		return "raw"
	}
	return "bundled"
}

// Notebook is one open notebook: its config, folder manager, and metadata
// store (spec.md §4.5).
type Notebook struct {
	mu sync.Mutex

	ID         string
	RootFolder string
	Kind       Kind

	config     *Config
	configPath string

	Folders foldermanager.Manager
	Store   *metastore.Store
}

// GetConfig returns the notebook's current config as JSON (spec.md
// get_notebook_config).
func (n *Notebook) GetConfig() (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	data, err := EmitConfig(n.config)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrJSONSerialize, err)
	}
	return string(data), nil
}

// UpdateConfig replaces the notebook config from json and persists it
// (spec.md update_notebook_config).
func (n *Notebook) UpdateConfig(json string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	cfg, err := ParseConfig([]byte(json))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrJSONParse, err)
	}
	cfg.ID = n.config.ID // id is immutable
	n.config = cfg
	return n.saveConfigLocked()
}

func (n *Notebook) saveConfigLocked() error {
	data, err := EmitConfig(n.config)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrJSONSerialize, err)
	}
	if err := os.MkdirAll(filepath.Dir(n.configPath), 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	if err := os.WriteFile(n.configPath, data, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	return nil
}

// TagsTree returns the notebook's current hierarchical tag tree, ground
// truth for the tag subsystem (spec.md §4.6).
func (n *Notebook) TagsTree() []TagNode {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.config.Tags
}

// TagsModifiedUTC returns the config's tagsModifiedUtc watermark, used to
// decide whether the store's tag mirror needs resyncing on open.
func (n *Notebook) TagsModifiedUTC() int64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.config.TagsModifiedUTC
}

// SetTagsTree replaces the tag tree, bumps tagsModifiedUtc, and persists the
// config. Called by pkg/tags after every tree mutation.
func (n *Notebook) SetTagsTree(tags []TagNode) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.config.Tags = tags
	n.config.TagsModifiedUTC = pathid.NowMillis()
	return n.saveConfigLocked()
}

// RebuildCache delegates to the folder manager's
// SyncMetadataStoreFromConfigs (spec.md rebuild_cache).
func (n *Notebook) RebuildCache() error {
	return n.Folders.SyncMetadataStoreFromConfigs()
}

// SetTagValidator wires the tag subsystem's closure check into the folder
// manager, if this notebook's kind supports mutation (Raw ignores it). Kept
// here rather than in pkg/tags to avoid an import cycle: pkg/tags imports
// pkg/notebook to read the tag tree, so the wiring has to happen from this
// side.
func (n *Notebook) SetTagValidator(v foldermanager.TagValidator) {
	if tv, ok := n.Folders.(interface {
		SetTagValidator(foldermanager.TagValidator)
	}); ok {
		tv.SetTagValidator(v)
	}
}

// Close releases the notebook's store handle and drops its folder manager
// cache (spec.md §5's close_notebook contract).
func (n *Notebook) Close() error {
	n.Folders.InvalidateAll()
	if err := n.Store.Close(); err != nil {
		applog.Warn("notebook close: store close failed", applog.NotebookID(n.ID), applog.Err(err))
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	return nil
}
