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

// Paths is the narrow collaborator the notebook manager uses to resolve
// app-local data locations (spec.md §6.2's store location, and raw
// notebooks' app-local config); wired by the process, never read from env
// directly by this package (SPEC_FULL.md's Configuration section).
type Paths interface {
	AppDataDir() string
	NotebookLocalDataDir(id string) string
}

// SessionRecorder is the narrow collaborator used to persist the set of
// currently-open notebooks across process restarts (spec.md §5's "session
// record mutation ... goes through a callback so the engine does not own
// session persistence"). Manager calls RecordOpen on create/open and
// RecordClose on close; it never reads the record back itself.
type SessionRecorder interface {
	RecordOpen(id, rootFolder string, kind Kind) error
	RecordClose(id string) error
}

// nullRecorder is used when the caller wires no SessionRecorder.
type nullRecorder struct{}

func (nullRecorder) RecordOpen(string, string, Kind) error { return nil }
func (nullRecorder) RecordClose(string) error              { return nil }

// Info is the summary returned by Manager.List (spec.md §6.4's
// "list() → [{id, root, type, config}]").
type Info struct {
	ID     string
	Root   string
	Kind   Kind
	Config string
}

// Manager is the notebook manager (spec.md §4.5): it owns the set of
// currently-open notebooks, keyed by id, and routes create/open/close/list/
// resolve_path/rebuild_cache.
type Manager struct {
	mu       sync.Mutex
	paths    Paths
	recorder SessionRecorder
	byID     map[string]*Notebook
	byRoot   map[string]string // rootFolder -> id
}

// NewManager constructs an empty Manager. recorder may be nil, in which
// case session-record mutations are silently skipped.
func NewManager(paths Paths, recorder SessionRecorder) *Manager {
	if recorder == nil {
		recorder = nullRecorder{}
	}
	return &Manager{
		paths:    paths,
		recorder: recorder,
		byID:     make(map[string]*Notebook),
		byRoot:   make(map[string]string),
	}
}

func (m *Manager) storePath(id string) string {
	return filepath.Join(m.paths.AppDataDir(), "notebooks", id+".db")
}

// Create implements spec.md's create_notebook: ensure the root directory
// exists, initialize the folder manager (which emits the root config),
// write the notebook config, record the session, and return the new id.
func (m *Manager) Create(rootFolder, notebookName string, kind Kind, propertiesJSON string) (string, error) {
	rootFolder = filepath.Clean(rootFolder)

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.byRoot[rootFolder]; exists {
		return "", ErrAlreadyOpen
	}

	id := pathid.NewUUID()
	if err := os.MkdirAll(rootFolder, 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrIO, err)
	}

	cfg := &Config{
		ID: id, Name: notebookName, Tags: []TagNode{}, TagsModifiedUTC: pathid.NowMillis(),
	}
	if propertiesJSON != "" {
		props, err := ParseConfig([]byte(propertiesJSON))
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrJSONParse, err)
		}
		props.ID = id
		if props.Name == "" {
			props.Name = notebookName
		}
		cfg = props
	}

	nb := &Notebook{ID: id, RootFolder: rootFolder, Kind: kind, config: cfg}
	if err := m.wireNotebook(nb); err != nil {
		return "", err
	}

	switch kind {
	case Bundled:
		bm := foldermanager.NewBundled(rootFolder, nb.Store)
		if _, err := bm.InitializeRoot(notebookName); err != nil {
			return "", err
		}
		nb.Folders = bm
		nb.configPath = filepath.Join(rootFolder, "vx_notebook", "config.json")
	default:
		nb.Folders = foldermanager.NewRaw(rootFolder)
		nb.configPath = filepath.Join(m.paths.NotebookLocalDataDir(id), "config.json")
	}

	if err := nb.saveConfigLocked(); err != nil {
		return "", err
	}

	m.byID[id] = nb
	m.byRoot[rootFolder] = id
	if err := m.recorder.RecordOpen(id, rootFolder, kind); err != nil {
		applog.Warn("notebook create: session record failed", applog.NotebookID(id), applog.Err(err))
	}
	return id, nil
}

// wireNotebook opens the notebook's metadata store. Extracted so Create and
// Open share identical store-opening semantics.
func (m *Manager) wireNotebook(nb *Notebook) error {
	store, err := metastore.Open(m.storePath(nb.ID))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	nb.Store = store
	return nil
}

// Open implements spec.md's open_notebook: if already open by path, return
// its id; otherwise load the config, construct the folder manager, open the
// store, and register the notebook.
func (m *Manager) Open(rootFolder string) (string, error) {
	rootFolder = filepath.Clean(rootFolder)

	m.mu.Lock()
	defer m.mu.Unlock()
	if id, ok := m.byRoot[rootFolder]; ok {
		return id, nil
	}

	configPath := filepath.Join(rootFolder, "vx_notebook", "config.json")
	kind := Bundled
	data, err := os.ReadFile(configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %v", ErrIO, err)
		}
		return "", ErrNotFound
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrJSONParse, err)
	}

	nb := &Notebook{ID: cfg.ID, RootFolder: rootFolder, Kind: kind, config: cfg, configPath: configPath}
	if err := m.wireNotebook(nb); err != nil {
		return "", err
	}
	bm := foldermanager.NewBundled(rootFolder, nb.Store)
	nb.Folders = bm

	m.byID[nb.ID] = nb
	m.byRoot[rootFolder] = nb.ID
	if err := m.recorder.RecordOpen(nb.ID, rootFolder, kind); err != nil {
		applog.Warn("notebook open: session record failed", applog.NotebookID(nb.ID), applog.Err(err))
	}
	return nb.ID, nil
}

// Close implements spec.md's close_notebook: drop caches, close the store,
// and remove the session record so it does not reappear on next start.
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	nb, ok := m.byID[id]
	if !ok {
		m.mu.Unlock()
		return ErrNotFound
	}
	delete(m.byID, id)
	delete(m.byRoot, nb.RootFolder)
	m.mu.Unlock()

	err := nb.Close()
	if recErr := m.recorder.RecordClose(id); recErr != nil {
		applog.Warn("notebook close: session record failed", applog.NotebookID(id), applog.Err(recErr))
	}
	return err
}

// Get returns the open notebook with the given id.
func (m *Manager) Get(id string) (*Notebook, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	nb, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return nb, nil
}

// List enumerates currently open notebooks (spec.md list_notebooks).
func (m *Manager) List() ([]Info, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Info, 0, len(m.byID))
	for _, nb := range m.byID {
		data, err := EmitConfig(nb.config)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrJSONSerialize, err)
		}
		out = append(out, Info{ID: nb.ID, Root: nb.RootFolder, Kind: nb.Kind, Config: string(data)})
	}
	return out, nil
}

// ResolvePath implements spec.md's resolve_path: for each open notebook,
// compute the relative path of absPath under its root; the first non-empty
// match wins.
func (m *Manager) ResolvePath(absPath string) (id, relPath string, err error) {
	absPath = filepath.Clean(absPath)

	m.mu.Lock()
	defer m.mu.Unlock()
	for root, nbID := range m.byRoot {
		rel := pathid.Relative(pathid.Clean(root), pathid.Clean(absPath))
		if rel != "" {
			return nbID, rel, nil
		}
	}
	return "", "", ErrNotFound
}

// GetConfig / UpdateConfig / RebuildCache delegate to the identified
// notebook (spec.md get_notebook_config/update_notebook_config/rebuild_cache).

func (m *Manager) GetConfig(id string) (string, error) {
	nb, err := m.Get(id)
	if err != nil {
		return "", err
	}
	return nb.GetConfig()
}

func (m *Manager) UpdateConfig(id, json string) error {
	nb, err := m.Get(id)
	if err != nil {
		return err
	}
	return nb.UpdateConfig(json)
}

func (m *Manager) RebuildCache(id string) error {
	nb, err := m.Get(id)
	if err != nil {
		return err
	}
	return nb.RebuildCache()
}
