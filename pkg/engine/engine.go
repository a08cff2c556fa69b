package engine

import (
	"sync"

	"github.com/vxnote/notebookd/pkg/notebook"
	"github.com/vxnote/notebookd/pkg/search"
	"github.com/vxnote/notebookd/pkg/tags"
)

// Engine is the process-wide operation surface (spec.md §6.4): it owns the
// notebook manager and, per open notebook, the tag and search subsystems
// that need a reference to the open notebook to construct.
type Engine struct {
	notebooks *notebook.Manager

	mu      sync.Mutex
	tagMgrs map[string]*tags.Manager
	search  map[string]*search.Manager
}

// New constructs an Engine. paths and recorder are forwarded to
// notebook.NewManager (SPEC_FULL.md's Configuration section); recorder may
// be nil.
func New(paths notebook.Paths, recorder notebook.SessionRecorder) *Engine {
	return &Engine{
		notebooks: notebook.NewManager(paths, recorder),
		tagMgrs:   make(map[string]*tags.Manager),
		search:    make(map[string]*search.Manager),
	}
}

// wireNotebook constructs and attaches the per-notebook tag and search
// managers, and wires the tag subsystem into the folder manager's closure
// check (spec.md P4). Called once per id, right after create/open.
func (e *Engine) wireNotebook(id string) error {
	nb, err := e.notebooks.Get(id)
	if err != nil {
		return wrap(err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.tagMgrs[id]; ok {
		return nil
	}

	tm := tags.New(nb)
	nb.SetTagValidator(tm)
	if err := tm.Sync(); err != nil {
		return wrap(err)
	}

	e.tagMgrs[id] = tm
	e.search[id] = search.New(nb, nil)
	return nil
}

func (e *Engine) tagManager(id string) (*tags.Manager, error) {
	e.mu.Lock()
	tm, ok := e.tagMgrs[id]
	e.mu.Unlock()
	if !ok {
		return nil, newError(NotFound, "notebook not open: "+id)
	}
	return tm, nil
}

func (e *Engine) searchManager(id string) (*search.Manager, error) {
	e.mu.Lock()
	sm, ok := e.search[id]
	e.mu.Unlock()
	if !ok {
		return nil, newError(NotFound, "notebook not open: "+id)
	}
	return sm, nil
}

func (e *Engine) notebookByID(id string) (*notebook.Notebook, error) {
	if id == "" {
		return nil, invalidParam("notebook id is required")
	}
	nb, err := e.notebooks.Get(id)
	if err != nil {
		return nil, wrap(err)
	}
	return nb, nil
}

func (e *Engine) forget(id string) {
	e.mu.Lock()
	delete(e.tagMgrs, id)
	delete(e.search, id)
	e.mu.Unlock()
}

// CreateNotebook implements spec.md's create_notebook.
func (e *Engine) CreateNotebook(rootFolder, name string, kind notebook.Kind, propertiesJSON string) (string, error) {
	id, err := e.notebooks.Create(rootFolder, name, kind, propertiesJSON)
	if err != nil {
		return "", wrap(err)
	}
	if err := e.wireNotebook(id); err != nil {
		return "", err
	}
	return id, nil
}

// OpenNotebook implements spec.md's open_notebook.
func (e *Engine) OpenNotebook(rootFolder string) (string, error) {
	id, err := e.notebooks.Open(rootFolder)
	if err != nil {
		return "", wrap(err)
	}
	if err := e.wireNotebook(id); err != nil {
		return "", err
	}
	return id, nil
}

// CloseNotebook implements spec.md's close_notebook.
func (e *Engine) CloseNotebook(id string) error {
	err := e.notebooks.Close(id)
	e.forget(id)
	return wrap(err)
}

// ListNotebooks implements spec.md's list_notebooks.
func (e *Engine) ListNotebooks() ([]notebook.Info, error) {
	infos, err := e.notebooks.List()
	return infos, wrap(err)
}

// GetNotebookConfig implements spec.md's get_notebook_config.
func (e *Engine) GetNotebookConfig(id string) (string, error) {
	cfg, err := e.notebooks.GetConfig(id)
	return cfg, wrap(err)
}

// UpdateNotebookConfig implements spec.md's update_notebook_config.
func (e *Engine) UpdateNotebookConfig(id, json string) error {
	return wrap(e.notebooks.UpdateConfig(id, json))
}

// RebuildCache implements spec.md's rebuild_cache.
func (e *Engine) RebuildCache(id string) error {
	return wrap(e.notebooks.RebuildCache(id))
}

// ResolvePath implements spec.md's resolve_path.
func (e *Engine) ResolvePath(absPath string) (id, relPath string, err error) {
	id, relPath, err = e.notebooks.ResolvePath(absPath)
	return id, relPath, wrap(err)
}
