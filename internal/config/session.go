package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/vxnote/notebookd/pkg/notebook"
)

// sessionRecord mirrors the original system's NotebookRecord: enough to
// reopen the set of notebooks a process had open when it last exited.
type sessionRecord struct {
	ID         string `json:"id"`
	RootFolder string `json:"root_folder"`
	Kind       string `json:"kind"`
}

// Record is the exported view of a persisted session entry, used by callers
// that need to rebuild the open-notebook set at startup (mirroring the
// original system's NotebookManager::LoadOpenNotebooks).
type Record struct {
	ID         string
	RootFolder string
	Kind       string
}

type sessionFile struct {
	Notebooks []sessionRecord `json:"notebooks"`
}

// FileSessionRecorder implements notebook.SessionRecorder by persisting the
// set of open notebooks to a JSON file under the app-data root, so a
// restarted process can see what was open before (spec.md §5's session
// record mutation callback).
type FileSessionRecorder struct {
	mu   sync.Mutex
	path string
}

// NewFileSessionRecorder returns a recorder backed by session.json under
// paths.AppDataDir().
func NewFileSessionRecorder(paths *ProcessPaths) *FileSessionRecorder {
	return &FileSessionRecorder{path: filepath.Join(paths.AppDataDir(), "session.json")}
}

// RecordOpen implements notebook.SessionRecorder.
func (r *FileSessionRecorder) RecordOpen(id, rootFolder string, kind notebook.Kind) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sf, err := r.load()
	if err != nil {
		return err
	}
	for i, rec := range sf.Notebooks {
		if rec.ID == id {
			sf.Notebooks[i] = sessionRecord{ID: id, RootFolder: rootFolder, Kind: kind.String()}
			return r.save(sf)
		}
	}
	sf.Notebooks = append(sf.Notebooks, sessionRecord{ID: id, RootFolder: rootFolder, Kind: kind.String()})
	return r.save(sf)
}

// RecordClose implements notebook.SessionRecorder.
func (r *FileSessionRecorder) RecordClose(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sf, err := r.load()
	if err != nil {
		return err
	}
	kept := sf.Notebooks[:0]
	for _, rec := range sf.Notebooks {
		if rec.ID != id {
			kept = append(kept, rec)
		}
	}
	sf.Notebooks = kept
	return r.save(sf)
}

// Records returns the currently persisted session entries, in no particular
// order. Callers use this to rebuild the open-notebook set at startup; the
// recorder itself never does this (it only mutates the record on
// RecordOpen/RecordClose).
func (r *FileSessionRecorder) Records() ([]Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sf, err := r.load()
	if err != nil {
		return nil, err
	}
	out := make([]Record, 0, len(sf.Notebooks))
	for _, rec := range sf.Notebooks {
		out = append(out, Record{ID: rec.ID, RootFolder: rec.RootFolder, Kind: rec.Kind})
	}
	return out, nil
}

func (r *FileSessionRecorder) load() (*sessionFile, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &sessionFile{}, nil
		}
		return nil, err
	}
	var sf sessionFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return nil, err
	}
	return &sf, nil
}

func (r *FileSessionRecorder) save(sf *sessionFile) error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(sf, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(r.path, data, 0o644)
}
