package foldermanager

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	applog "github.com/vxnote/notebookd/internal/logger"
	"github.com/vxnote/notebookd/pkg/folderconfig"
	"github.com/vxnote/notebookd/pkg/metastore"
	"github.com/vxnote/notebookd/pkg/pathid"
)

// Bundled is the folder manager for bundled notebooks (spec.md §4.4): it
// owns the content mirror under rootFolder, the vx_notebook/contents sidecar
// tree of folder configs, the in-memory config cache, and write-through to
// the metadata store.
type Bundled struct {
	mu           sync.Mutex
	rootFolder   string
	store        *metastore.Store
	cache        *configCache
	tagValidator TagValidator
}

var _ Manager = (*Bundled)(nil)

// NewBundled constructs a Bundled manager rooted at rootFolder, backed by
// store. It starts with no tag validator, so tag-closure checks
// (spec.md P4) are skipped until one is supplied via SetTagValidator (the
// notebook layer does this).
func NewBundled(rootFolder string, store *metastore.Store) *Bundled {
	return &Bundled{rootFolder: rootFolder, store: store, cache: newConfigCache()}
}

// SetTagValidator wires the collaborator used to enforce tag closure.
func (m *Bundled) SetTagValidator(v TagValidator) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tagValidator = v
}

// InitializeRoot bootstraps a brand-new notebook's root folder: creates the
// content and sidecar directories, writes the root folder config, and
// inserts the root folder row (spec.md §4.4.2).
func (m *Bundled) InitializeRoot(name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := os.MkdirAll(m.rootFolder, 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrIO, err)
	}
	if err := os.MkdirAll(m.sidecarDir("."), 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrIO, err)
	}

	now := pathid.NowMillis()
	root := &folderconfig.FolderConfig{
		ID: pathid.NewUUID(), Name: name, CreatedUTC: now, ModifiedUTC: now,
		Files: []folderconfig.FileRecord{}, Folders: []string{},
	}
	if err := m.saveConfigLocked(".", root); err != nil {
		return "", err
	}
	if err := m.store.CreateFolder(metastore.FolderRecord{
		ID: root.ID, Name: name, CreatedUTC: now, ModifiedUTC: now,
	}); err != nil {
		applog.Warn("store create root folder failed", applog.Err(err))
	}
	return root.ID, nil
}

// ensureRoot lazily recreates the root vx.json if it was deleted out from
// under the engine (covers a notebook opened against a root whose config is
// missing, rather than only bootstrapping it at creation time).
func (m *Bundled) ensureRoot() (*folderconfig.FolderConfig, error) {
	if err := os.MkdirAll(m.rootFolder, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	now := pathid.NowMillis()
	root := &folderconfig.FolderConfig{
		ID: pathid.NewUUID(), Name: filepath.Base(m.rootFolder), CreatedUTC: now, ModifiedUTC: now,
		Files: []folderconfig.FileRecord{}, Folders: []string{},
	}
	if err := m.saveConfigLocked(".", root); err != nil {
		return nil, err
	}
	return root, nil
}

// ---------------------------------------------------------------------
// Cache / disk plumbing
// ---------------------------------------------------------------------

func (m *Bundled) loadConfig(relPath string) (*folderconfig.FolderConfig, error) {
	if cfg, ok := m.cache.get(relPath); ok {
		return cfg, nil
	}

	data, err := os.ReadFile(m.sidecarFile(relPath))
	if err != nil {
		if os.IsNotExist(err) {
			if relPath == "." {
				return m.ensureRoot()
			}
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}

	cfg, err := folderconfig.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrJSONParse, err)
	}

	if err := m.lazySync(relPath, cfg); err != nil {
		applog.Warn("lazy sync failed", applog.Path(relPath), applog.Err(err))
	}

	m.cache.put(relPath, cfg)
	return cfg, nil
}

func (m *Bundled) saveConfigLocked(relPath string, cfg *folderconfig.FolderConfig) error {
	data, err := folderconfig.Emit(cfg)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrJSONSerialize, err)
	}
	if err := os.MkdirAll(m.sidecarDir(relPath), 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	if err := os.WriteFile(m.sidecarFile(relPath), data, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	m.cache.put(relPath, cfg)
	return nil
}

// lazySync inserts cfg's folder row and all of its file rows into the store
// if absent, resolving the parent's store id by (bounded recursive) load of
// the ancestor chain (spec.md §4.4.4).
func (m *Bundled) lazySync(relPath string, cfg *folderconfig.FolderConfig) error {
	_, err := m.store.GetFolder(cfg.ID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, metastore.ErrNotFound) {
		return err
	}

	var parentID string
	if relPath != "." {
		parentPath, _ := pathid.Split(relPath)
		parentCfg, err := m.loadConfig(parentPath)
		if err != nil {
			return err
		}
		parentID = parentCfg.ID
	}

	rec := metastore.FolderRecord{
		ID: cfg.ID, ParentID: parentID, Name: cfg.Name,
		CreatedUTC: cfg.CreatedUTC, ModifiedUTC: cfg.ModifiedUTC, Metadata: string(cfg.Metadata),
	}
	if err := m.store.CreateFolder(rec); err != nil && !errors.Is(err, metastore.ErrAlreadyExists) {
		return err
	}
	for _, f := range cfg.Files {
		frec := metastore.FileRecord{
			ID: f.ID, FolderID: cfg.ID, Name: f.Name,
			CreatedUTC: f.CreatedUTC, ModifiedUTC: f.ModifiedUTC, Metadata: string(f.Metadata),
		}
		if err := m.store.CreateFile(frec); err != nil && !errors.Is(err, metastore.ErrAlreadyExists) {
			return err
		}
		if len(f.Tags) > 0 {
			if err := m.store.SetFileTags(f.ID, f.Tags); err != nil {
				applog.Warn("lazy sync file tags failed", applog.FileID(f.ID), applog.Err(err))
			}
		}
	}
	return nil
}

// GetFolderConfig implements Manager.
func (m *Bundled) GetFolderConfig(path string) (*folderconfig.FolderConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadConfig(pathid.Clean(path))
}

func (m *Bundled) Invalidate(path string) {
	m.cache.invalidate(pathid.Clean(path))
}

// InvalidateAll drops the entire config cache (used on notebook close).
func (m *Bundled) InvalidateAll() {
	m.cache.clear()
}

// ---------------------------------------------------------------------
// Folder operations
// ---------------------------------------------------------------------

func (m *Bundled) CreateFolder(parentPath, name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if name == "" || strings.Contains(name, "/") {
		return "", ErrInvalidArg
	}
	parentPath = pathid.Clean(parentPath)
	parentCfg, err := m.loadConfig(parentPath)
	if err != nil {
		return "", err
	}

	newRelPath := pathid.Join(parentPath, name)
	if _, err := os.Stat(m.contentPath(newRelPath)); err == nil {
		return "", ErrAlreadyExists
	}
	if parentCfg.HasFolder(name) {
		return "", ErrAlreadyExists
	}

	if err := os.MkdirAll(m.contentPath(newRelPath), 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrIO, err)
	}

	now := pathid.NowMillis()
	newCfg := &folderconfig.FolderConfig{
		ID: pathid.NewUUID(), Name: name, CreatedUTC: now, ModifiedUTC: now,
		Files: []folderconfig.FileRecord{}, Folders: []string{},
	}
	if err := m.saveConfigLocked(newRelPath, newCfg); err != nil {
		return "", err
	}

	parentCfg.Folders = append(parentCfg.Folders, name)
	parentCfg.ModifiedUTC = now
	if err := m.saveConfigLocked(parentPath, parentCfg); err != nil {
		return "", err
	}

	if err := m.store.CreateFolder(metastore.FolderRecord{
		ID: newCfg.ID, ParentID: parentCfg.ID, Name: name, CreatedUTC: now, ModifiedUTC: now,
	}); err != nil {
		applog.Warn("store create folder failed", applog.Path(newRelPath), applog.Err(err))
	}
	return newCfg.ID, nil
}

// CreatePath implements mkdir -p, idempotent for existing prefixes
// (spec.md R5).
func (m *Bundled) CreatePath(path string) (string, error) {
	path = pathid.Clean(path)
	if path == "." {
		m.mu.Lock()
		cfg, err := m.loadConfig(".")
		m.mu.Unlock()
		if err != nil {
			return "", err
		}
		return cfg.ID, nil
	}

	segments := strings.Split(path, "/")
	cur := "."
	var id string
	for _, seg := range segments {
		next := pathid.Join(cur, seg)
		m.mu.Lock()
		cfg, err := m.loadConfig(next)
		m.mu.Unlock()
		if err == nil {
			id = cfg.ID
			cur = next
			continue
		}
		if !errors.Is(err, ErrNotFound) {
			return "", err
		}
		newID, err := m.CreateFolder(cur, seg)
		if err != nil {
			return "", err
		}
		id = newID
		cur = next
	}
	return id, nil
}

func (m *Bundled) DeleteFolder(path string) error {
	path = pathid.Clean(path)
	if path == "." {
		return fmt.Errorf("%w: cannot delete the root folder", ErrUnsupported)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := os.Stat(m.contentPath(path)); err != nil {
		return ErrNotFound
	}
	cfg, _ := m.loadConfig(path)

	parentPath, name := pathid.Split(path)
	parentCfg, err := m.loadConfig(parentPath)
	if err != nil {
		return err
	}
	parentCfg.RemoveFolder(name)
	parentCfg.ModifiedUTC = pathid.NowMillis()
	if err := m.saveConfigLocked(parentPath, parentCfg); err != nil {
		return err
	}

	if err := os.RemoveAll(m.contentPath(path)); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	if err := os.RemoveAll(m.sidecarDir(path)); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	m.cache.invalidateSubtree(path)

	if cfg != nil {
		if err := m.store.DeleteFolder(cfg.ID); err != nil {
			applog.Warn("store delete folder failed", applog.Path(path), applog.Err(err))
		}
	}
	return nil
}

func (m *Bundled) RenameFolder(path, newName string) error {
	path = pathid.Clean(path)
	if path == "." {
		return fmt.Errorf("%w: cannot rename the root folder", ErrUnsupported)
	}
	if newName == "" || strings.Contains(newName, "/") {
		return ErrInvalidArg
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	parentPath, oldName := pathid.Split(path)
	parentCfg, err := m.loadConfig(parentPath)
	if err != nil {
		return err
	}
	if newName != oldName && parentCfg.HasFolder(newName) {
		return ErrAlreadyExists
	}
	cfg, err := m.loadConfig(path)
	if err != nil {
		return err
	}

	newPath := pathid.Join(parentPath, newName)
	if err := os.Rename(m.contentPath(path), m.contentPath(newPath)); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	if err := os.MkdirAll(filepath.Dir(m.sidecarDir(newPath)), 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	if err := os.Rename(m.sidecarDir(path), m.sidecarDir(newPath)); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}

	now := pathid.NowMillis()
	cfg.Name = newName
	cfg.ModifiedUTC = now
	m.cache.invalidateSubtree(path)
	if err := m.saveConfigLocked(newPath, cfg); err != nil {
		return err
	}

	for i, f := range parentCfg.Folders {
		if f == oldName {
			parentCfg.Folders[i] = newName
		}
	}
	parentCfg.ModifiedUTC = now
	if err := m.saveConfigLocked(parentPath, parentCfg); err != nil {
		return err
	}

	if err := m.store.UpdateFolder(cfg.ID, newName, now, string(cfg.Metadata)); err != nil {
		applog.Warn("store rename folder failed", applog.OldPath(path), applog.NewPath(newPath), applog.Err(err))
	}
	return nil
}

func (m *Bundled) MoveFolder(srcPath, destParentPath string) error {
	srcPath = pathid.Clean(srcPath)
	destParentPath = pathid.Clean(destParentPath)
	if srcPath == "." {
		return fmt.Errorf("%w: cannot move the root folder", ErrUnsupported)
	}
	if destParentPath == srcPath || pathid.Relative(srcPath, destParentPath) != "" {
		return ErrInvalidArg
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	srcParentPath, name := pathid.Split(srcPath)
	srcParentCfg, err := m.loadConfig(srcParentPath)
	if err != nil {
		return err
	}
	destParentCfg, err := m.loadConfig(destParentPath)
	if err != nil {
		return err
	}
	if destParentCfg.HasFolder(name) {
		return ErrAlreadyExists
	}
	cfg, err := m.loadConfig(srcPath)
	if err != nil {
		return err
	}

	destPath := pathid.Join(destParentPath, name)
	if err := os.Rename(m.contentPath(srcPath), m.contentPath(destPath)); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	if err := os.MkdirAll(m.sidecarDir(destParentPath), 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	if err := os.Rename(m.sidecarDir(srcPath), m.sidecarDir(destPath)); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	m.cache.invalidateSubtree(srcPath)
	m.cache.put(destPath, cfg)

	srcParentCfg.RemoveFolder(name)
	now := pathid.NowMillis()
	srcParentCfg.ModifiedUTC = now
	if err := m.saveConfigLocked(srcParentPath, srcParentCfg); err != nil {
		return err
	}
	destParentCfg.Folders = append(destParentCfg.Folders, name)
	destParentCfg.ModifiedUTC = now
	if err := m.saveConfigLocked(destParentPath, destParentCfg); err != nil {
		return err
	}

	if err := m.store.Move(cfg.ID, destParentCfg.ID); err != nil {
		applog.Warn("store move folder failed", applog.OldPath(srcPath), applog.NewPath(destPath), applog.Err(err))
	}
	return nil
}

func (m *Bundled) CopyFolder(srcPath, destParentPath, newName string) (string, error) {
	srcPath = pathid.Clean(srcPath)
	destParentPath = pathid.Clean(destParentPath)

	m.mu.Lock()
	defer m.mu.Unlock()

	srcCfg, err := m.loadConfig(srcPath)
	if err != nil {
		return "", err
	}
	if newName == "" {
		newName = srcCfg.Name
	}
	destParentCfg, err := m.loadConfig(destParentPath)
	if err != nil {
		return "", err
	}
	if destParentCfg.HasFolder(newName) {
		return "", ErrAlreadyExists
	}

	destPath := pathid.Join(destParentPath, newName)
	if err := copyDirRecursive(m.contentPath(srcPath), m.contentPath(destPath)); err != nil {
		return "", fmt.Errorf("%w: %v", ErrIO, err)
	}

	newID, err := m.regenerateSidecarIDs(srcPath, destPath, destParentCfg.ID)
	if err != nil {
		return "", err
	}

	destParentCfg.Folders = append(destParentCfg.Folders, newName)
	destParentCfg.ModifiedUTC = pathid.NowMillis()
	if err := m.saveConfigLocked(destParentPath, destParentCfg); err != nil {
		return "", err
	}
	return newID, nil
}

// regenerateSidecarIDs copies srcPath's sidecar tree to destPath on disk,
// then walks the copy assigning fresh UUIDs to the folder and every nested
// folder/file (spec.md P9), writing both the new configs and new store rows.
func (m *Bundled) regenerateSidecarIDs(srcPath, destPath, destParentID string) (string, error) {
	if err := copyDirRecursive(m.sidecarDir(srcPath), m.sidecarDir(destPath)); err != nil {
		return "", fmt.Errorf("%w: %v", ErrIO, err)
	}
	return m.regenerateOne(destPath, destParentID)
}

func (m *Bundled) regenerateOne(relPath, parentID string) (string, error) {
	data, err := os.ReadFile(m.sidecarFile(relPath))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrIO, err)
	}
	cfg, err := folderconfig.Parse(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrJSONParse, err)
	}

	now := pathid.NowMillis()
	cfg.ID = pathid.NewUUID()
	cfg.CreatedUTC = now
	cfg.ModifiedUTC = now
	for i := range cfg.Files {
		cfg.Files[i].ID = pathid.NewUUID()
		cfg.Files[i].CreatedUTC = now
		cfg.Files[i].ModifiedUTC = now
	}
	if err := m.saveConfigLocked(relPath, cfg); err != nil {
		return "", err
	}

	if err := m.store.CreateFolder(metastore.FolderRecord{
		ID: cfg.ID, ParentID: parentID, Name: cfg.Name, CreatedUTC: now, ModifiedUTC: now, Metadata: string(cfg.Metadata),
	}); err != nil {
		applog.Warn("store create copied folder failed", applog.Path(relPath), applog.Err(err))
	}
	for _, f := range cfg.Files {
		if err := m.store.CreateFile(metastore.FileRecord{
			ID: f.ID, FolderID: cfg.ID, Name: f.Name, CreatedUTC: now, ModifiedUTC: now, Metadata: string(f.Metadata),
		}); err != nil {
			applog.Warn("store create copied file failed", applog.Path(relPath), applog.Err(err))
		}
		if len(f.Tags) > 0 {
			if err := m.store.SetFileTags(f.ID, f.Tags); err != nil {
				applog.Warn("store copy file tags failed", applog.FileID(f.ID), applog.Err(err))
			}
		}
	}

	for _, sub := range cfg.Folders {
		if _, err := m.regenerateOne(pathid.Join(relPath, sub), cfg.ID); err != nil {
			return "", err
		}
	}
	return cfg.ID, nil
}

func (m *Bundled) ImportFolder(srcAbsPath, destParentPath, destName string) (string, error) {
	if destName == "" {
		destName = filepath.Base(srcAbsPath)
	}
	destName = uniqueName(m, destParentPath, destName, true)

	destParentPath = pathid.Clean(destParentPath)
	m.mu.Lock()
	destParentCfg, err := m.loadConfig(destParentPath)
	m.mu.Unlock()
	if err != nil {
		return "", err
	}
	if _, err := m.CreateFolder(destParentPath, destName); err != nil {
		return "", err
	}
	destPath := pathid.Join(destParentPath, destName)

	entries, err := os.ReadDir(srcAbsPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrIO, err)
	}
	for _, e := range entries {
		srcChild := filepath.Join(srcAbsPath, e.Name())
		if e.IsDir() {
			if _, err := m.ImportFolder(srcChild, destPath, e.Name()); err != nil {
				return "", err
			}
		} else {
			if _, err := m.ImportFile(srcChild, destPath, e.Name()); err != nil {
				return "", err
			}
		}
	}

	m.mu.Lock()
	cfg, err := m.loadConfig(destPath)
	m.mu.Unlock()
	if err != nil {
		return "", err
	}
	_ = destParentCfg
	return cfg.ID, nil
}

// ---------------------------------------------------------------------
// File operations
// ---------------------------------------------------------------------

func (m *Bundled) CreateFile(folderPath, fileName string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if fileName == "" || strings.Contains(fileName, "/") {
		return "", ErrInvalidArg
	}
	folderPath = pathid.Clean(folderPath)
	cfg, err := m.loadConfig(folderPath)
	if err != nil {
		return "", err
	}

	relFilePath := pathid.Join(folderPath, fileName)
	if _, err := os.Stat(m.contentPath(relFilePath)); err == nil {
		return "", ErrAlreadyExists
	}
	if cfg.FindFile(fileName) != nil {
		return "", ErrAlreadyExists
	}

	if err := os.MkdirAll(m.contentPath(folderPath), 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrIO, err)
	}
	if err := os.WriteFile(m.contentPath(relFilePath), []byte{}, 0o644); err != nil {
		return "", fmt.Errorf("%w: %v", ErrIO, err)
	}

	now := pathid.NowMillis()
	rec := folderconfig.FileRecord{
		ID: pathid.NewUUID(), Name: fileName, CreatedUTC: now, ModifiedUTC: now, Tags: []string{},
	}
	cfg.Files = append(cfg.Files, rec)
	cfg.ModifiedUTC = now
	if err := m.saveConfigLocked(folderPath, cfg); err != nil {
		return "", err
	}

	if err := m.store.CreateFile(metastore.FileRecord{
		ID: rec.ID, FolderID: cfg.ID, Name: fileName, CreatedUTC: now, ModifiedUTC: now,
	}); err != nil {
		applog.Warn("store create file failed", applog.Path(relFilePath), applog.Err(err))
	}
	return rec.ID, nil
}

func (m *Bundled) ImportFile(srcAbsPath, destFolderPath, destName string) (string, error) {
	if destName == "" {
		destName = filepath.Base(srcAbsPath)
	}
	destName = uniqueName(m, destFolderPath, destName, false)

	id, err := m.CreateFile(destFolderPath, destName)
	if err != nil {
		return "", err
	}

	src, err := os.Open(srcAbsPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrIO, err)
	}
	defer src.Close()

	relPath := pathid.Join(pathid.Clean(destFolderPath), destName)
	dst, err := os.Create(m.contentPath(relPath))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrIO, err)
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("%w: %v", ErrIO, err)
	}
	return id, nil
}

// uniqueName returns name, or name with a numeric suffix inserted before any
// extension, such that no existing entry in destParentPath collides
// (spec.md §6.4's "auto-rename on collision" for import).
func uniqueName(m *Bundled, destParentPath, name string, isFolder bool) string {
	m.mu.Lock()
	cfg, err := m.loadConfig(pathid.Clean(destParentPath))
	m.mu.Unlock()
	if err != nil {
		return name
	}

	exists := func(candidate string) bool {
		if isFolder {
			return cfg.HasFolder(candidate)
		}
		return cfg.FindFile(candidate) != nil
	}
	if !exists(name) {
		return name
	}

	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s (%d)%s", base, i, ext)
		if !exists(candidate) {
			return candidate
		}
	}
}

func (m *Bundled) DeleteFile(filePath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	folderPath, fileName := pathid.Split(pathid.Clean(filePath))
	cfg, err := m.loadConfig(folderPath)
	if err != nil {
		return err
	}
	rec := cfg.FindFile(fileName)
	if rec == nil {
		return ErrNotFound
	}
	id := rec.ID

	if !cfg.RemoveFile(fileName) {
		return ErrNotFound
	}
	cfg.ModifiedUTC = pathid.NowMillis()
	if err := m.saveConfigLocked(folderPath, cfg); err != nil {
		return err
	}

	if err := os.Remove(m.contentPath(filePath)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}

	if err := m.store.DeleteFile(id); err != nil {
		applog.Warn("store delete file failed", applog.Path(filePath), applog.Err(err))
	}
	return nil
}

func (m *Bundled) RenameFile(filePath, newName string) error {
	if newName == "" || strings.Contains(newName, "/") {
		return ErrInvalidArg
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	folderPath, oldName := pathid.Split(pathid.Clean(filePath))
	cfg, err := m.loadConfig(folderPath)
	if err != nil {
		return err
	}
	rec := cfg.FindFile(oldName)
	if rec == nil {
		return ErrNotFound
	}
	if newName != oldName && cfg.FindFile(newName) != nil {
		return ErrAlreadyExists
	}

	newRelPath := pathid.Join(folderPath, newName)
	if err := os.Rename(m.contentPath(filePath), m.contentPath(newRelPath)); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}

	now := pathid.NowMillis()
	rec.Name = newName
	rec.ModifiedUTC = now
	cfg.ModifiedUTC = now
	if err := m.saveConfigLocked(folderPath, cfg); err != nil {
		return err
	}

	if err := m.store.UpdateFile(rec.ID, newName, now, string(rec.Metadata)); err != nil {
		applog.Warn("store rename file failed", applog.OldPath(filePath), applog.NewPath(newRelPath), applog.Err(err))
	}
	return nil
}

func (m *Bundled) MoveFile(srcFilePath, destFolderPath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	srcFolderPath, fileName := pathid.Split(pathid.Clean(srcFilePath))
	destFolderPath = pathid.Clean(destFolderPath)

	srcCfg, err := m.loadConfig(srcFolderPath)
	if err != nil {
		return err
	}
	rec := srcCfg.FindFile(fileName)
	if rec == nil {
		return ErrNotFound
	}
	destCfg, err := m.loadConfig(destFolderPath)
	if err != nil {
		return err
	}
	if destCfg.FindFile(fileName) != nil {
		return ErrAlreadyExists
	}

	destRelPath := pathid.Join(destFolderPath, fileName)
	if err := os.Rename(m.contentPath(srcFilePath), m.contentPath(destRelPath)); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}

	now := pathid.NowMillis()
	moved := *rec
	moved.ModifiedUTC = now
	srcCfg.RemoveFile(fileName)
	srcCfg.ModifiedUTC = now
	if err := m.saveConfigLocked(srcFolderPath, srcCfg); err != nil {
		return err
	}
	destCfg.Files = append(destCfg.Files, moved)
	destCfg.ModifiedUTC = now
	if err := m.saveConfigLocked(destFolderPath, destCfg); err != nil {
		return err
	}

	if err := m.store.MoveFile(moved.ID, destCfg.ID); err != nil {
		applog.Warn("store move file failed", applog.OldPath(srcFilePath), applog.NewPath(destRelPath), applog.Err(err))
	}
	return nil
}

func (m *Bundled) CopyFile(srcFilePath, destFolderPath, newName string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	srcFolderPath, fileName := pathid.Split(pathid.Clean(srcFilePath))
	destFolderPath = pathid.Clean(destFolderPath)
	if newName == "" {
		newName = fileName
	}

	srcCfg, err := m.loadConfig(srcFolderPath)
	if err != nil {
		return "", err
	}
	rec := srcCfg.FindFile(fileName)
	if rec == nil {
		return "", ErrNotFound
	}
	destCfg, err := m.loadConfig(destFolderPath)
	if err != nil {
		return "", err
	}
	if destCfg.FindFile(newName) != nil {
		return "", ErrAlreadyExists
	}

	destRelPath := pathid.Join(destFolderPath, newName)
	if err := copyFile(m.contentPath(srcFilePath), m.contentPath(destRelPath)); err != nil {
		return "", fmt.Errorf("%w: %v", ErrIO, err)
	}

	now := pathid.NowMillis()
	newRec := *rec
	newRec.ID = pathid.NewUUID()
	newRec.Name = newName
	newRec.CreatedUTC = now
	newRec.ModifiedUTC = now
	destCfg.Files = append(destCfg.Files, newRec)
	destCfg.ModifiedUTC = now
	if err := m.saveConfigLocked(destFolderPath, destCfg); err != nil {
		return "", err
	}

	if err := m.store.CreateFile(metastore.FileRecord{
		ID: newRec.ID, FolderID: destCfg.ID, Name: newName, CreatedUTC: now, ModifiedUTC: now, Metadata: string(newRec.Metadata),
	}); err != nil {
		applog.Warn("store create copied file failed", applog.Path(destRelPath), applog.Err(err))
	}
	if len(newRec.Tags) > 0 {
		if err := m.store.SetFileTags(newRec.ID, newRec.Tags); err != nil {
			applog.Warn("store copy file tags failed", applog.FileID(newRec.ID), applog.Err(err))
		}
	}
	return newRec.ID, nil
}

// ---------------------------------------------------------------------
// Metadata / tag accessors
// ---------------------------------------------------------------------

func (m *Bundled) GetFileInfo(filePath string) (folderconfig.FileRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	folderPath, fileName := pathid.Split(pathid.Clean(filePath))
	cfg, err := m.loadConfig(folderPath)
	if err != nil {
		return folderconfig.FileRecord{}, err
	}
	rec := cfg.FindFile(fileName)
	if rec == nil {
		return folderconfig.FileRecord{}, ErrNotFound
	}
	return *rec, nil
}

func (m *Bundled) GetFileMetadata(filePath string) (string, error) {
	rec, err := m.GetFileInfo(filePath)
	if err != nil {
		return "", err
	}
	return string(rec.Metadata), nil
}

func (m *Bundled) UpdateFileMetadata(filePath, metadataJSON string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	folderPath, fileName := pathid.Split(pathid.Clean(filePath))
	cfg, err := m.loadConfig(folderPath)
	if err != nil {
		return err
	}
	rec := cfg.FindFile(fileName)
	if rec == nil {
		return ErrNotFound
	}
	if !isJSONObject(metadataJSON) {
		return ErrInvalidArg
	}
	now := pathid.NowMillis()
	rec.Metadata = []byte(metadataJSON)
	rec.ModifiedUTC = now
	cfg.ModifiedUTC = now
	if err := m.saveConfigLocked(folderPath, cfg); err != nil {
		return err
	}
	if err := m.store.UpdateFile(rec.ID, rec.Name, now, metadataJSON); err != nil {
		applog.Warn("store update file metadata failed", applog.Path(filePath), applog.Err(err))
	}
	return nil
}

func (m *Bundled) GetFolderMetadata(folderPath string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cfg, err := m.loadConfig(pathid.Clean(folderPath))
	if err != nil {
		return "", err
	}
	return string(cfg.Metadata), nil
}

func (m *Bundled) UpdateFolderMetadata(folderPath, metadataJSON string) error {
	if !isJSONObject(metadataJSON) {
		return ErrInvalidArg
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	folderPath = pathid.Clean(folderPath)
	cfg, err := m.loadConfig(folderPath)
	if err != nil {
		return err
	}
	now := pathid.NowMillis()
	cfg.Metadata = []byte(metadataJSON)
	cfg.ModifiedUTC = now
	if err := m.saveConfigLocked(folderPath, cfg); err != nil {
		return err
	}
	if err := m.store.UpdateFolder(cfg.ID, cfg.Name, now, metadataJSON); err != nil {
		applog.Warn("store update folder metadata failed", applog.Path(folderPath), applog.Err(err))
	}
	return nil
}

func (m *Bundled) UpdateFileTags(filePath string, tags []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	folderPath, fileName := pathid.Split(pathid.Clean(filePath))
	cfg, err := m.loadConfig(folderPath)
	if err != nil {
		return err
	}
	rec := cfg.FindFile(fileName)
	if rec == nil {
		return ErrNotFound
	}
	if err := m.checkTagClosure(tags); err != nil {
		return err
	}

	now := pathid.NowMillis()
	rec.Tags = append([]string(nil), tags...)
	rec.ModifiedUTC = now
	cfg.ModifiedUTC = now
	if err := m.saveConfigLocked(folderPath, cfg); err != nil {
		return err
	}
	if err := m.store.SetFileTags(rec.ID, rec.Tags); err != nil {
		applog.Warn("store set file tags failed", applog.Path(filePath), applog.Err(err))
	}
	return nil
}

func (m *Bundled) AddTagToFile(filePath, tag string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	folderPath, fileName := pathid.Split(pathid.Clean(filePath))
	cfg, err := m.loadConfig(folderPath)
	if err != nil {
		return err
	}
	rec := cfg.FindFile(fileName)
	if rec == nil {
		return ErrNotFound
	}
	if err := m.checkTagClosure([]string{tag}); err != nil {
		return err
	}
	for _, t := range rec.Tags {
		if t == tag {
			return nil
		}
	}

	now := pathid.NowMillis()
	rec.Tags = append(rec.Tags, tag)
	rec.ModifiedUTC = now
	cfg.ModifiedUTC = now
	if err := m.saveConfigLocked(folderPath, cfg); err != nil {
		return err
	}
	if err := m.store.AddTag(rec.ID, tag); err != nil {
		applog.Warn("store add tag failed", applog.Path(filePath), applog.TagName(tag), applog.Err(err))
	}
	return nil
}

func (m *Bundled) RemoveTagFromFile(filePath, tag string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	folderPath, fileName := pathid.Split(pathid.Clean(filePath))
	cfg, err := m.loadConfig(folderPath)
	if err != nil {
		return err
	}
	rec := cfg.FindFile(fileName)
	if rec == nil {
		return ErrNotFound
	}

	out := rec.Tags[:0]
	removed := false
	for _, t := range rec.Tags {
		if t == tag {
			removed = true
			continue
		}
		out = append(out, t)
	}
	if !removed {
		return nil
	}
	rec.Tags = out

	now := pathid.NowMillis()
	rec.ModifiedUTC = now
	cfg.ModifiedUTC = now
	if err := m.saveConfigLocked(folderPath, cfg); err != nil {
		return err
	}
	if err := m.store.RemoveTag(rec.ID, tag); err != nil {
		applog.Warn("store remove tag failed", applog.Path(filePath), applog.TagName(tag), applog.Err(err))
	}
	return nil
}

func (m *Bundled) checkTagClosure(tags []string) error {
	if m.tagValidator == nil {
		return nil
	}
	for _, t := range tags {
		if !m.tagValidator.TagExists(t) {
			return ErrInvalidArg
		}
	}
	return nil
}

// ---------------------------------------------------------------------
// Listing / iteration
// ---------------------------------------------------------------------

func (m *Bundled) ListFolderChildren(folderPath string, includeFolderInfo bool) (ChildrenListing, error) {
	m.mu.Lock()
	cfg, err := m.loadConfig(pathid.Clean(folderPath))
	m.mu.Unlock()
	if err != nil {
		return ChildrenListing{}, err
	}

	out := ChildrenListing{}
	for i := range cfg.Files {
		rec := cfg.Files[i]
		out.Files = append(out.Files, ChildInfo{Name: rec.Name, IsFile: true, File: &rec})
	}
	for _, name := range cfg.Folders {
		ci := ChildInfo{Name: name}
		if includeFolderInfo {
			m.mu.Lock()
			subCfg, err := m.loadConfig(pathid.Join(pathid.Clean(folderPath), name))
			m.mu.Unlock()
			if err == nil {
				ci.Folder = subCfg
			}
		}
		out.Folders = append(out.Folders, ci)
	}
	return out, nil
}

func (m *Bundled) IterateAllFiles(visit FileVisitor) error {
	stopped := false
	return m.iterateFrom(".", func(relPath string, rec folderconfig.FileRecord) bool {
		if stopped || !visit(relPath, rec) {
			stopped = true
			return false
		}
		return true
	})
}

func (m *Bundled) iterateFrom(path string, visit FileVisitor) error {
	m.mu.Lock()
	cfg, err := m.loadConfig(path)
	m.mu.Unlock()
	if err != nil {
		return err
	}

	for _, f := range cfg.Files {
		relPath := pathid.Join(path, f.Name)
		if !visit(relPath, f) {
			return nil
		}
	}
	for _, sub := range cfg.Folders {
		if err := m.iterateFrom(pathid.Join(path, sub), visit); err != nil {
			return err
		}
	}
	return nil
}

// SyncMetadataStoreFromConfigs rebuilds the entire store from the on-disk
// configs (spec.md §4.4.4), issuing a single rebuild-all followed by a
// depth-first insert of every folder and file. Individual row failures are
// logged and skipped rather than aborting the whole rebuild.
func (m *Bundled) SyncMetadataStoreFromConfigs() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cache.clear()
	if err := m.store.RebuildAll(); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	return m.rebuildFrom(".", "")
}

func (m *Bundled) rebuildFrom(path, parentID string) error {
	cfg, err := m.loadConfigForRebuild(path)
	if err != nil {
		applog.Warn("rebuild: load config failed", applog.Path(path), applog.Err(err))
		return nil
	}

	if err := m.store.CreateFolder(metastore.FolderRecord{
		ID: cfg.ID, ParentID: parentID, Name: cfg.Name,
		CreatedUTC: cfg.CreatedUTC, ModifiedUTC: cfg.ModifiedUTC, Metadata: string(cfg.Metadata),
	}); err != nil {
		applog.Warn("rebuild: insert folder failed", applog.Path(path), applog.Err(err))
	}
	for _, f := range cfg.Files {
		if err := m.store.CreateFile(metastore.FileRecord{
			ID: f.ID, FolderID: cfg.ID, Name: f.Name,
			CreatedUTC: f.CreatedUTC, ModifiedUTC: f.ModifiedUTC, Metadata: string(f.Metadata),
		}); err != nil {
			applog.Warn("rebuild: insert file failed", applog.Path(path), applog.Err(err))
			continue
		}
		if len(f.Tags) > 0 {
			if err := m.store.SetFileTags(f.ID, f.Tags); err != nil {
				applog.Warn("rebuild: set file tags failed", applog.FileID(f.ID), applog.Err(err))
			}
		}
	}

	for _, sub := range cfg.Folders {
		if err := m.rebuildFrom(pathid.Join(path, sub), cfg.ID); err != nil {
			return err
		}
	}
	return nil
}

// loadConfigForRebuild bypasses the cache and lazy-sync path: the store has
// just been dropped, so lazySync would loop trying to re-query it.
func (m *Bundled) loadConfigForRebuild(path string) (*folderconfig.FolderConfig, error) {
	data, err := os.ReadFile(m.sidecarFile(path))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	cfg, err := folderconfig.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrJSONParse, err)
	}
	m.cache.put(path, cfg)
	return cfg, nil
}

// ---------------------------------------------------------------------
// Filesystem helpers
// ---------------------------------------------------------------------

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = io.Copy(out, in)
	return err
}

func copyDirRecursive(src, dst string) error {
	return filepath.Walk(src, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, p)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if info.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		return copyFile(p, target)
	})
}

func isJSONObject(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}")
}
