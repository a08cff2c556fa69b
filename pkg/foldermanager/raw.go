package foldermanager

import (
	"os"
	"path/filepath"

	"github.com/vxnote/notebookd/pkg/folderconfig"
	"github.com/vxnote/notebookd/pkg/pathid"
)

// Raw is the folder manager for raw notebooks (spec.md §4.4, §9's "raw
// notebook" open question): a plain directory tree with no sidecar, no
// per-node metadata or tags, and no metadata-store mirror. Every mutation
// that the bundled form supports through vx.json is unsupported here; only
// read-only listing and iteration work, synthesizing records on the fly.
type Raw struct {
	rootFolder string
}

var _ Manager = (*Raw)(nil)

func NewRaw(rootFolder string) *Raw {
	return &Raw{rootFolder: rootFolder}
}

func (m *Raw) absPath(relPath string) string {
	if relPath == "." {
		return m.rootFolder
	}
	return filepath.Join(m.rootFolder, filepath.FromSlash(relPath))
}

func (m *Raw) GetFolderConfig(path string) (*folderconfig.FolderConfig, error) {
	path = pathid.Clean(path)
	info, err := os.Stat(m.absPath(path))
	if err != nil {
		return nil, ErrNotFound
	}
	if !info.IsDir() {
		return nil, ErrInvalidArg
	}

	entries, err := os.ReadDir(m.absPath(path))
	if err != nil {
		return nil, ErrIO
	}
	cfg := &folderconfig.FolderConfig{
		Name: info.Name(), ModifiedUTC: info.ModTime().UnixMilli(),
		Files: []folderconfig.FileRecord{}, Folders: []string{},
	}
	for _, e := range entries {
		if e.IsDir() {
			cfg.Folders = append(cfg.Folders, e.Name())
			continue
		}
		fi, err := e.Info()
		if err != nil {
			continue
		}
		cfg.Files = append(cfg.Files, folderconfig.FileRecord{
			Name: e.Name(), ModifiedUTC: fi.ModTime().UnixMilli(), Tags: []string{},
		})
	}
	return cfg, nil
}

func (m *Raw) ListFolderChildren(folderPath string, includeFolderInfo bool) (ChildrenListing, error) {
	cfg, err := m.GetFolderConfig(folderPath)
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
			if sub, err := m.GetFolderConfig(pathid.Join(pathid.Clean(folderPath), name)); err == nil {
				ci.Folder = sub
			}
		}
		out.Folders = append(out.Folders, ci)
	}
	return out, nil
}

func (m *Raw) IterateAllFiles(visit FileVisitor) error {
	stopped := false
	return m.iterateFrom(".", func(relPath string, rec folderconfig.FileRecord) bool {
		if stopped || !visit(relPath, rec) {
			stopped = true
			return false
		}
		return true
	})
}

func (m *Raw) iterateFrom(path string, visit FileVisitor) error {
	cfg, err := m.GetFolderConfig(path)
	if err != nil {
		return err
	}
	for _, f := range cfg.Files {
		if !visit(pathid.Join(path, f.Name), f) {
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

func (m *Raw) GetFileInfo(filePath string) (folderconfig.FileRecord, error) {
	folderPath, name := pathid.Split(pathid.Clean(filePath))
	cfg, err := m.GetFolderConfig(folderPath)
	if err != nil {
		return folderconfig.FileRecord{}, err
	}
	rec := cfg.FindFile(name)
	if rec == nil {
		return folderconfig.FileRecord{}, ErrNotFound
	}
	return *rec, nil
}

func (m *Raw) GetFileMetadata(filePath string) (string, error) { return "", nil }
func (m *Raw) GetFolderMetadata(folderPath string) (string, error) { return "", nil }

func (m *Raw) Invalidate(path string) {}
func (m *Raw) InvalidateAll()         {}

func (m *Raw) SyncMetadataStoreFromConfigs() error {
	return ErrUnsupported
}

func (m *Raw) CreateFolder(parentPath, name string) (string, error)          { return "", ErrUnsupported }
func (m *Raw) DeleteFolder(path string) error                                { return ErrUnsupported }
func (m *Raw) RenameFolder(path, newName string) error                       { return ErrUnsupported }
func (m *Raw) MoveFolder(srcPath, destParentPath string) error               { return ErrUnsupported }
func (m *Raw) CopyFolder(srcPath, destParentPath, newName string) (string, error) {
	return "", ErrUnsupported
}
func (m *Raw) CreatePath(path string) (string, error) { return "", ErrUnsupported }
func (m *Raw) ImportFolder(srcAbsPath, destParentPath, destName string) (string, error) {
	return "", ErrUnsupported
}

func (m *Raw) CreateFile(folderPath, fileName string) (string, error) { return "", ErrUnsupported }
func (m *Raw) DeleteFile(filePath string) error                       { return ErrUnsupported }
func (m *Raw) RenameFile(filePath, newName string) error              { return ErrUnsupported }
func (m *Raw) MoveFile(srcFilePath, destFolderPath string) error      { return ErrUnsupported }
func (m *Raw) CopyFile(srcFilePath, destFolderPath, newName string) (string, error) {
	return "", ErrUnsupported
}
func (m *Raw) ImportFile(srcAbsPath, destFolderPath, destName string) (string, error) {
	return "", ErrUnsupported
}

func (m *Raw) UpdateFileMetadata(filePath, metadataJSON string) error { return ErrUnsupported }
func (m *Raw) UpdateFolderMetadata(folderPath, metadataJSON string) error { return ErrUnsupported }
func (m *Raw) UpdateFileTags(filePath string, tags []string) error   { return ErrUnsupported }
func (m *Raw) AddTagToFile(filePath, tag string) error                { return ErrUnsupported }
func (m *Raw) RemoveTagFromFile(filePath, tag string) error            { return ErrUnsupported }
