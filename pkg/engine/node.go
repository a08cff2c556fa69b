package engine

import (
	"encoding/json"

	"github.com/vxnote/notebookd/pkg/pathid"
)

// NodeKind distinguishes which concrete type a resolved node turned out to
// be (spec.md §6.4's "type is auto-detected by attempting file lookup
// first, then folder").
type NodeKind int

const (
	NodeUnknown NodeKind = iota
	NodeFile
	NodeFolder
)

// NodeConfig is the JSON-shaped record returned by GetNodeConfig.
type NodeConfig struct {
	Kind NodeKind
	JSON string
}

// GetNodeConfig implements spec.md's unified node get_config: a file lookup
// is attempted first, then a folder lookup.
func (e *Engine) GetNodeConfig(notebookID, path string) (NodeConfig, error) {
	nb, err := e.notebookByID(notebookID)
	if err != nil {
		return NodeConfig{}, err
	}

	if rec, ferr := nb.Folders.GetFileInfo(path); ferr == nil {
		data, err := json.Marshal(rec)
		if err != nil {
			return NodeConfig{}, newError(JSONSerialize, err.Error())
		}
		return NodeConfig{Kind: NodeFile, JSON: string(data)}, nil
	}

	cfg, err := nb.Folders.GetFolderConfig(path)
	if err != nil {
		return NodeConfig{}, wrap(err)
	}
	data, err := json.Marshal(cfg)
	if err != nil {
		return NodeConfig{}, newError(JSONSerialize, err.Error())
	}
	return NodeConfig{Kind: NodeFolder, JSON: string(data)}, nil
}

// resolveKind determines whether path is a file or a folder in the given
// notebook, per spec.md §6.4's file-first auto-detect rule.
func (e *Engine) resolveKind(notebookID, path string) (NodeKind, error) {
	nb, err := e.notebookByID(notebookID)
	if err != nil {
		return NodeUnknown, err
	}
	if _, ferr := nb.Folders.GetFileInfo(path); ferr == nil {
		return NodeFile, nil
	}
	if _, ferr := nb.Folders.GetFolderConfig(path); ferr == nil {
		return NodeFolder, nil
	}
	return NodeUnknown, newError(NotFound, "node not found: "+path)
}

// DeleteNode implements spec.md's unified node delete.
func (e *Engine) DeleteNode(notebookID, path string) error {
	nb, err := e.notebookByID(notebookID)
	if err != nil {
		return err
	}
	kind, err := e.resolveKind(notebookID, path)
	if err != nil {
		return err
	}
	if kind == NodeFile {
		return wrap(nb.Folders.DeleteFile(path))
	}
	return wrap(nb.Folders.DeleteFolder(path))
}

// RenameNode implements spec.md's unified node rename.
func (e *Engine) RenameNode(notebookID, path, newName string) error {
	nb, err := e.notebookByID(notebookID)
	if err != nil {
		return err
	}
	kind, err := e.resolveKind(notebookID, path)
	if err != nil {
		return err
	}
	if kind == NodeFile {
		return wrap(nb.Folders.RenameFile(path, newName))
	}
	return wrap(nb.Folders.RenameFolder(path, newName))
}

// MoveNode implements spec.md's unified node move.
func (e *Engine) MoveNode(notebookID, path, destParentPath string) error {
	nb, err := e.notebookByID(notebookID)
	if err != nil {
		return err
	}
	kind, err := e.resolveKind(notebookID, path)
	if err != nil {
		return err
	}
	if kind == NodeFile {
		return wrap(nb.Folders.MoveFile(path, destParentPath))
	}
	return wrap(nb.Folders.MoveFolder(path, destParentPath))
}

// CopyNode implements spec.md's unified node copy.
func (e *Engine) CopyNode(notebookID, path, destParentPath, newName string) (string, error) {
	nb, err := e.notebookByID(notebookID)
	if err != nil {
		return "", err
	}
	kind, err := e.resolveKind(notebookID, path)
	if err != nil {
		return "", err
	}
	var (
		id    string
		cpErr error
	)
	if kind == NodeFile {
		id, cpErr = nb.Folders.CopyFile(path, destParentPath, newName)
	} else {
		id, cpErr = nb.Folders.CopyFolder(path, destParentPath, newName)
	}
	return id, wrap(cpErr)
}

// GetNodeMetadata implements spec.md's unified node get_metadata.
func (e *Engine) GetNodeMetadata(notebookID, path string) (string, error) {
	nb, err := e.notebookByID(notebookID)
	if err != nil {
		return "", err
	}
	kind, err := e.resolveKind(notebookID, path)
	if err != nil {
		return "", err
	}
	if kind == NodeFile {
		md, mErr := nb.Folders.GetFileMetadata(path)
		return md, wrap(mErr)
	}
	md, mErr := nb.Folders.GetFolderMetadata(path)
	return md, wrap(mErr)
}

// UpdateNodeMetadata implements spec.md's unified node update_metadata.
func (e *Engine) UpdateNodeMetadata(notebookID, path, metadataJSON string) error {
	nb, err := e.notebookByID(notebookID)
	if err != nil {
		return err
	}
	kind, err := e.resolveKind(notebookID, path)
	if err != nil {
		return err
	}
	if kind == NodeFile {
		return wrap(nb.Folders.UpdateFileMetadata(path, metadataJSON))
	}
	return wrap(nb.Folders.UpdateFolderMetadata(path, metadataJSON))
}

// IndexNode implements spec.md's unified node index: force the metadata
// store's row(s) for path back in sync with its on-disk config, without
// touching disk. A file is reindexed via its parent folder's lazy sync (the
// folder manager inserts missing file rows while loading a folder config);
// a folder is reindexed directly.
func (e *Engine) IndexNode(notebookID, path string) error {
	nb, err := e.notebookByID(notebookID)
	if err != nil {
		return err
	}
	kind, err := e.resolveKind(notebookID, path)
	if err != nil {
		return err
	}

	target := path
	if kind == NodeFile {
		parent, _ := pathid.Split(path)
		target = parent
	}
	nb.Folders.Invalidate(target)
	_, gErr := nb.Folders.GetFolderConfig(target)
	return wrap(gErr)
}

// UnindexNode implements spec.md's unified node unindex: remove path's
// row(s) from the metadata store while leaving on-disk content untouched
// (the "content-on-disk, index-in-database" split lets a node be hidden
// from search without deleting it).
func (e *Engine) UnindexNode(notebookID, path string) error {
	nb, err := e.notebookByID(notebookID)
	if err != nil {
		return err
	}
	kind, err := e.resolveKind(notebookID, path)
	if err != nil {
		return err
	}

	if kind == NodeFile {
		rec, fErr := nb.Folders.GetFileInfo(path)
		if fErr != nil {
			return wrap(fErr)
		}
		return wrap(nb.Store.DeleteFile(rec.ID))
	}

	folderRec, fErr := nb.Store.GetFolderByPath(path)
	if fErr != nil {
		return wrap(fErr)
	}
	return wrap(nb.Store.DeleteFolder(folderRec.ID))
}
