package engine

import "github.com/vxnote/notebookd/pkg/foldermanager"

// FolderChildren is the result of ListFolderChildren.
type FolderChildren = foldermanager.ChildrenListing

// CreateFolder implements spec.md's explicit folder create.
func (e *Engine) CreateFolder(notebookID, parentPath, name string) (string, error) {
	nb, err := e.notebookByID(notebookID)
	if err != nil {
		return "", err
	}
	id, cErr := nb.Folders.CreateFolder(parentPath, name)
	return id, wrap(cErr)
}

// CreateFolderPath implements spec.md's explicit folder create_path
// (mkdir -p semantics).
func (e *Engine) CreateFolderPath(notebookID, path string) (string, error) {
	nb, err := e.notebookByID(notebookID)
	if err != nil {
		return "", err
	}
	id, cErr := nb.Folders.CreatePath(path)
	return id, wrap(cErr)
}

// ListFolderChildren implements spec.md's explicit folder list_children.
func (e *Engine) ListFolderChildren(notebookID, folderPath string, includeFolderInfo bool) (FolderChildren, error) {
	nb, err := e.notebookByID(notebookID)
	if err != nil {
		return FolderChildren{}, err
	}
	listing, lErr := nb.Folders.ListFolderChildren(folderPath, includeFolderInfo)
	return listing, wrap(lErr)
}

// ImportFolder implements spec.md's explicit folder import (recursive
// external copy).
func (e *Engine) ImportFolder(notebookID, srcAbsPath, destParentPath, destName string) (string, error) {
	nb, err := e.notebookByID(notebookID)
	if err != nil {
		return "", err
	}
	id, iErr := nb.Folders.ImportFolder(srcAbsPath, destParentPath, destName)
	return id, wrap(iErr)
}
