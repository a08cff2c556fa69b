// Package foldermanager implements the folder manager (spec.md's component
// C4): the sole mutator of a notebook's on-disk tree and of the metadata
// store rows derived from it. A Bundled manager owns a vx_notebook/
// sidecar tree alongside the content mirror; a Raw manager is a degenerate
// variant that rejects every mutation.
package foldermanager

import "github.com/vxnote/notebookd/pkg/folderconfig"

// ChildInfo is one entry returned by ListFolderChildren.
type ChildInfo struct {
	Name   string
	IsFile bool
	File   *folderconfig.FileRecord  // set when IsFile
	Folder *folderconfig.FolderConfig // set when !IsFile and info was requested
}

// ChildrenListing is the result of ListFolderChildren.
type ChildrenListing struct {
	Files   []ChildInfo
	Folders []ChildInfo
}

// FileVisitor is called by IterateAllFiles for every file discovered during
// the depth-first walk. Returning false halts the traversal.
type FileVisitor func(relPath string, rec folderconfig.FileRecord) bool

// TagValidator is the narrow collaborator the folder manager uses to check
// tag closure (spec.md P4) before accepting a tag mutation. The notebook
// wires its tag subsystem (C6) in; tests may wire nothing, in which case
// tag mutations skip the closure check.
type TagValidator interface {
	TagExists(name string) bool
}

// Manager is the node-operation surface every notebook kind must implement
// (spec.md §4.4, §4.4.3 keyed off the unified node API in §6.4). Paths are
// always normalized (pathid.Clean) relative to the notebook root; "." is the
// root folder itself.
type Manager interface {
	GetFolderConfig(path string) (*folderconfig.FolderConfig, error)

	CreateFolder(parentPath, name string) (id string, err error)
	DeleteFolder(path string) error
	RenameFolder(path, newName string) error
	MoveFolder(srcPath, destParentPath string) error
	CopyFolder(srcPath, destParentPath, newName string) (id string, err error)
	CreatePath(path string) (id string, err error)
	ImportFolder(srcAbsPath, destParentPath, destName string) (id string, err error)

	CreateFile(folderPath, fileName string) (id string, err error)
	DeleteFile(filePath string) error
	RenameFile(filePath, newName string) error
	MoveFile(srcFilePath, destFolderPath string) error
	CopyFile(srcFilePath, destFolderPath, newName string) (id string, err error)
	ImportFile(srcAbsPath, destFolderPath, destName string) (id string, err error)

	GetFileInfo(filePath string) (folderconfig.FileRecord, error)
	GetFileMetadata(filePath string) (string, error)
	UpdateFileMetadata(filePath, metadataJSON string) error
	GetFolderMetadata(folderPath string) (string, error)
	UpdateFolderMetadata(folderPath, metadataJSON string) error

	UpdateFileTags(filePath string, tags []string) error
	AddTagToFile(filePath, tag string) error
	RemoveTagFromFile(filePath, tag string) error

	ListFolderChildren(folderPath string, includeFolderInfo bool) (ChildrenListing, error)
	IterateAllFiles(visit FileVisitor) error

	SyncMetadataStoreFromConfigs() error
	Invalidate(path string)
	InvalidateAll()
}
