package search

import (
	"github.com/vxnote/notebookd/pkg/folderconfig"
	"github.com/vxnote/notebookd/pkg/foldermanager"
)

func nodeFromFile(path string, rec folderconfig.FileRecord) Node {
	return Node{
		Kind:        NodeFile,
		Path:        path,
		ID:          rec.ID,
		CreatedUTC:  rec.CreatedUTC,
		ModifiedUTC: rec.ModifiedUTC,
		Tags:        rec.Tags,
	}
}

func nodeFromFolder(path string, info foldermanager.ChildInfo) Node {
	n := Node{Kind: NodeFolder, Path: path}
	if info.Folder != nil {
		n.ID = info.Folder.ID
		n.CreatedUTC = info.Folder.CreatedUTC
		n.ModifiedUTC = info.Folder.ModifiedUTC
	}
	return n
}
