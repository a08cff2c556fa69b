// Package tags implements the tag subsystem (spec.md's component C6):
// ground truth for tag definitions lives in the notebook config's
// hierarchical tag tree; the metadata store mirrors them for query
// performance.
package tags

import (
	"strconv"
	"strings"

	"github.com/vxnote/notebookd/pkg/folderconfig"
	"github.com/vxnote/notebookd/pkg/metastore"
	"github.com/vxnote/notebookd/pkg/notebook"
)

// Info is one entry returned by ListTags (spec.md's "{name, parent}").
type Info struct {
	Name   string
	Parent string
}

// Manager is the tag subsystem for a single open notebook. It implements
// foldermanager.TagValidator so the folder manager can enforce tag closure
// (spec.md P4) without importing this package.
type Manager struct {
	nb *notebook.Notebook
}

// New constructs a tag manager bound to an open notebook.
func New(nb *notebook.Notebook) *Manager {
	return &Manager{nb: nb}
}

// TagExists implements foldermanager.TagValidator.
func (m *Manager) TagExists(name string) bool {
	_, _, ok := findSiblings(treePtr(m.nb), name)
	return ok
}

func treePtr(nb *notebook.Notebook) *[]notebook.TagNode {
	tree := nb.TagsTree()
	return &tree
}

// CreateTag creates a root-level tag (spec.md's create_tag: name must not
// contain "/"; nested tags are created via CreateTagPath).
func (m *Manager) CreateTag(name string) error {
	if name == "" || strings.Contains(name, "/") {
		return ErrInvalidArg
	}
	tree := m.nb.TagsTree()
	if indexOfName(tree, name) >= 0 {
		return ErrAlreadyExists
	}
	tree = append(tree, notebook.TagNode{Name: name})
	if err := m.nb.SetTagsTree(tree); err != nil {
		return err
	}
	return m.mirrorOne(name, "")
}

// CreateTagPath creates every ancestor in path that does not yet exist
// (spec.md create_tag_path), idempotent for existing prefixes.
func (m *Manager) CreateTagPath(path string) error {
	if path == "" {
		return ErrInvalidArg
	}
	segments := splitSegments(path)
	tree := m.nb.TagsTree()

	siblings := &tree
	parent := ""
	changed := false
	for _, seg := range segments {
		if seg == "" {
			return ErrInvalidArg
		}
		idx := indexOfName(*siblings, seg)
		if idx < 0 {
			*siblings = append(*siblings, notebook.TagNode{Name: seg})
			idx = len(*siblings) - 1
			changed = true
		}
		name := fqn(parent, seg)
		if err := m.mirrorOne(name, parent); err != nil {
			return err
		}
		parent = name
		siblings = &(*siblings)[idx].Children
	}

	if changed {
		return m.nb.SetTagsTree(tree)
	}
	return nil
}

// DeleteTag removes name and every descendant tag, and strips the removed
// names from every file's tags[] across the notebook (spec.md delete_tag).
func (m *Manager) DeleteTag(name string) error {
	tree := m.nb.TagsTree()
	removed := descendantNames(tree, name)
	if removed == nil {
		return ErrNotFound
	}

	siblings, idx, ok := findSiblings(&tree, name)
	if !ok {
		return ErrNotFound
	}
	*siblings = append((*siblings)[:idx], (*siblings)[idx+1:]...)
	if err := m.nb.SetTagsTree(tree); err != nil {
		return err
	}

	removedSet := make(map[string]bool, len(removed))
	for _, n := range removed {
		removedSet[n] = true
	}
	if err := m.stripFromAllFiles(removedSet); err != nil {
		return err
	}

	if err := m.nb.Store.DeleteTag(name); err != nil && err != metastore.ErrNotFound {
		return err
	}
	return nil
}

// MoveTag re-parents the subtree rooted at name under newParent ("" for
// root), rewriting every descendant's fully-qualified name and every file
// reference to it (spec.md move_tag). The moved tag keeps its own name:
// this re-parents only and does not rename.
func (m *Manager) MoveTag(name, newParent string) error {
	tree := m.nb.TagsTree()

	if newParent != "" {
		if name == newParent || strings.HasPrefix(newParent, name+"/") {
			return ErrCycle
		}
		if _, _, ok := findSiblings(&tree, newParent); !ok {
			return ErrNotFound
		}
	}

	siblings, idx, ok := findSiblings(&tree, name)
	if !ok {
		return ErrNotFound
	}
	node := (*siblings)[idx]

	destSiblings := &tree
	if newParent != "" {
		ps, pidx, _ := findSiblings(&tree, newParent)
		destSiblings = &(*ps)[pidx].Children
	}
	if indexOfName(*destSiblings, node.Name) >= 0 {
		return ErrAlreadyExists
	}

	oldNames := descendantNames(tree, name)

	*siblings = append((*siblings)[:idx], (*siblings)[idx+1:]...)
	// Re-resolve destSiblings: the removal above may have invalidated the
	// pointer chain if destSiblings aliased a slice whose backing array the
	// removal reallocated. Recompute from scratch against the mutated tree.
	destSiblings = &tree
	if newParent != "" {
		ps, pidx, _ := findSiblings(&tree, newParent)
		destSiblings = &(*ps)[pidx].Children
	}
	*destSiblings = append(*destSiblings, node)

	if err := m.nb.SetTagsTree(tree); err != nil {
		return err
	}

	newNames := descendantNames(m.nb.TagsTree(), fqn(newParent, node.Name))
	rename := make(map[string]string, len(oldNames))
	for i, old := range oldNames {
		if i < len(newNames) {
			rename[old] = newNames[i]
		}
	}

	if err := m.remirrorSubtree(fqn(newParent, node.Name)); err != nil {
		return err
	}
	return m.renameInAllFiles(rename)
}

// ListTags returns every tag as {name, parent} (spec.md list_tags).
func (m *Manager) ListTags() []Info {
	tree := m.nb.TagsTree()
	var out []Info
	walk(tree, "", func(name string, _ notebook.TagNode) {
		parent := ""
		if idx := strings.LastIndex(name, "/"); idx >= 0 {
			parent = name[:idx]
		}
		out = append(out, Info{Name: name, Parent: parent})
	})
	return out
}

// Sync re-mirrors the entire tag tree into the store if the store's
// watermark disagrees with the config's tagsModifiedUtc (spec.md's tag sync
// on open, via notebook_kv).
func (m *Manager) Sync() error {
	const kvKey = "tags_synced_utc"

	want := m.nb.TagsModifiedUTC()
	stored, ok, err := m.nb.Store.KVGet(kvKey)
	if err != nil {
		return err
	}
	if ok && stored == formatInt(want) {
		return nil
	}

	if err := m.nb.Store.DeleteAllTags(); err != nil {
		return err
	}
	tree := m.nb.TagsTree()
	var mirrorErr error
	walk(tree, "", func(name string, _ notebook.TagNode) {
		if mirrorErr != nil {
			return
		}
		parent := ""
		if idx := strings.LastIndex(name, "/"); idx >= 0 {
			parent = name[:idx]
		}
		mirrorErr = m.nb.Store.CreateOrUpdateTag(metastore.TagRecord{Name: name, Parent: parent})
	})
	if mirrorErr != nil {
		return mirrorErr
	}

	return m.nb.Store.KVSet(kvKey, formatInt(want))
}

func (m *Manager) mirrorOne(name, parent string) error {
	return m.nb.Store.CreateOrUpdateTag(metastore.TagRecord{Name: name, Parent: parent})
}

// remirrorSubtree re-creates the store rows for name and every descendant
// after a move (their fully-qualified names and parent have changed).
func (m *Manager) remirrorSubtree(name string) error {
	tree := m.nb.TagsTree()
	siblings, idx, ok := findSiblings(&tree, name)
	if !ok {
		return ErrNotFound
	}
	node := (*siblings)[idx]
	parent := ""
	if i := strings.LastIndex(name, "/"); i >= 0 {
		parent = name[:i]
	}
	if err := m.mirrorOne(name, parent); err != nil {
		return err
	}
	var err error
	walk(node.Children, name, func(childName string, _ notebook.TagNode) {
		if err != nil {
			return
		}
		childParent := ""
		if i := strings.LastIndex(childName, "/"); i >= 0 {
			childParent = childName[:i]
		}
		err = m.mirrorOne(childName, childParent)
	})
	return err
}

// stripFromAllFiles removes every tag in removed from every file's tags[].
func (m *Manager) stripFromAllFiles(removed map[string]bool) error {
	var outerErr error
	visitErr := m.nb.Folders.IterateAllFiles(func(relPath string, rec folderconfig.FileRecord) bool {
		for _, tag := range rec.Tags {
			if removed[tag] {
				if err := m.nb.Folders.RemoveTagFromFile(relPath, tag); err != nil {
					outerErr = err
					return false
				}
			}
		}
		return true
	})
	if visitErr != nil {
		return visitErr
	}
	return outerErr
}

// renameInAllFiles rewrites file tag references whose name (or whose prefix
// through "/") appears in rename's keys to the corresponding new name.
func (m *Manager) renameInAllFiles(rename map[string]string) error {
	if len(rename) == 0 {
		return nil
	}
	var outerErr error
	visitErr := m.nb.Folders.IterateAllFiles(func(relPath string, rec folderconfig.FileRecord) bool {
		changed := false
		newTags := make([]string, len(rec.Tags))
		copy(newTags, rec.Tags)
		for i, tag := range newTags {
			if newName, ok := rename[tag]; ok {
				newTags[i] = newName
				changed = true
			}
		}
		if !changed {
			return true
		}
		if err := m.nb.Folders.UpdateFileTags(relPath, newTags); err != nil {
			outerErr = err
			return false
		}
		return true
	})
	if visitErr != nil {
		return visitErr
	}
	return outerErr
}

func formatInt(n int64) string {
	return strconv.FormatInt(n, 10)
}
