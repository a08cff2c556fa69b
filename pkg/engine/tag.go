package engine

import "github.com/vxnote/notebookd/pkg/tags"

// TagInfo is one entry returned by ListTags.
type TagInfo = tags.Info

// CreateTag implements spec.md's tag create (root-level).
func (e *Engine) CreateTag(notebookID, name string) error {
	tm, err := e.tagManager(notebookID)
	if err != nil {
		return err
	}
	return wrap(tm.CreateTag(name))
}

// CreateTagPath implements spec.md's tag create_path (mkdir -p semantics
// over the tag tree).
func (e *Engine) CreateTagPath(notebookID, path string) error {
	tm, err := e.tagManager(notebookID)
	if err != nil {
		return err
	}
	return wrap(tm.CreateTagPath(path))
}

// DeleteTag implements spec.md's tag delete (cascades descendants and
// strips the tag from every file that carries it).
func (e *Engine) DeleteTag(notebookID, name string) error {
	tm, err := e.tagManager(notebookID)
	if err != nil {
		return err
	}
	return wrap(tm.DeleteTag(name))
}

// ListTags implements spec.md's tag list.
func (e *Engine) ListTags(notebookID string) ([]TagInfo, error) {
	tm, err := e.tagManager(notebookID)
	if err != nil {
		return nil, err
	}
	return tm.ListTags(), nil
}

// MoveTag implements spec.md's tag move (reparent).
func (e *Engine) MoveTag(notebookID, name, newParent string) error {
	tm, err := e.tagManager(notebookID)
	if err != nil {
		return err
	}
	return wrap(tm.MoveTag(name, newParent))
}
