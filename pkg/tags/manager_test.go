package tags

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vxnote/notebookd/pkg/notebook"
)

type fakePaths struct{ dir string }

func (p fakePaths) AppDataDir() string                    { return p.dir }
func (p fakePaths) NotebookLocalDataDir(id string) string { return filepath.Join(p.dir, "notebooks", id) }

func newTestNotebook(t *testing.T) *notebook.Notebook {
	t.Helper()
	m := notebook.NewManager(fakePaths{dir: t.TempDir()}, nil)
	root := filepath.Join(t.TempDir(), "nb")
	id, err := m.Create(root, "nb", notebook.Bundled, "")
	require.NoError(t, err)
	nb, err := m.Get(id)
	require.NoError(t, err)
	return nb
}

func TestCreateTagRootLevel(t *testing.T) {
	nb := newTestNotebook(t)
	tm := New(nb)

	require.NoError(t, tm.CreateTag("work"))
	assert.True(t, tm.TagExists("work"))

	tag, err := nb.Store.GetTag("work")
	require.NoError(t, err)
	assert.Equal(t, "", tag.Parent)
}

func TestCreateTagRejectsSlash(t *testing.T) {
	nb := newTestNotebook(t)
	tm := New(nb)
	assert.ErrorIs(t, tm.CreateTag("a/b"), ErrInvalidArg)
}

func TestCreateTagRejectsDuplicate(t *testing.T) {
	nb := newTestNotebook(t)
	tm := New(nb)
	require.NoError(t, tm.CreateTag("work"))
	assert.ErrorIs(t, tm.CreateTag("work"), ErrAlreadyExists)
}

func TestCreateTagPathCreatesAncestors(t *testing.T) {
	nb := newTestNotebook(t)
	tm := New(nb)

	require.NoError(t, tm.CreateTagPath("project/alpha/docs"))
	assert.True(t, tm.TagExists("project"))
	assert.True(t, tm.TagExists("project/alpha"))
	assert.True(t, tm.TagExists("project/alpha/docs"))

	tag, err := nb.Store.GetTag("project/alpha")
	require.NoError(t, err)
	assert.Equal(t, "project", tag.Parent)
}

func TestCreateTagPathIsIdempotentForExistingPrefix(t *testing.T) {
	nb := newTestNotebook(t)
	tm := New(nb)

	require.NoError(t, tm.CreateTagPath("project/alpha"))
	require.NoError(t, tm.CreateTagPath("project/beta"))

	assert.True(t, tm.TagExists("project"))
	assert.True(t, tm.TagExists("project/alpha"))
	assert.True(t, tm.TagExists("project/beta"))

	tags, err := nb.Store.ListAllTags()
	require.NoError(t, err)
	assert.Len(t, tags, 3)
}

func TestDeleteTagCascadesAndStripsFiles(t *testing.T) {
	nb := newTestNotebook(t)
	tm := New(nb)
	nb.SetTagValidator(tm)

	require.NoError(t, tm.CreateTagPath("project/alpha"))

	_, err := nb.Folders.CreateFile(".", "note.md")
	require.NoError(t, err)
	require.NoError(t, nb.Folders.AddTagToFile("note.md", "project/alpha"))

	require.NoError(t, tm.DeleteTag("project"))

	assert.False(t, tm.TagExists("project"))
	assert.False(t, tm.TagExists("project/alpha"))

	info, err := nb.Folders.GetFileInfo("note.md")
	require.NoError(t, err)
	assert.Empty(t, info.Tags)

	_, err = nb.Store.GetTag("project")
	assert.Error(t, err)
}

func TestDeleteTagNotFound(t *testing.T) {
	nb := newTestNotebook(t)
	tm := New(nb)
	assert.ErrorIs(t, tm.DeleteTag("nope"), ErrNotFound)
}

func TestMoveTagRejectsCycleIntoOwnDescendant(t *testing.T) {
	nb := newTestNotebook(t)
	tm := New(nb)
	require.NoError(t, tm.CreateTagPath("project/alpha"))

	assert.ErrorIs(t, tm.MoveTag("project", "project/alpha"), ErrCycle)
}

func TestMoveTagRejectsSelfParent(t *testing.T) {
	nb := newTestNotebook(t)
	tm := New(nb)
	require.NoError(t, tm.CreateTag("project"))

	assert.ErrorIs(t, tm.MoveTag("project", "project"), ErrCycle)
}

func TestMoveTagReparentsAndUpdatesFiles(t *testing.T) {
	nb := newTestNotebook(t)
	tm := New(nb)
	nb.SetTagValidator(tm)

	require.NoError(t, tm.CreateTag("project"))
	require.NoError(t, tm.CreateTag("archive"))

	_, err := nb.Folders.CreateFile(".", "note.md")
	require.NoError(t, err)
	require.NoError(t, nb.Folders.AddTagToFile("note.md", "project"))

	require.NoError(t, tm.MoveTag("project", "archive"))

	assert.False(t, tm.TagExists("project"))
	assert.True(t, tm.TagExists("archive/project"))

	info, err := nb.Folders.GetFileInfo("note.md")
	require.NoError(t, err)
	assert.Equal(t, []string{"archive/project"}, info.Tags)

	_, err = nb.Store.GetTag("archive/project")
	require.NoError(t, err)
}

func TestMoveTagToRootReparentsSubtree(t *testing.T) {
	nb := newTestNotebook(t)
	tm := New(nb)

	require.NoError(t, tm.CreateTagPath("project/alpha"))
	require.NoError(t, tm.MoveTag("project/alpha", ""))

	assert.False(t, tm.TagExists("project/alpha"))
	assert.True(t, tm.TagExists("alpha"))
}

func TestListTagsReturnsNameAndParent(t *testing.T) {
	nb := newTestNotebook(t)
	tm := New(nb)
	require.NoError(t, tm.CreateTagPath("project/alpha"))

	list := tm.ListTags()
	require.Len(t, list, 2)

	byName := map[string]Info{}
	for _, info := range list {
		byName[info.Name] = info
	}
	assert.Equal(t, "", byName["project"].Parent)
	assert.Equal(t, "project", byName["project/alpha"].Parent)
}

func TestSyncIsNoOpWhenWatermarkMatches(t *testing.T) {
	nb := newTestNotebook(t)
	tm := New(nb)
	require.NoError(t, tm.CreateTag("work"))

	require.NoError(t, tm.Sync())
	tags, err := nb.Store.ListAllTags()
	require.NoError(t, err)
	assert.Len(t, tags, 1)

	require.NoError(t, tm.Sync())
	tags, err = nb.Store.ListAllTags()
	require.NoError(t, err)
	assert.Len(t, tags, 1)
}

func TestSyncRemirrorsAfterExternalStoreWipe(t *testing.T) {
	nb := newTestNotebook(t)
	tm := New(nb)
	require.NoError(t, tm.CreateTagPath("project/alpha"))

	require.NoError(t, nb.Store.DeleteAllTags())
	tags, err := nb.Store.ListAllTags()
	require.NoError(t, err)
	assert.Empty(t, tags)

	require.NoError(t, tm.Sync())
	tags, err = nb.Store.ListAllTags()
	require.NoError(t, err)
	assert.Len(t, tags, 2)
}
