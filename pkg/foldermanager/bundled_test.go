package foldermanager

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vxnote/notebookd/pkg/folderconfig"
	"github.com/vxnote/notebookd/pkg/metastore"
)

func newTestBundled(t *testing.T) *Bundled {
	t.Helper()
	root := t.TempDir()
	dbPath := filepath.Join(t.TempDir(), "notebook.db")
	store, err := metastore.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	m := NewBundled(root, store)
	_, err = m.InitializeRoot("root")
	require.NoError(t, err)
	return m
}

func TestInitializeRootCreatesTree(t *testing.T) {
	m := newTestBundled(t)
	cfg, err := m.GetFolderConfig(".")
	require.NoError(t, err)
	assert.Equal(t, "root", cfg.Name)
	assert.Empty(t, cfg.Files)
	assert.Empty(t, cfg.Folders)
}

func TestCreateFolderAndFile(t *testing.T) {
	m := newTestBundled(t)

	folderID, err := m.CreateFolder(".", "notes")
	require.NoError(t, err)
	assert.NotEmpty(t, folderID)

	fileID, err := m.CreateFile("notes", "a.md")
	require.NoError(t, err)
	assert.NotEmpty(t, fileID)

	info, err := m.GetFileInfo("notes/a.md")
	require.NoError(t, err)
	assert.Equal(t, fileID, info.ID)
}

func TestCreateFolderDuplicateNameFails(t *testing.T) {
	m := newTestBundled(t)
	_, err := m.CreateFolder(".", "notes")
	require.NoError(t, err)
	_, err = m.CreateFolder(".", "notes")
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestCreatePathIsIdempotent(t *testing.T) {
	m := newTestBundled(t)

	id1, err := m.CreatePath("a/b/c")
	require.NoError(t, err)
	id2, err := m.CreatePath("a/b/c")
	require.NoError(t, err)
	assert.Equal(t, id1, id2)

	cfg, err := m.GetFolderConfig("a/b")
	require.NoError(t, err)
	assert.Contains(t, cfg.Folders, "c")
}

func TestDeleteFolderCascades(t *testing.T) {
	m := newTestBundled(t)
	_, err := m.CreatePath("a/b")
	require.NoError(t, err)
	_, err = m.CreateFile("a/b", "f.md")
	require.NoError(t, err)

	require.NoError(t, m.DeleteFolder("a"))

	_, err = m.GetFolderConfig("a")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = m.GetFolderConfig("a/b")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteRootIsUnsupported(t *testing.T) {
	m := newTestBundled(t)
	err := m.DeleteFolder(".")
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestRenameFolder(t *testing.T) {
	m := newTestBundled(t)
	_, err := m.CreateFolder(".", "old")
	require.NoError(t, err)
	_, err = m.CreateFile("old", "f.md")
	require.NoError(t, err)

	require.NoError(t, m.RenameFolder("old", "new"))

	_, err = m.GetFolderConfig("old")
	assert.ErrorIs(t, err, ErrNotFound)
	cfg, err := m.GetFolderConfig("new")
	require.NoError(t, err)
	assert.Equal(t, "new", cfg.Name)
	assert.Len(t, cfg.Files, 1)
}

func TestMoveFolderRejectsCycle(t *testing.T) {
	m := newTestBundled(t)
	_, err := m.CreatePath("a/b")
	require.NoError(t, err)

	err = m.MoveFolder("a", "a/b")
	assert.ErrorIs(t, err, ErrInvalidArg)

	err = m.MoveFolder("a", "a")
	assert.ErrorIs(t, err, ErrInvalidArg)
}

func TestMoveFolderRelocatesChildren(t *testing.T) {
	m := newTestBundled(t)
	_, err := m.CreatePath("a")
	require.NoError(t, err)
	_, err = m.CreatePath("b")
	require.NoError(t, err)
	_, err = m.CreateFile("a", "f.md")
	require.NoError(t, err)

	require.NoError(t, m.MoveFolder("a", "b"))

	_, err = m.GetFolderConfig("a")
	assert.ErrorIs(t, err, ErrNotFound)
	cfg, err := m.GetFolderConfig("b/a")
	require.NoError(t, err)
	assert.Len(t, cfg.Files, 1)
}

func TestCopyFolderRegeneratesIDs(t *testing.T) {
	m := newTestBundled(t)
	srcID, err := m.CreateFolder(".", "src")
	require.NoError(t, err)
	fileID, err := m.CreateFile("src", "f.md")
	require.NoError(t, err)

	newID, err := m.CopyFolder("src", ".", "dst")
	require.NoError(t, err)
	assert.NotEqual(t, srcID, newID)

	cfg, err := m.GetFolderConfig("dst")
	require.NoError(t, err)
	require.Len(t, cfg.Files, 1)
	assert.NotEqual(t, fileID, cfg.Files[0].ID)
}

func TestCopyFileAssignsNewID(t *testing.T) {
	m := newTestBundled(t)
	_, err := m.CreateFolder(".", "a")
	require.NoError(t, err)
	fileID, err := m.CreateFile("a", "f.md")
	require.NoError(t, err)
	require.NoError(t, m.UpdateFileTags("a/f.md", nil))

	newID, err := m.CopyFile("a/f.md", "a", "g.md")
	require.NoError(t, err)
	assert.NotEqual(t, fileID, newID)

	info, err := m.GetFileInfo("a/g.md")
	require.NoError(t, err)
	assert.Equal(t, newID, info.ID)
}

func TestMoveFileBetweenFolders(t *testing.T) {
	m := newTestBundled(t)
	_, err := m.CreateFolder(".", "a")
	require.NoError(t, err)
	_, err = m.CreateFolder(".", "b")
	require.NoError(t, err)
	_, err = m.CreateFile("a", "f.md")
	require.NoError(t, err)

	require.NoError(t, m.MoveFile("a/f.md", "b"))

	_, err = m.GetFileInfo("a/f.md")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = m.GetFileInfo("b/f.md")
	require.NoError(t, err)
}

func TestRenameFileCollision(t *testing.T) {
	m := newTestBundled(t)
	_, err := m.CreateFile(".", "a.md")
	require.NoError(t, err)
	_, err = m.CreateFile(".", "b.md")
	require.NoError(t, err)

	err = m.RenameFile("a.md", "b.md")
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestUpdateFileMetadataRejectsNonObject(t *testing.T) {
	m := newTestBundled(t)
	_, err := m.CreateFile(".", "a.md")
	require.NoError(t, err)

	err = m.UpdateFileMetadata("a.md", "not json")
	assert.ErrorIs(t, err, ErrInvalidArg)

	require.NoError(t, m.UpdateFileMetadata("a.md", `{"k":"v"}`))
	val, err := m.GetFileMetadata("a.md")
	require.NoError(t, err)
	assert.Equal(t, `{"k":"v"}`, val)
}

type fakeTagValidator struct{ known map[string]bool }

func (f fakeTagValidator) TagExists(name string) bool { return f.known[name] }

func TestUpdateFileTagsEnforcesClosure(t *testing.T) {
	m := newTestBundled(t)
	m.SetTagValidator(fakeTagValidator{known: map[string]bool{"work": true}})
	_, err := m.CreateFile(".", "a.md")
	require.NoError(t, err)

	err = m.UpdateFileTags("a.md", []string{"missing"})
	assert.ErrorIs(t, err, ErrInvalidArg)

	require.NoError(t, m.UpdateFileTags("a.md", []string{"work"}))
	info, err := m.GetFileInfo("a.md")
	require.NoError(t, err)
	assert.Equal(t, []string{"work"}, info.Tags)
}

func TestAddRemoveTagFromFile(t *testing.T) {
	m := newTestBundled(t)
	_, err := m.CreateFile(".", "a.md")
	require.NoError(t, err)

	require.NoError(t, m.AddTagToFile("a.md", "work"))
	require.NoError(t, m.AddTagToFile("a.md", "work")) // idempotent

	info, err := m.GetFileInfo("a.md")
	require.NoError(t, err)
	assert.Equal(t, []string{"work"}, info.Tags)

	require.NoError(t, m.RemoveTagFromFile("a.md", "work"))
	require.NoError(t, m.RemoveTagFromFile("a.md", "work")) // no-op

	info, err = m.GetFileInfo("a.md")
	require.NoError(t, err)
	assert.Empty(t, info.Tags)
}

func TestListFolderChildren(t *testing.T) {
	m := newTestBundled(t)
	_, err := m.CreateFolder(".", "sub")
	require.NoError(t, err)
	_, err = m.CreateFile(".", "a.md")
	require.NoError(t, err)

	listing, err := m.ListFolderChildren(".", true)
	require.NoError(t, err)
	assert.Len(t, listing.Files, 1)
	require.Len(t, listing.Folders, 1)
	assert.NotNil(t, listing.Folders[0].Folder)
}

func TestIterateAllFilesDepthFirst(t *testing.T) {
	m := newTestBundled(t)
	_, err := m.CreateFile(".", "a.md")
	require.NoError(t, err)
	_, err = m.CreateFolder(".", "sub")
	require.NoError(t, err)
	_, err = m.CreateFile("sub", "b.md")
	require.NoError(t, err)

	var seen []string
	err = m.IterateAllFiles(func(relPath string, rec folderconfig.FileRecord) bool {
		seen = append(seen, relPath)
		return true
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.md", "sub/b.md"}, seen)
}

func TestSyncMetadataStoreFromConfigsRebuildsStore(t *testing.T) {
	m := newTestBundled(t)
	_, err := m.CreateFolder(".", "a")
	require.NoError(t, err)
	fileID, err := m.CreateFile("a", "f.md")
	require.NoError(t, err)
	require.NoError(t, m.AddTagToFile("a/f.md", "work"))

	require.NoError(t, m.SyncMetadataStoreFromConfigs())

	rec, err := m.store.GetFile(fileID)
	require.NoError(t, err)
	assert.Equal(t, "f.md", rec.Name)

	tags, err := m.store.GetFileTags(fileID)
	require.NoError(t, err)
	assert.Equal(t, []string{"work"}, tags)
}
