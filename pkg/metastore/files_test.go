package metastore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateGetFile(t *testing.T) {
	s := openTestStore(t)
	mustCreateRoot(t, s)
	require.NoError(t, s.CreateFile(FileRecord{
		ID: "f1", FolderID: "root", Name: "a.md", CreatedUTC: 1, ModifiedUTC: 1,
	}))

	got, err := s.GetFile("f1")
	require.NoError(t, err)
	assert.Equal(t, "a.md", got.Name)
	assert.Equal(t, "root", got.FolderID)
}

func TestGetFileByPath(t *testing.T) {
	s := openTestStore(t)
	mustCreateRoot(t, s)
	require.NoError(t, s.CreateFolder(FolderRecord{ID: "docs", ParentID: "root", Name: "docs"}))
	require.NoError(t, s.CreateFile(FileRecord{ID: "f1", FolderID: "docs", Name: "a.md"}))

	got, err := s.GetFileByPath("docs", "a.md")
	require.NoError(t, err)
	assert.Equal(t, "f1", got.ID)

	_, err = s.GetFileByPath("docs", "missing.md")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateFileNotFound(t *testing.T) {
	s := openTestStore(t)
	err := s.UpdateFile("nope", "x.md", 2, "{}")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListFilesSortedByName(t *testing.T) {
	s := openTestStore(t)
	mustCreateRoot(t, s)
	require.NoError(t, s.CreateFile(FileRecord{ID: "f2", FolderID: "root", Name: "b.md"}))
	require.NoError(t, s.CreateFile(FileRecord{ID: "f1", FolderID: "root", Name: "a.md"}))

	files, err := s.ListFiles("root")
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "a.md", files[0].Name)
	assert.Equal(t, "b.md", files[1].Name)
}

func TestMoveFile(t *testing.T) {
	s := openTestStore(t)
	mustCreateRoot(t, s)
	require.NoError(t, s.CreateFolder(FolderRecord{ID: "docs", ParentID: "root", Name: "docs"}))
	require.NoError(t, s.CreateFile(FileRecord{ID: "f1", FolderID: "root", Name: "a.md"}))

	require.NoError(t, s.MoveFile("f1", "docs"))

	got, err := s.GetFile("f1")
	require.NoError(t, err)
	assert.Equal(t, "docs", got.FolderID)
}

func TestDeleteFileClearsTags(t *testing.T) {
	s := openTestStore(t)
	mustCreateRoot(t, s)
	require.NoError(t, s.CreateFile(FileRecord{ID: "f1", FolderID: "root", Name: "a.md"}))
	require.NoError(t, s.CreateOrUpdateTag(TagRecord{Name: "work"}))
	require.NoError(t, s.AddTag("f1", "work"))

	require.NoError(t, s.DeleteFile("f1"))

	counts, err := s.CountFilesByTag()
	require.NoError(t, err)
	assert.Empty(t, counts)
}
