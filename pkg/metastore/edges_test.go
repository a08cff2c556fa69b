package metastore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetFileTagsReplaces(t *testing.T) {
	s := openTestStore(t)
	mustCreateRoot(t, s)
	require.NoError(t, s.CreateFile(FileRecord{ID: "f1", FolderID: "root", Name: "a.md"}))
	require.NoError(t, s.CreateOrUpdateTag(TagRecord{Name: "work"}))
	require.NoError(t, s.CreateOrUpdateTag(TagRecord{Name: "urgent"}))

	require.NoError(t, s.SetFileTags("f1", []string{"work", "urgent"}))
	tags, err := s.GetFileTags("f1")
	require.NoError(t, err)
	assert.Equal(t, []string{"urgent", "work"}, tags)

	require.NoError(t, s.SetFileTags("f1", []string{"work"}))
	tags, err = s.GetFileTags("f1")
	require.NoError(t, err)
	assert.Equal(t, []string{"work"}, tags)
}

func TestAddTagIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	mustCreateRoot(t, s)
	require.NoError(t, s.CreateFile(FileRecord{ID: "f1", FolderID: "root", Name: "a.md"}))
	require.NoError(t, s.CreateOrUpdateTag(TagRecord{Name: "work"}))

	require.NoError(t, s.AddTag("f1", "work"))
	require.NoError(t, s.AddTag("f1", "work"))

	tags, err := s.GetFileTags("f1")
	require.NoError(t, err)
	assert.Equal(t, []string{"work"}, tags)
}

func TestRemoveTagNoopWhenAbsent(t *testing.T) {
	s := openTestStore(t)
	mustCreateRoot(t, s)
	require.NoError(t, s.CreateFile(FileRecord{ID: "f1", FolderID: "root", Name: "a.md"}))
	require.NoError(t, s.CreateOrUpdateTag(TagRecord{Name: "work"}))

	require.NoError(t, s.RemoveTag("f1", "work"))

	tags, err := s.GetFileTags("f1")
	require.NoError(t, err)
	assert.Empty(t, tags)
}
