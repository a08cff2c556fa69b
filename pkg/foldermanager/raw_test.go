package foldermanager

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vxnote/notebookd/pkg/folderconfig"
)

func newTestRaw(t *testing.T) *Raw {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.md"), []byte("hello"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "b.md"), []byte("world"), 0o644))
	return NewRaw(root)
}

func TestRawListsFilesystemEntries(t *testing.T) {
	m := newTestRaw(t)

	cfg, err := m.GetFolderConfig(".")
	require.NoError(t, err)
	assert.Len(t, cfg.Files, 1)
	assert.Equal(t, []string{"sub"}, cfg.Folders)
}

func TestRawIterateAllFiles(t *testing.T) {
	m := newTestRaw(t)

	var seen []string
	err := m.IterateAllFiles(func(relPath string, rec folderconfig.FileRecord) bool {
		seen = append(seen, relPath)
		return true
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.md", "sub/b.md"}, seen)
}

func TestRawMutationsAreUnsupported(t *testing.T) {
	m := newTestRaw(t)

	_, err := m.CreateFolder(".", "x")
	assert.ErrorIs(t, err, ErrUnsupported)

	err = m.DeleteFolder("sub")
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = m.CreateFile(".", "x.md")
	assert.ErrorIs(t, err, ErrUnsupported)

	err = m.UpdateFileTags("a.md", []string{"x"})
	assert.ErrorIs(t, err, ErrUnsupported)

	err = m.SyncMetadataStoreFromConfigs()
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestRawGetFileInfo(t *testing.T) {
	m := newTestRaw(t)

	info, err := m.GetFileInfo("sub/b.md")
	require.NoError(t, err)
	assert.Equal(t, "b.md", info.Name)

	_, err = m.GetFileInfo("missing.md")
	assert.ErrorIs(t, err, ErrNotFound)
}
