package search

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vxnote/notebookd/pkg/notebook"
)

type fakePaths struct{ dir string }

func (p fakePaths) AppDataDir() string                     { return p.dir }
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

// writeFileBody creates a file node named fileName in folderPath (which must
// already exist) and writes body to its mirrored content file, for content
// search tests.
func writeFileBody(t *testing.T, nb *notebook.Notebook, folderPath, fileName, body string) string {
	t.Helper()
	id, err := nb.Folders.CreateFile(folderPath, fileName)
	require.NoError(t, err)

	var rel string
	if folderPath == "." || folderPath == "" {
		rel = fileName
	} else {
		rel = filepath.Join(folderPath, fileName)
	}
	require.NoError(t, os.WriteFile(filepath.Join(nb.RootFolder, rel), []byte(body), 0o644))
	return id
}
