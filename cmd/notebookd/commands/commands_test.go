package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTestConfig(t *testing.T, dataDir string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "app_data_dir: " + dataDir + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNotebookCreateOpenCloseRoundTrip(t *testing.T) {
	cfgFile = writeTestConfig(t, t.TempDir())
	defer func() { cfgFile = "" }()

	notebookPath = filepath.Join(t.TempDir(), "nb")
	notebookName = "test"
	notebookType = "bundled"
	notebookPropsJSON = ""
	defer func() {
		notebookPath, notebookName, notebookType, notebookPropsJSON = "", "", "", ""
	}()

	require.NoError(t, notebookCreateCmd.RunE(notebookCreateCmd, nil))

	// A separate buildEngine() call simulates a second CLI invocation; it
	// must see the notebook the first invocation created via the persisted
	// session record, not just in-memory state.
	e, err := buildEngine()
	require.NoError(t, err)
	infos, err := e.ListNotebooks()
	require.NoError(t, err)
	require.Len(t, infos, 1)

	notebookID = infos[0].ID
	defer func() { notebookID = "" }()
	require.NoError(t, notebookCloseCmd.RunE(notebookCloseCmd, nil))
}

func TestTagCreateListThroughCommands(t *testing.T) {
	cfgFile = writeTestConfig(t, t.TempDir())
	defer func() { cfgFile = "" }()

	notebookPath = filepath.Join(t.TempDir(), "nb")
	notebookName = "test"
	notebookType = "bundled"
	require.NoError(t, notebookCreateCmd.RunE(notebookCreateCmd, nil))

	e, err := buildEngine()
	require.NoError(t, err)
	infos, err := e.ListNotebooks()
	require.NoError(t, err)
	require.Len(t, infos, 1)

	tagNotebookID = infos[0].ID
	tagName = "work"
	defer func() { tagNotebookID, tagName = "", "" }()

	require.NoError(t, tagCreateCmd.RunE(tagCreateCmd, nil))
	require.NoError(t, tagListCmd.RunE(tagListCmd, nil))
}
