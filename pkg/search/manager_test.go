package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerSearchFilesByNameAcrossTree(t *testing.T) {
	nb := newTestNotebook(t)
	_, err := nb.Folders.CreateFolder(".", "docs")
	require.NoError(t, err)
	writeFileBody(t, nb, ".", "readme.md", "hello\n")
	writeFileBody(t, nb, "docs", "readme.md", "hello too\n")

	mgr := New(nb, BaselineBackend{})
	result, err := mgr.SearchFiles(Scope{Recursive: true}, "readme.md", false, InputFiles{}, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, result.TotalResults)
	assert.False(t, result.Truncated)
	for _, n := range result.Results {
		assert.Equal(t, MatchByName, n.MatchKind)
	}
}

func TestManagerSearchFilesNonRecursiveScope(t *testing.T) {
	nb := newTestNotebook(t)
	_, err := nb.Folders.CreateFolder(".", "docs")
	require.NoError(t, err)
	writeFileBody(t, nb, ".", "a.md", "x\n")
	writeFileBody(t, nb, "docs", "b.md", "y\n")

	mgr := New(nb, BaselineBackend{})
	result, err := mgr.SearchFiles(Scope{Recursive: false}, "*.md", false, InputFiles{}, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, result.TotalResults)
	assert.Equal(t, "a.md", result.Results[0].Path)
}

func TestManagerSearchFilesTruncates(t *testing.T) {
	nb := newTestNotebook(t)
	for _, name := range []string{"a.md", "b.md", "c.md"} {
		writeFileBody(t, nb, ".", name, "x\n")
	}

	mgr := New(nb, BaselineBackend{})
	result, err := mgr.SearchFiles(Scope{}, "", false, InputFiles{}, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, result.TotalResults)
	assert.True(t, result.Truncated)
}

func TestManagerSearchByTagsOR(t *testing.T) {
	nb := newTestNotebook(t)
	writeFileBody(t, nb, ".", "a.md", "x\n")
	writeFileBody(t, nb, ".", "b.md", "y\n")
	writeFileBody(t, nb, ".", "c.md", "z\n")
	require.NoError(t, nb.Folders.AddTagToFile("a.md", "red"))
	require.NoError(t, nb.Folders.AddTagToFile("b.md", "blue"))

	mgr := New(nb, BaselineBackend{})
	result, err := mgr.SearchByTags(Scope{}, []string{"red", "blue"}, TagOperatorOR, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, result.TotalResults)
}

func TestManagerSearchByTagsAND(t *testing.T) {
	nb := newTestNotebook(t)
	writeFileBody(t, nb, ".", "a.md", "x\n")
	writeFileBody(t, nb, ".", "b.md", "y\n")
	require.NoError(t, nb.Folders.AddTagToFile("a.md", "red"))
	require.NoError(t, nb.Folders.AddTagToFile("a.md", "blue"))
	require.NoError(t, nb.Folders.AddTagToFile("b.md", "red"))

	mgr := New(nb, BaselineBackend{})
	result, err := mgr.SearchByTags(Scope{}, []string{"red", "blue"}, TagOperatorAND, 0)
	require.NoError(t, err)
	require.Len(t, result.Results, 1)
	assert.Equal(t, "a.md", result.Results[0].Path)
}

func TestManagerSearchExcludeTags(t *testing.T) {
	nb := newTestNotebook(t)
	writeFileBody(t, nb, ".", "a.md", "x\n")
	writeFileBody(t, nb, ".", "b.md", "y\n")
	require.NoError(t, nb.Folders.AddTagToFile("a.md", "archived"))

	mgr := New(nb, BaselineBackend{})
	result, err := mgr.SearchFiles(Scope{ExcludeTags: []string{"archived"}}, "", false, InputFiles{}, 0)
	require.NoError(t, err)
	require.Len(t, result.Results, 1)
	assert.Equal(t, "b.md", result.Results[0].Path)
}

func TestManagerSearchContentUsesBaseline(t *testing.T) {
	nb := newTestNotebook(t)
	writeFileBody(t, nb, ".", "readme.md", "hello world\nHELLO\n")

	mgr := New(nb, BaselineBackend{})
	result, err := mgr.SearchContent(Scope{}, "hello", CaseSensitive, nil, 0)
	require.NoError(t, err)
	require.Len(t, result.MatchedFiles, 1)
	assert.Len(t, result.MatchedFiles[0].Matches, 1)
	assert.Equal(t, 1, result.MatchedFiles[0].Matches[0].Line)
}

func TestManagerSearchContentCaseInsensitiveMatchesBoth(t *testing.T) {
	nb := newTestNotebook(t)
	writeFileBody(t, nb, ".", "readme.md", "hello world\nHELLO\n")

	mgr := New(nb, BaselineBackend{})
	result, err := mgr.SearchContent(Scope{}, "hello", 0, nil, 0)
	require.NoError(t, err)
	require.Len(t, result.MatchedFiles, 1)
	assert.Len(t, result.MatchedFiles[0].Matches, 2)
}

func TestManagerSearchContentExcludesFoldersFromCandidates(t *testing.T) {
	nb := newTestNotebook(t)
	_, err := nb.Folders.CreateFolder(".", "docs")
	require.NoError(t, err)
	writeFileBody(t, nb, ".", "readme.md", "needle\n")

	mgr := New(nb, BaselineBackend{})
	result, err := mgr.SearchContent(Scope{Recursive: true}, "needle", 0, nil, 0)
	require.NoError(t, err)
	require.Len(t, result.MatchedFiles, 1)
	assert.Equal(t, "readme.md", result.MatchedFiles[0].Path)
}
