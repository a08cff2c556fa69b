package search

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, dir, name, body string) Node {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	return Node{Kind: NodeFile, Path: name, ID: name}
}

func TestBaselineBackendCaseSensitive(t *testing.T) {
	dir := t.TempDir()
	n := writeTempFile(t, dir, "a.txt", "hello world\nHELLO\n")

	var b BaselineBackend
	result, err := b.Search(dir, []Node{n}, "hello", CaseSensitive, nil, 0)
	require.NoError(t, err)
	require.Len(t, result.MatchedFiles, 1)
	require.Len(t, result.MatchedFiles[0].Matches, 1)
	assert.Equal(t, 1, result.MatchedFiles[0].Matches[0].Line)
}

func TestBaselineBackendCaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	n := writeTempFile(t, dir, "a.txt", "hello world\nHELLO\n")

	var b BaselineBackend
	result, err := b.Search(dir, []Node{n}, "hello", 0, nil, 0)
	require.NoError(t, err)
	require.Len(t, result.MatchedFiles, 1)
	assert.Len(t, result.MatchedFiles[0].Matches, 2)
}

func TestBaselineBackendWholeWord(t *testing.T) {
	dir := t.TempDir()
	n := writeTempFile(t, dir, "a.txt", "cat catalog concatenate\n")

	var b BaselineBackend
	result, err := b.Search(dir, []Node{n}, "cat", CaseSensitive|WholeWord, nil, 0)
	require.NoError(t, err)
	require.Len(t, result.MatchedFiles, 1)
	require.Len(t, result.MatchedFiles[0].Matches, 1)
	assert.Equal(t, 0, result.MatchedFiles[0].Matches[0].ColStart)
}

func TestBaselineBackendRegex(t *testing.T) {
	dir := t.TempDir()
	n := writeTempFile(t, dir, "a.txt", "value=42\nvalue=abc\n")

	var b BaselineBackend
	result, err := b.Search(dir, []Node{n}, `value=\d+`, Regex|CaseSensitive, nil, 0)
	require.NoError(t, err)
	require.Len(t, result.MatchedFiles, 1)
	require.Len(t, result.MatchedFiles[0].Matches, 1)
	assert.Equal(t, 1, result.MatchedFiles[0].Matches[0].Line)
}

func TestBaselineBackendContentExcludePatternsDropLines(t *testing.T) {
	dir := t.TempDir()
	n := writeTempFile(t, dir, "a.txt", "keep needle\nskip needle because debug\n")

	var b BaselineBackend
	result, err := b.Search(dir, []Node{n}, "needle", CaseSensitive, []string{"debug"}, 0)
	require.NoError(t, err)
	require.Len(t, result.MatchedFiles, 1)
	require.Len(t, result.MatchedFiles[0].Matches, 1)
	assert.Equal(t, 1, result.MatchedFiles[0].Matches[0].Line)
}

func TestBaselineBackendTruncates(t *testing.T) {
	dir := t.TempDir()
	n := writeTempFile(t, dir, "a.txt", "needle\nneedle\nneedle\n")

	var b BaselineBackend
	result, err := b.Search(dir, []Node{n}, "needle", CaseSensitive, nil, 2)
	require.NoError(t, err)
	require.Len(t, result.MatchedFiles, 1)
	assert.Len(t, result.MatchedFiles[0].Matches, 2)
	assert.True(t, result.Truncated)
}

func TestBaselineBackendEmptyPatternReturnsNothing(t *testing.T) {
	dir := t.TempDir()
	n := writeTempFile(t, dir, "a.txt", "anything\n")

	var b BaselineBackend
	result, err := b.Search(dir, []Node{n}, "", 0, nil, 0)
	require.NoError(t, err)
	assert.Empty(t, result.MatchedFiles)
}

func TestBaselineBackendSkipsFolderNodes(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	var b BaselineBackend
	result, err := b.Search(dir, []Node{{Kind: NodeFolder, Path: "sub"}}, "anything", 0, nil, 0)
	require.NoError(t, err)
	assert.Empty(t, result.MatchedFiles)
}
