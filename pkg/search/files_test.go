package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchFilesPartitionsNameBeforePath(t *testing.T) {
	nodes := []Node{
		{Kind: NodeFile, Path: "a/needle.txt"},
		{Kind: NodeFile, Path: "needle/b.txt"},
		{Kind: NodeFile, Path: "c/other.txt"},
	}
	result := searchFiles(nodes, "needle*", 0)
	assert.Equal(t, 2, result.TotalResults)
	assert.Equal(t, MatchByName, result.Results[0].MatchKind)
	assert.Equal(t, MatchByPath, result.Results[1].MatchKind)
}

func TestSearchFilesEmptyPatternReturnsAll(t *testing.T) {
	nodes := []Node{{Kind: NodeFile, Path: "a.txt"}, {Kind: NodeFile, Path: "b.txt"}}
	result := searchFiles(nodes, "", 0)
	assert.Equal(t, 2, result.TotalResults)
	assert.False(t, result.Truncated)
}

func TestSearchFilesNoMatchReturnsEmpty(t *testing.T) {
	nodes := []Node{{Kind: NodeFile, Path: "a.txt"}}
	result := searchFiles(nodes, "zzz", 0)
	assert.Equal(t, 0, result.TotalResults)
	assert.Empty(t, result.Results)
}

func TestSearchByTagsExcludesFolders(t *testing.T) {
	nodes := []Node{
		{Kind: NodeFile, Path: "a.txt", Tags: []string{"x"}},
		{Kind: NodeFolder, Path: "folder", Tags: []string{"x"}},
	}
	result := searchByTags(nodes, []string{"x"}, TagOperatorOR, 0)
	assert.Equal(t, 1, result.TotalResults)
	assert.Equal(t, "a.txt", result.Results[0].Path)
}

func TestTruncateNodesUnboundedWhenMaxResultsZero(t *testing.T) {
	nodes := []Node{{Path: "a"}, {Path: "b"}, {Path: "c"}}
	result := truncateNodes(nodes, 0)
	assert.Equal(t, 3, result.TotalResults)
	assert.False(t, result.Truncated)
}

func TestTruncateNodesCapsAndFlags(t *testing.T) {
	nodes := []Node{{Path: "a"}, {Path: "b"}, {Path: "c"}}
	result := truncateNodes(nodes, 2)
	assert.Equal(t, 2, result.TotalResults)
	assert.True(t, result.Truncated)
	assert.Len(t, result.Results, 2)
}
