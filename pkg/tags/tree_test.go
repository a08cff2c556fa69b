package tags

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vxnote/notebookd/pkg/notebook"
)

func sampleTree() []notebook.TagNode {
	return []notebook.TagNode{
		{Name: "project", Children: []notebook.TagNode{
			{Name: "alpha", Children: []notebook.TagNode{
				{Name: "docs"},
			}},
			{Name: "beta"},
		}},
		{Name: "archive"},
	}
}

func TestFqn(t *testing.T) {
	assert.Equal(t, "a", fqn("", "a"))
	assert.Equal(t, "a/b", fqn("a", "b"))
}

func TestIndexOfName(t *testing.T) {
	tree := sampleTree()
	assert.Equal(t, 0, indexOfName(tree, "project"))
	assert.Equal(t, 1, indexOfName(tree, "archive"))
	assert.Equal(t, -1, indexOfName(tree, "nope"))
}

func TestFindSiblingsNested(t *testing.T) {
	tree := sampleTree()
	siblings, idx, ok := findSiblings(&tree, "project/alpha/docs")
	assert.True(t, ok)
	assert.Equal(t, "docs", (*siblings)[idx].Name)
}

func TestFindSiblingsMissing(t *testing.T) {
	tree := sampleTree()
	_, _, ok := findSiblings(&tree, "project/gamma")
	assert.False(t, ok)
}

func TestAllNames(t *testing.T) {
	names := allNames(sampleTree())
	assert.ElementsMatch(t, []string{
		"project", "project/alpha", "project/alpha/docs", "project/beta", "archive",
	}, names)
}

func TestDescendantNames(t *testing.T) {
	names := descendantNames(sampleTree(), "project/alpha")
	assert.ElementsMatch(t, []string{"project/alpha", "project/alpha/docs"}, names)
}

func TestDescendantNamesMissing(t *testing.T) {
	assert.Nil(t, descendantNames(sampleTree(), "nope"))
}
