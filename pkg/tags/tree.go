package tags

import (
	"strings"

	"github.com/vxnote/notebookd/pkg/notebook"
)

// fqn joins a parent fully-qualified name and a child segment (spec.md
// §4.6's "/"-separated tag identity).
func fqn(parent, segment string) string {
	if parent == "" {
		return segment
	}
	return parent + "/" + segment
}

// splitSegments splits a fully-qualified tag name into its path segments.
func splitSegments(name string) []string {
	return strings.Split(name, "/")
}

func indexOfName(nodes []notebook.TagNode, name string) int {
	for i := range nodes {
		if nodes[i].Name == name {
			return i
		}
	}
	return -1
}

// findSiblings locates the slice holding the node identified by the
// fully-qualified name, along with its index. The returned slice is a
// pointer into the tree so callers can mutate or remove in place.
func findSiblings(tree *[]notebook.TagNode, name string) (siblings *[]notebook.TagNode, index int, ok bool) {
	segments := splitSegments(name)
	siblings = tree
	for i, seg := range segments {
		idx := indexOfName(*siblings, seg)
		if idx < 0 {
			return nil, -1, false
		}
		if i == len(segments)-1 {
			return siblings, idx, true
		}
		siblings = &(*siblings)[idx].Children
	}
	return nil, -1, false
}

// walk visits every node in the tree depth-first, calling visit with each
// node's fully-qualified name.
func walk(tree []notebook.TagNode, parent string, visit func(name string, node notebook.TagNode)) {
	for _, n := range tree {
		name := fqn(parent, n.Name)
		visit(name, n)
		walk(n.Children, name, visit)
	}
}

// allNames returns every fully-qualified tag name in the tree.
func allNames(tree []notebook.TagNode) []string {
	var out []string
	walk(tree, "", func(name string, _ notebook.TagNode) { out = append(out, name) })
	return out
}

// descendantNames returns name itself plus every fully-qualified descendant
// name, or nil if name is absent.
func descendantNames(tree []notebook.TagNode, name string) []string {
	siblings, idx, ok := findSiblings(&tree, name)
	if !ok {
		return nil
	}
	node := (*siblings)[idx]
	out := []string{name}
	walk(node.Children, name, func(n string, _ notebook.TagNode) { out = append(out, n) })
	return out
}
