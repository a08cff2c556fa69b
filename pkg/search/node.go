package search

// NodeKind distinguishes a file result from a folder result in a node_info
// entry (spec.md §6.3).
type NodeKind int

const (
	NodeFile NodeKind = iota
	NodeFolder
)

func (k NodeKind) String() string {
	if k == NodeFolder {
		return "folder"
	}
	return "file"
}

// MatchKind records why a file-name search candidate matched: its base
// name, or only its full path. Zero value (MatchNone) is left on tag search
// results and on file-name search results when the pattern is empty, since
// there is no pattern to match against (SPEC_FULL.md's recovered name-vs-path tracking
// from search_file_info.cpp).
type MatchKind int

const (
	MatchNone MatchKind = iota
	MatchByName
	MatchByPath
)

// Node is one candidate or result entry (spec.md §6.3's node_info).
type Node struct {
	Kind        NodeKind
	Path        string
	ID          string
	CreatedUTC  int64
	ModifiedUTC int64
	Tags        []string
	MatchKind   MatchKind
}

// Result is the envelope returned by SearchFiles and SearchByTags (spec.md
// §6.3's search results envelope).
type Result struct {
	TotalResults int
	Truncated    bool
	Results      []Node
}
