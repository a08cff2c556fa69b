package search

import "github.com/vxnote/notebookd/pkg/pathid"

// searchFiles implements spec.md §4.7's file-name search: gather candidates,
// filter by scope tags/exclude_tags/date, then partition into name-matches
// and path-matches against pattern, name-matches first.
func searchFiles(nodes []Node, pattern string, maxResults int) Result {
	if pattern == "" {
		return truncateNodes(nodes, maxResults)
	}

	var nameMatches, pathMatches []Node
	for _, n := range nodes {
		_, base := pathid.Split(n.Path)
		switch {
		case pathid.MatchGlob(pattern, base):
			n.MatchKind = MatchByName
			nameMatches = append(nameMatches, n)
		case pathid.MatchGlob(pattern, n.Path):
			n.MatchKind = MatchByPath
			pathMatches = append(pathMatches, n)
		}
	}

	combined := append(nameMatches, pathMatches...)
	return truncateNodes(combined, maxResults)
}

// searchByTags implements spec.md §4.7's tag search: candidates already
// satisfy scope.Tags (applied during filterByTagsAndDate); this resolves
// the query's own tags/operator over the survivors, excluding folders.
func searchByTags(nodes []Node, tags []string, operator TagOperator, maxResults int) Result {
	var matched []Node
	for _, n := range nodes {
		if n.Kind == NodeFolder {
			continue
		}
		if matchesTags(n.Tags, tags, operator) {
			matched = append(matched, n)
		}
	}
	return truncateNodes(matched, maxResults)
}

// truncateNodes caps results at maxResults (<= 0 means unbounded) and
// reports whether truncation occurred (spec.md §8.3's truncation boundary:
// truncated iff more candidates existed than were returned).
func truncateNodes(nodes []Node, maxResults int) Result {
	if maxResults <= 0 || len(nodes) <= maxResults {
		return Result{TotalResults: len(nodes), Truncated: false, Results: nodes}
	}
	return Result{TotalResults: maxResults, Truncated: true, Results: nodes[:maxResults]}
}
