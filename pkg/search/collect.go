package search

import (
	"github.com/vxnote/notebookd/pkg/foldermanager"
	"github.com/vxnote/notebookd/pkg/pathid"
)

// collectCandidates gathers every node in scope, honoring the explicit
// input-files envelope when given (spec.md §6.3), otherwise walking from
// scope.FolderPath (§4.7's "Gather candidate files (and folders if
// requested) by walking the scope ... OR by using an explicit input-files
// list").
func collectCandidates(folders foldermanager.Manager, scope Scope, input InputFiles, includeFolders bool) []Node {
	var out []Node

	if !input.empty() {
		for _, filePath := range input.Files {
			rec, err := folders.GetFileInfo(filePath)
			if err != nil {
				continue
			}
			out = append(out, nodeFromFile(filePath, rec))
		}
		for _, folderPath := range input.Folders {
			collectFromFolder(folders, folderPath, scope, includeFolders, &out)
		}
		return out
	}

	start := scope.FolderPath
	if start == "" {
		start = "."
	}
	collectFromFolder(folders, start, scope, includeFolders, &out)
	return out
}

func collectFromFolder(folders foldermanager.Manager, folderPath string, scope Scope, includeFolders bool, out *[]Node) {
	if matchesAny(folderPath, scope.ExcludePatterns) {
		return
	}

	listing, err := folders.ListFolderChildren(folderPath, includeFolders)
	if err != nil {
		return
	}

	for _, f := range listing.Files {
		filePath := pathid.Join(folderPath, f.Name)
		if matchesAny(filePath, scope.ExcludePatterns) {
			continue
		}
		if len(scope.FilePatterns) > 0 && !matchesAny(filePath, scope.FilePatterns) {
			continue
		}
		*out = append(*out, nodeFromFile(filePath, *f.File))
	}

	for _, fd := range listing.Folders {
		subPath := pathid.Join(folderPath, fd.Name)
		if matchesAny(subPath, scope.ExcludePatterns) {
			continue
		}
		if includeFolders {
			*out = append(*out, nodeFromFolder(subPath, fd))
		}
		if scope.Recursive {
			collectFromFolder(folders, subPath, scope, includeFolders, out)
		}
	}
}

// filterByTagsAndDate drops candidates whose tags or timestamp fall outside
// scope (spec.md §4.7's tag/exclude_tags/date_filter pass, applied after
// candidate gathering). Folders are never tag- or date-filtered: the spec's
// scope tag filters describe file tags only.
func filterByTagsAndDate(nodes []Node, scope Scope) []Node {
	out := nodes[:0]
	for _, n := range nodes {
		if n.Kind == NodeFile {
			if len(scope.Tags) > 0 && !matchesTags(n.Tags, scope.Tags, scope.TagOperator) {
				continue
			}
			if len(scope.ExcludeTags) > 0 && matchesTags(n.Tags, scope.ExcludeTags, TagOperatorOR) {
				continue
			}
			if scope.DateFilter.Field != DateFieldNone {
				ts := n.CreatedUTC
				if scope.DateFilter.Field == DateFieldModified {
					ts = n.ModifiedUTC
				}
				if !scope.DateFilter.matches(ts) {
					continue
				}
			}
		}
		out = append(out, n)
	}
	return out
}

func matchesAny(text string, patterns []string) bool {
	for _, p := range patterns {
		if pathid.MatchGlob(p, text) {
			return true
		}
	}
	return false
}
