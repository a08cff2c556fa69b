// Package search implements the search subsystem (spec.md's component C7):
// file-name, tag, and content search over an open notebook's tree, all
// built on the shared collect/filter pipeline in collect.go. Grounded on
// original_source/src/search/search_manager.cpp.
package search

import (
	"fmt"

	"github.com/vxnote/notebookd/pkg/notebook"
)

// Manager is the search subsystem for a single open notebook.
type Manager struct {
	nb      *notebook.Notebook
	backend ContentBackend
}

// New constructs a search manager bound to an open notebook. If backend is
// nil, a RipgrepBackend is used, which itself falls back to BaselineBackend
// when "rg" isn't on PATH (spec.md §4.7's backend-selection policy).
func New(nb *notebook.Notebook, backend ContentBackend) *Manager {
	if backend == nil {
		backend = &RipgrepBackend{}
	}
	return &Manager{nb: nb, backend: backend}
}

// SearchFiles resolves scope to candidates, applies tag/date filters, then
// matches pattern against each candidate's base name first and full path
// second (spec.md §4.7). An empty pattern returns every filtered candidate.
func (m *Manager) SearchFiles(scope Scope, pattern string, includeFolders bool, input InputFiles, maxResults int) (Result, error) {
	nodes, err := m.collect(scope, input, includeFolders)
	if err != nil {
		return Result{}, err
	}
	return searchFiles(nodes, pattern, maxResults), nil
}

// SearchByTags resolves scope to candidates (folders excluded), applies
// scope's own tag/date filters, then re-resolves the query's tags/operator
// against the survivors.
func (m *Manager) SearchByTags(scope Scope, tags []string, operator TagOperator, maxResults int) (Result, error) {
	nodes, err := m.collect(scope, InputFiles{}, false)
	if err != nil {
		return Result{}, err
	}
	return searchByTags(nodes, tags, operator, maxResults), nil
}

// SearchContent resolves scope to file candidates, then delegates line
// matching to the manager's content backend (spec.md §4.7's content search,
// §4.7.1's pluggable-backend requirement).
func (m *Manager) SearchContent(scope Scope, pattern string, options Options, excludePatterns []string, maxResults int) (ContentResult, error) {
	nodes, err := m.collect(scope, InputFiles{}, false)
	if err != nil {
		return ContentResult{}, err
	}
	return m.backend.Search(m.nb.RootFolder, nodes, pattern, options, excludePatterns, maxResults)
}

func (m *Manager) collect(scope Scope, input InputFiles, includeFolders bool) ([]Node, error) {
	if m.nb == nil || m.nb.Folders == nil {
		return nil, fmt.Errorf("search: notebook not open")
	}
	nodes := collectCandidates(m.nb.Folders, scope, input, includeFolders)
	return filterByTagsAndDate(nodes, scope), nil
}
