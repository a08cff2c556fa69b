package engine

import "github.com/vxnote/notebookd/pkg/search"

// SearchScope, SearchInputFiles, SearchResult, TagOperator, DateFilter,
// ContentOptions, and ContentResult re-export the search package's types at
// the engine boundary so callers only need to import this package.
type (
	SearchScope      = search.Scope
	SearchInputFiles = search.InputFiles
	SearchResult     = search.Result
	TagOperator      = search.TagOperator
	DateFilter       = search.DateFilter
	ContentOptions   = search.Options
	ContentResult    = search.ContentResult
)

const (
	TagOperatorOR  = search.TagOperatorOR
	TagOperatorAND = search.TagOperatorAND
)

const (
	ContentCaseSensitive = search.CaseSensitive
	ContentWholeWord     = search.WholeWord
	ContentRegex         = search.Regex
)

// SearchFiles implements spec.md's search_files.
func (e *Engine) SearchFiles(notebookID string, scope SearchScope, pattern string, includeFolders bool, input SearchInputFiles, maxResults int) (SearchResult, error) {
	sm, err := e.searchManager(notebookID)
	if err != nil {
		return SearchResult{}, err
	}
	result, sErr := sm.SearchFiles(scope, pattern, includeFolders, input, maxResults)
	return result, wrap(sErr)
}

// SearchByTags implements spec.md's search_by_tags.
func (e *Engine) SearchByTags(notebookID string, scope SearchScope, tagNames []string, operator TagOperator, maxResults int) (SearchResult, error) {
	sm, err := e.searchManager(notebookID)
	if err != nil {
		return SearchResult{}, err
	}
	result, sErr := sm.SearchByTags(scope, tagNames, operator, maxResults)
	return result, wrap(sErr)
}

// SearchContent implements spec.md's search_content.
func (e *Engine) SearchContent(notebookID string, scope SearchScope, pattern string, options ContentOptions, excludePatterns []string, maxResults int) (ContentResult, error) {
	sm, err := e.searchManager(notebookID)
	if err != nil {
		return ContentResult{}, err
	}
	result, sErr := sm.SearchContent(scope, pattern, options, excludePatterns, maxResults)
	return result, wrap(sErr)
}
