package search

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

// BaselineBackend is the required in-process ContentBackend (spec.md
// §4.7): it reads each candidate file's bytes, iterates lines, and applies
// pattern under the option set. Grounded on
// original_source/src/search/simple_search_backend.cpp.
type BaselineBackend struct{}

func (BaselineBackend) Search(root string, files []Node, pattern string, options Options, excludePatterns []string, maxResults int) (ContentResult, error) {
	var result ContentResult
	if pattern == "" {
		return result, nil
	}

	matcher, err := newLineMatcher(pattern, options)
	if err != nil {
		return result, err
	}
	excluder, err := newExcludeMatcher(excludePatterns, options)
	if err != nil {
		return result, err
	}

	total := 0
	for _, n := range files {
		if maxResults > 0 && total >= maxResults {
			result.Truncated = true
			break
		}
		if n.Kind != NodeFile {
			continue
		}

		matches, full := scanFile(filepath.Join(root, n.Path), matcher, excluder, options.Has(CaseSensitive), maxResults-total)
		total += len(matches)
		if full {
			result.Truncated = true
		}
		if len(matches) > 0 {
			result.MatchedFiles = append(result.MatchedFiles, ContentFileMatch{Path: n.Path, ID: n.ID, Matches: matches})
		}
	}
	return result, nil
}

// lineMatcher finds every match span in a line.
type lineMatcher struct {
	re        *regexp.Regexp
	literal   string
	wholeWord bool
	caseFold  bool
}

func newLineMatcher(pattern string, options Options) (*lineMatcher, error) {
	if pattern == "" {
		return nil, nil
	}
	if options.Has(Regex) {
		expr := pattern
		if !options.Has(CaseSensitive) {
			expr = "(?i)" + expr
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, err
		}
		return &lineMatcher{re: re}, nil
	}

	literal := pattern
	caseFold := !options.Has(CaseSensitive)
	if caseFold {
		literal = strings.ToLower(pattern)
	}
	return &lineMatcher{literal: literal, wholeWord: options.Has(WholeWord), caseFold: caseFold}, nil
}

// excludeMatcher drops whole lines matching any content-exclude pattern,
// under the same case/regex option set as the main search (spec.md §4.7's
// content_exclude_patterns, grounded on
// original_source/src/utils/string_utils.cpp's PreprocessExcludePatterns).
type excludeMatcher struct {
	re       *regexp.Regexp
	literals []string
}

func newExcludeMatcher(patterns []string, options Options) (*excludeMatcher, error) {
	if len(patterns) == 0 {
		return nil, nil
	}
	if options.Has(Regex) {
		expr := strings.Join(patterns, "|")
		if !options.Has(CaseSensitive) {
			expr = "(?i)" + expr
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, err
		}
		return &excludeMatcher{re: re}, nil
	}

	literals := make([]string, len(patterns))
	for i, p := range patterns {
		if options.Has(CaseSensitive) {
			literals[i] = p
		} else {
			literals[i] = strings.ToLower(p)
		}
	}
	return &excludeMatcher{literals: literals}, nil
}

func (e *excludeMatcher) excludes(line string, caseSensitive bool) bool {
	if e == nil {
		return false
	}
	if e.re != nil {
		return e.re.MatchString(line)
	}
	haystack := line
	if !caseSensitive {
		haystack = strings.ToLower(line)
	}
	for _, needle := range e.literals {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}

type span struct{ start, end int }

// findAll returns every match span in line, in original-line byte offsets.
// For the literal (non-regex) path, matching happens against a possibly
// lowercased copy of line (when the matcher is case-insensitive) but
// offsets are reported against the original, mirroring
// simple_search_backend.cpp's byte-position assumption.
func (m *lineMatcher) findAll(line string) []span {
	if m == nil || (m.re == nil && m.literal == "") {
		return nil
	}
	if m.re != nil {
		locs := m.re.FindAllStringIndex(line, -1)
		out := make([]span, len(locs))
		for i, l := range locs {
			out[i] = span{l[0], l[1]}
		}
		return out
	}

	haystack := line
	if m.caseFold {
		haystack = strings.ToLower(line)
	}

	var out []span
	pos := 0
	for pos <= len(haystack) {
		idx := strings.Index(haystack[pos:], m.literal)
		if idx < 0 {
			break
		}
		start := pos + idx
		end := start + len(m.literal)

		if m.wholeWord && (!isWordBoundary(line, start) || !isWordBoundary(line, end)) {
			pos = start + 1
			continue
		}

		out = append(out, span{start, end})
		pos = end
	}
	return out
}

func isWordBoundary(s string, idx int) bool {
	if idx <= 0 || idx >= len(s) {
		return true
	}
	before := rune(s[idx-1])
	after := rune(s[idx])
	return !isWordRune(before) || !isWordRune(after)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// scanFile reads path line by line, applying matcher (and skipping lines
// excluder matches), capped at budget total matches. Returns the matches
// found and whether budget was exhausted (spec.md's per-backend truncation
// requirement).
func scanFile(path string, matcher *lineMatcher, excluder *excludeMatcher, caseSensitive bool, budget int) ([]ContentMatch, bool) {
	f, err := os.Open(path)
	if err != nil {
		return nil, false
	}
	defer f.Close()

	var out []ContentMatch
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if excluder.excludes(line, caseSensitive) {
			continue
		}
		for _, sp := range matcher.findAll(line) {
			out = append(out, ContentMatch{
				Line:      lineNo,
				ColStart:  sp.start,
				ColEnd:    sp.end,
				LineText:  line,
				MatchText: line[sp.start:sp.end],
			})
			if budget > 0 && len(out) >= budget {
				return out, true
			}
		}
	}
	return out, false
}
