package search

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"os/exec"
	"strings"
	"sync"
	"time"

	applog "github.com/vxnote/notebookd/internal/logger"
)

// RipgrepBackend shells out to ripgrep when available, falling back to the
// baseline otherwise. Grounded on
// original_source/src/search/rg_search_backend.cpp; availability is probed
// once per process (SPEC_FULL.md's recovered rg_search_backend.cpp
// availability-probe feature).
type RipgrepBackend struct {
	once      sync.Once
	available bool
	fallback  BaselineBackend
}

// Available reports whether the "rg" binary is on PATH, probing at most
// once per process lifetime.
func (b *RipgrepBackend) Available() bool {
	b.once.Do(func() {
		_, err := exec.LookPath("rg")
		b.available = err == nil
	})
	return b.available
}

func (b *RipgrepBackend) Search(root string, files []Node, pattern string, options Options, excludePatterns []string, maxResults int) (ContentResult, error) {
	if pattern == "" {
		return ContentResult{}, nil
	}
	if !b.Available() {
		applog.Warn("rg not on PATH, falling back to baseline content backend")
		return b.fallback.Search(root, files, pattern, options, excludePatterns, maxResults)
	}

	byPath := make(map[string]Node, len(files))
	args := []string{"--json", "--no-heading", "--with-filename", "--line-number", "--column"}
	if !options.Has(CaseSensitive) {
		args = append(args, "--ignore-case")
	}
	if options.Has(WholeWord) {
		args = append(args, "--word-regexp")
	}
	if !options.Has(Regex) {
		args = append(args, "--fixed-strings")
	}
	for _, exclude := range excludePatterns {
		args = append(args, "--glob", "!"+exclude)
	}
	for _, n := range files {
		if n.Kind == NodeFile {
			byPath[n.Path] = n
			args = append(args, "--glob", n.Path)
		}
	}
	args = append(args, "--", pattern, root)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, "rg", args...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	runErr := cmd.Run()
	if runErr != nil {
		if exitErr, ok := runErr.(*exec.ExitError); ok {
			// rg exits 1 for "no matches", which is not a failure.
			if exitErr.ExitCode() != 1 {
				return ContentResult{}, runErr
			}
		} else {
			return ContentResult{}, runErr
		}
	}

	return parseRipgrepJSON(stdout.Bytes(), root, byPath, maxResults), nil
}

type rgMessage struct {
	Type string `json:"type"`
	Data struct {
		Path struct {
			Text string `json:"text"`
		} `json:"path"`
		LineNumber int `json:"line_number"`
		Lines      struct {
			Text string `json:"text"`
		} `json:"lines"`
		Submatches []struct {
			Start int `json:"start"`
			End   int `json:"end"`
			Match struct {
				Text string `json:"text"`
			} `json:"match"`
		} `json:"submatches"`
	} `json:"data"`
}

func parseRipgrepJSON(output []byte, root string, byPath map[string]Node, maxResults int) ContentResult {
	var result ContentResult
	byFile := map[string]*ContentFileMatch{}
	var order []string

	total := 0
	scanner := bufio.NewScanner(bytes.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		if maxResults > 0 && total >= maxResults {
			result.Truncated = true
			break
		}
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		var msg rgMessage
		if err := json.Unmarshal(line, &msg); err != nil {
			continue
		}
		if msg.Type != "match" {
			continue
		}

		filePath := msg.Data.Path.Text
		node, ok := byPath[relativizeRipgrepPath(filePath, root, byPath)]
		if !ok {
			continue
		}

		match := ContentMatch{Line: msg.Data.LineNumber}
		if len(msg.Data.Submatches) > 0 {
			sm := msg.Data.Submatches[0]
			match.ColStart = sm.Start
			match.ColEnd = sm.End
			match.MatchText = sm.Match.Text
		}
		match.LineText = strings.TrimSuffix(msg.Data.Lines.Text, "\n")

		fm, ok := byFile[node.Path]
		if !ok {
			fm = &ContentFileMatch{Path: node.Path, ID: node.ID}
			byFile[node.Path] = fm
			order = append(order, node.Path)
		}
		fm.Matches = append(fm.Matches, match)
		total++
	}

	for _, path := range order {
		result.MatchedFiles = append(result.MatchedFiles, *byFile[path])
	}
	return result
}

// relativizeRipgrepPath finds which candidate's relative path, joined onto
// root, equals rg's reported path. rg reports whatever path form it was
// invoked with; since callers invoke it with an absolute root, rg's output
// path is root-joined too. Comparing the full root-joined path (rather than
// a bare suffix match) avoids misattributing a match to the wrong file when
// two candidates' relative paths share a suffix across a name boundary
// (e.g. "notes.md" and "my-notes.md", or "notes.md" and "sub/notes.md").
func relativizeRipgrepPath(rgPath, root string, byPath map[string]Node) string {
	rgPath = filepathToSlash(rgPath)
	rootSlash := strings.TrimRight(filepathToSlash(root), "/")
	for rel := range byPath {
		if rgPath == rootSlash+"/"+rel {
			return rel
		}
	}
	return rgPath
}

func filepathToSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}
