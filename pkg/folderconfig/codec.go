// Package folderconfig implements the on-disk folder-config codec (spec.md
// §4.2): the JSON-shaped record every folder in a bundled notebook carries at
// vx_notebook/contents/<path>/vx.json. Unknown top-level fields are preserved
// on read and rewritten on save so a newer engine's fields survive being
// re-saved by an older one (see SPEC_FULL.md's recovered-feature list).
package folderconfig

import (
	"encoding/json"
	"fmt"
)

// FileRecord is one entry in a FolderConfig's Files slice (spec.md §3 FR).
type FileRecord struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	CreatedUTC   int64           `json:"createdUtc"`
	ModifiedUTC  int64           `json:"modifiedUtc"`
	Metadata     json.RawMessage `json:"metadata,omitempty"`
	Tags         []string        `json:"tags"`
	extraFields  map[string]json.RawMessage
}

// FolderConfig is the per-folder on-disk record (spec.md §3 F).
type FolderConfig struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	CreatedUTC  int64           `json:"createdUtc"`
	ModifiedUTC int64           `json:"modifiedUtc"`
	Metadata    json.RawMessage `json:"metadata,omitempty"`
	Files       []FileRecord    `json:"files"`
	Folders     []string        `json:"folders"`

	extraFields map[string]json.RawMessage
}

var knownFolderFields = map[string]struct{}{
	"id": {}, "name": {}, "createdUtc": {}, "modifiedUtc": {},
	"metadata": {}, "files": {}, "folders": {},
}

var knownFileFields = map[string]struct{}{
	"id": {}, "name": {}, "createdUtc": {}, "modifiedUtc": {},
	"metadata": {}, "tags": {},
}

// Parse decodes the on-disk JSON form of a folder config, preserving any
// unrecognized top-level fields so Emit can round-trip them.
func Parse(data []byte) (*FolderConfig, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("folderconfig: parse: %w", err)
	}

	cfg := &FolderConfig{extraFields: map[string]json.RawMessage{}}

	type alias FolderConfig
	a := (*alias)(cfg)
	if err := json.Unmarshal(data, a); err != nil {
		return nil, fmt.Errorf("folderconfig: parse: %w", err)
	}

	for k, v := range raw {
		if _, known := knownFolderFields[k]; !known {
			cfg.extraFields[k] = v
		}
	}

	if cfg.Files == nil {
		cfg.Files = []FileRecord{}
	}
	if cfg.Folders == nil {
		cfg.Folders = []string{}
	}

	// Re-run unknown-field capture for each file record.
	var rawFiles []map[string]json.RawMessage
	var rawTop struct {
		Files []map[string]json.RawMessage `json:"files"`
	}
	if err := json.Unmarshal(data, &rawTop); err == nil {
		rawFiles = rawTop.Files
	}
	for i := range cfg.Files {
		if i >= len(rawFiles) {
			break
		}
		extra := map[string]json.RawMessage{}
		for k, v := range rawFiles[i] {
			if _, known := knownFileFields[k]; !known {
				extra[k] = v
			}
		}
		cfg.Files[i].extraFields = extra
		if cfg.Files[i].Tags == nil {
			cfg.Files[i].Tags = []string{}
		}
	}

	return cfg, nil
}

// Emit serializes the folder config back to its on-disk JSON form,
// re-emitting any unknown fields captured by Parse.
func Emit(cfg *FolderConfig) ([]byte, error) {
	merged := map[string]json.RawMessage{}
	for k, v := range cfg.extraFields {
		merged[k] = v
	}

	type alias FolderConfig
	known, err := json.Marshal((*alias)(cfg))
	if err != nil {
		return nil, fmt.Errorf("folderconfig: emit: %w", err)
	}
	var knownMap map[string]json.RawMessage
	if err := json.Unmarshal(known, &knownMap); err != nil {
		return nil, fmt.Errorf("folderconfig: emit: %w", err)
	}
	for k, v := range knownMap {
		merged[k] = v
	}

	filesJSON, err := mergeFileExtraFields(merged["files"], cfg.Files)
	if err != nil {
		return nil, fmt.Errorf("folderconfig: emit: %w", err)
	}
	merged["files"] = filesJSON

	out, err := json.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("folderconfig: emit: %w", err)
	}
	return out, nil
}

// mergeFileExtraFields merges each file's captured unknown fields into the
// corresponding object of the already-marshaled "files" array, mirroring the
// top-level merge step in Emit so per-file unknown fields round-trip too.
func mergeFileExtraFields(filesJSON json.RawMessage, files []FileRecord) (json.RawMessage, error) {
	var rawFiles []map[string]json.RawMessage
	if err := json.Unmarshal(filesJSON, &rawFiles); err != nil {
		return nil, err
	}

	for i := range rawFiles {
		if i >= len(files) {
			break
		}
		for k, v := range files[i].extraFields {
			rawFiles[i][k] = v
		}
	}

	return json.Marshal(rawFiles)
}

// FindFile returns a pointer to the file record named name, or nil.
func (c *FolderConfig) FindFile(name string) *FileRecord {
	for i := range c.Files {
		if c.Files[i].Name == name {
			return &c.Files[i]
		}
	}
	return nil
}

// HasFolder reports whether name is listed among the folder's subfolders.
func (c *FolderConfig) HasFolder(name string) bool {
	for _, f := range c.Folders {
		if f == name {
			return true
		}
	}
	return false
}

// RemoveFolder removes name from the folder's subfolder list, if present.
func (c *FolderConfig) RemoveFolder(name string) {
	out := c.Folders[:0]
	for _, f := range c.Folders {
		if f != name {
			out = append(out, f)
		}
	}
	c.Folders = out
}

// RemoveFile removes the file named name from the folder's file list. It
// reports whether a file was removed.
func (c *FolderConfig) RemoveFile(name string) bool {
	for i := range c.Files {
		if c.Files[i].Name == name {
			c.Files = append(c.Files[:i], c.Files[i+1:]...)
			return true
		}
	}
	return false
}
