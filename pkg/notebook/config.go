// Package notebook implements the notebook lifecycle and notebook manager
// (spec.md's component C5): notebook config persistence, routing into the
// folder manager, and session-record bookkeeping via an injected collaborator.
package notebook

import (
	"encoding/json"
	"fmt"
)

// TagNode is one entry in a notebook config's hierarchical tag list
// (spec.md §6.3's "tags: <hierarchical tag list>").
type TagNode struct {
	Name     string    `json:"name"`
	Children []TagNode `json:"children,omitempty"`
}

// Config is the notebook-level on-disk record (vx_notebook/config.json,
// spec.md §6.3). Like folderconfig.FolderConfig, unknown top-level fields are
// preserved on read and rewritten on save.
type Config struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	AssetsFolder      string          `json:"assetsFolder"`
	AttachmentsFolder string          `json:"attachmentsFolder"`
	Metadata          json.RawMessage `json:"metadata,omitempty"`
	Tags              []TagNode       `json:"tags"`
	TagsModifiedUTC   int64           `json:"tagsModifiedUtc"`

	extraFields map[string]json.RawMessage
}

var knownConfigFields = map[string]struct{}{
	"id": {}, "name": {}, "description": {}, "assetsFolder": {}, "attachmentsFolder": {},
	"metadata": {}, "tags": {}, "tagsModifiedUtc": {},
}

// ParseConfig decodes a notebook config, preserving unrecognized top-level
// fields so EmitConfig can round-trip them.
func ParseConfig(data []byte) (*Config, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("notebook: parse config: %w", err)
	}

	cfg := &Config{extraFields: map[string]json.RawMessage{}}
	type alias Config
	if err := json.Unmarshal(data, (*alias)(cfg)); err != nil {
		return nil, fmt.Errorf("notebook: parse config: %w", err)
	}
	for k, v := range raw {
		if _, known := knownConfigFields[k]; !known {
			cfg.extraFields[k] = v
		}
	}
	if cfg.Tags == nil {
		cfg.Tags = []TagNode{}
	}
	return cfg, nil
}

// EmitConfig serializes the notebook config back to its on-disk JSON form.
func EmitConfig(cfg *Config) ([]byte, error) {
	merged := map[string]json.RawMessage{}
	for k, v := range cfg.extraFields {
		merged[k] = v
	}

	type alias Config
	known, err := json.Marshal((*alias)(cfg))
	if err != nil {
		return nil, fmt.Errorf("notebook: emit config: %w", err)
	}
	var knownMap map[string]json.RawMessage
	if err := json.Unmarshal(known, &knownMap); err != nil {
		return nil, fmt.Errorf("notebook: emit config: %w", err)
	}
	for k, v := range knownMap {
		merged[k] = v
	}

	out, err := json.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("notebook: emit config: %w", err)
	}
	return out, nil
}
