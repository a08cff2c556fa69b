package foldermanager

import (
	"sync"

	"github.com/vxnote/notebookd/pkg/folderconfig"
)

// configCache is the write-through, no-eviction cache described in
// spec.md §4.4.1: a mapping from normalized folder path to an owned
// folder config. Entries are inserted on load, replaced on save, and
// dropped on invalidate.
type configCache struct {
	mu      sync.RWMutex
	entries map[string]*folderconfig.FolderConfig
}

func newConfigCache() *configCache {
	return &configCache{entries: make(map[string]*folderconfig.FolderConfig)}
}

func (c *configCache) get(path string) (*folderconfig.FolderConfig, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cfg, ok := c.entries[path]
	return cfg, ok
}

func (c *configCache) put(path string, cfg *folderconfig.FolderConfig) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[path] = cfg
}

func (c *configCache) invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, path)
}

// invalidateSubtree drops path and every cached entry whose path is a
// descendant of path (used by rename/move/delete, which may invalidate a
// whole subtree at once).
func (c *configCache) invalidateSubtree(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, path)
	prefix := path + "/"
	if path == "." {
		prefix = ""
	}
	for k := range c.entries {
		if k != path && (prefix == "" || len(k) > len(prefix) && k[:len(prefix)] == prefix) {
			delete(c.entries, k)
		}
	}
}

func (c *configCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*folderconfig.FolderConfig)
}
