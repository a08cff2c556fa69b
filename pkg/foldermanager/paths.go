package foldermanager

import "path/filepath"

// contentPath returns the absolute filesystem path of the content mirror
// for relPath (spec.md §6.1's "<root>/<path>" tree).
func (m *Bundled) contentPath(relPath string) string {
	if relPath == "." {
		return m.rootFolder
	}
	return filepath.Join(m.rootFolder, filepath.FromSlash(relPath))
}

// sidecarDir returns the absolute filesystem directory holding relPath's
// vx.json (spec.md §6.1's "vx_notebook/contents/<path>/").
func (m *Bundled) sidecarDir(relPath string) string {
	if relPath == "." {
		return filepath.Join(m.rootFolder, "vx_notebook", "contents")
	}
	return filepath.Join(m.rootFolder, "vx_notebook", "contents", filepath.FromSlash(relPath))
}

// sidecarFile returns the absolute path of relPath's vx.json.
func (m *Bundled) sidecarFile(relPath string) string {
	return filepath.Join(m.sidecarDir(relPath), "vx.json")
}
