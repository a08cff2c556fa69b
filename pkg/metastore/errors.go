package metastore

import "errors"

// Sentinel errors returned by Store methods. Callers translate these into
// the stable numeric error-code surface (spec.md §6.5) at the engine layer.
var (
	ErrNotFound      = errors.New("metastore: not found")
	ErrAlreadyExists = errors.New("metastore: already exists")
	ErrCycle         = errors.New("metastore: move would create a cycle")
	ErrClosed        = errors.New("metastore: store is closed")
)
