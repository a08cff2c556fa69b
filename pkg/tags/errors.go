package tags

import "errors"

// Sentinel errors returned by Manager methods (spec.md §4.6). pkg/engine
// maps these onto the stable numeric error-code surface (spec.md §6.5).
var (
	ErrNotFound      = errors.New("tags: not found")
	ErrAlreadyExists = errors.New("tags: already exists")
	ErrInvalidArg    = errors.New("tags: invalid argument")
	ErrCycle         = errors.New("tags: move would create a cycle")
)
