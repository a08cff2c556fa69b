package notebook

import "errors"

// Sentinel errors returned by Notebook and Manager methods (spec.md §5).
// pkg/engine maps these onto the stable numeric error-code surface
// (spec.md §6.5) at the public boundary.
var (
	ErrNotFound      = errors.New("notebook: not found")
	ErrAlreadyOpen   = errors.New("notebook: already open")
	ErrInvalidArg    = errors.New("notebook: invalid argument")
	ErrIO            = errors.New("notebook: io error")
	ErrJSONParse     = errors.New("notebook: json parse error")
	ErrJSONSerialize = errors.New("notebook: json serialize error")
	ErrUnsupported   = errors.New("notebook: unsupported on this notebook kind")
)
