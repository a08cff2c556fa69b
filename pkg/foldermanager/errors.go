package foldermanager

import "errors"

// Sentinel errors returned by Manager implementations (spec.md §4.4.6).
// pkg/engine maps these onto the stable numeric error-code surface
// (spec.md §6.5) at the public boundary.
var (
	ErrNotFound      = errors.New("foldermanager: not found")
	ErrAlreadyExists = errors.New("foldermanager: already exists")
	ErrInvalidArg    = errors.New("foldermanager: invalid argument")
	ErrIO            = errors.New("foldermanager: io error")
	ErrJSONParse     = errors.New("foldermanager: json parse error")
	ErrJSONSerialize = errors.New("foldermanager: json serialize error")
	ErrUnsupported   = errors.New("foldermanager: unsupported on this notebook kind")
)
