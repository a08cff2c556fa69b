// Package engine implements the public operation surface (spec.md's
// component C8): an opaque notebook/node handle layer over the folder
// manager, notebook manager, tag subsystem, and search subsystem, plus the
// stable numeric error-code surface every caller (CLI, future bindings)
// programs against. Grounded on
// marmos91/dittofs/pkg/metadata/errors.go's ErrorCode/StoreError pattern
// and original_source/src/api/vxcore_api.cpp's handle-resolution dispatch.
package engine

import (
	"errors"
	"fmt"

	"github.com/vxnote/notebookd/pkg/foldermanager"
	"github.com/vxnote/notebookd/pkg/metastore"
	"github.com/vxnote/notebookd/pkg/notebook"
	"github.com/vxnote/notebookd/pkg/tags"
)

// ErrorCode is the stable numeric error surface (spec.md §6.5).
type ErrorCode int

const (
	OK                 ErrorCode = 0
	InvalidParam       ErrorCode = 1
	NullPointer        ErrorCode = 2
	OutOfMemory        ErrorCode = 3
	NotFound           ErrorCode = 4
	AlreadyExists      ErrorCode = 5
	Io                 ErrorCode = 6
	Database           ErrorCode = 7
	JSONParse          ErrorCode = 8
	JSONSerialize      ErrorCode = 9
	InvalidState       ErrorCode = 10
	NotInitialized     ErrorCode = 11
	AlreadyInitialized ErrorCode = 12
	PermissionDenied   ErrorCode = 13
	Unsupported        ErrorCode = 14
	Unknown            ErrorCode = 999
)

// StoreError is the engine's error type: a stable code plus a human-readable
// message (spec.md §7's "single code plus an optional message string").
type StoreError struct {
	Code    ErrorCode
	Message string
}

func (e *StoreError) Error() string { return e.Message }

func newError(code ErrorCode, message string) *StoreError {
	return &StoreError{Code: code, Message: message}
}

// codeOf maps a component sentinel error onto the stable numeric surface.
// Unmatched errors (wrapped or not) map to Unknown.
func codeOf(err error) ErrorCode {
	var se *StoreError
	switch {
	case err == nil:
		return OK
	case errors.As(err, &se):
		return se.Code
	case errors.Is(err, foldermanager.ErrNotFound), errors.Is(err, notebook.ErrNotFound),
		errors.Is(err, tags.ErrNotFound), errors.Is(err, metastore.ErrNotFound):
		return NotFound
	case errors.Is(err, foldermanager.ErrAlreadyExists), errors.Is(err, tags.ErrAlreadyExists),
		errors.Is(err, metastore.ErrAlreadyExists), errors.Is(err, notebook.ErrAlreadyOpen):
		return AlreadyExists
	case errors.Is(err, foldermanager.ErrInvalidArg), errors.Is(err, notebook.ErrInvalidArg),
		errors.Is(err, tags.ErrInvalidArg), errors.Is(err, tags.ErrCycle), errors.Is(err, metastore.ErrCycle):
		return InvalidParam
	case errors.Is(err, foldermanager.ErrIO), errors.Is(err, notebook.ErrIO):
		return Io
	case errors.Is(err, foldermanager.ErrJSONParse), errors.Is(err, notebook.ErrJSONParse):
		return JSONParse
	case errors.Is(err, foldermanager.ErrJSONSerialize), errors.Is(err, notebook.ErrJSONSerialize):
		return JSONSerialize
	case errors.Is(err, foldermanager.ErrUnsupported), errors.Is(err, notebook.ErrUnsupported):
		return Unsupported
	case errors.Is(err, metastore.ErrClosed):
		return InvalidState
	default:
		return Unknown
	}
}

// wrap converts a component error into a *StoreError, preserving its
// message. A nil err maps to a nil error (so callers can `return
// wrap(err)` directly as the error return value).
func wrap(err error) error {
	if err == nil {
		return nil
	}
	var se *StoreError
	if errors.As(err, &se) {
		return se
	}
	return newError(codeOf(err), err.Error())
}

func invalidParam(format string, args ...any) error {
	return newError(InvalidParam, fmt.Sprintf(format, args...))
}
