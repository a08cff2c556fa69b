package logger

import (
	"log/slog"
)

// Standard field keys for structured logging.
// Use these keys consistently across all log statements so downstream log
// aggregation/querying can group by them regardless of which component logged.
const (
	// ========================================================================
	// Correlation
	// ========================================================================
	KeyTraceID    = "trace_id"    // correlation id set by the operation surface
	KeyOperation  = "operation"   // engine operation name (CreateFolder, MoveFile, ...)
	KeyDurationMs = "duration_ms" // operation duration in milliseconds

	// ========================================================================
	// Notebook / tree identity
	// ========================================================================
	KeyNotebookID = "notebook_id" // notebook UUID
	KeyFolderID   = "folder_id"   // folder UUID
	KeyFileID     = "file_id"     // file UUID

	// ========================================================================
	// Paths
	// ========================================================================
	KeyPath     = "path"      // folder/file path relative to the notebook root
	KeyOldPath  = "old_path"  // source path for rename/move/copy
	KeyNewPath  = "new_path"  // destination path for rename/move/copy
	KeyName     = "name"      // basename being created/renamed
	KeyRootPath = "root_path" // notebook root_folder absolute path

	// ========================================================================
	// Store / cache
	// ========================================================================
	KeyStorePath  = "store_path"  // metadata store db file path
	KeyCacheHit   = "cache_hit"   // folder-config cache hit indicator
	KeySyncedRows = "synced_rows" // rows written during a lazy sync / rebuild

	// ========================================================================
	// Tags
	// ========================================================================
	KeyTagName   = "tag_name"   // tag fully-qualified name
	KeyTagParent = "tag_parent" // tag parent name

	// ========================================================================
	// Search
	// ========================================================================
	KeyPattern     = "pattern"     // search pattern
	KeyMaxResults  = "max_results" // requested result cap
	KeyResultCount = "result_count"
	KeyTruncated   = "truncated"

	// ========================================================================
	// Errors
	// ========================================================================
	KeyErrorCode = "error_code" // stable numeric error code (spec.md §6.5)
	KeyError     = "error"      // error message
)

// TraceID returns a slog.Attr for the correlation id.
func TraceID(id string) slog.Attr { return slog.String(KeyTraceID, id) }

// Operation returns a slog.Attr for the engine operation name.
func Operation(name string) slog.Attr { return slog.String(KeyOperation, name) }

// DurationMsAttr returns a slog.Attr for an operation's duration in milliseconds.
func DurationMsAttr(ms float64) slog.Attr { return slog.Float64(KeyDurationMs, ms) }

// NotebookID returns a slog.Attr for a notebook UUID.
func NotebookID(id string) slog.Attr { return slog.String(KeyNotebookID, id) }

// FolderID returns a slog.Attr for a folder UUID.
func FolderID(id string) slog.Attr { return slog.String(KeyFolderID, id) }

// FileID returns a slog.Attr for a file UUID.
func FileID(id string) slog.Attr { return slog.String(KeyFileID, id) }

// Path returns a slog.Attr for a folder/file path.
func Path(p string) slog.Attr { return slog.String(KeyPath, p) }

// OldPath returns a slog.Attr for the source path of a move/rename/copy.
func OldPath(p string) slog.Attr { return slog.String(KeyOldPath, p) }

// NewPath returns a slog.Attr for the destination path of a move/rename/copy.
func NewPath(p string) slog.Attr { return slog.String(KeyNewPath, p) }

// Name returns a slog.Attr for a basename.
func Name(n string) slog.Attr { return slog.String(KeyName, n) }

// StorePath returns a slog.Attr for the metadata store db file path.
func StorePath(p string) slog.Attr { return slog.String(KeyStorePath, p) }

// CacheHit returns a slog.Attr for a folder-config cache hit indicator.
func CacheHit(hit bool) slog.Attr { return slog.Bool(KeyCacheHit, hit) }

// SyncedRows returns a slog.Attr for the number of rows synced.
func SyncedRows(n int) slog.Attr { return slog.Int(KeySyncedRows, n) }

// TagName returns a slog.Attr for a tag's fully-qualified name.
func TagName(name string) slog.Attr { return slog.String(KeyTagName, name) }

// Pattern returns a slog.Attr for a search pattern.
func Pattern(p string) slog.Attr { return slog.String(KeyPattern, p) }

// MaxResults returns a slog.Attr for a requested result cap.
func MaxResults(n int) slog.Attr { return slog.Int(KeyMaxResults, n) }

// ResultCount returns a slog.Attr for the number of results returned.
func ResultCount(n int) slog.Attr { return slog.Int(KeyResultCount, n) }

// Truncated returns a slog.Attr for whether results were truncated.
func Truncated(t bool) slog.Attr { return slog.Bool(KeyTruncated, t) }

// ErrorCode returns a slog.Attr for the stable numeric error code.
func ErrorCode(code int) slog.Attr { return slog.Int(KeyErrorCode, code) }

// Err returns a slog.Attr for an error value.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}
