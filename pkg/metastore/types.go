package metastore

// FolderRecord is the store's public view of a folder row (spec.md §4.3).
type FolderRecord struct {
	ID          string // UUID
	ParentID    string // UUID, "" for root
	Name        string
	CreatedUTC  int64
	ModifiedUTC int64
	Metadata    string // opaque JSON blob
}

// FileRecord is the store's public view of a file row.
type FileRecord struct {
	ID          string // UUID
	FolderID    string // UUID
	Name        string
	CreatedUTC  int64
	ModifiedUTC int64
	Metadata    string
}

// TagRecord is the store's public view of a tag row.
type TagRecord struct {
	Name     string
	Parent   string // "" for a root tag
	Metadata string
}

// SyncState is the optional per-folder lazy-sync bookkeeping (spec.md §4.3).
type SyncState struct {
	LastSyncUTC     int64
	ConfigFileMtime int64
}

// FileCount pairs a tag name with how many files carry it.
type FileCount struct {
	Tag   string
	Count int64
}
