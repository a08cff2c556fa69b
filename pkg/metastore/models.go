package metastore

// folderRow mirrors a single ground-truth folder config (spec.md §3's
// "folders" table). ParentID is nil for the notebook root.
type folderRow struct {
	ID              int64  `gorm:"primaryKey;autoIncrement"`
	UUID            string `gorm:"uniqueIndex;size:36;not null"`
	ParentID        *int64 `gorm:"index"`
	Name            string `gorm:"not null"`
	CreatedUTC      int64  `gorm:"not null"`
	ModifiedUTC     int64  `gorm:"not null"`
	Metadata        string `gorm:"type:text"`
	LastSyncUTC     int64
	ConfigFileMtime int64
}

func (folderRow) TableName() string { return "folders" }

// fileRow mirrors a single file record (spec.md §3's "files" table).
type fileRow struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	UUID        string `gorm:"uniqueIndex;size:36;not null"`
	FolderID    int64  `gorm:"index;not null"`
	Name        string `gorm:"index;not null"`
	CreatedUTC  int64  `gorm:"not null"`
	ModifiedUTC int64  `gorm:"not null"`
	Metadata    string `gorm:"type:text"`
}

func (fileRow) TableName() string { return "files" }

// tagRow mirrors the tag hierarchy's derived view (spec.md §3's "tags"
// table). Ground truth for tag definitions lives in the notebook config;
// this is a query-performance mirror.
type tagRow struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"`
	Name     string `gorm:"uniqueIndex;not null"`
	ParentID *int64 `gorm:"index"`
	Metadata string `gorm:"type:text"`
}

func (tagRow) TableName() string { return "tags" }

// fileTagRow is the normalized file<->tag join (spec.md §3 "file_tags",
// composite primary key).
type fileTagRow struct {
	FileID int64 `gorm:"primaryKey;index:,unique,composite:pk"`
	TagID  int64 `gorm:"primaryKey;index:,unique,composite:pk"`
}

func (fileTagRow) TableName() string { return "file_tags" }

// kvRow is the opaque notebook-level sync-state key/value table.
type kvRow struct {
	Key   string `gorm:"primaryKey"`
	Value string `gorm:"type:text"`
}

func (kvRow) TableName() string { return "notebook_kv" }

func allModels() []any {
	return []any{
		&folderRow{},
		&fileRow{},
		&tagRow{},
		&fileTagRow{},
		&kvRow{},
	}
}

// contentModels are the tables rebuild_all (spec.md:94) drops and recreates.
// notebook_kv is excluded: spec.md:94 contracts rebuild_all to lose all rows
// "but preserve settings", and notebook_kv is this schema's only
// settings-shaped table (spec.md §3's "opaque key/value for notebook-level
// sync state" — e.g. the tag-sync watermark written by tags.Manager.Sync).
func contentModels() []any {
	return []any{
		&folderRow{},
		&fileRow{},
		&tagRow{},
		&fileTagRow{},
	}
}
