package metastore

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "UNIQUE constraint failed") ||
		strings.Contains(s, "duplicate key value")
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func folderToRecord(r *folderRow, parentUUID string) FolderRecord {
	return FolderRecord{
		ID:          r.UUID,
		ParentID:    parentUUID,
		Name:        r.Name,
		CreatedUTC:  r.CreatedUTC,
		ModifiedUTC: r.ModifiedUTC,
		Metadata:    r.Metadata,
	}
}

func fileToRecord(r *fileRow, folderUUID string) FileRecord {
	return FileRecord{
		ID:          r.UUID,
		FolderID:    folderUUID,
		Name:        r.Name,
		CreatedUTC:  r.CreatedUTC,
		ModifiedUTC: r.ModifiedUTC,
		Metadata:    r.Metadata,
	}
}
