package metastore

import (
	"fmt"
	"strings"
)

// CreateFolder inserts a new folder row. rec.ID must already be a generated
// UUID (ground truth assigns ids, not the store). If rec.ParentID is "", the
// row is inserted with a nil parent (the notebook root).
func (s *Store) CreateFolder(rec FolderRecord) error {
	if err := s.requireOpen(); err != nil {
		return err
	}

	row := folderRow{
		UUID:        rec.ID,
		Name:        rec.Name,
		CreatedUTC:  rec.CreatedUTC,
		ModifiedUTC: rec.ModifiedUTC,
		Metadata:    rec.Metadata,
	}
	if rec.ParentID != "" {
		parentID, err := s.folderRowID(rec.ParentID)
		if err != nil {
			return err
		}
		row.ParentID = &parentID
	}

	if err := s.db.Create(&row).Error; err != nil {
		if isUniqueConstraintError(err) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("metastore: create folder: %w", err)
	}
	return nil
}

// UpdateFolder updates name, modified_utc, and metadata for the folder with
// the given uuid. The uuid itself never changes (spec.md P8).
func (s *Store) UpdateFolder(id string, name string, modifiedUTC int64, metadata string) error {
	if err := s.requireOpen(); err != nil {
		return err
	}
	res := s.db.Model(&folderRow{}).Where("uuid = ?", id).Updates(map[string]any{
		"name":         name,
		"modified_utc": modifiedUTC,
		"metadata":     metadata,
	})
	if res.Error != nil {
		return fmt.Errorf("metastore: update folder: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteFolder deletes the folder row and cascades to every descendant
// folder and file (and their tag edges).
func (s *Store) DeleteFolder(id string) error {
	if err := s.requireOpen(); err != nil {
		return err
	}
	rowID, err := s.folderRowID(id)
	if err != nil {
		return err
	}
	return s.deleteFolderSubtree(rowID)
}

func (s *Store) deleteFolderSubtree(rowID int64) error {
	var children []folderRow
	if err := s.db.Where("parent_id = ?", rowID).Find(&children).Error; err != nil {
		return fmt.Errorf("metastore: delete folder: list children: %w", err)
	}
	for _, c := range children {
		if err := s.deleteFolderSubtree(c.ID); err != nil {
			return err
		}
	}

	var files []fileRow
	if err := s.db.Where("folder_id = ?", rowID).Find(&files).Error; err != nil {
		return fmt.Errorf("metastore: delete folder: list files: %w", err)
	}
	for _, f := range files {
		if err := s.db.Where("file_id = ?", f.ID).Delete(&fileTagRow{}).Error; err != nil {
			return fmt.Errorf("metastore: delete folder: clear file tags: %w", err)
		}
	}
	if err := s.db.Where("folder_id = ?", rowID).Delete(&fileRow{}).Error; err != nil {
		return fmt.Errorf("metastore: delete folder: delete files: %w", err)
	}
	if err := s.db.Where("id = ?", rowID).Delete(&folderRow{}).Error; err != nil {
		return fmt.Errorf("metastore: delete folder: %w", err)
	}
	return nil
}

// GetFolder returns the folder record for the given uuid.
func (s *Store) GetFolder(id string) (FolderRecord, error) {
	if err := s.requireOpen(); err != nil {
		return FolderRecord{}, err
	}
	var row folderRow
	if err := s.db.Where("uuid = ?", id).First(&row).Error; err != nil {
		return FolderRecord{}, mapNotFound(err)
	}
	return s.hydrateFolder(row)
}

// GetFolderByPath resolves a "/"-joined path of folder names (relative to
// the notebook root, "." for the root) to a folder record.
func (s *Store) GetFolderByPath(path string) (FolderRecord, error) {
	if err := s.requireOpen(); err != nil {
		return FolderRecord{}, err
	}
	row, err := s.folderRowByPath(path)
	if err != nil {
		return FolderRecord{}, err
	}
	return s.hydrateFolder(row)
}

// ListChildren returns the direct child folders of parentID ("" for root),
// sorted by name ascending.
func (s *Store) ListChildren(parentID string) ([]FolderRecord, error) {
	if err := s.requireOpen(); err != nil {
		return nil, err
	}

	q := s.db.Model(&folderRow{}).Order("name asc")
	if parentID == "" {
		q = q.Where("parent_id IS NULL")
	} else {
		parentRowID, err := s.folderRowID(parentID)
		if err != nil {
			return nil, err
		}
		q = q.Where("parent_id = ?", parentRowID)
	}

	var rows []folderRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("metastore: list children: %w", err)
	}

	out := make([]FolderRecord, 0, len(rows))
	for _, r := range rows {
		rec, err := s.hydrateFolder(r)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// GetPath reconstructs the "/"-joined path of folder names from the root to
// id, inclusive. The root folder's own path is ".".
func (s *Store) GetPath(id string) (string, error) {
	if err := s.requireOpen(); err != nil {
		return "", err
	}
	names, err := s.ancestorNames(id)
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return ".", nil
	}
	return strings.Join(names, "/"), nil
}

// Move reparents folder id under newParentID ("" for root). It fails with
// ErrCycle if newParentID equals id or is reachable from id via the parent
// chain (spec.md §4.3 cycle prevention).
func (s *Store) Move(id string, newParentID string) error {
	if err := s.requireOpen(); err != nil {
		return err
	}
	if id == newParentID {
		return ErrCycle
	}

	rowID, err := s.folderRowID(id)
	if err != nil {
		return err
	}

	var newParentRowID *int64
	if newParentID != "" {
		pid, err := s.folderRowID(newParentID)
		if err != nil {
			return err
		}
		if isDescendant(s, pid, rowID) {
			return ErrCycle
		}
		newParentRowID = &pid
	}

	if err := s.db.Model(&folderRow{}).Where("id = ?", rowID).
		Update("parent_id", newParentRowID).Error; err != nil {
		return fmt.Errorf("metastore: move folder: %w", err)
	}
	return nil
}

// isDescendant reports whether candidate is rowID or a descendant of rowID
// by following parent links from candidate upward.
func isDescendant(s *Store, candidate, rowID int64) bool {
	cur := candidate
	for {
		if cur == rowID {
			return true
		}
		var row folderRow
		if err := s.db.Select("parent_id").Where("id = ?", cur).First(&row).Error; err != nil {
			return false
		}
		if row.ParentID == nil {
			return false
		}
		cur = *row.ParentID
	}
}

func (s *Store) folderRowID(uuid string) (int64, error) {
	var row folderRow
	if err := s.db.Select("id").Where("uuid = ?", uuid).First(&row).Error; err != nil {
		return 0, mapNotFound(err)
	}
	return row.ID, nil
}

func (s *Store) hydrateFolder(row folderRow) (FolderRecord, error) {
	var parentUUID string
	if row.ParentID != nil {
		var parent folderRow
		if err := s.db.Select("uuid").Where("id = ?", *row.ParentID).First(&parent).Error; err != nil {
			return FolderRecord{}, fmt.Errorf("metastore: hydrate folder: %w", err)
		}
		parentUUID = parent.UUID
	}
	return folderToRecord(&row, parentUUID), nil
}

// ancestorNames returns the chain of names from the root down to id,
// inclusive, skipping the (unnamed) root itself.
func (s *Store) ancestorNames(id string) ([]string, error) {
	var row folderRow
	if err := s.db.Where("uuid = ?", id).First(&row).Error; err != nil {
		return nil, mapNotFound(err)
	}

	var names []string
	cur := row
	for {
		if cur.ParentID == nil {
			// cur is the root; its own name is not part of the path.
			break
		}
		names = append([]string{cur.Name}, names...)
		var parent folderRow
		if err := s.db.Where("id = ?", *cur.ParentID).First(&parent).Error; err != nil {
			return nil, fmt.Errorf("metastore: ancestor chain: %w", err)
		}
		cur = parent
	}
	return names, nil
}

func (s *Store) folderRowByPath(path string) (folderRow, error) {
	var root folderRow
	if err := s.db.Where("parent_id IS NULL").First(&root).Error; err != nil {
		return folderRow{}, mapNotFound(err)
	}
	if path == "" || path == "." {
		return root, nil
	}

	cur := root
	for _, seg := range strings.Split(path, "/") {
		var child folderRow
		if err := s.db.Where("parent_id = ? AND name = ?", cur.ID, seg).First(&child).Error; err != nil {
			return folderRow{}, mapNotFound(err)
		}
		cur = child
	}
	return cur, nil
}
