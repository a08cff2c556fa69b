package metastore

import "fmt"

// SetFileTags replaces the full set of tags attached to fileID with tags.
// Every name in tags must already exist as a tag row; the caller (C6/C4)
// is responsible for enforcing tag closure (spec.md P4) before calling this.
func (s *Store) SetFileTags(fileID string, tags []string) error {
	if err := s.requireOpen(); err != nil {
		return err
	}
	rowID, err := s.fileRowID(fileID)
	if err != nil {
		return err
	}

	tagIDs := make([]int64, 0, len(tags))
	for _, t := range tags {
		id, err := s.tagRowID(t)
		if err != nil {
			return err
		}
		tagIDs = append(tagIDs, id)
	}

	if err := s.db.Where("file_id = ?", rowID).Delete(&fileTagRow{}).Error; err != nil {
		return fmt.Errorf("metastore: set file tags: clear: %w", err)
	}
	for _, tagID := range tagIDs {
		edge := fileTagRow{FileID: rowID, TagID: tagID}
		if err := s.db.Create(&edge).Error; err != nil {
			return fmt.Errorf("metastore: set file tags: %w", err)
		}
	}
	return nil
}

// AddTag attaches tag to fileID if not already present. Idempotent.
func (s *Store) AddTag(fileID, tag string) error {
	if err := s.requireOpen(); err != nil {
		return err
	}
	rowID, err := s.fileRowID(fileID)
	if err != nil {
		return err
	}
	tagID, err := s.tagRowID(tag)
	if err != nil {
		return err
	}

	var existing fileTagRow
	err = s.db.Where("file_id = ? AND tag_id = ?", rowID, tagID).First(&existing).Error
	if err == nil {
		return nil
	}

	edge := fileTagRow{FileID: rowID, TagID: tagID}
	if err := s.db.Create(&edge).Error; err != nil {
		return fmt.Errorf("metastore: add tag: %w", err)
	}
	return nil
}

// RemoveTag detaches tag from fileID. A no-op if the edge does not exist.
func (s *Store) RemoveTag(fileID, tag string) error {
	if err := s.requireOpen(); err != nil {
		return err
	}
	rowID, err := s.fileRowID(fileID)
	if err != nil {
		return err
	}
	tagID, err := s.tagRowID(tag)
	if err != nil {
		return err
	}
	if err := s.db.Where("file_id = ? AND tag_id = ?", rowID, tagID).Delete(&fileTagRow{}).Error; err != nil {
		return fmt.Errorf("metastore: remove tag: %w", err)
	}
	return nil
}

// GetFileTags returns the tag names attached to fileID, sorted ascending.
func (s *Store) GetFileTags(fileID string) ([]string, error) {
	if err := s.requireOpen(); err != nil {
		return nil, err
	}
	rowID, err := s.fileRowID(fileID)
	if err != nil {
		return nil, err
	}

	var names []string
	err = s.db.Model(&tagRow{}).
		Joins("JOIN file_tags ON file_tags.tag_id = tags.id").
		Where("file_tags.file_id = ?", rowID).
		Order("tags.name asc").
		Pluck("tags.name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("metastore: get file tags: %w", err)
	}
	return names, nil
}
