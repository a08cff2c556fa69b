package metastore

import "fmt"

// CreateFile inserts a new file row under rec.FolderID.
func (s *Store) CreateFile(rec FileRecord) error {
	if err := s.requireOpen(); err != nil {
		return err
	}
	folderRowID, err := s.folderRowID(rec.FolderID)
	if err != nil {
		return err
	}
	row := fileRow{
		UUID:        rec.ID,
		FolderID:    folderRowID,
		Name:        rec.Name,
		CreatedUTC:  rec.CreatedUTC,
		ModifiedUTC: rec.ModifiedUTC,
		Metadata:    rec.Metadata,
	}
	if err := s.db.Create(&row).Error; err != nil {
		if isUniqueConstraintError(err) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("metastore: create file: %w", err)
	}
	return nil
}

// UpdateFile updates name, modified_utc, and metadata for the file with the
// given uuid. The uuid itself never changes (spec.md P8).
func (s *Store) UpdateFile(id string, name string, modifiedUTC int64, metadata string) error {
	if err := s.requireOpen(); err != nil {
		return err
	}
	res := s.db.Model(&fileRow{}).Where("uuid = ?", id).Updates(map[string]any{
		"name":         name,
		"modified_utc": modifiedUTC,
		"metadata":     metadata,
	})
	if res.Error != nil {
		return fmt.Errorf("metastore: update file: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteFile deletes the file row and its tag edges.
func (s *Store) DeleteFile(id string) error {
	if err := s.requireOpen(); err != nil {
		return err
	}
	rowID, err := s.fileRowID(id)
	if err != nil {
		return err
	}
	if err := s.db.Where("file_id = ?", rowID).Delete(&fileTagRow{}).Error; err != nil {
		return fmt.Errorf("metastore: delete file: clear tags: %w", err)
	}
	if err := s.db.Where("id = ?", rowID).Delete(&fileRow{}).Error; err != nil {
		return fmt.Errorf("metastore: delete file: %w", err)
	}
	return nil
}

// GetFile returns the file record for the given uuid.
func (s *Store) GetFile(id string) (FileRecord, error) {
	if err := s.requireOpen(); err != nil {
		return FileRecord{}, err
	}
	var row fileRow
	if err := s.db.Where("uuid = ?", id).First(&row).Error; err != nil {
		return FileRecord{}, mapNotFound(err)
	}
	return s.hydrateFile(row)
}

// GetFileByPath resolves folderPath/name to a file record.
func (s *Store) GetFileByPath(folderPath, name string) (FileRecord, error) {
	if err := s.requireOpen(); err != nil {
		return FileRecord{}, err
	}
	folder, err := s.folderRowByPath(folderPath)
	if err != nil {
		return FileRecord{}, err
	}
	var row fileRow
	if err := s.db.Where("folder_id = ? AND name = ?", folder.ID, name).First(&row).Error; err != nil {
		return FileRecord{}, mapNotFound(err)
	}
	return s.hydrateFile(row)
}

// ListFiles returns the files directly inside folderID, sorted by name
// ascending.
func (s *Store) ListFiles(folderID string) ([]FileRecord, error) {
	if err := s.requireOpen(); err != nil {
		return nil, err
	}
	folderRowID, err := s.folderRowID(folderID)
	if err != nil {
		return nil, err
	}
	var rows []fileRow
	if err := s.db.Where("folder_id = ?", folderRowID).Order("name asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("metastore: list files: %w", err)
	}
	out := make([]FileRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, fileToRecord(&r, folderID))
	}
	return out, nil
}

// MoveFile reparents file id into newFolderID.
func (s *Store) MoveFile(id string, newFolderID string) error {
	if err := s.requireOpen(); err != nil {
		return err
	}
	rowID, err := s.fileRowID(id)
	if err != nil {
		return err
	}
	newFolderRowID, err := s.folderRowID(newFolderID)
	if err != nil {
		return err
	}
	if err := s.db.Model(&fileRow{}).Where("id = ?", rowID).
		Update("folder_id", newFolderRowID).Error; err != nil {
		return fmt.Errorf("metastore: move file: %w", err)
	}
	return nil
}

func (s *Store) fileRowID(uuid string) (int64, error) {
	var row fileRow
	if err := s.db.Select("id").Where("uuid = ?", uuid).First(&row).Error; err != nil {
		return 0, mapNotFound(err)
	}
	return row.ID, nil
}

func (s *Store) hydrateFile(row fileRow) (FileRecord, error) {
	var folder folderRow
	if err := s.db.Select("uuid").Where("id = ?", row.FolderID).First(&folder).Error; err != nil {
		return FileRecord{}, fmt.Errorf("metastore: hydrate file: %w", err)
	}
	return fileToRecord(&row, folder.UUID), nil
}
