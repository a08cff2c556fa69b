package metastore

import "fmt"

// FindFilesAny returns every file carrying at least one of tags (OR),
// sorted by name ascending then id ascending.
func (s *Store) FindFilesAny(tags []string) ([]FileRecord, error) {
	if err := s.requireOpen(); err != nil {
		return nil, err
	}
	if len(tags) == 0 {
		return nil, nil
	}

	var rows []fileRow
	err := s.db.Distinct("files.*").
		Table("files").
		Joins("JOIN file_tags ON file_tags.file_id = files.id").
		Joins("JOIN tags ON tags.id = file_tags.tag_id").
		Where("tags.name IN ?", tags).
		Order("files.name asc, files.id asc").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("metastore: find files any: %w", err)
	}
	return s.hydrateFiles(rows)
}

// FindFilesAll returns every file carrying all of tags (AND), sorted by
// name ascending then id ascending.
func (s *Store) FindFilesAll(tags []string) ([]FileRecord, error) {
	if err := s.requireOpen(); err != nil {
		return nil, err
	}
	if len(tags) == 0 {
		return nil, nil
	}

	var rows []fileRow
	err := s.db.Table("files").
		Joins("JOIN file_tags ON file_tags.file_id = files.id").
		Joins("JOIN tags ON tags.id = file_tags.tag_id").
		Where("tags.name IN ?", tags).
		Group("files.id").
		Having("COUNT(DISTINCT tags.name) = ?", len(tags)).
		Order("files.name asc, files.id asc").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("metastore: find files all: %w", err)
	}
	return s.hydrateFiles(rows)
}

// CountFilesByTag returns, for every tag with at least one file, the number
// of files carrying it, sorted by tag name ascending.
func (s *Store) CountFilesByTag() ([]FileCount, error) {
	if err := s.requireOpen(); err != nil {
		return nil, err
	}

	var out []FileCount
	err := s.db.Table("tags").
		Select("tags.name as tag, COUNT(file_tags.file_id) as count").
		Joins("JOIN file_tags ON file_tags.tag_id = tags.id").
		Group("tags.name").
		Order("tags.name asc").
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("metastore: count files by tag: %w", err)
	}
	return out, nil
}

func (s *Store) hydrateFiles(rows []fileRow) ([]FileRecord, error) {
	out := make([]FileRecord, 0, len(rows))
	for _, r := range rows {
		rec, err := s.hydrateFile(r)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}
