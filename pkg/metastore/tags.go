package metastore

import (
	"fmt"
	"strings"
)

// CreateOrUpdateTag inserts rec if its name is new, or updates its parent and
// metadata if it already exists. Tag identity is the fully-qualified name
// (spec.md §3's Tag type); parent_name is derived by the caller as the
// prefix before the final "/".
func (s *Store) CreateOrUpdateTag(rec TagRecord) error {
	if err := s.requireOpen(); err != nil {
		return err
	}

	var parentRowID *int64
	if rec.Parent != "" {
		id, err := s.tagRowID(rec.Parent)
		if err != nil {
			return err
		}
		parentRowID = &id
	}

	var existing tagRow
	err := s.db.Where("name = ?", rec.Name).First(&existing).Error
	if err == nil {
		existing.ParentID = parentRowID
		existing.Metadata = rec.Metadata
		if err := s.db.Save(&existing).Error; err != nil {
			return fmt.Errorf("metastore: update tag: %w", err)
		}
		return nil
	}

	row := tagRow{Name: rec.Name, ParentID: parentRowID, Metadata: rec.Metadata}
	if err := s.db.Create(&row).Error; err != nil {
		return fmt.Errorf("metastore: create tag: %w", err)
	}
	return nil
}

// DeleteTag removes name and every descendant tag (by "/" prefix), along
// with all of their file_tags edges.
func (s *Store) DeleteTag(name string) error {
	if err := s.requireOpen(); err != nil {
		return err
	}

	var rows []tagRow
	if err := s.db.Where("name = ? OR name LIKE ?", name, name+"/%").Find(&rows).Error; err != nil {
		return fmt.Errorf("metastore: delete tag: find descendants: %w", err)
	}
	if len(rows) == 0 {
		return ErrNotFound
	}

	ids := make([]int64, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}

	if err := s.db.Where("tag_id IN ?", ids).Delete(&fileTagRow{}).Error; err != nil {
		return fmt.Errorf("metastore: delete tag: clear edges: %w", err)
	}
	if err := s.db.Where("id IN ?", ids).Delete(&tagRow{}).Error; err != nil {
		return fmt.Errorf("metastore: delete tag: %w", err)
	}
	return nil
}

// DeleteAllTags removes every tag and file_tags edge, used when the caller
// is about to resync the whole tag mirror from the notebook config's tag
// tree (spec.md §4.6's tag sync on open).
func (s *Store) DeleteAllTags() error {
	if err := s.requireOpen(); err != nil {
		return err
	}
	if err := s.db.Where("1 = 1").Delete(&fileTagRow{}).Error; err != nil {
		return fmt.Errorf("metastore: delete all tags: clear edges: %w", err)
	}
	if err := s.db.Where("1 = 1").Delete(&tagRow{}).Error; err != nil {
		return fmt.Errorf("metastore: delete all tags: %w", err)
	}
	return nil
}

// GetTag returns the tag record for the given fully-qualified name.
func (s *Store) GetTag(name string) (TagRecord, error) {
	if err := s.requireOpen(); err != nil {
		return TagRecord{}, err
	}
	var row tagRow
	if err := s.db.Where("name = ?", name).First(&row).Error; err != nil {
		return TagRecord{}, mapNotFound(err)
	}
	return s.hydrateTag(row)
}

// ListAllTags returns every tag, sorted by name ascending.
func (s *Store) ListAllTags() ([]TagRecord, error) {
	if err := s.requireOpen(); err != nil {
		return nil, err
	}
	var rows []tagRow
	if err := s.db.Order("name asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("metastore: list tags: %w", err)
	}
	out := make([]TagRecord, 0, len(rows))
	for _, r := range rows {
		rec, err := s.hydrateTag(r)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s *Store) tagRowID(name string) (int64, error) {
	var row tagRow
	if err := s.db.Select("id").Where("name = ?", name).First(&row).Error; err != nil {
		return 0, mapNotFound(err)
	}
	return row.ID, nil
}

func (s *Store) hydrateTag(row tagRow) (TagRecord, error) {
	var parentName string
	if row.ParentID != nil {
		var parent tagRow
		if err := s.db.Select("name").Where("id = ?", *row.ParentID).First(&parent).Error; err != nil {
			return TagRecord{}, fmt.Errorf("metastore: hydrate tag: %w", err)
		}
		parentName = parent.Name
	} else if idx := strings.LastIndex(row.Name, "/"); idx >= 0 {
		parentName = row.Name[:idx]
	}
	return TagRecord{Name: row.Name, Parent: parentName, Metadata: row.Metadata}, nil
}
