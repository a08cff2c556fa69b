package metastore

import (
	"fmt"

	"gorm.io/gorm/clause"
)

// KVGet returns the stored value for k. ok is false if k has never been set.
func (s *Store) KVGet(k string) (value string, ok bool, err error) {
	if err := s.requireOpen(); err != nil {
		return "", false, err
	}
	var row kvRow
	if err := s.db.Where("key = ?", k).First(&row).Error; err != nil {
		if mapNotFound(err) == ErrNotFound {
			return "", false, nil
		}
		return "", false, fmt.Errorf("metastore: kv get: %w", err)
	}
	return row.Value, true, nil
}

// KVSet upserts the value for k.
func (s *Store) KVSet(k, v string) error {
	if err := s.requireOpen(); err != nil {
		return err
	}
	row := kvRow{Key: k, Value: v}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("metastore: kv set: %w", err)
	}
	return nil
}
