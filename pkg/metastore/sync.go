package metastore

import "fmt"

// GetSyncState returns folderID's lazy-sync bookkeeping. ok is false if the
// folder has never been synced (both fields are their zero value).
func (s *Store) GetSyncState(folderID string) (state SyncState, ok bool, err error) {
	if err := s.requireOpen(); err != nil {
		return SyncState{}, false, err
	}
	var row folderRow
	if err := s.db.Select("last_sync_utc", "config_file_mtime").
		Where("uuid = ?", folderID).First(&row).Error; err != nil {
		return SyncState{}, false, mapNotFound(err)
	}
	if row.LastSyncUTC == 0 && row.ConfigFileMtime == 0 {
		return SyncState{}, false, nil
	}
	return SyncState{LastSyncUTC: row.LastSyncUTC, ConfigFileMtime: row.ConfigFileMtime}, true, nil
}

// UpdateSyncState records that folderID was synced against a config file
// with the given modification time at ts.
func (s *Store) UpdateSyncState(folderID string, ts, mtime int64) error {
	if err := s.requireOpen(); err != nil {
		return err
	}
	res := s.db.Model(&folderRow{}).Where("uuid = ?", folderID).Updates(map[string]any{
		"last_sync_utc":     ts,
		"config_file_mtime": mtime,
	})
	if res.Error != nil {
		return fmt.Errorf("metastore: update sync state: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ClearSyncState resets folderID's sync bookkeeping, forcing the next read
// to re-sync against disk regardless of the config file's mtime.
func (s *Store) ClearSyncState(folderID string) error {
	return s.UpdateSyncState(folderID, 0, 0)
}
