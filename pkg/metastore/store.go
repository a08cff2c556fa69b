// Package metastore implements the relational metadata store (spec.md's
// component C3): an indexed, rebuildable cache over folders, files, tags,
// and file<->tag edges, mirroring the bundled notebook's on-disk ground
// truth for fast queries. One Store backs exactly one notebook's database
// file (spec.md §6.2, "notebooks/<notebook_id>.db").
package metastore

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	applog "github.com/vxnote/notebookd/internal/logger"
)

// Store is a single notebook's relational metadata store.
//
// A Store is owned by exactly one notebook at a time (spec.md §5); it is not
// safe for concurrent use from multiple goroutines without external
// serialization, matching the engine's single-threaded-per-notebook
// scheduling model.
type Store struct {
	mu     sync.Mutex
	db     *gorm.DB
	path   string
	closed bool
}

// Open opens (creating if absent) the SQLite-backed metadata store at path,
// with foreign keys and WAL-equivalent journaling enabled (spec.md §6.2), and
// idempotently bootstraps the schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("metastore: create store directory: %w", err)
	}

	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("metastore: open %s: %w", path, err)
	}

	s := &Store{db: db, path: path}
	if err := s.InitializeSchema(); err != nil {
		return nil, err
	}

	applog.Info("metastore opened", applog.StorePath(path))
	return s, nil
}

// IsOpen reports whether the store has not been closed.
func (s *Store) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.closed
}

// Close releases the underlying OS file handle. After Close, all other
// methods return ErrClosed. Notebook close (spec.md §5) must call this
// before any caller deletes the notebook-local data directory.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("metastore: close: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("metastore: close: %w", err)
	}
	s.closed = true
	applog.Info("metastore closed", applog.StorePath(s.path))
	return nil
}

func (s *Store) requireOpen() error {
	if s.closed {
		return ErrClosed
	}
	return nil
}

// InitializeSchema idempotently creates all tables and indices.
func (s *Store) InitializeSchema() error {
	if err := s.requireOpen(); err != nil {
		return err
	}
	if err := s.db.AutoMigrate(allModels()...); err != nil {
		return fmt.Errorf("metastore: initialize schema: %w", err)
	}
	return nil
}

// RebuildAll drops and recreates the folder/file/tag schema (spec.md:94):
// all content rows are lost. notebook_kv is left untouched, since spec.md:94
// contracts rebuild_all to preserve settings and notebook_kv is this
// schema's only settings-shaped table.
func (s *Store) RebuildAll() error {
	if err := s.requireOpen(); err != nil {
		return err
	}
	if err := s.db.Migrator().DropTable(contentModels()...); err != nil {
		return fmt.Errorf("metastore: rebuild: drop: %w", err)
	}
	if err := s.db.AutoMigrate(allModels()...); err != nil {
		return fmt.Errorf("metastore: rebuild: migrate: %w", err)
	}
	return nil
}

// Tx runs fn inside a single transaction, committing on success and rolling
// back if fn returns an error. Use this for any multi-row mutation (spec.md
// §4.3); single-row operations below auto-commit when no transaction is
// already in flight.
func (s *Store) Tx(fn func(tx *Store) error) error {
	if err := s.requireOpen(); err != nil {
		return err
	}
	return s.db.Transaction(func(gtx *gorm.DB) error {
		txStore := &Store{db: gtx, path: s.path}
		return fn(txStore)
	})
}
