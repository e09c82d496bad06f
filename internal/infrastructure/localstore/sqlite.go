package localstore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// blobRecord is the single-table schema of the sqlite store.
type blobRecord struct {
	Key       string `gorm:"primaryKey;size:64"`
	Value     []byte
	UpdatedAt time.Time
}

// TableName implements the GORM table name override.
func (blobRecord) TableName() string {
	return "blobs"
}

// SQLiteStore is a durable Store backed by a single sqlite file.
type SQLiteStore struct {
	db     *gorm.DB
	mu     sync.Mutex
	closed bool
}

// NewSQLiteStore opens (or creates) the sqlite file at path and ensures the
// blob table exists.
func NewSQLiteStore(path string, gormLog gormlogger.Interface) (*SQLiteStore, error) {
	if path == "" {
		return nil, errors.New("localstore: sqlite path cannot be empty")
	}

	cfg := &gorm.Config{}
	if gormLog != nil {
		cfg.Logger = gormLog
	}

	db, err := gorm.Open(sqlite.Open(path), cfg)
	if err != nil {
		return nil, fmt.Errorf("localstore: failed to open sqlite store: %w", err)
	}

	if err := db.AutoMigrate(&blobRecord{}); err != nil {
		return nil, fmt.Errorf("localstore: failed to migrate blob table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Get implements Store.
func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := s.checkOpen(); err != nil {
		return nil, false, err
	}

	var rec blobRecord
	err := s.db.WithContext(ctx).First(&rec, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("localstore: get %q: %w", key, err)
	}
	return rec.Value, true, nil
}

// Put implements Store.
func (s *SQLiteStore) Put(ctx context.Context, key string, value []byte) error {
	if err := s.checkOpen(); err != nil {
		return err
	}

	rec := blobRecord{Key: key, Value: value, UpdatedAt: time.Now()}
	if err := s.db.WithContext(ctx).Save(&rec).Error; err != nil {
		return fmt.Errorf("localstore: put %q: %w", key, err)
	}
	return nil
}

// Delete implements Store.
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if err := s.checkOpen(); err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Delete(&blobRecord{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("localstore: delete %q: %w", key, err)
	}
	return nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *SQLiteStore) checkOpen() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	return nil
}

// Ensure SQLiteStore implements Store
var _ Store = (*SQLiteStore)(nil)
