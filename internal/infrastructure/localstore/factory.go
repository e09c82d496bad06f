package localstore

import (
	"fmt"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

// Driver names accepted by Open.
const (
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Options configures Open.
type Options struct {
	// Driver selects the store implementation: sqlite (default) or memory.
	Driver string
	// Path is the sqlite file location; ignored by the memory driver.
	Path string
	// GormLog routes sqlite statement logging; optional.
	GormLog gormlogger.Interface
	// Logger is used for lifecycle messages; optional.
	Logger *zap.Logger
}

// Open creates a Store for the configured driver.
func Open(opts Options) (Store, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	switch opts.Driver {
	case DriverMemory:
		log.Info("Opened in-memory local store")
		return NewMemoryStore(), nil
	case DriverSQLite, "":
		store, err := NewSQLiteStore(opts.Path, opts.GormLog)
		if err != nil {
			return nil, err
		}
		log.Info("Opened sqlite local store", zap.String("path", opts.Path))
		return store, nil
	default:
		return nil, fmt.Errorf("localstore: unknown driver %q", opts.Driver)
	}
}
