package database

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"gorm.io/gorm"
)

// Config contains database connection options.
type Config struct {
	Driver string
	Path   string // SQLite database path when Driver == sqlite
	DSN    string // Optional DSN override

	Host     string
	Port     int
	Name     string
	User     string
	Password string
	Options  map[string]string
}

// Open initialises a gorm.DB using the provided configuration.
func Open(cfg Config) (*gorm.DB, error) {
	driver := strings.ToLower(cfg.Driver)
	if driver == "" {
		driver = "sqlite"
	}

	switch driver {
	case "sqlite":
		return openSQLite(cfg)
	case "postgres", "postgresql":
		return openPostgres(cfg)
	case "mysql":
		return openMySQL(cfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

var (
	handleMu sync.RWMutex
	handle   *gorm.DB
)

// Connect lazily establishes the process-wide database handle. The first
// caller opens the connection; later callers reuse it. Double-checked so
// concurrent first requests open exactly one handle.
func Connect(cfg Config) (*gorm.DB, error) {
	handleMu.RLock()
	db := handle
	handleMu.RUnlock()
	if db != nil {
		return db, nil
	}

	handleMu.Lock()
	defer handleMu.Unlock()

	if handle != nil {
		return handle, nil
	}

	db, err := Open(cfg)
	if err != nil {
		return nil, err
	}

	handle = db
	return handle, nil
}

// Handle returns the shared database handle, or nil before Connect succeeds.
func Handle() *gorm.DB {
	handleMu.RLock()
	defer handleMu.RUnlock()

	return handle
}

// Shutdown closes the shared handle and clears it so a later Connect can
// re-establish the connection.
func Shutdown() error {
	handleMu.Lock()
	defer handleMu.Unlock()

	if handle == nil {
		return nil
	}

	sqlDB, err := handle.DB()
	handle = nil
	if err != nil {
		return fmt.Errorf("obtain sql db: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}

// sortedKeys keeps generated DSNs deterministic across restarts.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// AutoMigrateAndSeed convenience helper used during application start-up.
func AutoMigrateAndSeed(db *gorm.DB) error {
	if db == nil {
		return errors.New("nil database handle")
	}

	if err := AutoMigrate(db); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	return nil
}
