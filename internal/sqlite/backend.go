// Package sqlite implements types.Storage on a SQLite database.
//
// Each entity type has its own table, with the contact tag set and the
// contact and policy contract-reference sets in child tables. Save replaces
// every row inside one transaction; Load rebuilds each record through the
// entity constructors, so the error taxonomy matches the JSON store.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/insurebook/pkg/types"
)

// FileName is the database's name inside the data directory.
const FileName = "insurebook.db"

// Backend implements types.Storage using SQLite.
type Backend struct {
	mu     sync.Mutex
	db     *sql.DB
	path   string
	closed bool
}

var _ types.Storage = (*Backend)(nil)

// Open opens (creating if needed) the database in dataDir and applies the
// schema.
func Open(dataDir string) (*Backend, error) {
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	path := filepath.Join(dataDir, FileName)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", FileName, err)
	}
	// One connection keeps PRAGMA settings and transactions on the same handle.
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Backend{db: db, path: path}, nil
}

func initSchema(db *sql.DB) error {
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("enabling foreign keys: %w", err)
	}
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	for _, ddl := range indexDDL {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("creating index: %w", err)
		}
	}
	return nil
}

// Path returns the database file path.
func (b *Backend) Path() string {
	return b.path
}

// Load reads every record. An empty database loads as empty Data.
func (b *Backend) Load() (types.Data, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return types.Data{}, types.ErrStorageClosed
	}
	return loadData(b.db)
}

// Save replaces every row with data in one transaction.
func (b *Backend) Save(data types.Data) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return types.ErrStorageClosed
	}
	return saveData(b.db, data)
}

// Close releases the database. Idempotent.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	return b.db.Close()
}
