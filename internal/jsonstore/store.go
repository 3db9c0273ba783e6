// Package jsonstore persists a book as a single JSON document.
//
// The document holds four top-level arrays (contacts, policies, contracts,
// appointments) with every field of every record spelled out. Loading
// re-validates each record through the entity constructors, so bad data on
// disk fails with the same errors as bad interactive input; a record missing
// a required field fails with types.MissingFieldError.
package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/mesh-intelligence/insurebook/pkg/types"
)

// FileName is the document's name inside the data directory.
const FileName = "insurebook.json"

// Store implements types.Storage on a JSON file.
type Store struct {
	mu      sync.Mutex
	dataDir string
	closed  bool
}

var _ types.Storage = (*Store)(nil)

// Open returns a store rooted at dataDir, creating the directory if needed.
// The document itself is created on the first Save.
func Open(dataDir string) (*Store, error) {
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &Store{dataDir: dataDir}, nil
}

// Path returns the document path.
func (s *Store) Path() string {
	return filepath.Join(s.dataDir, FileName)
}

// Load reads and validates the document. A missing document loads as empty
// Data.
func (s *Store) Load() (types.Data, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return types.Data{}, types.ErrStorageClosed
	}

	raw, err := os.ReadFile(s.Path())
	if errors.Is(err, fs.ErrNotExist) {
		return types.Data{}, nil
	}
	if err != nil {
		return types.Data{}, fmt.Errorf("reading %s: %w", FileName, err)
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return types.Data{}, fmt.Errorf("parsing %s: %w", FileName, err)
	}
	return doc.decode()
}

// Save replaces the document with data.
func (s *Store) Save(data types.Data) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return types.ErrStorageClosed
	}

	raw, err := json.MarshalIndent(encode(data), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", FileName, err)
	}
	return writeFileAtomic(s.Path(), append(raw, '\n'))
}

// Close marks the store closed. Idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
