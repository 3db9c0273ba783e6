// Package storage opens the persistence backend named by a types.Config.
// It is the public entry point to the backends, whose implementations stay
// internal.
package storage

import (
	"fmt"

	"github.com/mesh-intelligence/insurebook/internal/jsonstore"
	"github.com/mesh-intelligence/insurebook/internal/sqlite"
	"github.com/mesh-intelligence/insurebook/pkg/types"
)

// Open validates cfg and opens its backend rooted at cfg.DataDir.
//
// Example:
//
//	store, err := storage.Open(types.Config{
//	    Backend: types.BackendJSON,
//	    DataDir: "/home/me/.local/share/insurebook",
//	})
//	defer store.Close()
func Open(cfg types.Config) (types.Storage, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid storage config: %w", err)
	}
	switch cfg.Backend {
	case types.BackendSQLite:
		return sqlite.Open(cfg.DataDir)
	default:
		return jsonstore.Open(cfg.DataDir)
	}
}
