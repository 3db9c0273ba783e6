package jsonstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/insurebook/pkg/types"
)

// BackupDir is the backup directory inside the data directory.
const BackupDir = "backups"

// ErrNothingToBackup is returned by Backup before the first Save.
var ErrNothingToBackup = errors.New("no saved data to back up")

// Backup describes one backup file. IDs are UUID v7, so they sort in
// creation order.
type Backup struct {
	ID        uuid.UUID
	Path      string
	CreatedAt time.Time
}

// Backup copies the current document to backups/<uuid>.json.
func (s *Store) Backup() (Backup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return Backup{}, types.ErrStorageClosed
	}

	raw, err := os.ReadFile(s.Path())
	if errors.Is(err, fs.ErrNotExist) {
		return Backup{}, ErrNothingToBackup
	}
	if err != nil {
		return Backup{}, fmt.Errorf("reading %s: %w", FileName, err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return Backup{}, fmt.Errorf("generating backup id: %w", err)
	}
	dir := filepath.Join(s.dataDir, BackupDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Backup{}, fmt.Errorf("creating backup directory: %w", err)
	}
	b := newBackup(dir, id)
	if err := writeFileAtomic(b.Path, raw); err != nil {
		return Backup{}, err
	}
	return b, nil
}

// ListBackups returns the backups in creation order. Files whose names are
// not UUID v7 are ignored.
func (s *Store) ListBackups() ([]Backup, error) {
	dir := filepath.Join(s.dataDir, BackupDir)
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading backups: %w", err)
	}

	var out []Backup
	for _, e := range entries {
		name, ok := strings.CutSuffix(e.Name(), ".json")
		if e.IsDir() || !ok {
			continue
		}
		id, err := uuid.Parse(name)
		if err != nil || id.Version() != 7 {
			continue
		}
		out = append(out, newBackup(dir, id))
	}
	slices.SortFunc(out, func(a, b Backup) int { return strings.Compare(a.ID.String(), b.ID.String()) })
	return out, nil
}

func newBackup(dir string, id uuid.UUID) Backup {
	sec, nsec := id.Time().UnixTime()
	return Backup{
		ID:        id,
		Path:      filepath.Join(dir, id.String()+".json"),
		CreatedAt: time.Unix(sec, nsec).UTC(),
	}
}
