package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/insurebook/internal/jsonstore"
)

// backupStore is implemented by backends that keep file backups.
type backupStore interface {
	Backup() (jsonstore.Backup, error)
	ListBackups() ([]jsonstore.Backup, error)
}

type backupOut struct {
	ID        string    `json:"id" yaml:"id"`
	Path      string    `json:"path" yaml:"path"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

func newBackupOut(b jsonstore.Backup) backupOut {
	return backupOut{ID: b.ID.String(), Path: b.Path, CreatedAt: b.CreatedAt}
}

func (a *app) newBackupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Create and list backups of the book",
	}
	cmd.AddCommand(a.newBackupCreateCmd(), a.newBackupListCmd())
	return cmd
}

// withBackups opens the configured storage and calls fn with it if the
// backend supports backups.
func (a *app) withBackups(fn func(backupStore) error) (err error) {
	store, _, err := a.openStorage()
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, store.Close())
	}()
	bs, ok := store.(backupStore)
	if !ok {
		return userErrorf("the %s backend does not support backups", a.cfg.Backend)
	}
	return fn(bs)
}

func (a *app) newBackupCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Back up the saved book",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var b jsonstore.Backup
			err := a.withBackups(func(bs backupStore) error {
				var err error
				b, err = bs.Backup()
				if errors.Is(err, jsonstore.ErrNothingToBackup) {
					return &userError{err: err}
				}
				return err
			})
			if err != nil {
				return err
			}
			a.logger.Info("backup created", "id", b.ID.String(), "path", b.Path)
			return a.emit(cmd.OutOrStdout(), newBackupOut(b), func(w io.Writer) {
				fmt.Fprintf(w, "Backup created: %s\n", b.Path)
			})
		},
	}
}

func (a *app) newBackupListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List backups, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var backups []jsonstore.Backup
			err := a.withBackups(func(bs backupStore) error {
				var err error
				backups, err = bs.ListBackups()
				return err
			})
			if err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), mapSlice(backups, newBackupOut), func(w io.Writer) {
				rows := mapSlice(backups, func(b jsonstore.Backup) []string {
					return []string{b.ID.String(), b.CreatedAt.Format(time.RFC3339), b.Path}
				})
				printTable(w, "backup", []string{"ID", "CREATED", "PATH"}, rows)
			})
		},
	}
}

var _ backupStore = (*jsonstore.Store)(nil)
