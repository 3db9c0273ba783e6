package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/mesh-intelligence/insurebook/internal/book"
	"github.com/mesh-intelligence/insurebook/internal/paths"
	"github.com/mesh-intelligence/insurebook/pkg/storage"
	"github.com/mesh-intelligence/insurebook/pkg/types"
)

// session is a book loaded from storage for the duration of one command.
type session struct {
	store  types.Storage
	book   *book.Book
	logger *slog.Logger
}

// dataDir resolves the data directory from flag, env and config.
func (a *app) dataDir() (string, error) {
	dir, err := paths.ResolveDataDir(a.flags.dataDir, a.cfg.DataDir)
	if err != nil {
		return "", fmt.Errorf("resolve data directory: %w", err)
	}
	return dir, nil
}

// openStorage opens the configured backend. The caller must close it.
func (a *app) openStorage() (types.Storage, string, error) {
	dir, err := a.dataDir()
	if err != nil {
		return nil, "", err
	}
	store, err := storage.Open(types.Config{Backend: a.cfg.Backend, DataDir: dir})
	if err != nil {
		return nil, "", fmt.Errorf("open storage: %w", err)
	}
	return store, dir, nil
}

// open loads the book from storage. The caller must close the session.
func (a *app) open() (*session, error) {
	store, dir, err := a.openStorage()
	if err != nil {
		return nil, err
	}
	data, err := store.Load()
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("load book: %w", err)
	}
	b := book.New(book.WithLogger(a.logger))
	if err := b.ResetData(data); err != nil {
		store.Close()
		return nil, fmt.Errorf("load book: %w", err)
	}
	a.logger.Info("book loaded",
		"backend", a.cfg.Backend,
		"data_dir", dir,
		"contacts", len(data.Contacts),
		"policies", len(data.Policies),
		"contracts", len(data.Contracts),
		"appointments", len(data.Appointments))
	return &session{store: store, book: b, logger: a.logger}, nil
}

// save writes the book back to storage.
func (s *session) save() error {
	data := s.book.Snapshot()
	if err := s.store.Save(data); err != nil {
		return fmt.Errorf("save book: %w", err)
	}
	s.logger.Info("book saved",
		"contacts", len(data.Contacts),
		"policies", len(data.Policies),
		"contracts", len(data.Contracts),
		"appointments", len(data.Appointments))
	return nil
}

func (s *session) Close() error {
	return s.store.Close()
}

// mutate opens the book, applies fn and saves. Nothing is saved if fn fails.
func (a *app) mutate(fn func(b *book.Book) error) (err error) {
	s, err := a.open()
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, s.Close())
	}()
	if err := fn(s.book); err != nil {
		return err
	}
	return s.save()
}

// read opens the book and applies fn without saving.
func (a *app) read(fn func(b *book.Book) error) (err error) {
	s, err := a.open()
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, s.Close())
	}()
	return fn(s.book)
}
