// Package book implements the aggregate that owns the four record
// collections of an insurance book and keeps them consistent.
//
// A Book is the only writable owner of its contacts, policies, contracts and
// appointments. Every operation that touches more than one collection runs
// all-or-nothing: on error each collection is restored to its content before
// the call. A Book is not safe for concurrent use; callers serialize access.
package book

import (
	"log/slog"

	"github.com/mesh-intelligence/insurebook/internal/ids"
	"github.com/mesh-intelligence/insurebook/internal/uniquelist"
	"github.com/mesh-intelligence/insurebook/internal/view"
	"github.com/mesh-intelligence/insurebook/pkg/types"
)

// collection pairs a list with its live view.
type collection[T types.Record[T]] struct {
	list *uniquelist.List[T]
	view *view.View[T]
}

func newCollection[T types.Record[T]](entity string) collection[T] {
	l := uniquelist.New[T](entity)
	return collection[T]{list: l, view: view.New(l.ReadOnly())}
}

// Book owns one unique list per entity type.
type Book struct {
	gen    ids.Generator
	logger *slog.Logger

	contacts     collection[*types.Contact]
	policies     collection[*types.Policy]
	contracts    collection[*types.Contract]
	appointments collection[*types.Appointment]
}

// Option configures a Book.
type Option func(*Book)

// WithGenerator sets the source of random identifiers. The default is
// ids.NewRandom().
func WithGenerator(g ids.Generator) Option {
	return func(b *Book) { b.gen = g }
}

// WithLogger sets the logger used for mutation records. The default discards
// everything.
func WithLogger(l *slog.Logger) Option {
	return func(b *Book) { b.logger = l }
}

// New returns an empty book.
func New(opts ...Option) *Book {
	b := &Book{
		contacts:     newCollection[*types.Contact](types.EntityContact),
		policies:     newCollection[*types.Policy](types.EntityPolicy),
		contracts:    newCollection[*types.Contract](types.EntityContract),
		appointments: newCollection[*types.Appointment](types.EntityAppointment),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.gen == nil {
		b.gen = ids.NewRandom()
	}
	if b.logger == nil {
		b.logger = slog.New(slog.DiscardHandler)
	}
	return b
}

// ResetData replaces the content of all four collections with data. It
// returns a DuplicateError, leaving the book unchanged, if any collection in
// data holds identity-equal records or if two contracts or two appointments
// share an ID.
func (b *Book) ResetData(data types.Data) error {
	if !distinctKeys(data.Contracts, (*types.Contract).ID) {
		return &types.DuplicateError{Entity: types.EntityContract}
	}
	if !distinctKeys(data.Appointments, (*types.Appointment).ID) {
		return &types.DuplicateError{Entity: types.EntityAppointment}
	}
	err := b.atomically(func() error {
		if err := b.contacts.list.ReplaceAll(data.Contacts); err != nil {
			return err
		}
		if err := b.policies.list.ReplaceAll(data.Policies); err != nil {
			return err
		}
		if err := b.contracts.list.ReplaceAll(data.Contracts); err != nil {
			return err
		}
		return b.appointments.list.ReplaceAll(data.Appointments)
	})
	if err != nil {
		return err
	}
	b.logger.Debug("book reset",
		"contacts", len(data.Contacts),
		"policies", len(data.Policies),
		"contracts", len(data.Contracts),
		"appointments", len(data.Appointments))
	return nil
}

// Snapshot returns copies of all four collections.
func (b *Book) Snapshot() types.Data {
	return types.Data{
		Contacts:     b.contacts.list.Items(),
		Policies:     b.policies.list.Items(),
		Contracts:    b.contracts.list.Items(),
		Appointments: b.appointments.list.Items(),
	}
}

// distinctKeys reports whether no two items share a key. Back-references
// point at contracts by ID, so IDs must stay unique alongside identity.
func distinctKeys[T any, K comparable](items []T, key func(T) K) bool {
	seen := make(map[K]struct{}, len(items))
	for _, it := range items {
		k := key(it)
		if _, ok := seen[k]; ok {
			return false
		}
		seen[k] = struct{}{}
	}
	return true
}

// atomically runs fn and, if it fails, restores every collection fn changed.
// Subscribers are held for the duration: a successful fn notifies each
// changed collection once, and a failed fn notifies no one. A rolled-back
// collection keeps its advanced version, so views re-derive the restored
// content.
func (b *Book) atomically(fn func() error) error {
	saved := b.Snapshot()
	versions := [4]uint64{
		b.contacts.list.Version(),
		b.policies.list.Version(),
		b.contracts.list.Version(),
		b.appointments.list.Version(),
	}
	releases := [4]func(bool){
		b.contacts.list.Hold(),
		b.policies.list.Hold(),
		b.contracts.list.Hold(),
		b.appointments.list.Hold(),
	}
	err := fn()
	if err != nil {
		// Restoring a previously valid snapshot cannot fail uniqueness.
		if b.contacts.list.Version() != versions[0] {
			_ = b.contacts.list.ReplaceAll(saved.Contacts)
		}
		if b.policies.list.Version() != versions[1] {
			_ = b.policies.list.ReplaceAll(saved.Policies)
		}
		if b.contracts.list.Version() != versions[2] {
			_ = b.contracts.list.ReplaceAll(saved.Contracts)
		}
		if b.appointments.list.Version() != versions[3] {
			_ = b.appointments.list.ReplaceAll(saved.Appointments)
		}
	}
	for _, release := range releases {
		release(err == nil)
	}
	return err
}
