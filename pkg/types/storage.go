package types

import "errors"

// Data is the full content of a book: one slice per entity type, in
// collection order.
type Data struct {
	Contacts     []*Contact
	Policies     []*Policy
	Contracts    []*Contract
	Appointments []*Appointment
}

// Storage persists a book's Data. Implementations re-validate every record
// on Load through the entity constructors, so loaded data surfaces the same
// errors as interactive entry.
type Storage interface {
	// Load reads all records. A store that has never been saved loads as
	// empty Data.
	Load() (Data, error)

	// Save replaces the persisted content with data.
	Save(data Data) error

	// Close releases backend resources. Idempotent: multiple calls succeed.
	// After Close, Load and Save return ErrStorageClosed.
	Close() error
}

// Storage lifecycle errors.
var (
	ErrStorageClosed = errors.New("storage is closed")
)
