package types

// Record is implemented by every entity held in a unique collection.
// IsSame is the weaker identity equality used for uniqueness checks; Equal
// is full field equality used for exact-match removal and replacement.
type Record[T any] interface {
	IsSame(other T) bool
	Equal(other T) bool
}

// Compile-time interface checks.
var (
	_ Record[*Contact]     = (*Contact)(nil)
	_ Record[*Policy]      = (*Policy)(nil)
	_ Record[*Contract]    = (*Contract)(nil)
	_ Record[*Appointment] = (*Appointment)(nil)
)
