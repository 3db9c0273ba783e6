package types

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for use with errors.Is. Typed errors below unwrap to one
// of these.
var (
	ErrValidation     = errors.New("validation failed")
	ErrInvalidPeriod  = errors.New("signing date must be before expiry date")
	ErrDuplicate      = errors.New("duplicate record")
	ErrNotFound       = errors.New("record not found")
	ErrPolicyNotFound = fmt.Errorf("policy %w", ErrNotFound)
	ErrMissingField   = errors.New("missing field")
)

// Entity names used in error messages.
const (
	EntityContact     = "Contact"
	EntityPolicy      = "Policy"
	EntityContract    = "Contract"
	EntityAppointment = "Appointment"
)

// ValidationError reports a field value that fails its format rule.
type ValidationError struct {
	Entity  string
	Field   string
	Message string
}

// Error returns the constraint message alone; Entity and Field are for
// callers that need to locate the offending value.
func (e *ValidationError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("invalid %s %s", lower(e.Entity), e.Field)
	}
	return e.Message
}

// Unwrap returns ErrValidation.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a ValidationError for entity's field.
func NewValidationError(entity, field, message string) error {
	return &ValidationError{Entity: entity, Field: field, Message: message}
}

// InvalidPeriodError reports a contract whose signing date is not strictly
// before its expiry date. It is a cross-field invariant, so it does not
// unwrap to ErrValidation.
type InvalidPeriodError struct {
	Signed Date
	Expiry Date
}

func (e *InvalidPeriodError) Error() string {
	return fmt.Sprintf("signing date %s must be before expiry date %s", e.Signed, e.Expiry)
}

// Unwrap returns ErrInvalidPeriod.
func (e *InvalidPeriodError) Unwrap() error {
	return ErrInvalidPeriod
}

// DuplicateError reports an add, set or replace that would put two
// identity-equal records into one collection.
type DuplicateError struct {
	Entity string
}

func (e *DuplicateError) Error() string {
	return "operation would result in duplicate " + plural(e.Entity)
}

// Unwrap returns ErrDuplicate.
func (e *DuplicateError) Unwrap() error {
	return ErrDuplicate
}

// NotFoundError reports a record absent from its collection. Key names the
// record that was looked up, when one is available.
type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s %q not found", lower(e.Entity), e.Key)
	}
	return lower(e.Entity) + " not found"
}

// Unwrap returns ErrPolicyNotFound for policies and ErrNotFound otherwise.
// ErrPolicyNotFound itself wraps ErrNotFound.
func (e *NotFoundError) Unwrap() error {
	if e.Entity == EntityPolicy {
		return ErrPolicyNotFound
	}
	return ErrNotFound
}

// MissingFieldError reports a persisted record that lacks a required field.
// Only the serialization boundary produces it.
type MissingFieldError struct {
	Entity string
	Field  string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s's %s field is missing!", e.Entity, e.Field)
}

// Unwrap returns ErrMissingField.
func (e *MissingFieldError) Unwrap() error {
	return ErrMissingField
}

// IsUserError reports whether err belongs to the recoverable taxonomy that
// callers surface to the user as-is.
func IsUserError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidPeriod) ||
		errors.Is(err, ErrDuplicate) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrMissingField)
}

func plural(entity string) string {
	l := lower(entity)
	if stem, ok := strings.CutSuffix(l, "y"); ok {
		return stem + "ies"
	}
	return l + "s"
}

func lower(entity string) string {
	if entity == "" {
		return "record"
	}
	b := []byte(entity)
	if b[0] >= 'A' && b[0] <= 'Z' {
		b[0] += 'a' - 'A'
	}
	return string(b)
}
