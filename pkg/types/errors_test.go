package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		is      error
		message string
	}{
		{
			name:    "validation message is the constraint",
			err:     NewValidationError(EntityContact, FieldPhone, MessagePhone),
			is:      ErrValidation,
			message: MessagePhone,
		},
		{
			name:    "validation without message",
			err:     &ValidationError{Entity: EntityPolicy, Field: FieldName},
			is:      ErrValidation,
			message: "invalid policy name",
		},
		{
			name:    "duplicate",
			err:     &DuplicateError{Entity: EntityContract},
			is:      ErrDuplicate,
			message: "operation would result in duplicate contracts",
		},
		{
			name:    "duplicate policy",
			err:     &DuplicateError{Entity: EntityPolicy},
			is:      ErrDuplicate,
			message: "operation would result in duplicate policies",
		},
		{
			name:    "not found with key",
			err:     &NotFoundError{Entity: EntityAppointment, Key: "APT001"},
			is:      ErrNotFound,
			message: `appointment "APT001" not found`,
		},
		{
			name:    "policy not found",
			err:     &NotFoundError{Entity: EntityPolicy, Key: "ABC123"},
			is:      ErrPolicyNotFound,
			message: `policy "ABC123" not found`,
		},
		{
			name:    "missing field",
			err:     &MissingFieldError{Entity: EntityContact, Field: FieldEmail},
			is:      ErrMissingField,
			message: "Contact's email field is missing!",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.is)
			assert.Equal(t, tt.message, tt.err.Error())
			assert.True(t, IsUserError(fmt.Errorf("wrapped: %w", tt.err)))
		})
	}
}

func TestPolicyNotFoundIsNotFound(t *testing.T) {
	err := &NotFoundError{Entity: EntityPolicy}
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, &NotFoundError{Entity: EntityContact}, ErrPolicyNotFound)
}

func TestIsUserErrorRejectsOtherErrors(t *testing.T) {
	assert.False(t, IsUserError(errors.New("disk full")))
	assert.False(t, IsUserError(nil))
}
