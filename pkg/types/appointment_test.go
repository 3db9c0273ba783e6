package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAppointment(t *testing.T) {
	a, err := NewAppointment(appointmentInput())
	require.NoError(t, err)
	assert.Equal(t, AppointmentID("APT001"), a.ID())
	assert.Equal(t, "2024-06-01", a.Date().String())

	bad := appointmentInput()
	bad.Details = "Café"
	_, err = NewAppointment(bad)
	assert.ErrorIs(t, err, ErrValidation)

	bad = appointmentInput()
	bad.Date = "2024-06-31"
	_, err = NewAppointment(bad)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAppointmentIdentityIgnoresID(t *testing.T) {
	a := mustAppointment(t, appointmentInput())
	in := appointmentInput()
	in.ID = "APT999"
	b := mustAppointment(t, in)

	assert.True(t, a.IsSame(b))
	assert.False(t, a.Equal(b))
	assert.True(t, a.Equal(a))
	assert.False(t, a.Equal(nil))

	in = appointmentInput()
	in.Date = "2024-06-02"
	assert.False(t, a.IsSame(mustAppointment(t, in)))

	moved := a.WithNationalID("T7654321Z")
	assert.Equal(t, NationalID("T7654321Z"), moved.NationalID())
	assert.False(t, a.IsSame(moved))
}
