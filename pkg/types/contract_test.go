package types

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContract(t *testing.T) {
	c, err := NewContract(contractInput())
	require.NoError(t, err)
	assert.Equal(t, ContractID("CON001"), c.ID())
	assert.Equal(t, PolicyID("ABC123"), c.PolicyID())
	assert.Equal(t, NewDate(2023, time.January, 1), c.SignedDate())
	assert.Equal(t, NewDate(2025, time.January, 1), c.ExpiryDate())
	assert.Equal(t, Premium(12050), c.Premium())
}

func TestNewContractPeriod(t *testing.T) {
	tests := []struct {
		name    string
		signed  string
		expiry  string
		wantErr bool
	}{
		{name: "signed before expiry", signed: "2023-01-01", expiry: "2025-01-01"},
		{name: "swapped dates", signed: "2025-01-01", expiry: "2023-01-01", wantErr: true},
		{name: "same day", signed: "2024-01-01", expiry: "2024-01-01", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := contractInput()
			in.SignedDate = tt.signed
			in.ExpiryDate = tt.expiry
			_, err := NewContract(in)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var pe *InvalidPeriodError
			require.True(t, errors.As(err, &pe))
			assert.ErrorIs(t, err, ErrInvalidPeriod)
			assert.NotErrorIs(t, err, ErrValidation)
			assert.Equal(t, tt.signed, pe.Signed.String())
		})
	}
}

func TestNewContractFieldErrorsPrecedePeriod(t *testing.T) {
	in := contractInput()
	in.SignedDate = "2025-01-01"
	in.ExpiryDate = "2023-01-01"
	in.Premium = "-5"

	_, err := NewContract(in)
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, FieldPremium, ve.Field)
	assert.Equal(t, EntityContract, ve.Entity)
}

func TestNewContractRoundsPremiumUp(t *testing.T) {
	in := contractInput()
	in.Premium = "99.991"
	c := mustContract(t, in)
	assert.Equal(t, "100.00", c.Premium().String())
}

func TestContractEquality(t *testing.T) {
	c := mustContract(t, contractInput())
	assert.True(t, c.Equal(c))
	assert.False(t, c.Equal(nil))

	resigned := contractInput()
	resigned.ID = "CON002"
	resigned.SignedDate = "2025-02-01"
	resigned.ExpiryDate = "2027-02-01"
	resigned.Premium = "200"
	d := mustContract(t, resigned)
	assert.True(t, c.IsSame(d), "same holder and policy collide regardless of dates")
	assert.False(t, c.Equal(d))

	otherPolicy := contractInput()
	otherPolicy.PolicyID = "XYZ789"
	assert.False(t, c.IsSame(mustContract(t, otherPolicy)))

	moved := c.WithHolder("Alice Lim", "T7654321Z")
	assert.Equal(t, NationalID("T7654321Z"), moved.NationalID())
	assert.Equal(t, NationalID("S1234567A"), c.NationalID())
	assert.True(t, mustContract(t, moved.Input()).Equal(moved))
}
