package book

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/insurebook/internal/ids"
	"github.com/mesh-intelligence/insurebook/pkg/types"
)

func newTestBook() *Book {
	return New(WithGenerator(ids.NewSeeded(7)))
}

func contact(t *testing.T, name, nric string) *types.Contact {
	t.Helper()
	c, err := types.NewContact(types.ContactInput{
		Name:       name,
		Phone:      "91234567",
		NationalID: nric,
		Email:      "someone@example.com",
		Address:    "1 Orchard Road",
	})
	require.NoError(t, err)
	return c
}

func policy(t *testing.T, id, name, details string) *types.Policy {
	t.Helper()
	p, err := types.NewPolicy(types.PolicyInput{ID: id, Name: name, Details: details})
	require.NoError(t, err)
	return p
}

func contract(t *testing.T, id, holder, nric, policyID string) *types.Contract {
	t.Helper()
	c, err := types.NewContract(types.ContractInput{
		ID:         id,
		Name:       holder,
		NationalID: nric,
		PolicyID:   policyID,
		SignedDate: "2023-01-01",
		ExpiryDate: "2025-01-01",
		Premium:    "100",
	})
	require.NoError(t, err)
	return c
}

func appointment(t *testing.T, id, nric, date, details string) *types.Appointment {
	t.Helper()
	a, err := types.NewAppointment(types.AppointmentInput{ID: id, NationalID: nric, Date: date, Details: details})
	require.NoError(t, err)
	return a
}

func storedPolicy(t *testing.T, b *Book, id types.PolicyID) *types.Policy {
	t.Helper()
	p, ok := b.PolicyByID(id)
	require.True(t, ok, "policy %s should exist", id)
	return p
}

func storedContact(t *testing.T, b *Book, name types.Name) *types.Contact {
	t.Helper()
	c, ok := b.ContactByName(name)
	require.True(t, ok, "contact %s should exist", name)
	return c
}
