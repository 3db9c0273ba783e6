package book

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/insurebook/internal/ids"
	"github.com/mesh-intelligence/insurebook/pkg/types"
)

func TestNewDefaults(t *testing.T) {
	b := New()
	assert.NotNil(t, b.gen)
	assert.NotNil(t, b.logger)
	assert.Equal(t, 0, b.Contacts().Len())
	assert.True(t, ids.IsValidID(string(b.GenerateUniquePolicyID())))
}

func TestResetDataAndSnapshot(t *testing.T) {
	b := newTestBook()
	data := types.Data{
		Contacts:     []*types.Contact{contact(t, "Alice Tan", "S1234567A")},
		Policies:     []*types.Policy{policy(t, "ABC123", "Life", "Covers life")},
		Contracts:    []*types.Contract{contract(t, "CON001", "Alice Tan", "S1234567A", "ABC123")},
		Appointments: []*types.Appointment{appointment(t, "APT001", "S1234567A", "2024-06-01", "Review")},
	}
	require.NoError(t, b.ResetData(data))

	snap := b.Snapshot()
	assert.Len(t, snap.Contacts, 1)
	assert.Len(t, snap.Policies, 1)
	assert.Len(t, snap.Contracts, 1)
	assert.Len(t, snap.Appointments, 1)

	snap.Contacts[0] = nil
	assert.NotNil(t, b.Contacts().At(0), "snapshot must be a copy")
}

func TestResetDataIsAllOrNothing(t *testing.T) {
	b := newTestBook()
	require.NoError(t, b.AddContact(contact(t, "Alice Tan", "S1234567A")))
	before := b.Snapshot()

	err := b.ResetData(types.Data{
		Contacts: []*types.Contact{contact(t, "Bob Lim", "T7654321Z")},
		Appointments: []*types.Appointment{
			appointment(t, "APT001", "S1234567A", "2024-06-01", "Review"),
			appointment(t, "APT002", "S1234567A", "2024-06-01", "Review"),
		},
	})
	require.ErrorIs(t, err, types.ErrDuplicate)
	assert.Equal(t, before, b.Snapshot())
}

func TestResetDataRejectsSharedIDs(t *testing.T) {
	tests := []struct {
		name string
		data types.Data
	}{
		{
			name: "contracts",
			data: types.Data{Contracts: []*types.Contract{
				contract(t, "CON001", "Alice Tan", "S1234567A", "ABC123"),
				contract(t, "CON001", "Bob Lim", "T7654321Z", "ABC123"),
			}},
		},
		{
			name: "appointments",
			data: types.Data{Appointments: []*types.Appointment{
				appointment(t, "APT001", "S1234567A", "2024-06-01", "Review"),
				appointment(t, "APT001", "T7654321Z", "2024-07-01", "Claim"),
			}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBook()
			require.NoError(t, b.AddContact(contact(t, "Alice Tan", "S1234567A")))
			before := b.Snapshot()

			require.ErrorIs(t, b.ResetData(tt.data), types.ErrDuplicate)
			assert.Equal(t, before, b.Snapshot())
		})
	}
}

func TestAtomicOperationsNotifyOnce(t *testing.T) {
	b := newTestBook()
	require.NoError(t, b.AddPolicy(policy(t, "ABC123", "Life", "Covers life")))
	require.NoError(t, b.AddContact(contact(t, "Alice Tan", "S1234567A")))
	require.NoError(t, b.AddContact(contact(t, "Bob Lim", "T7654321Z")))
	require.NoError(t, b.AddContractLinkingContactAndPolicy(contract(t, "CON001", "Alice Tan", "S1234567A", "ABC123")))
	require.NoError(t, b.AddContractLinkingContactAndPolicy(contract(t, "CON002", "Bob Lim", "T7654321Z", "ABC123")))

	var contacts, contracts int
	b.FilteredContacts().Subscribe(func() { contacts++ })
	b.FilteredContracts().Subscribe(func() { contracts++ })

	// Re-pointing Alice's contract onto Bob's national ID collides midway.
	err := b.SetContact(storedContact(t, b, "Alice Tan"), contact(t, "Alice Tan", "T7654321Z"))
	require.ErrorIs(t, err, types.ErrDuplicate)
	assert.Zero(t, contacts, "failed operations notify no one")
	assert.Zero(t, contracts)

	require.NoError(t, b.SetContact(storedContact(t, b, "Alice Tan"), contact(t, "Alice Lim", "S1234567A")))
	assert.Equal(t, 1, contacts)
	assert.Equal(t, 1, contracts)
}

func TestMutationsAreLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	b := New(WithLogger(logger))

	require.NoError(t, b.AddContact(contact(t, "Alice Tan", "S1234567A")))
	assert.True(t, strings.Contains(buf.String(), "contact added"), buf.String())
}
