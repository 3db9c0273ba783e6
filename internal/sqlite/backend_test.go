package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/insurebook/pkg/types"
)

func setupBackend(t *testing.T) (*Backend, string) {
	t.Helper()
	dir := t.TempDir()
	b, err := Open(dir)
	require.NoError(t, err)
	t.Cleanup(func() { b.Close() })
	return b, dir
}

func mustContact(t *testing.T, name, nric string, tags ...string) *types.Contact {
	t.Helper()
	c, err := types.NewContact(types.ContactInput{
		Name: name, Phone: "91234567", NationalID: nric,
		Email: "x@example.com", Address: "1 Orchard Road", Tags: tags,
	})
	require.NoError(t, err)
	return c
}

func sampleData(t *testing.T) types.Data {
	t.Helper()
	policy, err := types.NewPolicy(types.PolicyInput{
		Name: "Life", Details: "Covers life", ID: "ABC123", Contracts: []string{"CON001"},
	})
	require.NoError(t, err)
	contract, err := types.NewContract(types.ContractInput{
		ID: "CON001", Name: "Zed", NationalID: "S1234567A", PolicyID: "ABC123",
		SignedDate: "2023-01-01", ExpiryDate: "2025-01-01", Premium: "99.999",
	})
	require.NoError(t, err)
	appt, err := types.NewAppointment(types.AppointmentInput{
		ID: "APT001", NationalID: "S1234567A", Date: "2024-06-01", Details: "Annual review",
	})
	require.NoError(t, err)
	return types.Data{
		Contacts: []*types.Contact{
			mustContact(t, "Zed", "S1234567A", "vip", "friend").WithContract("CON001"),
			mustContact(t, "Amy", "T7654321Z"),
		},
		Policies:     []*types.Policy{policy},
		Contracts:    []*types.Contract{contract},
		Appointments: []*types.Appointment{appt},
	}
}

func assertSameData(t *testing.T, want, got types.Data) {
	t.Helper()
	require.Len(t, got.Contacts, len(want.Contacts))
	for i := range want.Contacts {
		assert.True(t, want.Contacts[i].Equal(got.Contacts[i]), "contact %d", i)
	}
	require.Len(t, got.Policies, len(want.Policies))
	for i := range want.Policies {
		assert.True(t, want.Policies[i].Equal(got.Policies[i]), "policy %d", i)
	}
	require.Len(t, got.Contracts, len(want.Contracts))
	for i := range want.Contracts {
		assert.True(t, want.Contracts[i].Equal(got.Contracts[i]), "contract %d", i)
	}
	require.Len(t, got.Appointments, len(want.Appointments))
	for i := range want.Appointments {
		assert.True(t, want.Appointments[i].Equal(got.Appointments[i]), "appointment %d", i)
	}
}

func TestLoadEmptyDatabase(t *testing.T) {
	b, _ := setupBackend(t)
	data, err := b.Load()
	require.NoError(t, err)
	assert.Empty(t, data.Contacts)
	assert.Empty(t, data.Policies)
	assert.Empty(t, data.Contracts)
	assert.Empty(t, data.Appointments)
}

func TestSaveLoadPreservesOrderAndSets(t *testing.T) {
	b, _ := setupBackend(t)
	want := sampleData(t)
	require.NoError(t, b.Save(want))

	got, err := b.Load()
	require.NoError(t, err)
	assertSameData(t, want, got)
	assert.Equal(t, types.Name("Zed"), got.Contacts[0].Name(), "collection order is kept")
	assert.Equal(t, []types.Tag{"friend", "vip"}, got.Contacts[0].Tags())
	assert.Equal(t, "100.00", got.Contracts[0].Premium().String())
}

func TestSaveReplacesPreviousContent(t *testing.T) {
	b, _ := setupBackend(t)
	require.NoError(t, b.Save(sampleData(t)))

	smaller := types.Data{Contacts: []*types.Contact{mustContact(t, "Amy", "T7654321Z")}}
	require.NoError(t, b.Save(smaller))

	got, err := b.Load()
	require.NoError(t, err)
	assertSameData(t, smaller, got)
}

func TestDataSurvivesReopen(t *testing.T) {
	b, dir := setupBackend(t)
	want := sampleData(t)
	require.NoError(t, b.Save(want))
	require.NoError(t, b.Close())

	reopened, err := Open(dir)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Load()
	require.NoError(t, err)
	assertSameData(t, want, got)
}

func TestLoadNullColumnIsMissingField(t *testing.T) {
	tests := []struct {
		name    string
		insert  string
		wantMsg string
	}{
		{
			name:    "contact without email",
			insert:  `INSERT INTO contacts (name, position, phone, nric, address) VALUES ('Amy', 0, '123', 'S1234567A', 'x')`,
			wantMsg: "Contact's email field is missing!",
		},
		{
			name:    "contract without premium",
			insert:  `INSERT INTO contracts (id, position, name, nric, policy_id, signed, expiry) VALUES ('CON001', 0, 'A', 'S1234567A', 'ABC123', '2023-01-01', '2025-01-01')`,
			wantMsg: "Contract's premium field is missing!",
		},
		{
			name:    "appointment without date",
			insert:  `INSERT INTO appointments (id, position, nric, details) VALUES ('APT001', 0, 'S1234567A', 'Review')`,
			wantMsg: "Appointment's date field is missing!",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _ := setupBackend(t)
			_, err := b.db.Exec(tt.insert)
			require.NoError(t, err)

			_, err = b.Load()
			assert.ErrorIs(t, err, types.ErrMissingField)
			assert.EqualError(t, err, tt.wantMsg)
		})
	}
}

func TestLoadInvalidRowUsesConstructorError(t *testing.T) {
	b, _ := setupBackend(t)
	_, err := b.db.Exec(`INSERT INTO policies (id, position, name, details) VALUES ('ABC123', 0, 'Life', '   ')`)
	require.NoError(t, err)

	_, err = b.Load()
	assert.ErrorIs(t, err, types.ErrValidation)
}

func TestClosedBackend(t *testing.T) {
	b, _ := setupBackend(t)
	require.NoError(t, b.Close())
	require.NoError(t, b.Close())

	_, err := b.Load()
	assert.ErrorIs(t, err, types.ErrStorageClosed)
	assert.ErrorIs(t, b.Save(types.Data{}), types.ErrStorageClosed)
}
