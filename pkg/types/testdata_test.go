package types

import "testing"

func aliceInput() ContactInput {
	return ContactInput{
		Name:       "Alice Tan",
		Phone:      "91234567",
		NationalID: "S1234567A",
		Email:      "alice@example.com",
		Address:    "1 Orchard Road",
		Tags:       []string{"vip"},
	}
}

func lifeInput() PolicyInput {
	return PolicyInput{Name: "Life", Details: "Covers life", ID: "ABC123"}
}

func contractInput() ContractInput {
	return ContractInput{
		ID:         "CON001",
		Name:       "Alice Tan",
		NationalID: "S1234567A",
		PolicyID:   "ABC123",
		SignedDate: "2023-01-01",
		ExpiryDate: "2025-01-01",
		Premium:    "120.50",
	}
}

func appointmentInput() AppointmentInput {
	return AppointmentInput{ID: "APT001", NationalID: "S1234567A", Date: "2024-06-01", Details: "Annual review"}
}

func mustContact(t *testing.T, in ContactInput) *Contact {
	t.Helper()
	c, err := NewContact(in)
	if err != nil {
		t.Fatalf("NewContact: %v", err)
	}
	return c
}

func mustPolicy(t *testing.T, in PolicyInput) *Policy {
	t.Helper()
	p, err := NewPolicy(in)
	if err != nil {
		t.Fatalf("NewPolicy: %v", err)
	}
	return p
}

func mustContract(t *testing.T, in ContractInput) *Contract {
	t.Helper()
	c, err := NewContract(in)
	if err != nil {
		t.Fatalf("NewContract: %v", err)
	}
	return c
}

func mustAppointment(t *testing.T, in AppointmentInput) *Appointment {
	t.Helper()
	a, err := NewAppointment(in)
	if err != nil {
		t.Fatalf("NewAppointment: %v", err)
	}
	return a
}
