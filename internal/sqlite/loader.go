package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/mesh-intelligence/insurebook/pkg/types"
)

// loadData reads all tables inside one read transaction.
func loadData(db *sql.DB) (types.Data, error) {
	tx, err := db.Begin()
	if err != nil {
		return types.Data{}, fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	var data types.Data
	if data.Contacts, err = loadContacts(tx); err != nil {
		return types.Data{}, err
	}
	if data.Policies, err = loadPolicies(tx); err != nil {
		return types.Data{}, err
	}
	if data.Contracts, err = loadContracts(tx); err != nil {
		return types.Data{}, err
	}
	if data.Appointments, err = loadAppointments(tx); err != nil {
		return types.Data{}, err
	}
	return data, nil
}

// nullField pairs a scanned column with the field name it reports as
// missing.
type nullField struct {
	name  string
	value sql.NullString
}

// present returns a MissingFieldError for the first NULL column.
func present(entity string, fields ...*nullField) error {
	for _, f := range fields {
		if !f.value.Valid {
			return &types.MissingFieldError{Entity: entity, Field: f.name}
		}
	}
	return nil
}

// loadSets reads a two-column child table into key -> values.
func loadSets(tx *sql.Tx, query string) (map[string][]string, error) {
	rows, err := tx.Query(query)
	if err != nil {
		return nil, fmt.Errorf("querying %q: %w", query, err)
	}
	defer rows.Close()

	out := make(map[string][]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scanning set row: %w", err)
		}
		out[key] = append(out[key], value)
	}
	return out, rows.Err()
}

func loadContacts(tx *sql.Tx) ([]*types.Contact, error) {
	tags, err := loadSets(tx, "SELECT contact_name, tag FROM contact_tags")
	if err != nil {
		return nil, err
	}
	contracts, err := loadSets(tx, "SELECT contact_name, contract_id FROM contact_contracts")
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query("SELECT name, phone, nric, email, address FROM contacts ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("querying contacts: %w", err)
	}
	defer rows.Close()

	var out []*types.Contact
	for rows.Next() {
		var name string
		phone := &nullField{name: types.FieldPhone}
		nric := &nullField{name: types.FieldNationalID}
		email := &nullField{name: types.FieldEmail}
		address := &nullField{name: types.FieldAddress}
		if err := rows.Scan(&name, &phone.value, &nric.value, &email.value, &address.value); err != nil {
			return nil, fmt.Errorf("scanning contact: %w", err)
		}
		if err := present(types.EntityContact, phone, nric, email, address); err != nil {
			return nil, err
		}
		c, err := types.NewContact(types.ContactInput{
			Name:       name,
			Phone:      phone.value.String,
			NationalID: nric.value.String,
			Email:      email.value.String,
			Address:    address.value.String,
			Tags:       tags[name],
			Contracts:  contracts[name],
		})
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func loadPolicies(tx *sql.Tx) ([]*types.Policy, error) {
	contracts, err := loadSets(tx, "SELECT policy_id, contract_id FROM policy_contracts")
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query("SELECT id, name, details FROM policies ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("querying policies: %w", err)
	}
	defer rows.Close()

	var out []*types.Policy
	for rows.Next() {
		var id string
		name := &nullField{name: types.FieldName}
		details := &nullField{name: types.FieldDetails}
		if err := rows.Scan(&id, &name.value, &details.value); err != nil {
			return nil, fmt.Errorf("scanning policy: %w", err)
		}
		if err := present(types.EntityPolicy, name, details); err != nil {
			return nil, err
		}
		p, err := types.NewPolicy(types.PolicyInput{
			ID:        id,
			Name:      name.value.String,
			Details:   details.value.String,
			Contracts: contracts[id],
		})
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func loadContracts(tx *sql.Tx) ([]*types.Contract, error) {
	rows, err := tx.Query(`SELECT id, name, nric, policy_id, signed, expiry, premium_cents
		FROM contracts ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying contracts: %w", err)
	}
	defer rows.Close()

	var out []*types.Contract
	for rows.Next() {
		var (
			id      string
			premium sql.NullInt64
		)
		name := &nullField{name: types.FieldName}
		nric := &nullField{name: types.FieldNationalID}
		policy := &nullField{name: types.FieldPolicyID}
		signed := &nullField{name: types.FieldSignedDate}
		expiry := &nullField{name: types.FieldExpiryDate}
		if err := rows.Scan(&id, &name.value, &nric.value, &policy.value,
			&signed.value, &expiry.value, &premium); err != nil {
			return nil, fmt.Errorf("scanning contract: %w", err)
		}
		if err := present(types.EntityContract, name, nric, policy, signed, expiry); err != nil {
			return nil, err
		}
		if !premium.Valid {
			return nil, &types.MissingFieldError{Entity: types.EntityContract, Field: types.FieldPremium}
		}
		c, err := types.NewContract(types.ContractInput{
			ID:         id,
			Name:       name.value.String,
			NationalID: nric.value.String,
			PolicyID:   policy.value.String,
			SignedDate: signed.value.String,
			ExpiryDate: expiry.value.String,
			Premium:    types.Premium(premium.Int64).String(),
		})
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func loadAppointments(tx *sql.Tx) ([]*types.Appointment, error) {
	rows, err := tx.Query("SELECT id, nric, date, details FROM appointments ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("querying appointments: %w", err)
	}
	defer rows.Close()

	var out []*types.Appointment
	for rows.Next() {
		var id string
		nric := &nullField{name: types.FieldNationalID}
		date := &nullField{name: types.FieldDate}
		details := &nullField{name: types.FieldDetails}
		if err := rows.Scan(&id, &nric.value, &date.value, &details.value); err != nil {
			return nil, fmt.Errorf("scanning appointment: %w", err)
		}
		if err := present(types.EntityAppointment, nric, date, details); err != nil {
			return nil, err
		}
		a, err := types.NewAppointment(types.AppointmentInput{
			ID:         id,
			NationalID: nric.value.String,
			Date:       date.value.String,
			Details:    details.value.String,
		})
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
