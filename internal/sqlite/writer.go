package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/mesh-intelligence/insurebook/pkg/types"
)

// saveData replaces every row with data. Either all rows are written or the
// database is left as it was.
func saveData(db *sql.DB, data types.Data) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning save transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range clearOrder {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	if err := saveContacts(tx, data.Contacts); err != nil {
		return err
	}
	if err := savePolicies(tx, data.Policies); err != nil {
		return err
	}
	if err := saveContracts(tx, data.Contracts); err != nil {
		return err
	}
	if err := saveAppointments(tx, data.Appointments); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing save transaction: %w", err)
	}
	return nil
}

// preparedInsert prepares an insert statement, naming table in errors.
func preparedInsert(tx *sql.Tx, table, query string) (*sql.Stmt, error) {
	stmt, err := tx.Prepare(query)
	if err != nil {
		return nil, fmt.Errorf("preparing insert for %s: %w", table, err)
	}
	return stmt, nil
}

func saveContacts(tx *sql.Tx, contacts []*types.Contact) error {
	stmt, err := preparedInsert(tx, "contacts",
		"INSERT INTO contacts (name, position, phone, nric, email, address) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()
	tagStmt, err := preparedInsert(tx, "contact_tags",
		"INSERT INTO contact_tags (contact_name, tag) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer tagStmt.Close()
	refStmt, err := preparedInsert(tx, "contact_contracts",
		"INSERT INTO contact_contracts (contact_name, contract_id) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer refStmt.Close()

	for i, c := range contacts {
		name := c.Name().String()
		if _, err := stmt.Exec(name, i, c.Phone().String(), c.NationalID().String(),
			c.Email().String(), c.Address().String()); err != nil {
			return fmt.Errorf("inserting contact %q: %w", name, err)
		}
		for _, tag := range c.Tags() {
			if _, err := tagStmt.Exec(name, string(tag)); err != nil {
				return fmt.Errorf("inserting tag for %q: %w", name, err)
			}
		}
		for _, id := range c.Contracts() {
			if _, err := refStmt.Exec(name, id.String()); err != nil {
				return fmt.Errorf("inserting contract reference for %q: %w", name, err)
			}
		}
	}
	return nil
}

func savePolicies(tx *sql.Tx, policies []*types.Policy) error {
	stmt, err := preparedInsert(tx, "policies",
		"INSERT INTO policies (id, position, name, details) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()
	refStmt, err := preparedInsert(tx, "policy_contracts",
		"INSERT INTO policy_contracts (policy_id, contract_id) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer refStmt.Close()

	for i, p := range policies {
		id := p.ID().String()
		if _, err := stmt.Exec(id, i, p.Name().String(), p.Details().String()); err != nil {
			return fmt.Errorf("inserting policy %s: %w", id, err)
		}
		for _, ref := range p.Contracts() {
			if _, err := refStmt.Exec(id, ref.String()); err != nil {
				return fmt.Errorf("inserting contract reference for %s: %w", id, err)
			}
		}
	}
	return nil
}

func saveContracts(tx *sql.Tx, contracts []*types.Contract) error {
	stmt, err := preparedInsert(tx, "contracts",
		`INSERT INTO contracts (id, position, name, nric, policy_id, signed, expiry, premium_cents)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, c := range contracts {
		if _, err := stmt.Exec(c.ID().String(), i, c.Name().String(), c.NationalID().String(),
			c.PolicyID().String(), c.SignedDate().String(), c.ExpiryDate().String(),
			c.Premium().Cents()); err != nil {
			return fmt.Errorf("inserting contract %s: %w", c.ID(), err)
		}
	}
	return nil
}

func saveAppointments(tx *sql.Tx, appointments []*types.Appointment) error {
	stmt, err := preparedInsert(tx, "appointments",
		"INSERT INTO appointments (id, position, nric, date, details) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, a := range appointments {
		if _, err := stmt.Exec(a.ID().String(), i, a.NationalID().String(),
			a.Date().String(), a.Details().String()); err != nil {
			return fmt.Errorf("inserting appointment %s: %w", a.ID(), err)
		}
	}
	return nil
}
