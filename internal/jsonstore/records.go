package jsonstore

import (
	"encoding/json"

	"github.com/mesh-intelligence/insurebook/pkg/types"
)

// document is the on-disk shape: one object with four top-level arrays.
type document struct {
	Contacts     []contactJSON     `json:"contacts"`
	Policies     []policyJSON      `json:"policies"`
	Contracts    []contractJSON    `json:"contracts"`
	Appointments []appointmentJSON `json:"appointments"`
}

// Pointer fields distinguish a missing field from an empty one. Tag and
// contract lists may be omitted and load as empty.

type contactJSON struct {
	Name      *string  `json:"name"`
	Phone     *string  `json:"phone"`
	NRIC      *string  `json:"nric"`
	Email     *string  `json:"email"`
	Address   *string  `json:"address"`
	Tags      []string `json:"tags"`
	Contracts []string `json:"contracts"`
}

type policyJSON struct {
	Name      *string  `json:"name"`
	Details   *string  `json:"details"`
	ID        *string  `json:"id"`
	Contracts []string `json:"contracts"`
}

type contractJSON struct {
	ID      *string      `json:"id"`
	Name    *string      `json:"name"`
	NRIC    *string      `json:"nric"`
	Policy  *string      `json:"policy"`
	Signed  *string      `json:"signed"`
	Expiry  *string      `json:"expiry"`
	Premium *json.Number `json:"premium"`
}

type appointmentJSON struct {
	ID      *string `json:"id"`
	NRIC    *string `json:"nric"`
	Date    *string `json:"date"`
	Details *string `json:"details"`
}

// field is one required value of a record, named as it is persisted.
type field struct {
	name  string
	value *string
}

// requireFields returns a MissingFieldError for the first nil field, in order.
func requireFields(entity string, fields ...field) error {
	for _, f := range fields {
		if f.value == nil {
			return &types.MissingFieldError{Entity: entity, Field: f.name}
		}
	}
	return nil
}

func (r contactJSON) toContact() (*types.Contact, error) {
	if err := requireFields(types.EntityContact,
		field{types.FieldName, r.Name},
		field{types.FieldPhone, r.Phone},
		field{types.FieldNationalID, r.NRIC},
		field{types.FieldEmail, r.Email},
		field{types.FieldAddress, r.Address},
	); err != nil {
		return nil, err
	}
	return types.NewContact(types.ContactInput{
		Name:       *r.Name,
		Phone:      *r.Phone,
		NationalID: *r.NRIC,
		Email:      *r.Email,
		Address:    *r.Address,
		Tags:       r.Tags,
		Contracts:  r.Contracts,
	})
}

func fromContact(c *types.Contact) contactJSON {
	in := c.Input()
	return contactJSON{
		Name:      &in.Name,
		Phone:     &in.Phone,
		NRIC:      &in.NationalID,
		Email:     &in.Email,
		Address:   &in.Address,
		Tags:      in.Tags,
		Contracts: in.Contracts,
	}
}

func (r policyJSON) toPolicy() (*types.Policy, error) {
	if err := requireFields(types.EntityPolicy,
		field{types.FieldName, r.Name},
		field{types.FieldDetails, r.Details},
		field{types.FieldID, r.ID},
	); err != nil {
		return nil, err
	}
	return types.NewPolicy(types.PolicyInput{
		Name:      *r.Name,
		Details:   *r.Details,
		ID:        *r.ID,
		Contracts: r.Contracts,
	})
}

func fromPolicy(p *types.Policy) policyJSON {
	in := p.Input()
	return policyJSON{Name: &in.Name, Details: &in.Details, ID: &in.ID, Contracts: in.Contracts}
}

func (r contractJSON) toContract() (*types.Contract, error) {
	var premium *string
	if r.Premium != nil {
		s := r.Premium.String()
		premium = &s
	}
	if err := requireFields(types.EntityContract,
		field{types.FieldID, r.ID},
		field{types.FieldName, r.Name},
		field{types.FieldNationalID, r.NRIC},
		field{types.FieldPolicyID, r.Policy},
		field{types.FieldSignedDate, r.Signed},
		field{types.FieldExpiryDate, r.Expiry},
		field{types.FieldPremium, premium},
	); err != nil {
		return nil, err
	}
	return types.NewContract(types.ContractInput{
		ID:         *r.ID,
		Name:       *r.Name,
		NationalID: *r.NRIC,
		PolicyID:   *r.Policy,
		SignedDate: *r.Signed,
		ExpiryDate: *r.Expiry,
		Premium:    *premium,
	})
}

func fromContract(c *types.Contract) contractJSON {
	in := c.Input()
	premium := json.Number(in.Premium)
	return contractJSON{
		ID:      &in.ID,
		Name:    &in.Name,
		NRIC:    &in.NationalID,
		Policy:  &in.PolicyID,
		Signed:  &in.SignedDate,
		Expiry:  &in.ExpiryDate,
		Premium: &premium,
	}
}

func (r appointmentJSON) toAppointment() (*types.Appointment, error) {
	if err := requireFields(types.EntityAppointment,
		field{types.FieldID, r.ID},
		field{types.FieldNationalID, r.NRIC},
		field{types.FieldDate, r.Date},
		field{types.FieldDetails, r.Details},
	); err != nil {
		return nil, err
	}
	return types.NewAppointment(types.AppointmentInput{
		ID:         *r.ID,
		NationalID: *r.NRIC,
		Date:       *r.Date,
		Details:    *r.Details,
	})
}

func fromAppointment(a *types.Appointment) appointmentJSON {
	in := a.Input()
	return appointmentJSON{ID: &in.ID, NRIC: &in.NationalID, Date: &in.Date, Details: &in.Details}
}

// decode converts a document into Data, validating every record.
func (d document) decode() (types.Data, error) {
	var data types.Data
	for _, r := range d.Contacts {
		c, err := r.toContact()
		if err != nil {
			return types.Data{}, err
		}
		data.Contacts = append(data.Contacts, c)
	}
	for _, r := range d.Policies {
		p, err := r.toPolicy()
		if err != nil {
			return types.Data{}, err
		}
		data.Policies = append(data.Policies, p)
	}
	for _, r := range d.Contracts {
		c, err := r.toContract()
		if err != nil {
			return types.Data{}, err
		}
		data.Contracts = append(data.Contracts, c)
	}
	for _, r := range d.Appointments {
		a, err := r.toAppointment()
		if err != nil {
			return types.Data{}, err
		}
		data.Appointments = append(data.Appointments, a)
	}
	return data, nil
}

// encode converts Data into a document. Empty collections encode as empty
// arrays, never null.
func encode(data types.Data) document {
	d := document{
		Contacts:     make([]contactJSON, 0, len(data.Contacts)),
		Policies:     make([]policyJSON, 0, len(data.Policies)),
		Contracts:    make([]contractJSON, 0, len(data.Contracts)),
		Appointments: make([]appointmentJSON, 0, len(data.Appointments)),
	}
	for _, c := range data.Contacts {
		d.Contacts = append(d.Contacts, fromContact(c))
	}
	for _, p := range data.Policies {
		d.Policies = append(d.Policies, fromPolicy(p))
	}
	for _, c := range data.Contracts {
		d.Contracts = append(d.Contracts, fromContract(c))
	}
	for _, a := range data.Appointments {
		d.Appointments = append(d.Appointments, fromAppointment(a))
	}
	return d
}
