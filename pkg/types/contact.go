package types

import (
	"fmt"
	"slices"
	"strings"
)

// ContactInput carries the raw field values of a contact before validation.
type ContactInput struct {
	Name       string
	Phone      string
	NationalID string
	Email      string
	Address    string
	Tags       []string
	Contracts  []string
}

// Contact is a person in the book. Contacts are immutable; edits build a new
// value that replaces the old one.
type Contact struct {
	name       Name
	phone      Phone
	nationalID NationalID
	email      Email
	address    Address
	tags       []Tag
	contracts  []ContractID
}

// NewContact validates every field of in and returns the contact. The first
// failing field determines the returned ValidationError.
func NewContact(in ContactInput) (*Contact, error) {
	name, err := ParseName(in.Name)
	if err != nil {
		return nil, withEntity(EntityContact, err)
	}
	phone, err := ParsePhone(in.Phone)
	if err != nil {
		return nil, withEntity(EntityContact, err)
	}
	nric, err := ParseNationalID(in.NationalID)
	if err != nil {
		return nil, withEntity(EntityContact, err)
	}
	email, err := ParseEmail(in.Email)
	if err != nil {
		return nil, withEntity(EntityContact, err)
	}
	address, err := ParseAddress(in.Address)
	if err != nil {
		return nil, withEntity(EntityContact, err)
	}
	tags, err := ParseTags(in.Tags)
	if err != nil {
		return nil, withEntity(EntityContact, err)
	}
	contracts, err := ParseContractIDs(in.Contracts)
	if err != nil {
		return nil, withEntity(EntityContact, err)
	}
	return &Contact{
		name:       name,
		phone:      phone,
		nationalID: nric,
		email:      email,
		address:    address,
		tags:       tags,
		contracts:  contracts,
	}, nil
}

func (c *Contact) Name() Name             { return c.name }
func (c *Contact) Phone() Phone           { return c.phone }
func (c *Contact) NationalID() NationalID { return c.nationalID }
func (c *Contact) Email() Email           { return c.email }
func (c *Contact) Address() Address       { return c.address }

// Tags returns a sorted copy of the contact's tags.
func (c *Contact) Tags() []Tag { return slices.Clone(c.tags) }

// Contracts returns a sorted copy of the IDs of contracts held by the
// contact. They are back-references; resolve them through the book.
func (c *Contact) Contracts() []ContractID { return slices.Clone(c.contracts) }

// HasTag reports whether the contact carries tag.
func (c *Contact) HasTag(tag Tag) bool { return setContains(c.tags, tag) }

// HasContract reports whether id is among the contact's back-references.
func (c *Contact) HasContract(id ContractID) bool { return setContains(c.contracts, id) }

// Input returns the contact's fields in raw form, ready to be modified and
// passed back to NewContact.
func (c *Contact) Input() ContactInput {
	in := ContactInput{
		Name:       string(c.name),
		Phone:      string(c.phone),
		NationalID: string(c.nationalID),
		Email:      string(c.email),
		Address:    string(c.address),
		Tags:       make([]string, len(c.tags)),
		Contracts:  make([]string, len(c.contracts)),
	}
	for i, t := range c.tags {
		in.Tags[i] = string(t)
	}
	for i, id := range c.contracts {
		in.Contracts[i] = string(id)
	}
	return in
}

// WithContracts returns a copy of the contact with its back-references
// replaced by ids.
func (c *Contact) WithContracts(ids []ContractID) *Contact {
	cp := *c
	cp.tags = slices.Clone(c.tags)
	cp.contracts = sortedSet(ids)
	return &cp
}

// WithContract returns a copy of the contact with id added.
func (c *Contact) WithContract(id ContractID) *Contact {
	return c.WithContracts(append(c.Contracts(), id))
}

// WithoutContract returns a copy of the contact with id removed.
func (c *Contact) WithoutContract(id ContractID) *Contact {
	return c.WithContracts(slices.DeleteFunc(c.Contracts(), func(x ContractID) bool { return x == id }))
}

// IsSame reports whether other has the same name.
func (c *Contact) IsSame(other *Contact) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.name == other.name
}

// Equal reports whether every field of other matches.
func (c *Contact) Equal(other *Contact) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.name == other.name &&
		c.phone == other.phone &&
		c.nationalID == other.nationalID &&
		c.email == other.email &&
		c.address == other.address &&
		slices.Equal(c.tags, other.tags) &&
		slices.Equal(c.contracts, other.contracts)
}

func (c *Contact) String() string {
	tags := make([]string, len(c.tags))
	for i, t := range c.tags {
		tags[i] = string(t)
	}
	return fmt.Sprintf("%s; Phone: %s; NRIC: %s; Email: %s; Address: %s; Tags: [%s]",
		c.name, c.phone, c.nationalID, c.email, c.address, strings.Join(tags, ", "))
}
