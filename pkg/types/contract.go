package types

import "fmt"

// ContractInput carries the raw field values of a contract before validation.
type ContractInput struct {
	ID         string
	Name       string
	NationalID string
	PolicyID   string
	SignedDate string
	ExpiryDate string
	Premium    string
}

// Contract binds a holder, identified by national ID, to a policy for a
// period at a premium.
type Contract struct {
	id         ContractID
	name       Name
	nationalID NationalID
	policyID   PolicyID
	signed     Date
	expiry     Date
	premium    Premium
}

// NewContract validates in and returns the contract. Field rules are checked
// first; a signing date not strictly before the expiry date then yields an
// InvalidPeriodError.
func NewContract(in ContractInput) (*Contract, error) {
	id, err := ParseContractID(in.ID)
	if err != nil {
		return nil, withEntity(EntityContract, err)
	}
	name, err := ParseName(in.Name)
	if err != nil {
		return nil, withEntity(EntityContract, err)
	}
	nric, err := ParseNationalID(in.NationalID)
	if err != nil {
		return nil, withEntity(EntityContract, err)
	}
	policyID, err := parseID(in.PolicyID, FieldPolicyID)
	if err != nil {
		return nil, withEntity(EntityContract, err)
	}
	signed, err := ParseDate(FieldSignedDate, in.SignedDate)
	if err != nil {
		return nil, withEntity(EntityContract, err)
	}
	expiry, err := ParseDate(FieldExpiryDate, in.ExpiryDate)
	if err != nil {
		return nil, withEntity(EntityContract, err)
	}
	premium, err := ParsePremium(in.Premium)
	if err != nil {
		return nil, withEntity(EntityContract, err)
	}
	if !signed.Before(expiry) {
		return nil, &InvalidPeriodError{Signed: signed, Expiry: expiry}
	}
	return &Contract{
		id:         id,
		name:       name,
		nationalID: nric,
		policyID:   PolicyID(policyID),
		signed:     signed,
		expiry:     expiry,
		premium:    premium,
	}, nil
}

func (c *Contract) ID() ContractID         { return c.id }
func (c *Contract) Name() Name             { return c.name }
func (c *Contract) NationalID() NationalID { return c.nationalID }
func (c *Contract) PolicyID() PolicyID     { return c.policyID }
func (c *Contract) SignedDate() Date       { return c.signed }
func (c *Contract) ExpiryDate() Date       { return c.expiry }
func (c *Contract) Premium() Premium       { return c.premium }

// Input returns the contract's fields in raw form.
func (c *Contract) Input() ContractInput {
	return ContractInput{
		ID:         string(c.id),
		Name:       string(c.name),
		NationalID: string(c.nationalID),
		PolicyID:   string(c.policyID),
		SignedDate: c.signed.String(),
		ExpiryDate: c.expiry.String(),
		Premium:    c.premium.String(),
	}
}

// WithHolder returns a copy of the contract held by name and nric. Both
// values are already validated.
func (c *Contract) WithHolder(name Name, nric NationalID) *Contract {
	cp := *c
	cp.name = name
	cp.nationalID = nric
	return &cp
}

// IsSame reports whether other binds the same holder to the same policy.
// Dates and premium are ignored, so re-signing the same policy collides.
func (c *Contract) IsSame(other *Contract) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.nationalID == other.nationalID && c.policyID == other.policyID
}

// Equal reports whether every field of other matches, ID included.
func (c *Contract) Equal(other *Contract) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.id == other.id &&
		c.name == other.name &&
		c.nationalID == other.nationalID &&
		c.policyID == other.policyID &&
		c.signed.Equal(other.signed) &&
		c.expiry.Equal(other.expiry) &&
		c.premium == other.premium
}

func (c *Contract) String() string {
	return fmt.Sprintf("%s; Holder: %s (%s); Policy: %s; Signed: %s; Expiry: %s; Premium: %s",
		c.id, c.name, c.nationalID, c.policyID, c.signed, c.expiry, c.premium)
}
