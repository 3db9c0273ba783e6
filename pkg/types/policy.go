package types

import (
	"fmt"
	"slices"
)

// PolicyInput carries the raw field values of a policy before validation.
type PolicyInput struct {
	Name      string
	Details   string
	ID        string
	Contracts []string
}

// Policy is an insurance product a contract can be signed against.
type Policy struct {
	name      Name
	details   Details
	id        PolicyID
	contracts []ContractID
}

// NewPolicy validates in and returns the policy.
func NewPolicy(in PolicyInput) (*Policy, error) {
	name, err := ParseName(in.Name)
	if err != nil {
		return nil, withEntity(EntityPolicy, err)
	}
	details, err := ParseDetails(in.Details)
	if err != nil {
		return nil, withEntity(EntityPolicy, err)
	}
	id, err := ParsePolicyID(in.ID)
	if err != nil {
		return nil, withEntity(EntityPolicy, err)
	}
	contracts, err := ParseContractIDs(in.Contracts)
	if err != nil {
		return nil, withEntity(EntityPolicy, err)
	}
	return &Policy{name: name, details: details, id: id, contracts: contracts}, nil
}

func (p *Policy) Name() Name       { return p.name }
func (p *Policy) Details() Details { return p.details }
func (p *Policy) ID() PolicyID     { return p.id }

// Contracts returns a sorted copy of the IDs of contracts signed against the
// policy.
func (p *Policy) Contracts() []ContractID { return slices.Clone(p.contracts) }

// HasContract reports whether id is among the policy's back-references.
func (p *Policy) HasContract(id ContractID) bool { return setContains(p.contracts, id) }

// Input returns the policy's fields in raw form.
func (p *Policy) Input() PolicyInput {
	in := PolicyInput{
		Name:      string(p.name),
		Details:   string(p.details),
		ID:        string(p.id),
		Contracts: make([]string, len(p.contracts)),
	}
	for i, id := range p.contracts {
		in.Contracts[i] = string(id)
	}
	return in
}

// WithContracts returns a copy of the policy with its back-references
// replaced by ids.
func (p *Policy) WithContracts(ids []ContractID) *Policy {
	cp := *p
	cp.contracts = sortedSet(ids)
	return &cp
}

// WithContract returns a copy of the policy with id added.
func (p *Policy) WithContract(id ContractID) *Policy {
	return p.WithContracts(append(p.Contracts(), id))
}

// WithoutContract returns a copy of the policy with id removed.
func (p *Policy) WithoutContract(id ContractID) *Policy {
	return p.WithContracts(slices.DeleteFunc(p.Contracts(), func(x ContractID) bool { return x == id }))
}

// IsSame reports whether other has the same ID.
func (p *Policy) IsSame(other *Policy) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.id == other.id
}

// IsSimilar reports whether other has the same name and details, regardless
// of ID. The book refuses to add a policy similar to an existing one.
func (p *Policy) IsSimilar(other *Policy) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.name == other.name && p.details == other.details
}

// Equal reports whether every field of other matches.
func (p *Policy) Equal(other *Policy) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.name == other.name &&
		p.details == other.details &&
		p.id == other.id &&
		slices.Equal(p.contracts, other.contracts)
}

func (p *Policy) String() string {
	return fmt.Sprintf("%s; Details: %s; ID: %s", p.name, p.details, p.id)
}
