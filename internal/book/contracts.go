package book

import (
	"github.com/mesh-intelligence/insurebook/internal/uniquelist"
	"github.com/mesh-intelligence/insurebook/internal/view"
	"github.com/mesh-intelligence/insurebook/pkg/types"
)

// HasContract reports whether a contract for the same holder and policy
// exists.
func (b *Book) HasContract(c *types.Contract) bool {
	return b.contracts.list.Contains(c)
}

// AddContract adds c to the contract list only. Back-references are not
// touched; most callers want AddContractLinkingContactAndPolicy. It returns
// a DuplicateError if the holder already has a contract for the policy or
// if c's ID is taken.
func (b *Book) AddContract(c *types.Contract) error {
	if _, ok := b.ContractByID(c.ID()); ok {
		return &types.DuplicateError{Entity: types.EntityContract}
	}
	return b.contracts.list.Add(c)
}

// AddContractLinkingContactAndPolicy adds c and records its ID on the
// referenced policy and on every contact holding it. It returns a
// NotFoundError matching types.ErrPolicyNotFound if the policy does not
// exist. A holder with no matching contact is not an error.
func (b *Book) AddContractLinkingContactAndPolicy(c *types.Contract) error {
	policy, ok := b.PolicyByID(c.PolicyID())
	if !ok {
		return &types.NotFoundError{Entity: types.EntityPolicy, Key: string(c.PolicyID())}
	}
	err := b.atomically(func() error {
		if err := b.AddContract(c); err != nil {
			return err
		}
		return b.link(c, policy)
	})
	if err != nil {
		return err
	}
	b.logger.Debug("contract added",
		"id", c.ID(), "policy", c.PolicyID(), "national_id", c.NationalID())
	return nil
}

// SetContract replaces target with edited and moves back-references from
// target to edited. It returns a NotFoundError matching
// types.ErrPolicyNotFound if edited references a missing policy.
func (b *Book) SetContract(target, edited *types.Contract) error {
	policy, ok := b.PolicyByID(edited.PolicyID())
	if !ok {
		return &types.NotFoundError{Entity: types.EntityPolicy, Key: string(edited.PolicyID())}
	}
	err := b.atomically(func() error {
		if err := b.contracts.list.Set(target, edited); err != nil {
			return err
		}
		if !distinctKeys(b.contracts.list.Items(), (*types.Contract).ID) {
			return &types.DuplicateError{Entity: types.EntityContract}
		}
		if err := b.unlink(target); err != nil {
			return err
		}
		// unlink may have replaced the policy value.
		if p, ok := b.PolicyByID(policy.ID()); ok {
			policy = p
		}
		return b.link(edited, policy)
	})
	if err != nil {
		return err
	}
	b.logger.Debug("contract updated", "id", edited.ID(), "policy", edited.PolicyID())
	return nil
}

// RemoveContract removes c and drops its ID from the policy's and contacts'
// reference sets. It returns a NotFoundError if c is not in the contract
// list; back-references that are already gone are ignored.
func (b *Book) RemoveContract(c *types.Contract) error {
	err := b.atomically(func() error {
		if err := b.contracts.list.Remove(c); err != nil {
			return err
		}
		return b.unlink(c)
	})
	if err != nil {
		return err
	}
	b.logger.Debug("contract removed", "id", c.ID(), "policy", c.PolicyID())
	return nil
}

// DeleteContract removes c from the contract list only, leaving
// back-references in place. It mirrors AddContract.
func (b *Book) DeleteContract(c *types.Contract) error {
	return b.contracts.list.Remove(c)
}

// Contracts returns a live read-only view of all contracts.
func (b *Book) Contracts() uniquelist.ReadOnly[*types.Contract] {
	return b.contracts.list.ReadOnly()
}

// FilteredContracts returns the live filtered, sorted contract view.
func (b *Book) FilteredContracts() *view.View[*types.Contract] {
	return b.contracts.view
}

// UpdateContractFilter installs pred on the contract view.
func (b *Book) UpdateContractFilter(pred view.Predicate[*types.Contract]) {
	b.contracts.view.SetPredicate(pred)
}

// UpdateContractSort installs cmp on the contract view.
func (b *Book) UpdateContractSort(cmp view.Comparator[*types.Contract]) {
	b.contracts.view.SetComparator(cmp)
}

// ContractByID returns the contract with the given ID.
func (b *Book) ContractByID(id types.ContractID) (*types.Contract, bool) {
	return b.contracts.list.Find(func(c *types.Contract) bool { return c.ID() == id })
}

// PolicyHasContract reports whether c is in the book, is signed against p,
// and is recorded in the stored policy's reference set.
func (b *Book) PolicyHasContract(c *types.Contract, p *types.Policy) bool {
	if c.PolicyID() != p.ID() {
		return false
	}
	if _, ok := b.contracts.list.Find(c.Equal); !ok {
		return false
	}
	stored, ok := b.PolicyByID(p.ID())
	return ok && stored.HasContract(c.ID())
}

// PolicyHasAnyContract reports whether any contract is signed against p.
func (b *Book) PolicyHasAnyContract(p *types.Policy) bool {
	return len(b.ContractsOfPolicy(p)) > 0
}

// PersonHasContract reports whether c holds any contract.
func (b *Book) PersonHasContract(c *types.Contact) bool {
	return len(b.ContractsOf(c)) > 0
}

// ContractsOf returns the contracts held by c: those it references and those
// whose holder name and national ID match it.
func (b *Book) ContractsOf(c *types.Contact) []*types.Contract {
	var out []*types.Contract
	for _, ct := range b.contracts.list.All() {
		if c.HasContract(ct.ID()) || holds(c, ct) {
			out = append(out, ct)
		}
	}
	return out
}

// ContractsOfPolicy returns the contracts signed against p.
func (b *Book) ContractsOfPolicy(p *types.Policy) []*types.Contract {
	var out []*types.Contract
	for _, ct := range b.contracts.list.All() {
		if ct.PolicyID() == p.ID() {
			out = append(out, ct)
		}
	}
	return out
}

// holds reports whether c is the holder named on ct.
func holds(c *types.Contact, ct *types.Contract) bool {
	return c.NationalID() == ct.NationalID() && c.Name() == ct.Name()
}

// link records c's ID on policy and on every contact holding c.
func (b *Book) link(c *types.Contract, policy *types.Policy) error {
	if err := b.policies.list.Set(policy, policy.WithContract(c.ID())); err != nil {
		return err
	}
	for _, contact := range b.contacts.list.Items() {
		if !holds(contact, c) {
			continue
		}
		if err := b.contacts.list.Set(contact, contact.WithContract(c.ID())); err != nil {
			return err
		}
	}
	return nil
}

// unlink drops c's ID from every policy and contact that references it.
func (b *Book) unlink(c *types.Contract) error {
	for _, p := range b.policies.list.Items() {
		if !p.HasContract(c.ID()) {
			continue
		}
		if err := b.policies.list.Set(p, p.WithoutContract(c.ID())); err != nil {
			return err
		}
	}
	for _, contact := range b.contacts.list.Items() {
		if !contact.HasContract(c.ID()) {
			continue
		}
		if err := b.contacts.list.Set(contact, contact.WithoutContract(c.ID())); err != nil {
			return err
		}
	}
	return nil
}
