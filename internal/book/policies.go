package book

import (
	"github.com/mesh-intelligence/insurebook/internal/uniquelist"
	"github.com/mesh-intelligence/insurebook/internal/view"
	"github.com/mesh-intelligence/insurebook/pkg/types"
)

// MessagePolicyIDImmutable is returned when an edit tries to change a
// policy's ID.
const MessagePolicyIDImmutable = "Policy IDs cannot be changed"

// HasPolicy reports whether a policy with the same ID exists.
func (b *Book) HasPolicy(p *types.Policy) bool {
	return b.policies.list.Contains(p)
}

// HasSimilarPolicy reports whether a policy with the same name and details
// exists, whatever its ID.
func (b *Book) HasSimilarPolicy(p *types.Policy) bool {
	_, ok := b.policies.list.Find(p.IsSimilar)
	return ok
}

// AddPolicy adds p. It returns a DuplicateError if a policy with the same ID,
// or with the same name and details, exists.
func (b *Book) AddPolicy(p *types.Policy) error {
	if b.HasSimilarPolicy(p) {
		return &types.DuplicateError{Entity: types.EntityPolicy}
	}
	if err := b.policies.list.Add(p); err != nil {
		return err
	}
	b.logger.Debug("policy added", "id", p.ID(), "name", p.Name())
	return nil
}

// SetPolicy replaces target with edited. The edited policy inherits target's
// contract references. Changing the ID is a ValidationError; making the
// policy similar to another existing policy is a DuplicateError.
func (b *Book) SetPolicy(target, edited *types.Policy) error {
	if target.ID() != edited.ID() {
		return types.NewValidationError(types.EntityPolicy, types.FieldID, MessagePolicyIDImmutable)
	}
	edited = edited.WithContracts(target.Contracts())
	for _, p := range b.policies.list.All() {
		if !p.IsSame(target) && p.IsSimilar(edited) {
			return &types.DuplicateError{Entity: types.EntityPolicy}
		}
	}
	if err := b.policies.list.Set(target, edited); err != nil {
		return err
	}
	b.logger.Debug("policy updated", "id", edited.ID(), "name", edited.Name())
	return nil
}

// DeletePolicy removes p. Contracts signed against p are left in place; use
// PolicyHasAnyContract and RemoveContract first to avoid dangling references.
func (b *Book) DeletePolicy(p *types.Policy) error {
	if err := b.policies.list.Remove(p); err != nil {
		return err
	}
	b.logger.Debug("policy deleted", "id", p.ID())
	return nil
}

// Policies returns a live read-only view of all policies.
func (b *Book) Policies() uniquelist.ReadOnly[*types.Policy] {
	return b.policies.list.ReadOnly()
}

// FilteredPolicies returns the live filtered, sorted policy view.
func (b *Book) FilteredPolicies() *view.View[*types.Policy] {
	return b.policies.view
}

// UpdatePolicyFilter installs pred on the policy view.
func (b *Book) UpdatePolicyFilter(pred view.Predicate[*types.Policy]) {
	b.policies.view.SetPredicate(pred)
}

// UpdatePolicySort installs cmp on the policy view.
func (b *Book) UpdatePolicySort(cmp view.Comparator[*types.Policy]) {
	b.policies.view.SetComparator(cmp)
}

// PolicyByID returns the policy with the given ID.
func (b *Book) PolicyByID(id types.PolicyID) (*types.Policy, bool) {
	return b.policies.list.Find(func(p *types.Policy) bool { return p.ID() == id })
}
