package book

import (
	"github.com/mesh-intelligence/insurebook/internal/uniquelist"
	"github.com/mesh-intelligence/insurebook/internal/view"
	"github.com/mesh-intelligence/insurebook/pkg/types"
)

// HasContact reports whether a contact with the same name exists.
func (b *Book) HasContact(c *types.Contact) bool {
	return b.contacts.list.Contains(c)
}

// AddContact adds c. It returns a DuplicateError if a contact with the same
// name exists.
func (b *Book) AddContact(c *types.Contact) error {
	if err := b.contacts.list.Add(c); err != nil {
		return err
	}
	b.logger.Debug("contact added", "name", c.Name(), "national_id", c.NationalID())
	return nil
}

// SetContact replaces target with edited. The edited contact inherits
// target's contract references. When the name or national ID changes, every
// contract held by target is re-pointed to the new holder. When the national
// ID changes and no other contact still carries the old one, every
// appointment for it follows.
func (b *Book) SetContact(target, edited *types.Contact) error {
	edited = edited.WithContracts(target.Contracts())
	err := b.atomically(func() error {
		if err := b.contacts.list.Set(target, edited); err != nil {
			return err
		}
		if target.Name() != edited.Name() || target.NationalID() != edited.NationalID() {
			for _, ct := range b.ContractsOf(target) {
				if err := b.contracts.list.Set(ct, ct.WithHolder(edited.Name(), edited.NationalID())); err != nil {
					return err
				}
			}
		}
		if target.NationalID() != edited.NationalID() && len(b.ContactsByNationalID(target.NationalID())) == 0 {
			for _, a := range b.AppointmentsOf(target.NationalID()) {
				if err := b.appointments.list.Set(a, a.WithNationalID(edited.NationalID())); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	b.logger.Debug("contact updated", "name", edited.Name(), "national_id", edited.NationalID())
	return nil
}

// DeleteContact removes c. Contracts held by c are left in place; use
// PersonHasContract and RemoveContract first to avoid dangling references.
func (b *Book) DeleteContact(c *types.Contact) error {
	if err := b.contacts.list.Remove(c); err != nil {
		return err
	}
	b.logger.Debug("contact deleted", "name", c.Name())
	return nil
}

// Contacts returns a live read-only view of all contacts.
func (b *Book) Contacts() uniquelist.ReadOnly[*types.Contact] {
	return b.contacts.list.ReadOnly()
}

// FilteredContacts returns the live filtered, sorted contact view.
func (b *Book) FilteredContacts() *view.View[*types.Contact] {
	return b.contacts.view
}

// UpdateContactFilter installs pred on the contact view.
func (b *Book) UpdateContactFilter(pred view.Predicate[*types.Contact]) {
	b.contacts.view.SetPredicate(pred)
}

// UpdateContactSort installs cmp on the contact view.
func (b *Book) UpdateContactSort(cmp view.Comparator[*types.Contact]) {
	b.contacts.view.SetComparator(cmp)
}

// ContactByName returns the contact with the given name.
func (b *Book) ContactByName(name types.Name) (*types.Contact, bool) {
	return b.contacts.list.Find(func(c *types.Contact) bool { return c.Name() == name })
}

// ContactsByNationalID returns every contact with the given national ID.
func (b *Book) ContactsByNationalID(nric types.NationalID) []*types.Contact {
	var out []*types.Contact
	for _, c := range b.contacts.list.All() {
		if c.NationalID() == nric {
			out = append(out, c)
		}
	}
	return out
}
