package book

import (
	"github.com/mesh-intelligence/insurebook/internal/uniquelist"
	"github.com/mesh-intelligence/insurebook/internal/view"
	"github.com/mesh-intelligence/insurebook/pkg/types"
)

// HasAppointment reports whether an appointment with the same national ID,
// date and details exists.
func (b *Book) HasAppointment(a *types.Appointment) bool {
	return b.appointments.list.Contains(a)
}

// AddAppointment adds a. It returns a DuplicateError if an identity-equal
// appointment exists or if a's ID is taken.
func (b *Book) AddAppointment(a *types.Appointment) error {
	if _, ok := b.AppointmentByID(a.ID()); ok {
		return &types.DuplicateError{Entity: types.EntityAppointment}
	}
	if err := b.appointments.list.Add(a); err != nil {
		return err
	}
	b.logger.Debug("appointment added", "id", a.ID(), "date", a.Date())
	return nil
}

// SetAppointment replaces target with edited. It returns a DuplicateError
// if edited takes the ID of another appointment.
func (b *Book) SetAppointment(target, edited *types.Appointment) error {
	err := b.atomically(func() error {
		if err := b.appointments.list.Set(target, edited); err != nil {
			return err
		}
		if !distinctKeys(b.appointments.list.Items(), (*types.Appointment).ID) {
			return &types.DuplicateError{Entity: types.EntityAppointment}
		}
		return nil
	})
	if err != nil {
		return err
	}
	b.logger.Debug("appointment updated", "id", edited.ID(), "date", edited.Date())
	return nil
}

// DeleteAppointment removes a.
func (b *Book) DeleteAppointment(a *types.Appointment) error {
	if err := b.appointments.list.Remove(a); err != nil {
		return err
	}
	b.logger.Debug("appointment deleted", "id", a.ID())
	return nil
}

// Appointments returns a live read-only view of all appointments.
func (b *Book) Appointments() uniquelist.ReadOnly[*types.Appointment] {
	return b.appointments.list.ReadOnly()
}

// FilteredAppointments returns the live filtered, sorted appointment view.
func (b *Book) FilteredAppointments() *view.View[*types.Appointment] {
	return b.appointments.view
}

// UpdateAppointmentFilter installs pred on the appointment view.
func (b *Book) UpdateAppointmentFilter(pred view.Predicate[*types.Appointment]) {
	b.appointments.view.SetPredicate(pred)
}

// UpdateAppointmentSort installs cmp on the appointment view.
func (b *Book) UpdateAppointmentSort(cmp view.Comparator[*types.Appointment]) {
	b.appointments.view.SetComparator(cmp)
}

// AppointmentByID returns the appointment with the given ID.
func (b *Book) AppointmentByID(id types.AppointmentID) (*types.Appointment, bool) {
	return b.appointments.list.Find(func(a *types.Appointment) bool { return a.ID() == id })
}

// AppointmentsOf returns the appointments for nric.
func (b *Book) AppointmentsOf(nric types.NationalID) []*types.Appointment {
	var out []*types.Appointment
	for _, a := range b.appointments.list.All() {
		if a.NationalID() == nric {
			out = append(out, a)
		}
	}
	return out
}
