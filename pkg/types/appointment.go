package types

import "fmt"

// AppointmentInput carries the raw field values of an appointment before
// validation.
type AppointmentInput struct {
	ID         string
	NationalID string
	Date       string
	Details    string
}

// Appointment is a dated meeting with a person.
type Appointment struct {
	id         AppointmentID
	nationalID NationalID
	date       Date
	details    AppointmentDetails
}

// NewAppointment validates in and returns the appointment.
func NewAppointment(in AppointmentInput) (*Appointment, error) {
	id, err := ParseAppointmentID(in.ID)
	if err != nil {
		return nil, withEntity(EntityAppointment, err)
	}
	nric, err := ParseNationalID(in.NationalID)
	if err != nil {
		return nil, withEntity(EntityAppointment, err)
	}
	date, err := ParseDate(FieldDate, in.Date)
	if err != nil {
		return nil, withEntity(EntityAppointment, err)
	}
	details, err := ParseAppointmentDetails(in.Details)
	if err != nil {
		return nil, withEntity(EntityAppointment, err)
	}
	return &Appointment{id: id, nationalID: nric, date: date, details: details}, nil
}

func (a *Appointment) ID() AppointmentID           { return a.id }
func (a *Appointment) NationalID() NationalID      { return a.nationalID }
func (a *Appointment) Date() Date                  { return a.date }
func (a *Appointment) Details() AppointmentDetails { return a.details }

// Input returns the appointment's fields in raw form.
func (a *Appointment) Input() AppointmentInput {
	return AppointmentInput{
		ID:         string(a.id),
		NationalID: string(a.nationalID),
		Date:       a.date.String(),
		Details:    string(a.details),
	}
}

// WithNationalID returns a copy of the appointment for nric.
func (a *Appointment) WithNationalID(nric NationalID) *Appointment {
	cp := *a
	cp.nationalID = nric
	return &cp
}

// IsSame reports whether other has the same national ID, date and details.
// The ID is ignored.
func (a *Appointment) IsSame(other *Appointment) bool {
	if a == nil || other == nil {
		return a == other
	}
	return a.nationalID == other.nationalID &&
		a.date.Equal(other.date) &&
		a.details == other.details
}

// Equal reports whether every field of other matches, ID included.
func (a *Appointment) Equal(other *Appointment) bool {
	if a == nil || other == nil {
		return a == other
	}
	return a.id == other.id && a.IsSame(other)
}

func (a *Appointment) String() string {
	return fmt.Sprintf("%s; NRIC: %s; Date: %s; Details: %s", a.id, a.nationalID, a.date, a.details)
}
