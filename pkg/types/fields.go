package types

import (
	"errors"
	"regexp"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Field names as they appear in error messages and persisted records.
const (
	FieldName       = "name"
	FieldPhone      = "phone"
	FieldNationalID = "nric"
	FieldEmail      = "email"
	FieldAddress    = "address"
	FieldTags       = "tags"
	FieldContracts  = "contracts"
	FieldDetails    = "details"
	FieldID         = "id"
	FieldPolicyID   = "policy"
	FieldSignedDate = "signed"
	FieldExpiryDate = "expiry"
	FieldPremium    = "premium"
	FieldDate       = "date"
)

// Constraint messages, shown to the user verbatim.
const (
	MessageName = "Names should start with a letter or digit, may contain spaces and - ' . / @, " +
		"and it should not be blank"
	MessagePhone      = "Phone numbers should only contain numbers, and it should be at least 3 digits long"
	MessageNationalID = "NRIC should start with S, T, F, G or M, followed by 7 digits " +
		"and end with a checksum letter"
	MessageEmail              = "Emails should be of the format local-part@domain"
	MessageAddress            = "Addresses can take any values, and it should not be blank"
	MessageTag                = "Tags names should be alphanumeric"
	MessageDetails            = "Details can take any values, and it should not be blank"
	MessageAppointmentDetails = "Appointment details should only contain printable ASCII characters, " +
		"and it should not be blank"
	MessageID = "IDs should be 6 alphanumeric characters"
)

// IDPattern is the syntax of a policy, contract or appointment ID. It
// accepts any alphanumeric character so that IDs typed in by hand still
// parse.
var IDPattern = regexp.MustCompile(`^[A-Za-z0-9]{6}$`)

var (
	namePattern       = regexp.MustCompile(`^[\pL\pN][\pL\pN '\-./@]*$`)
	phonePattern      = regexp.MustCompile(`^[0-9]{3,}$`)
	nationalIDPattern = regexp.MustCompile(`^[STFGM][0-9]{7}[A-Z]$`)
	tagPattern        = regexp.MustCompile(`^[\pL\pN]+$`)
)

// validate is the package-level validator instance.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Name is a person's or policy's display name.
type Name string

// ParseName trims s and checks it against the name rule.
func ParseName(s string) (Name, error) {
	s = strings.TrimSpace(s)
	if !namePattern.MatchString(s) {
		return "", fieldError(FieldName, MessageName)
	}
	return Name(s), nil
}

func (n Name) String() string { return string(n) }

// Phone is a contact's phone number.
type Phone string

// ParsePhone trims s and checks it against the phone rule.
func ParsePhone(s string) (Phone, error) {
	s = strings.TrimSpace(s)
	if !phonePattern.MatchString(s) {
		return "", fieldError(FieldPhone, MessagePhone)
	}
	return Phone(s), nil
}

func (p Phone) String() string { return string(p) }

// NationalID is a person's national identification number (NRIC), always
// upper case.
type NationalID string

// ParseNationalID upper-cases s and checks it against the NRIC format.
func ParseNationalID(s string) (NationalID, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if !nationalIDPattern.MatchString(s) {
		return "", fieldError(FieldNationalID, MessageNationalID)
	}
	return NationalID(s), nil
}

func (n NationalID) String() string { return string(n) }

// Email is a contact's email address.
type Email string

// ParseEmail trims s and checks it is a well-formed address.
func ParseEmail(s string) (Email, error) {
	s = strings.TrimSpace(s)
	if err := validate.Var(s, "required,email"); err != nil {
		return "", fieldError(FieldEmail, MessageEmail)
	}
	return Email(s), nil
}

func (e Email) String() string { return string(e) }

// Address is a contact's postal address.
type Address string

// ParseAddress trims s and rejects blank values.
func ParseAddress(s string) (Address, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fieldError(FieldAddress, MessageAddress)
	}
	return Address(s), nil
}

func (a Address) String() string { return string(a) }

// Tag labels a contact.
type Tag string

// ParseTag trims s and checks it is alphanumeric.
func ParseTag(s string) (Tag, error) {
	s = strings.TrimSpace(s)
	if !tagPattern.MatchString(s) {
		return "", fieldError(FieldTags, MessageTag)
	}
	return Tag(s), nil
}

// ParseTags parses every entry of raw and returns a sorted set.
func ParseTags(raw []string) ([]Tag, error) {
	tags := make([]Tag, 0, len(raw))
	for _, r := range raw {
		t, err := ParseTag(r)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return sortedSet(tags), nil
}

// Details is a policy's free-text description.
type Details string

// ParseDetails trims s and rejects blank values.
func ParseDetails(s string) (Details, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fieldError(FieldDetails, MessageDetails)
	}
	return Details(s), nil
}

func (d Details) String() string { return string(d) }

// AppointmentDetails is an appointment's description. Only printable ASCII
// is accepted.
type AppointmentDetails string

// ParseAppointmentDetails trims s, rejects blank values and anything outside
// printable ASCII.
func ParseAppointmentDetails(s string) (AppointmentDetails, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fieldError(FieldDetails, MessageAppointmentDetails)
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7e {
			return "", fieldError(FieldDetails, MessageAppointmentDetails)
		}
	}
	return AppointmentDetails(s), nil
}

func (d AppointmentDetails) String() string { return string(d) }

// PolicyID identifies a policy.
type PolicyID string

// ContractID identifies a contract.
type ContractID string

// AppointmentID identifies an appointment.
type AppointmentID string

// ParsePolicyID checks s against IDPattern.
func ParsePolicyID(s string) (PolicyID, error) {
	v, err := parseID(s, FieldID)
	return PolicyID(v), err
}

// ParseContractID checks s against IDPattern.
func ParseContractID(s string) (ContractID, error) {
	v, err := parseID(s, FieldID)
	return ContractID(v), err
}

// ParseAppointmentID checks s against IDPattern.
func ParseAppointmentID(s string) (AppointmentID, error) {
	v, err := parseID(s, FieldID)
	return AppointmentID(v), err
}

// ParseContractIDs parses every entry of raw and returns a sorted set.
func ParseContractIDs(raw []string) ([]ContractID, error) {
	out := make([]ContractID, 0, len(raw))
	for _, r := range raw {
		id, err := parseID(r, FieldContracts)
		if err != nil {
			return nil, err
		}
		out = append(out, ContractID(id))
	}
	return sortedSet(out), nil
}

func (id PolicyID) String() string      { return string(id) }
func (id ContractID) String() string    { return string(id) }
func (id AppointmentID) String() string { return string(id) }

func parseID(s, field string) (string, error) {
	s = strings.TrimSpace(s)
	if !IDPattern.MatchString(s) {
		return "", fieldError(field, MessageID)
	}
	return s, nil
}

func fieldError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// withEntity stamps entity onto a field-level ValidationError produced by
// one of the Parse functions.
func withEntity(entity string, err error) error {
	var ve *ValidationError
	if errors.As(err, &ve) && ve.Entity == "" {
		return &ValidationError{Entity: entity, Field: ve.Field, Message: ve.Message}
	}
	return err
}

// sortedSet returns a sorted copy of values with duplicates removed.
func sortedSet[T ~string](values []T) []T {
	out := slices.Clone(values)
	slices.Sort(out)
	return slices.Compact(out)
}

func setContains[T ~string](set []T, v T) bool {
	_, ok := slices.BinarySearch(set, v)
	return ok
}
