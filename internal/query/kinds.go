package query

import (
	"cmp"
	"slices"
	"strings"

	"github.com/google/cel-go/cel"

	"github.com/mesh-intelligence/insurebook/pkg/types"
)

// Kind describes how one entity type is exposed to expressions and sort keys.
type Kind[T any] struct {
	entity string
	decls  []cel.EnvOption
	vars   func(T) map[string]any
	sorts  map[string]func(a, b T) int
}

// Entity returns the entity name the kind applies to.
func (k Kind[T]) Entity() string { return k.entity }

// SortFields returns the field names accepted by Comparator, sorted.
func (k Kind[T]) SortFields() []string {
	fields := make([]string, 0, len(k.sorts))
	for f := range k.sorts {
		fields = append(fields, f)
	}
	slices.Sort(fields)
	return fields
}

func tagStrings(tags []types.Tag) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = string(t)
	}
	return out
}

func byString[T any](f func(T) string) func(a, b T) int {
	return func(a, b T) int { return strings.Compare(f(a), f(b)) }
}

// Contacts exposes name, phone, nric, email, address and tags.
var Contacts = Kind[*types.Contact]{
	entity: types.EntityContact,
	decls: []cel.EnvOption{
		cel.Variable("name", cel.StringType),
		cel.Variable("phone", cel.StringType),
		cel.Variable("nric", cel.StringType),
		cel.Variable("email", cel.StringType),
		cel.Variable("address", cel.StringType),
		cel.Variable("tags", cel.ListType(cel.StringType)),
	},
	vars: func(c *types.Contact) map[string]any {
		return map[string]any{
			"name":    string(c.Name()),
			"phone":   string(c.Phone()),
			"nric":    string(c.NationalID()),
			"email":   string(c.Email()),
			"address": string(c.Address()),
			"tags":    tagStrings(c.Tags()),
		}
	},
	sorts: map[string]func(a, b *types.Contact) int{
		"name":  byString(func(c *types.Contact) string { return string(c.Name()) }),
		"phone": byString(func(c *types.Contact) string { return string(c.Phone()) }),
		"nric":  byString(func(c *types.Contact) string { return string(c.NationalID()) }),
		"email": byString(func(c *types.Contact) string { return string(c.Email()) }),
	},
}

// Policies exposes id, name and details.
var Policies = Kind[*types.Policy]{
	entity: types.EntityPolicy,
	decls: []cel.EnvOption{
		cel.Variable("id", cel.StringType),
		cel.Variable("name", cel.StringType),
		cel.Variable("details", cel.StringType),
	},
	vars: func(p *types.Policy) map[string]any {
		return map[string]any{
			"id":      string(p.ID()),
			"name":    string(p.Name()),
			"details": string(p.Details()),
		}
	},
	sorts: map[string]func(a, b *types.Policy) int{
		"id":   byString(func(p *types.Policy) string { return string(p.ID()) }),
		"name": byString(func(p *types.Policy) string { return string(p.Name()) }),
	},
}

// Contracts exposes id, name, nric, policy, signed, expiry and premium.
// Dates are timestamps at midnight UTC; premium is a double.
var Contracts = Kind[*types.Contract]{
	entity: types.EntityContract,
	decls: []cel.EnvOption{
		cel.Variable("id", cel.StringType),
		cel.Variable("name", cel.StringType),
		cel.Variable("nric", cel.StringType),
		cel.Variable("policy", cel.StringType),
		cel.Variable("signed", cel.TimestampType),
		cel.Variable("expiry", cel.TimestampType),
		cel.Variable("premium", cel.DoubleType),
	},
	vars: func(c *types.Contract) map[string]any {
		return map[string]any{
			"id":      string(c.ID()),
			"name":    string(c.Name()),
			"nric":    string(c.NationalID()),
			"policy":  string(c.PolicyID()),
			"signed":  c.SignedDate().Time(),
			"expiry":  c.ExpiryDate().Time(),
			"premium": c.Premium().Float(),
		}
	},
	sorts: map[string]func(a, b *types.Contract) int{
		"id":     byString(func(c *types.Contract) string { return string(c.ID()) }),
		"name":   byString(func(c *types.Contract) string { return string(c.Name()) }),
		"policy": byString(func(c *types.Contract) string { return string(c.PolicyID()) }),
		"signed": func(a, b *types.Contract) int { return a.SignedDate().Compare(b.SignedDate()) },
		"expiry": func(a, b *types.Contract) int { return a.ExpiryDate().Compare(b.ExpiryDate()) },
		"premium": func(a, b *types.Contract) int {
			return cmp.Compare(a.Premium().Cents(), b.Premium().Cents())
		},
	},
}

// Appointments exposes id, nric, date and details.
var Appointments = Kind[*types.Appointment]{
	entity: types.EntityAppointment,
	decls: []cel.EnvOption{
		cel.Variable("id", cel.StringType),
		cel.Variable("nric", cel.StringType),
		cel.Variable("date", cel.TimestampType),
		cel.Variable("details", cel.StringType),
	},
	vars: func(a *types.Appointment) map[string]any {
		return map[string]any{
			"id":      string(a.ID()),
			"nric":    string(a.NationalID()),
			"date":    a.Date().Time(),
			"details": string(a.Details()),
		}
	},
	sorts: map[string]func(a, b *types.Appointment) int{
		"id":   byString(func(a *types.Appointment) string { return string(a.ID()) }),
		"nric": byString(func(a *types.Appointment) string { return string(a.NationalID()) }),
		"date": func(a, b *types.Appointment) int { return a.Date().Compare(b.Date()) },
	},
}
