package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/insurebook/pkg/types"
)

type contactOut struct {
	Name       string   `json:"name" yaml:"name"`
	Phone      string   `json:"phone" yaml:"phone"`
	NationalID string   `json:"nric" yaml:"nric"`
	Email      string   `json:"email" yaml:"email"`
	Address    string   `json:"address" yaml:"address"`
	Tags       []string `json:"tags" yaml:"tags"`
	Contracts  []string `json:"contracts" yaml:"contracts"`
}

func newContactOut(c *types.Contact) contactOut {
	in := c.Input()
	return contactOut{
		Name:       in.Name,
		Phone:      in.Phone,
		NationalID: in.NationalID,
		Email:      in.Email,
		Address:    in.Address,
		Tags:       in.Tags,
		Contracts:  in.Contracts,
	}
}

type policyOut struct {
	ID        string   `json:"id" yaml:"id"`
	Name      string   `json:"name" yaml:"name"`
	Details   string   `json:"details" yaml:"details"`
	Contracts []string `json:"contracts" yaml:"contracts"`
}

func newPolicyOut(p *types.Policy) policyOut {
	in := p.Input()
	return policyOut{ID: in.ID, Name: in.Name, Details: in.Details, Contracts: in.Contracts}
}

type contractOut struct {
	ID         string `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	NationalID string `json:"nric" yaml:"nric"`
	PolicyID   string `json:"policy" yaml:"policy"`
	SignedDate string `json:"signed" yaml:"signed"`
	ExpiryDate string `json:"expiry" yaml:"expiry"`
	Premium    string `json:"premium" yaml:"premium"`
}

func newContractOut(c *types.Contract) contractOut {
	in := c.Input()
	return contractOut{
		ID:         in.ID,
		Name:       in.Name,
		NationalID: in.NationalID,
		PolicyID:   in.PolicyID,
		SignedDate: in.SignedDate,
		ExpiryDate: in.ExpiryDate,
		Premium:    in.Premium,
	}
}

type appointmentOut struct {
	ID         string `json:"id" yaml:"id"`
	NationalID string `json:"nric" yaml:"nric"`
	Date       string `json:"date" yaml:"date"`
	Details    string `json:"details" yaml:"details"`
}

func newAppointmentOut(a *types.Appointment) appointmentOut {
	in := a.Input()
	return appointmentOut{ID: in.ID, NationalID: in.NationalID, Date: in.Date, Details: in.Details}
}

func mapSlice[T, U any](items []T, f func(T) U) []U {
	out := make([]U, len(items))
	for i, it := range items {
		out[i] = f(it)
	}
	return out
}

// emit writes v as JSON or YAML when requested, and otherwise calls text.
func (a *app) emit(w io.Writer, v any, text func(io.Writer)) error {
	switch {
	case a.flags.jsonMode:
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal output: %w", err)
		}
		fmt.Fprintln(w, string(out))
	case a.flags.yamlMode:
		out, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshal output: %w", err)
		}
		fmt.Fprint(w, string(out))
	default:
		text(w)
	}
	return nil
}

// printTable prints rows in a human-readable table followed by a total line.
func printTable(w io.Writer, noun string, headers []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintf(w, "No %ss found.\n", noun)
		return
	}

	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()

	// Trim trailing padding from each line.
	for _, line := range strings.Split(strings.TrimRight(sb.String(), "\n"), "\n") {
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
	fmt.Fprintf(w, "Total: %d %s(s)\n", len(rows), noun)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
