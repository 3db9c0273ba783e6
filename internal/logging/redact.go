package logging

import (
	"log/slog"

	"github.com/m-mizutani/masq"
)

// Attribute keys carrying personal data. Values logged under these keys are
// redacted by every handler built by New.
const (
	KeyNationalID = "national_id"
	KeyPhone      = "phone"
	KeyEmail      = "email"
	KeyAddress    = "address"
)

// DefaultRedactOptions returns the masq options for personal data redaction.
func DefaultRedactOptions() []masq.Option {
	return []masq.Option{
		masq.WithFieldName(KeyNationalID),
		masq.WithFieldName(KeyPhone),
		masq.WithFieldName(KeyEmail),
		masq.WithFieldName(KeyAddress),
		masq.WithFieldName("nric"),
	}
}

// NewReplaceAttr creates a ReplaceAttr function for slog.HandlerOptions
// that redacts personal data, extended by opts.
func NewReplaceAttr(opts ...masq.Option) func(groups []string, a slog.Attr) slog.Attr {
	allOpts := append(DefaultRedactOptions(), opts...)
	return masq.New(allOpts...)
}
