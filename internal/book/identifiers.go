package book

import (
	"github.com/mesh-intelligence/insurebook/internal/ids"
	"github.com/mesh-intelligence/insurebook/pkg/types"
)

// MessageNegativeCount is returned when a batch of IDs of negative size is
// requested.
const MessageNegativeCount = "Number of IDs to generate should not be negative"

// GenerateUniquePolicyID draws from the generator until it yields a valid ID
// not used by any policy.
func (b *Book) GenerateUniquePolicyID() types.PolicyID {
	return types.PolicyID(b.generate(func(id string) bool {
		_, taken := b.PolicyByID(types.PolicyID(id))
		return taken
	}))
}

// GenerateUniquePolicyIDs returns n pairwise-distinct IDs, none used by any
// policy. It is for minting a batch of policies before any is inserted.
func (b *Book) GenerateUniquePolicyIDs(n int) ([]types.PolicyID, error) {
	if n < 0 {
		return nil, types.NewValidationError(types.EntityPolicy, types.FieldID, MessageNegativeCount)
	}
	out := make([]types.PolicyID, 0, n)
	batch := make(map[string]bool, n)
	for range n {
		id := b.generate(func(id string) bool {
			_, taken := b.PolicyByID(types.PolicyID(id))
			return taken || batch[id]
		})
		batch[id] = true
		out = append(out, types.PolicyID(id))
	}
	return out, nil
}

// GenerateUniqueContractID returns a valid ID not used by any contract.
func (b *Book) GenerateUniqueContractID() types.ContractID {
	return types.ContractID(b.generate(func(id string) bool {
		_, taken := b.ContractByID(types.ContractID(id))
		return taken
	}))
}

// GenerateUniqueAppointmentID returns a valid ID not used by any appointment.
func (b *Book) GenerateUniqueAppointmentID() types.AppointmentID {
	return types.AppointmentID(b.generate(func(id string) bool {
		_, taken := b.AppointmentByID(types.AppointmentID(id))
		return taken
	}))
}

// generate loops on the generator until it returns a syntactically valid ID
// for which taken is false.
func (b *Book) generate(taken func(string) bool) string {
	for attempt := 1; ; attempt++ {
		id := ids.New(b.gen)
		if ids.IsValidID(id) && !taken(id) {
			return id
		}
		b.logger.Debug("id rejected, retrying", "id", id, "attempt", attempt)
	}
}
