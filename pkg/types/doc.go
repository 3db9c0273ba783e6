// Package types defines the insurebook entities (Contact, Policy, Contract,
// Appointment), their validated field types, the error taxonomy shared by
// every layer, and the Storage contract implemented by the persistence
// backends.
package types
