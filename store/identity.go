package store

import "github.com/google/uuid"

// Identity uniquely identifies one live Store instance.
//
// Identities are opaque and equality-comparable. A submission carries the
// identity of its target store; the bridge validates that the identity still
// denotes a live store and fails the submission otherwise. An identity is
// never reused for a different store.
type Identity string

// IdentityGenerator generates unique store identities.
// Implemented by UUIDv7Generator (production) and the fixed generators in
// internal/testutil (tests).
type IdentityGenerator interface {
	Generate() Identity
}

// UUIDv7Generator generates time-sortable UUIDv7 store identities.
//
// UUIDv7 embeds a timestamp in the most significant bits, making identities
// sortable by store creation time. This is helpful for debugging and trace
// visualization.
//
// Uses github.com/google/uuid package for RFC 4122 compliant UUIDs.
//
// Thread-safety: UUIDv7Generator is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 identity as a hyphenated string.
//
// Format: "550e8400-e29b-41d4-a716-446655440000" (36 characters)
//
// Panics if UUID generation fails (should never happen in practice).
func (g UUIDv7Generator) Generate() Identity {
	return Identity(uuid.Must(uuid.NewV7()).String())
}
