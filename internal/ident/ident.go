// Package ident generates the opaque identifiers used across all entity
// collections. Identifiers are UUIDv4 (122 bits of entropy from the system
// CSPRNG) and are never reused; duplicating an entity graph goes through
// CloneMessagesWithFreshIDs, the only sanctioned copy path.
package ident

import (
	"time"

	"github.com/google/uuid"

	"docboard/internal/domain"
)

// New returns a fresh collision-resistant identifier.
func New() uuid.UUID {
	return uuid.New()
}

// Timestamp returns the current time formatted the way Message.CreatedAt
// stores it (RFC 3339 / ISO-8601, UTC).
func Timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// CloneMessagesWithFreshIDs deep-copies a message sequence, regenerating
// every UUID and CreatedAt so the clone never collides with the source.
// StatusIndex and all display flags carry over unchanged.
func CloneMessagesWithFreshIDs(msgs []domain.Message) []domain.Message {
	if msgs == nil {
		return nil
	}
	out := make([]domain.Message, len(msgs))
	for i, m := range msgs {
		c := m
		c.UUID = New()
		c.CreatedAt = Timestamp()
		c.Statuses = make([]domain.MessageStatus, len(m.Statuses))
		copy(c.Statuses, m.Statuses)
		out[i] = c
	}
	return out
}
