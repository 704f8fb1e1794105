package model

import "context"

// ContactStore persists per-user lists of contact card ids.
//
// Ids are stored as given: they are neither deduplicated nor checked
// against existing cards.
type ContactStore interface {
	Add(ctx context.Context, ownerID string, contactID string) error
	GetByOwnerID(ctx context.Context, ownerID string) ([]string, error)
}
