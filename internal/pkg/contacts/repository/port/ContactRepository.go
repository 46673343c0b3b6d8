package repository

import (
	"context"

	contacts "go-leadline/internal/pkg/contacts/domain"
)

// ContactRepository defines persistence for the agency phone book.
// Implementations must be safe for concurrent use.
type ContactRepository interface {
	// Insert adds a contact, failing with contacts.ErrDuplicatePhone when the
	// phone is already present. Dedup happens here, synchronously, so the
	// importer's counts are exact.
	Insert(ctx context.Context, c contacts.Contact) error

	// List returns all contacts in insertion order.
	List(ctx context.Context) ([]contacts.Contact, error)
}
