package contacts

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrDuplicatePhone = errors.New("contacts: phone already in the book")

// Contact is one entry in the agency's phone book. Phones are stored exactly
// as imported (post-validation); the book dedupes on them.
type Contact struct {
	ID      string
	Name    string
	Phone   string
	AddedAt time.Time
}

// NewContact builds a contact for insertion.
func NewContact(name, phone string, now time.Time) (Contact, error) {
	if phone == "" {
		return Contact{}, errors.New("phone is required")
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}
	return Contact{
		ID:      uuid.NewString(),
		Name:    name,
		Phone:   phone,
		AddedAt: now,
	}, nil
}
