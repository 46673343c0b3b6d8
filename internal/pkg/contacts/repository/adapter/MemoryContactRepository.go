package adapter

import (
	"context"
	"sync"

	contacts "go-leadline/internal/pkg/contacts/domain"
	repository "go-leadline/internal/pkg/contacts/repository/port"
)

// MemoryContactRepository keeps the phone book in process memory, keyed by
// phone for the dedup-on-insert check.
type MemoryContactRepository struct {
	mu      sync.RWMutex
	byPhone map[string]contacts.Contact
	seq     []string // insertion order of phones
}

func NewMemoryContactRepository() *MemoryContactRepository {
	return &MemoryContactRepository{byPhone: make(map[string]contacts.Contact)}
}

// Ensure interface compliance at compile time
var _ repository.ContactRepository = (*MemoryContactRepository)(nil)

func (r *MemoryContactRepository) Insert(ctx context.Context, c contacts.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byPhone[c.Phone]; ok {
		return contacts.ErrDuplicatePhone
	}
	r.byPhone[c.Phone] = c
	r.seq = append(r.seq, c.Phone)
	return nil
}

func (r *MemoryContactRepository) List(ctx context.Context) ([]contacts.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]contacts.Contact, 0, len(r.seq))
	for _, phone := range r.seq {
		out = append(out, r.byPhone[phone])
	}
	return out, nil
}
