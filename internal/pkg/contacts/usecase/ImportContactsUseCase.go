package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	contacts "go-leadline/internal/pkg/contacts/domain"
	repository "go-leadline/internal/pkg/contacts/repository/port"
	inbox "go-leadline/internal/pkg/inbox/application/domain"
)

// ErrPersistence indicates an infrastructure/repository failure inside a use case
var ErrPersistence = fmt.Errorf("contacts use case persistence error")

// ContactEntry is one row of an uploaded phone list.
type ContactEntry struct {
	Name  string
	Phone string
}

// ImportReport tallies what the importer did with the list. Entries are never
// partially imported: each one lands, is a duplicate, or is invalid.
type ImportReport struct {
	Imported   int
	Duplicates int
	Invalid    int
}

// ImportContactsUseCase runs the bulk phone-list import: validate each entry
// against the mobile-number rule, then dedup-on-insert into the phone book.
// The whole import is synchronous; the response carries exact counts.
// One class per use case (own file)
type ImportContactsUseCase struct {
	Repo repository.ContactRepository
}

func NewImportContactsUseCase(repo repository.ContactRepository) *ImportContactsUseCase {
	return &ImportContactsUseCase{Repo: repo}
}

func (uc *ImportContactsUseCase) Execute(ctx context.Context, entries []ContactEntry) (ImportReport, error) {
	var report ImportReport
	now := time.Now().UTC()

	for _, e := range entries {
		phone := strings.TrimSpace(e.Phone)
		if !inbox.IsMobileNumber(phone) {
			report.Invalid++
			continue
		}

		c, err := contacts.NewContact(strings.TrimSpace(e.Name), phone, now)
		if err != nil {
			report.Invalid++
			continue
		}

		if err := uc.Repo.Insert(ctx, c); err != nil {
			if errors.Is(err, contacts.ErrDuplicatePhone) {
				report.Duplicates++
				continue
			}
			return report, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		report.Imported++
	}

	return report, nil
}
