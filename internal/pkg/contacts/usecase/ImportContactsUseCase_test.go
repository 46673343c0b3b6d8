package usecase

import (
	"context"
	"testing"

	"go-leadline/internal/pkg/contacts/repository/adapter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportContactsDedupAndValidation(t *testing.T) {
	repo := adapter.NewMemoryContactRepository()
	uc := NewImportContactsUseCase(repo)
	ctx := context.Background()

	report, err := uc.Execute(ctx, []ContactEntry{
		{Name: "Karim", Phone: "01712345678"},
		{Name: "Karim again", Phone: "01712345678"}, // duplicate
		{Name: "Rahim", Phone: "+88001898765432"},   // valid with prefix
		{Name: "Bad", Phone: "12345"},               // invalid
		{Name: "Padded", Phone: "  01312345678  "},  // trimmed then valid
		{Name: "Noise", Phone: "call 01712345678"},  // not a bare number
	})
	require.NoError(t, err)

	assert.Equal(t, 3, report.Imported)
	assert.Equal(t, 1, report.Duplicates)
	assert.Equal(t, 2, report.Invalid)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	// Insertion order is preserved.
	assert.Equal(t, "01712345678", list[0].Phone)
	assert.Equal(t, "+88001898765432", list[1].Phone)
	assert.Equal(t, "01312345678", list[2].Phone)
}

func TestImportContactsSecondBatchSeesFirst(t *testing.T) {
	repo := adapter.NewMemoryContactRepository()
	uc := NewImportContactsUseCase(repo)
	ctx := context.Background()

	_, err := uc.Execute(ctx, []ContactEntry{{Name: "Karim", Phone: "01712345678"}})
	require.NoError(t, err)

	report, err := uc.Execute(ctx, []ContactEntry{{Name: "Karim", Phone: "01712345678"}})
	require.NoError(t, err)
	assert.Equal(t, 0, report.Imported)
	assert.Equal(t, 1, report.Duplicates)
}
