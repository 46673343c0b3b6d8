package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	inbox "go-leadline/internal/pkg/inbox/application/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListConversationsTracksRecencyAcrossIngests(t *testing.T) {
	ingest, repo := newIngestUC(inbox.LinkPolicyFirstWins)
	list := NewListConversationsUseCase(repo)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	keys := []string{"fb:a", "fb:b", "fb:c"}
	for i := 0; i < 9; i++ {
		_, err := ingest.Execute(ctx, IngestMessageInput{
			SenderKey: keys[i%3],
			Text:      fmt.Sprintf("msg %d", i),
			SentAt:    base.Add(time.Duration(i) * time.Second),
		})
		require.NoError(t, err)
	}

	convs, err := list.Execute(ctx)
	require.NoError(t, err)
	require.Len(t, convs, 3)

	// Strictly descending by last update.
	for i := 1; i < len(convs); i++ {
		assert.False(t, convs[i].LastUpdated.After(convs[i-1].LastUpdated))
	}
	// Last ingest went to fb:c (i=8), so it leads.
	assert.Equal(t, "fb:c", convs[0].SenderKey)
	for _, conv := range convs {
		assert.Len(t, conv.Messages, 3)
	}
}

func TestGetConversationUnknownID(t *testing.T) {
	_, repo := newIngestUC(inbox.LinkPolicyFirstWins)
	uc := NewGetConversationUseCase(repo)

	_, err := uc.Execute(context.Background(), "missing")
	assert.ErrorIs(t, err, inbox.ErrConversationNotFound)

	_, err = uc.Execute(context.Background(), "")
	assert.Error(t, err)
}
