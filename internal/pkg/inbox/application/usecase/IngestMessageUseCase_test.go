package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	inbox "go-leadline/internal/pkg/inbox/application/domain"
	"go-leadline/internal/pkg/inbox/persistence/repository/adapter"
	repository "go-leadline/internal/pkg/inbox/persistence/repository/port"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIngestUC(policy inbox.LinkPolicy) (*IngestMessageUseCase, *adapter.MemoryConversationRepository) {
	repo := adapter.NewMemoryConversationRepository()
	uc := NewIngestMessageUseCase(repo, inbox.LeadLinker{Policy: policy})
	return uc, repo
}

func TestIngestCreatesThreadThenLinksOnPhone(t *testing.T) {
	uc, _ := newIngestUC(inbox.LinkPolicyFirstWins)
	ctx := context.Background()

	t1 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Minute)

	first, err := uc.Execute(ctx, IngestMessageInput{
		SenderKey: "fb:1001", SenderName: "Karim",
		Text: "Hi, interested in your service", SentAt: t1,
	})
	require.NoError(t, err)
	assert.True(t, first.WasNewConversation)
	assert.Equal(t, inbox.LinkUnchanged, first.Link.Status)
	assert.False(t, first.Conversation.IsLeadLinked)

	second, err := uc.Execute(ctx, IngestMessageInput{
		SenderKey: "fb:1001", SenderName: "Karim",
		Text: "My number is 01712345678", SentAt: t2,
	})
	require.NoError(t, err)
	assert.False(t, second.WasNewConversation)
	assert.Equal(t, first.ConversationID, second.ConversationID)
	assert.Equal(t, inbox.LinkLinked, second.Link.Status)
	assert.Equal(t, "01712345678", second.Conversation.CustomerPhone)
	assert.True(t, second.Conversation.IsLeadLinked)
	assert.Len(t, second.Conversation.Messages, 2)
	assert.True(t, second.Conversation.LastUpdated.Equal(t2))
}

func TestIngestFirstPhoneWins(t *testing.T) {
	uc, _ := newIngestUC(inbox.LinkPolicyFirstWins)
	ctx := context.Background()

	t1 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	_, err := uc.Execute(ctx, IngestMessageInput{
		SenderKey: "fb:1001", Text: "call me at 01712345678", SentAt: t1,
	})
	require.NoError(t, err)

	res, err := uc.Execute(ctx, IngestMessageInput{
		SenderKey: "fb:1001", Text: "actually use 01898765432", SentAt: t1.Add(time.Minute),
	})
	require.NoError(t, err)
	assert.Equal(t, inbox.LinkUnchanged, res.Link.Status)
	assert.Equal(t, "01712345678", res.Conversation.CustomerPhone)
	assert.Len(t, res.Conversation.Messages, 2)
}

func TestIngestLastWinsPolicyReplaces(t *testing.T) {
	uc, _ := newIngestUC(inbox.LinkPolicyLastWins)
	ctx := context.Background()

	_, err := uc.Execute(ctx, IngestMessageInput{SenderKey: "fb:1001", Text: "01712345678"})
	require.NoError(t, err)

	res, err := uc.Execute(ctx, IngestMessageInput{SenderKey: "fb:1001", Text: "01898765432"})
	require.NoError(t, err)
	assert.Equal(t, inbox.LinkLinked, res.Link.Status)
	assert.Equal(t, "01898765432", res.Conversation.CustomerPhone)
}

func TestIngestRejectPolicySurfacesConflictAfterAppend(t *testing.T) {
	uc, _ := newIngestUC(inbox.LinkPolicyReject)
	ctx := context.Background()

	_, err := uc.Execute(ctx, IngestMessageInput{SenderKey: "fb:1001", Text: "01712345678"})
	require.NoError(t, err)

	res, err := uc.Execute(ctx, IngestMessageInput{SenderKey: "fb:1001", Text: "01898765432"})
	assert.ErrorIs(t, err, inbox.ErrPhoneConflict)
	// The append still happened; only the link was refused.
	assert.Len(t, res.Conversation.Messages, 2)
	assert.Equal(t, "01712345678", res.Conversation.CustomerPhone)
}

func TestIngestDoesNotDeduplicateMessages(t *testing.T) {
	uc, _ := newIngestUC(inbox.LinkPolicyFirstWins)
	ctx := context.Background()

	in := IngestMessageInput{
		SenderKey: "fb:1001", Text: "My number is 01712345678",
		SentAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	first, err := uc.Execute(ctx, in)
	require.NoError(t, err)
	second, err := uc.Execute(ctx, in)
	require.NoError(t, err)

	assert.NotEqual(t, first.MessageID, second.MessageID)
	assert.Len(t, second.Conversation.Messages, 2)
	// Same phone twice is not a conflict, just no further change.
	assert.Equal(t, inbox.LinkUnchanged, second.Link.Status)
	assert.Equal(t, "01712345678", second.Conversation.CustomerPhone)
}

func TestIngestInterleavedIdentitiesStaySeparate(t *testing.T) {
	uc, repo := newIngestUC(inbox.LinkPolicyFirstWins)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		key := "fb:a"
		if i%2 == 1 {
			key = "fb:b"
		}
		_, err := uc.Execute(ctx, IngestMessageInput{
			SenderKey: key, Text: fmt.Sprintf("msg %d", i), SentAt: base.Add(time.Duration(i) * time.Second),
		})
		require.NoError(t, err)
	}

	list, err := repo.ListByRecency(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Len(t, list[0].Messages, 2)
	assert.Len(t, list[1].Messages, 2)
}

func TestIngestConcurrentSameSender(t *testing.T) {
	uc, repo := newIngestUC(inbox.LinkPolicyFirstWins)
	ctx := context.Background()

	const n = 40
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := uc.Execute(ctx, IngestMessageInput{
				SenderKey: "fb:1001", SenderName: "Karim",
				Text: "ping 01712345678",
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	list, err := repo.ListByRecency(ctx)
	require.NoError(t, err)
	// No lost resolve-then-create race: exactly one thread, no lost appends.
	require.Len(t, list, 1)
	assert.Len(t, list[0].Messages, n)
	assert.True(t, list[0].IsLeadLinked)
	assert.Equal(t, "01712345678", list[0].CustomerPhone)
}

func TestIngestConcurrentDistinctSenders(t *testing.T) {
	uc, repo := newIngestUC(inbox.LinkPolicyFirstWins)
	ctx := context.Background()

	const senders = 8
	const perSender = 5
	var wg sync.WaitGroup
	wg.Add(senders * perSender)
	for s := 0; s < senders; s++ {
		for i := 0; i < perSender; i++ {
			go func(s int) {
				defer wg.Done()
				_, err := uc.Execute(ctx, IngestMessageInput{
					SenderKey: fmt.Sprintf("fb:%d", s), Text: "hello",
				})
				assert.NoError(t, err)
			}(s)
		}
	}
	wg.Wait()

	list, err := repo.ListByRecency(ctx)
	require.NoError(t, err)
	require.Len(t, list, senders)
	for _, conv := range list {
		assert.Len(t, conv.Messages, perSender)
	}
}

func TestIngestRequiresSenderKey(t *testing.T) {
	uc, _ := newIngestUC(inbox.LinkPolicyFirstWins)
	_, err := uc.Execute(context.Background(), IngestMessageInput{Text: "hi"})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrPersistence)
}

// failingRepo simulates an unreachable store.
type failingRepo struct{}

var errStoreDown = errors.New("store down")

func (f *failingRepo) ResolveOrCreate(ctx context.Context, senderKey, displayName string) (inbox.Conversation, bool, error) {
	return inbox.Conversation{}, false, errStoreDown
}
func (f *failingRepo) AppendMessage(ctx context.Context, conversationID string, m inbox.Message) (inbox.Message, error) {
	return inbox.Message{}, errStoreDown
}
func (f *failingRepo) SetLeadPhone(ctx context.Context, conversationID, phone string, overwrite bool) error {
	return errStoreDown
}
func (f *failingRepo) GetConversation(ctx context.Context, conversationID string) (inbox.Conversation, error) {
	return inbox.Conversation{}, errStoreDown
}
func (f *failingRepo) ListByRecency(ctx context.Context) ([]inbox.Conversation, error) {
	return nil, errStoreDown
}

var _ repository.ConversationRepository = (*failingRepo)(nil)

func TestIngestWrapsStoreFailures(t *testing.T) {
	uc := NewIngestMessageUseCase(&failingRepo{}, inbox.LeadLinker{})
	res, err := uc.Execute(context.Background(), IngestMessageInput{SenderKey: "fb:1001", Text: "hi"})
	assert.ErrorIs(t, err, ErrPersistence)
	// Nothing is reported as applied.
	assert.Empty(t, res.ConversationID)
}
