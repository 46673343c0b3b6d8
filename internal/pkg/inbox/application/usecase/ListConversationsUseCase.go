package usecase

import (
	"context"
	"fmt"

	inbox "go-leadline/internal/pkg/inbox/application/domain"
	repository "go-leadline/internal/pkg/inbox/persistence/repository/port"
)

// ListConversationsUseCase serves the polling viewer: the full inbox ordered
// by recency, each thread with its message sequence.
// One class per use case (own file)
type ListConversationsUseCase struct {
	Repo repository.ConversationRepository
}

func NewListConversationsUseCase(repo repository.ConversationRepository) *ListConversationsUseCase {
	return &ListConversationsUseCase{Repo: repo}
}

// Execute returns a fresh recency-ordered snapshot; nothing is cached between
// polls, so the viewer always observes the latest appends.
func (uc *ListConversationsUseCase) Execute(ctx context.Context) ([]inbox.Conversation, error) {
	convs, err := uc.Repo.ListByRecency(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return convs, nil
}
