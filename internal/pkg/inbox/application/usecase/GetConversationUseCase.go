package usecase

import (
	"context"
	"errors"
	"fmt"

	inbox "go-leadline/internal/pkg/inbox/application/domain"
	repository "go-leadline/internal/pkg/inbox/persistence/repository/port"
)

// GetConversationUseCase fetches one thread with its full message sequence.
// One class per use case (own file)
type GetConversationUseCase struct {
	Repo repository.ConversationRepository
}

func NewGetConversationUseCase(repo repository.ConversationRepository) *GetConversationUseCase {
	return &GetConversationUseCase{Repo: repo}
}

func (uc *GetConversationUseCase) Execute(ctx context.Context, conversationID string) (inbox.Conversation, error) {
	if conversationID == "" {
		return inbox.Conversation{}, fmt.Errorf("conversationId is required")
	}
	conv, err := uc.Repo.GetConversation(ctx, conversationID)
	if err != nil {
		if errors.Is(err, inbox.ErrConversationNotFound) {
			return inbox.Conversation{}, err
		}
		return inbox.Conversation{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return conv, nil
}
