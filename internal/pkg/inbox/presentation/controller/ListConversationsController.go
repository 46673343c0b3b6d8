package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	inbox "go-leadline/internal/pkg/inbox/application/domain"
	"go-leadline/internal/pkg/inbox/application/usecase"
	repository "go-leadline/internal/pkg/inbox/persistence/repository/port"

	"github.com/gin-gonic/gin"
)

// ListConversationsController serves the polling viewer's inbox read (one controller per endpoint)
type ListConversationsController struct {
	UC *usecase.ListConversationsUseCase
}

func NewListConversationsController(repo repository.ConversationRepository) *ListConversationsController {
	return &ListConversationsController{UC: usecase.NewListConversationsUseCase(repo)}
}

func (h *ListConversationsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		convs, err := h.UC.Execute(ctx)
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, usecase.ErrPersistence) {
				status = http.StatusInternalServerError
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		out := make([]gin.H, 0, len(convs))
		for _, conv := range convs {
			out = append(out, conversationJSON(conv))
		}

		c.JSON(http.StatusOK, gin.H{
			"conversations": out,
			"count":         len(out),
		})
	}
}

// conversationJSON serializes a thread with its full message sequence;
// field names kept explicit for clarity.
func conversationJSON(conv inbox.Conversation) gin.H {
	msgs := make([]gin.H, 0, len(conv.Messages))
	for _, m := range conv.Messages {
		msgs = append(msgs, gin.H{
			"id":      m.ID,
			"sender":  m.Sender,
			"content": m.Content,
			"sent_at": m.SentAt,
		})
	}
	return gin.H{
		"id":             conv.ID,
		"sender_id":      conv.SenderKey,
		"customer_name":  conv.CustomerName,
		"customer_phone": conv.CustomerPhone,
		"is_lead_linked": conv.IsLeadLinked,
		"created_at":     conv.CreatedAt,
		"last_updated":   conv.LastUpdated,
		"messages":       msgs,
	}
}
