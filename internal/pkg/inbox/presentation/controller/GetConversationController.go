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

// GetConversationController handles fetching one thread by id (one controller per endpoint)
type GetConversationController struct {
	UC *usecase.GetConversationUseCase
}

func NewGetConversationController(repo repository.ConversationRepository) *GetConversationController {
	return &GetConversationController{UC: usecase.NewGetConversationUseCase(repo)}
}

func (h *GetConversationController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		conversationID := c.Param("conversationId")
		if conversationID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "conversationId is required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		conv, err := h.UC.Execute(ctx, conversationID)
		if err != nil {
			switch {
			case errors.Is(err, inbox.ErrConversationNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			case errors.Is(err, usecase.ErrPersistence):
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			}
			return
		}

		c.JSON(http.StatusOK, conversationJSON(conv))
	}
}
