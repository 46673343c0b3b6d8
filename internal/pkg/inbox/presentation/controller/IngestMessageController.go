package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	qport "go-leadline/internal/infrastructure/queue/port"
	"go-leadline/internal/infrastructure/realtime"
	inbox "go-leadline/internal/pkg/inbox/application/domain"
	"go-leadline/internal/pkg/inbox/application/task"
	"go-leadline/internal/pkg/inbox/application/usecase"
	repository "go-leadline/internal/pkg/inbox/persistence/repository/port"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// IngestMessageController handles the inbound-message webhook boundary (one controller per endpoint).
// Side effects after a successful ingest are best-effort: lead archival goes
// through the queue, watcher notification through the hub; neither can fail
// the ingest that already happened.
type IngestMessageController struct {
	UC  *usecase.IngestMessageUseCase
	Q   qport.Client
	hub *realtime.Hub
}

func NewIngestMessageController(repo repository.ConversationRepository, linker inbox.LeadLinker, q qport.Client, hub *realtime.Hub) *IngestMessageController {
	return &IngestMessageController{
		UC:  usecase.NewIngestMessageUseCase(repo, linker),
		Q:   q,
		hub: hub,
	}
}

// ingestMessageRequest is the DTO for the HTTP request body
type ingestMessageRequest struct {
	SenderID   string     `json:"sender_id" binding:"required"`
	SenderName string     `json:"sender_name"`
	Text       string     `json:"text"`
	SentAt     *time.Time `json:"sent_at"`
}

// inboxEvent is the frame pushed to websocket watchers after an ingest.
type inboxEvent struct {
	Type           string    `json:"type"`
	ConversationID string    `json:"conversation_id"`
	CustomerName   string    `json:"customer_name"`
	IsLeadLinked   bool      `json:"is_lead_linked"`
	LastUpdated    time.Time `json:"last_updated"`
}

func (h *IngestMessageController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ingestMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		in := usecase.IngestMessageInput{
			SenderKey:  req.SenderID,
			SenderName: req.SenderName,
			Text:       req.Text,
		}
		if req.SentAt != nil {
			in.SentAt = *req.SentAt
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		res, err := h.UC.Execute(ctx, in)
		if err != nil {
			switch {
			case errors.Is(err, inbox.ErrPhoneConflict):
				// The message is already appended; only the link was refused.
				c.JSON(http.StatusConflict, gin.H{
					"error":           err.Error(),
					"conversation_id": res.ConversationID,
					"message_id":      res.MessageID,
					"customer_phone":  res.Conversation.CustomerPhone,
				})
			case errors.Is(err, usecase.ErrPersistence):
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			}
			return
		}

		h.afterIngest(c, res)

		status := http.StatusOK
		if res.WasNewConversation {
			status = http.StatusCreated
		}
		c.JSON(status, gin.H{
			"conversation_id":  res.ConversationID,
			"message_id":       res.MessageID,
			"new_conversation": res.WasNewConversation,
			"link_status":      res.Link.Status.String(),
			"customer_phone":   res.Conversation.CustomerPhone,
			"is_lead_linked":   res.Conversation.IsLeadLinked,
		})
	}
}

// afterIngest enqueues lead archival and notifies watchers.
func (h *IngestMessageController) afterIngest(c *gin.Context, res usecase.IngestResult) {
	if h.Q != nil && res.Link.Status == inbox.LinkLinked {
		payload := task.ArchiveLeadTaskPayload{
			ConversationID: res.ConversationID,
			CustomerName:   res.Conversation.CustomerName,
			CustomerPhone:  res.Conversation.CustomerPhone,
			LinkedAt:       res.Conversation.LastUpdated,
		}
		if b, err := json.Marshal(payload); err == nil {
			opts := qport.EnqueueOption{Queue: "inbox", MaxRetry: 10}
			if _, err := h.Q.Enqueue(c.Request.Context(), qport.Task{Type: task.ArchiveLeadTaskType, Payload: b}, opts); err != nil {
				logrus.WithField("conversation_id", res.ConversationID).WithError(err).Warn("failed to enqueue lead archival")
			}
		}
	}

	if h.hub != nil {
		ev := inboxEvent{
			Type:           "conversation_updated",
			ConversationID: res.ConversationID,
			CustomerName:   res.Conversation.CustomerName,
			IsLeadLinked:   res.Conversation.IsLeadLinked,
			LastUpdated:    res.Conversation.LastUpdated,
		}
		if b, err := json.Marshal(ev); err == nil {
			h.hub.Broadcast(b)
		}
	}
}
