package controller

import (
	"context"
	"net/http"
	"strconv"
	"time"

	repository "go-leadline/internal/pkg/inbox/persistence/repository/port"

	"github.com/gin-gonic/gin"
)

// ListLeadsController serves archived leads from the CRM store (one controller per endpoint)
type ListLeadsController struct {
	Archive repository.LeadArchive
}

func NewListLeadsController(archive repository.LeadArchive) *ListLeadsController {
	return &ListLeadsController{Archive: archive}
}

func (h *ListLeadsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.Archive == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "lead archive is not configured"})
			return
		}

		limit := 100
		if v := c.Query("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				limit = n
			}
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		leads, err := h.Archive.ListLeads(ctx, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		out := make([]gin.H, 0, len(leads))
		for _, l := range leads {
			out = append(out, gin.H{
				"conversation_id": l.ConversationID,
				"customer_name":   l.CustomerName,
				"customer_phone":  l.CustomerPhone,
				"linked_at":       l.LinkedAt,
			})
		}

		c.JSON(http.StatusOK, gin.H{
			"leads": out,
			"count": len(out),
		})
	}
}
