package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	qport "go-leadline/internal/infrastructure/queue/port"
	"go-leadline/internal/pkg/inbox/application/task"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ExportLeadsController enqueues a background CSV lead-report build (one controller per endpoint)
type ExportLeadsController struct {
	Q qport.Client
}

func NewExportLeadsController(q qport.Client) *ExportLeadsController {
	return &ExportLeadsController{Q: q}
}

// Handle returns a gin handler that enqueues a report build and hands back the
// id the finished report will be fetchable under.
func (h *ExportLeadsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.Q == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "report queue is not configured"})
			return
		}

		reportID := uuid.NewString()
		b, err := json.Marshal(task.ExportLeadsTaskPayload{ReportID: reportID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to encode task payload"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		opts := qport.EnqueueOption{Queue: "inbox", MaxRetry: 5, Retention: 24 * time.Hour}
		if _, err := h.Q.Enqueue(ctx, qport.Task{Type: task.ExportLeadsTaskType, Payload: b}, opts); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to enqueue report build"})
			return
		}

		c.JSON(http.StatusAccepted, gin.H{
			"status":    "queued",
			"report_id": reportID,
		})
	}
}
