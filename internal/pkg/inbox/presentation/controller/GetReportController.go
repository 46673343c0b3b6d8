package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	cacheport "go-leadline/internal/infrastructure/cache/port"
	"go-leadline/internal/pkg/inbox/application/task"

	"github.com/gin-gonic/gin"
)

// GetReportController serves finished CSV lead reports from the cache (one controller per endpoint)
type GetReportController struct {
	Cache cacheport.Cache
}

func NewGetReportController(cache cacheport.Cache) *GetReportController {
	return &GetReportController{Cache: cache}
}

func (h *GetReportController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.Cache == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "report storage is not configured"})
			return
		}
		reportID := c.Param("reportId")
		if reportID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "reportId is required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		body, err := h.Cache.Get(ctx, task.ReportCacheKey(reportID))
		if err != nil {
			if errors.Is(err, cacheport.ErrMiss) {
				// Either still building or expired; the caller retries or re-requests.
				c.JSON(http.StatusNotFound, gin.H{"error": "report not ready or unknown"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.Header("Content-Disposition", `attachment; filename="leads-`+reportID+`.csv"`)
		c.Data(http.StatusOK, "text/csv", []byte(body))
	}
}
