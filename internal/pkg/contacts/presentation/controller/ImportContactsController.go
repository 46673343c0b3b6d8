package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	repository "go-leadline/internal/pkg/contacts/repository/port"
	"go-leadline/internal/pkg/contacts/usecase"

	"github.com/gin-gonic/gin"
)

// ImportContactsController handles the bulk phone-list import endpoint (one controller per endpoint)
type ImportContactsController struct {
	UC *usecase.ImportContactsUseCase
}

func NewImportContactsController(repo repository.ContactRepository) *ImportContactsController {
	return &ImportContactsController{UC: usecase.NewImportContactsUseCase(repo)}
}

type importContactsRequest struct {
	Contacts []importContactEntry `json:"contacts" binding:"required"`
}

type importContactEntry struct {
	Name  string `json:"name"`
	Phone string `json:"phone" binding:"required"`
}

func (h *ImportContactsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req importContactsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		entries := make([]usecase.ContactEntry, 0, len(req.Contacts))
		for _, e := range req.Contacts {
			entries = append(entries, usecase.ContactEntry{Name: e.Name, Phone: e.Phone})
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		report, err := h.UC.Execute(ctx, entries)
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, usecase.ErrPersistence) {
				status = http.StatusInternalServerError
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"imported":   report.Imported,
			"duplicates": report.Duplicates,
			"invalid":    report.Invalid,
		})
	}
}
