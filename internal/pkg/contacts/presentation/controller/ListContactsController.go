package controller

import (
	"context"
	"net/http"
	"time"

	repository "go-leadline/internal/pkg/contacts/repository/port"

	"github.com/gin-gonic/gin"
)

// ListContactsController serves the imported phone book (one controller per endpoint)
type ListContactsController struct {
	Repo repository.ContactRepository
}

func NewListContactsController(repo repository.ContactRepository) *ListContactsController {
	return &ListContactsController{Repo: repo}
}

func (h *ListContactsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		list, err := h.Repo.List(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		out := make([]gin.H, 0, len(list))
		for _, contact := range list {
			out = append(out, gin.H{
				"id":       contact.ID,
				"name":     contact.Name,
				"phone":    contact.Phone,
				"added_at": contact.AddedAt,
			})
		}

		c.JSON(http.StatusOK, gin.H{
			"contacts": out,
			"count":    len(out),
		})
	}
}
