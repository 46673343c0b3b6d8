package http

import (
	"go-leadline/internal/pkg/contacts/presentation/controller"
	"go-leadline/internal/pkg/contacts/repository/adapter"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers contact-book HTTP endpoints under the given router group.
// The phone book lives and dies with the process, so the repository is
// constructed here; nothing else consumes it.
func RegisterRoutes(g *gin.RouterGroup) {
	repo := adapter.NewMemoryContactRepository()
	importCtl := controller.NewImportContactsController(repo)
	listCtl := controller.NewListContactsController(repo)

	// POST /api/v1/contacts/import -> bulk phone-list import
	g.POST("/contacts/import", importCtl.Handle())

	// GET /api/v1/contacts -> the imported phone book
	g.GET("/contacts", listCtl.Handle())
}
