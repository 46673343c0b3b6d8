package v1

import (
	cacheport "go-leadline/internal/infrastructure/cache/port"
	qport "go-leadline/internal/infrastructure/queue/port"
	"go-leadline/internal/infrastructure/realtime"
	contactsHandler "go-leadline/internal/pkg/contacts/presentation/http"
	inbox "go-leadline/internal/pkg/inbox/application/domain"
	inboxHandler "go-leadline/internal/pkg/inbox/presentation/http"
	repository "go-leadline/internal/pkg/inbox/persistence/repository/port"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts all version 1 API routes under /api/v1
func RegisterRoutes(r *gin.Engine, repo repository.ConversationRepository, linker inbox.LeadLinker, hub *realtime.Hub, q qport.Client, cache cacheport.Cache, archive repository.LeadArchive) {
	v1 := r.Group("/api/v1")
	// Pass the store and side-effect collaborators down to the HTTP layer
	inboxHandler.RegisterRoutes(v1, repo, linker, hub, q, cache, archive)
	contactsHandler.RegisterRoutes(v1)
}
