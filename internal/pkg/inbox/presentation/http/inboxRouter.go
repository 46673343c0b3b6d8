package http

import (
	cacheport "go-leadline/internal/infrastructure/cache/port"
	qport "go-leadline/internal/infrastructure/queue/port"
	"go-leadline/internal/infrastructure/realtime"
	inbox "go-leadline/internal/pkg/inbox/application/domain"
	"go-leadline/internal/pkg/inbox/presentation/controller"
	repository "go-leadline/internal/pkg/inbox/persistence/repository/port"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers inbox-related HTTP endpoints under the given router group.
// It constructs per-endpoint controllers and binds them directly to routes.
// Queue client, cache and lead archive may be nil; their endpoints answer 503.
func RegisterRoutes(g *gin.RouterGroup, repo repository.ConversationRepository, linker inbox.LeadLinker, hub *realtime.Hub, q qport.Client, cache cacheport.Cache, archive repository.LeadArchive) {
	ingestCtl := controller.NewIngestMessageController(repo, linker, q, hub)
	listCtl := controller.NewListConversationsController(repo)
	getCtl := controller.NewGetConversationController(repo)
	watchCtl := controller.NewWatchInboxController(hub)
	exportCtl := controller.NewExportLeadsController(q)
	reportCtl := controller.NewGetReportController(cache)
	leadsCtl := controller.NewListLeadsController(archive)

	// POST /api/v1/inbox/messages -> ingest one inbound message
	g.POST("/inbox/messages", ingestCtl.Handle())

	// GET /api/v1/inbox/conversations -> recency-ordered inbox for the poller
	g.GET("/inbox/conversations", listCtl.Handle())

	// GET /api/v1/inbox/conversations/:conversationId -> one thread with messages
	g.GET("/inbox/conversations/:conversationId", getCtl.Handle())

	// GET /api/v1/inbox/ws -> websocket endpoint for dashboard watchers
	g.GET("/inbox/ws", watchCtl.Handle())

	// GET /api/v1/leads -> archived leads
	g.GET("/leads", leadsCtl.Handle())

	// POST /api/v1/reports/leads -> queue a CSV lead-report build
	g.POST("/reports/leads", exportCtl.Handle())

	// GET /api/v1/reports/:reportId -> fetch a finished report
	g.GET("/reports/:reportId", reportCtl.Handle())
}
