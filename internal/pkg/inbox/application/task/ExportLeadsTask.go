package task

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	cacheport "go-leadline/internal/infrastructure/cache/port"
	qport "go-leadline/internal/infrastructure/queue/port"
	"go-leadline/internal/pkg/inbox/application/usecase"
	repository "go-leadline/internal/pkg/inbox/persistence/repository/port"

	"github.com/sirupsen/logrus"
)

// ExportLeadsTaskType is the queue task name for building a CSV lead report.
const ExportLeadsTaskType = "inbox:export_leads"

// reportTTL bounds how long a generated report stays fetchable.
const reportTTL = 24 * time.Hour

// ExportLeadsTaskPayload carries the caller-chosen report id the finished CSV
// is stored under.
type ExportLeadsTaskPayload struct {
	ReportID string `json:"reportId"`
}

// ReportCacheKey is the cache key a finished report lives at.
func ReportCacheKey(reportID string) string {
	return "report:" + reportID
}

// RegisterExportLeadsTask binds the task handler to the provided server.
// The handler renders the report from the live store and parks it in the
// cache for the report endpoint to serve.
func RegisterExportLeadsTask(srv qport.Server, repo repository.ConversationRepository, cache cacheport.Cache) {
	srv.Register(ExportLeadsTaskType, func(ctx context.Context, t qport.Task) error {
		var p ExportLeadsTaskPayload
		if err := json.Unmarshal(t.Payload, &p); err != nil {
			// malformed payload: do not retry indefinitely
			return err
		}
		if p.ReportID == "" {
			return errors.New("export leads: report id is required")
		}

		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		body, err := usecase.NewExportLeadsUseCase(repo).Execute(ctx)
		if err != nil {
			return err
		}
		if err := cache.Set(ctx, ReportCacheKey(p.ReportID), body, reportTTL); err != nil {
			return err
		}
		logrus.WithField("report_id", p.ReportID).Info("lead report generated")
		return nil
	})
}
