package task

import (
	"context"
	"encoding/json"
	"time"

	qport "go-leadline/internal/infrastructure/queue/port"
	repoAdapter "go-leadline/internal/pkg/inbox/persistence/repository/adapter"
	repository "go-leadline/internal/pkg/inbox/persistence/repository/port"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

// ArchiveLeadTaskType is the queue task name for persisting a freshly linked
// lead into the CRM archive.
const ArchiveLeadTaskType = "inbox:archive_lead"

// ArchiveLeadTaskPayload is the JSON payload transported via the queue.
// Kept decoupled from domain types to avoid tight coupling with JSON tags.
type ArchiveLeadTaskPayload struct {
	ConversationID string    `json:"conversationId"`
	CustomerName   string    `json:"customerName"`
	CustomerPhone  string    `json:"customerPhone"`
	LinkedAt       time.Time `json:"linkedAt"`
}

// RegisterArchiveLeadTask binds the task handler to the provided server.
// The handler writes through the Postgres lead archive; SaveLead is
// insert-once per conversation, so queue retries are harmless.
func RegisterArchiveLeadTask(srv qport.Server, pool *pgxpool.Pool) {
	srv.Register(ArchiveLeadTaskType, func(ctx context.Context, t qport.Task) error {
		var p ArchiveLeadTaskPayload
		if err := json.Unmarshal(t.Payload, &p); err != nil {
			// malformed payload: do not retry indefinitely
			return err
		}

		archive := repoAdapter.NewPgLeadArchive(pool)

		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		err := archive.SaveLead(ctx, repository.Lead{
			ConversationID: p.ConversationID,
			CustomerName:   p.CustomerName,
			CustomerPhone:  p.CustomerPhone,
			LinkedAt:       p.LinkedAt,
		})
		if err != nil {
			return err
		}
		logrus.WithField("conversation_id", p.ConversationID).Debug("lead archived")
		return nil
	})
}
