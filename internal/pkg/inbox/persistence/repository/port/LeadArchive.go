package repository

import (
	"context"
	"time"
)

// Lead is the CRM-facing projection of a lead-linked conversation.
// The phone is the verbatim extracted substring; downstream CRM flows own
// normalization.
type Lead struct {
	ConversationID string    `db:"conversation_id"`
	CustomerName   string    `db:"customer_name"`
	CustomerPhone  string    `db:"customer_phone"`
	LinkedAt       time.Time `db:"linked_at"`
}

// LeadArchive persists linked leads outside the live inbox for follow-up.
// SaveLead must be idempotent per conversation id so the archival worker can
// retry freely.
type LeadArchive interface {
	SaveLead(ctx context.Context, l Lead) error
	ListLeads(ctx context.Context, limit int) ([]Lead, error)
}
