package adapter

import (
	"context"
	"errors"

	repository "go-leadline/internal/pkg/inbox/persistence/repository/port"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PgLeadArchive persists linked leads in Postgres for the CRM follow-up flow.
// The live inbox stays in memory; this table is the durable trail.
type PgLeadArchive struct {
	pool *pgxpool.Pool
}

func NewPgLeadArchive(pool *pgxpool.Pool) *PgLeadArchive {
	return &PgLeadArchive{pool: pool}
}

var _ repository.LeadArchive = (*PgLeadArchive)(nil)

func (r *PgLeadArchive) SaveLead(ctx context.Context, l repository.Lead) error {
	if r == nil || r.pool == nil {
		return errors.New("PgLeadArchive: nil pool")
	}
	// Insert-once per conversation keeps the archival worker retry-safe.
	_, err := r.pool.Exec(ctx, `
		INSERT INTO leadline.lead (conversation_id, customer_name, customer_phone, linked_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (conversation_id) DO NOTHING
	`, l.ConversationID, l.CustomerName, l.CustomerPhone, l.LinkedAt)
	return err
}

func (r *PgLeadArchive) ListLeads(ctx context.Context, limit int) ([]repository.Lead, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgLeadArchive: nil pool")
	}
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx, `
		SELECT conversation_id, customer_name, customer_phone, linked_at
		FROM leadline.lead
		ORDER BY linked_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []repository.Lead
	for rows.Next() {
		var l repository.Lead
		if err := rows.Scan(&l.ConversationID, &l.CustomerName, &l.CustomerPhone, &l.LinkedAt); err != nil {
			return nil, err
		}
		leads = append(leads, l)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return leads, nil
}
