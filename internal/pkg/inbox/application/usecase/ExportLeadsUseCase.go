package usecase

import (
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	repository "go-leadline/internal/pkg/inbox/persistence/repository/port"
)

// ExportLeadsUseCase renders the lead-linked slice of the inbox as a CSV
// report for the agency console. Row order follows the inbox's recency order.
// One class per use case (own file)
type ExportLeadsUseCase struct {
	Repo repository.ConversationRepository
}

func NewExportLeadsUseCase(repo repository.ConversationRepository) *ExportLeadsUseCase {
	return &ExportLeadsUseCase{Repo: repo}
}

// Execute builds the CSV body. Phones appear exactly as extracted; the report
// consumer normalizes if it needs E.164.
func (uc *ExportLeadsUseCase) Execute(ctx context.Context) (string, error) {
	convs, err := uc.Repo.ListByRecency(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	var b strings.Builder
	w := csv.NewWriter(&b)
	_ = w.Write([]string{"conversation_id", "customer_name", "customer_phone", "last_updated", "messages"})
	for _, c := range convs {
		if !c.IsLeadLinked {
			continue
		}
		_ = w.Write([]string{
			c.ID,
			c.CustomerName,
			c.CustomerPhone,
			c.LastUpdated.UTC().Format(time.RFC3339),
			strconv.Itoa(len(c.Messages)),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return b.String(), nil
}
