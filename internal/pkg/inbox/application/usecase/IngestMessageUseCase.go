package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	inbox "go-leadline/internal/pkg/inbox/application/domain"
	repository "go-leadline/internal/pkg/inbox/persistence/repository/port"

	"github.com/sirupsen/logrus"
)

// IngestMessageInput carries one inbound message from the channel webhook.
// SenderKey is the stable channel identity used for thread resolution;
// SenderName is display-only and defaults to the key when absent.
type IngestMessageInput struct {
	SenderKey  string
	SenderName string
	Text       string
	SentAt     time.Time
}

// IngestResult reports what one ingest did. MessageID is returned so callers
// can dedupe their own retries; ingestion itself never deduplicates.
type IngestResult struct {
	ConversationID     string
	MessageID          string
	WasNewConversation bool
	Link               inbox.LinkResult
	Conversation       inbox.Conversation
}

// IngestMessageUseCase is the ingestion pipeline: resolve the thread, append
// the message, extract a phone from the text, and apply the lead linker.
// Hexagonal: depends on repository port, returns domain results.
// One class per use case (own file)
type IngestMessageUseCase struct {
	Repo   repository.ConversationRepository
	Linker inbox.LeadLinker

	keys *keyedMutex
}

func NewIngestMessageUseCase(repo repository.ConversationRepository, linker inbox.LeadLinker) *IngestMessageUseCase {
	return &IngestMessageUseCase{Repo: repo, Linker: linker, keys: newKeyedMutex()}
}

// Execute runs the pipeline for one message under per-sender mutual exclusion.
//
// Once the append lands the call always runs to completion: a linking conflict
// under first- or last-wins is an outcome, and under the reject policy the
// error is returned alongside the result of the already-applied append.
// Repository failures before the append wrap ErrPersistence and leave no state.
func (uc *IngestMessageUseCase) Execute(ctx context.Context, in IngestMessageInput) (IngestResult, error) {
	if in.SenderKey == "" {
		return IngestResult{}, fmt.Errorf("sender key is required")
	}

	unlock := uc.keys.Lock(in.SenderKey)
	defer unlock()

	conv, created, err := uc.Repo.ResolveOrCreate(ctx, in.SenderKey, in.SenderName)
	if err != nil {
		return IngestResult{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	msg, err := inbox.NewCustomerMessage(conv.ID, in.Text, in.SentAt)
	if err != nil {
		return IngestResult{}, err
	}
	stored, err := uc.Repo.AppendMessage(ctx, conv.ID, msg)
	if err != nil {
		return IngestResult{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	res := IngestResult{
		ConversationID:     conv.ID,
		MessageID:          stored.ID,
		WasNewConversation: created,
	}

	phone, _ := inbox.ExtractPhone(in.Text)
	link, linkErr := uc.Linker.Apply(conv, phone)
	res.Link = link

	if link.Status == inbox.LinkLinked {
		if err := uc.Repo.SetLeadPhone(ctx, conv.ID, link.Phone, link.Overwrite); err != nil {
			if errors.Is(err, inbox.ErrPhoneAlreadySet) {
				// Lost the first-phone race to a concurrent ingest; the
				// earlier number stands.
				res.Link = inbox.LinkResult{Status: inbox.LinkUnchanged}
			} else {
				return IngestResult{}, fmt.Errorf("%w: %v", ErrPersistence, err)
			}
		} else {
			logrus.WithFields(logrus.Fields{
				"conversation_id": conv.ID,
				"customer_phone":  link.Phone,
			}).Info("conversation linked as lead")
		}
	}

	final, err := uc.Repo.GetConversation(ctx, conv.ID)
	if err != nil {
		return IngestResult{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	res.Conversation = final

	return res, linkErr
}
