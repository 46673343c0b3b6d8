package repository

import (
	"context"

	inbox "go-leadline/internal/pkg/inbox/application/domain"
)

// ConversationRepository defines storage operations for the inbox domain.
// Implementations must be safe for concurrent use; all read methods return
// snapshots so callers never alias live message slices.
type ConversationRepository interface {
	// ResolveOrCreate finds the thread for the stable sender key, creating an
	// empty one when the key is new. The display name is refreshed on every
	// call when non-empty. The bool reports whether a thread was created.
	ResolveOrCreate(ctx context.Context, senderKey string, displayName string) (inbox.Conversation, bool, error)

	// AppendMessage adds m to the thread and advances LastUpdated to the
	// message timestamp. Timestamps never move backwards within a thread: a
	// backdated message is clamped forward to the current watermark. Returns
	// the message as stored and inbox.ErrConversationNotFound for unknown ids.
	AppendMessage(ctx context.Context, conversationID string, m inbox.Message) (inbox.Message, error)

	// SetLeadPhone records the lead phone and marks the thread lead-linked.
	// When a phone is already present the call fails with
	// inbox.ErrPhoneAlreadySet unless overwrite is set.
	SetLeadPhone(ctx context.Context, conversationID string, phone string, overwrite bool) error

	// GetConversation returns one thread with its full message sequence.
	GetConversation(ctx context.Context, conversationID string) (inbox.Conversation, error)

	// ListByRecency returns all threads holding at least one message, ordered
	// by LastUpdated descending with ties broken by creation order. The
	// ordering is recomputed on every call, never cached.
	ListByRecency(ctx context.Context) ([]inbox.Conversation, error)
}
