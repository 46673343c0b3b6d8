package inbox

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Domain-level errors for inbox behaviors
var (
	ErrConversationNotFound = errors.New("inbox: conversation not found")
	ErrPhoneAlreadySet      = errors.New("inbox: customer phone already set")
	ErrPhoneConflict        = errors.New("inbox: conflicting customer phone")
)

// Sender identifies which side of the thread produced a message
// 0=customer, 1=page
type Sender int16

const (
	SenderCustomer Sender = 0
	SenderPage     Sender = 1
)

// Message is an immutable log entry in a conversation.
// Content is kept exactly as received; extraction runs on it but never rewrites it.
type Message struct {
	ID             string
	ConversationID string
	Sender         Sender
	Content        string
	SentAt         time.Time
}

// Conversation is a thread of messages tied to one sender identity.
//
// Notes:
//   - SenderKey is the stable channel-provided identity and the only resolution
//     key; CustomerName is display-only and may change between messages, so two
//     senders sharing a name never collide into one thread.
//   - CustomerPhone and IsLeadLinked move together: the phone is set at most by
//     policy, and IsLeadLinked only ever transitions false -> true. The lead
//     linker is the single authority for that flip.
type Conversation struct {
	ID            string
	SenderKey     string
	CustomerName  string
	CustomerPhone string
	IsLeadLinked  bool
	CreatedAt     time.Time
	LastUpdated   time.Time
	Messages      []Message
}

// NewConversation opens an empty thread for the given sender.
// A thread only becomes visible to listings once its first message lands.
func NewConversation(senderKey, displayName string, now time.Time) (Conversation, error) {
	if senderKey == "" {
		return Conversation{}, errors.New("sender key is required")
	}
	if displayName == "" {
		displayName = senderKey
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}
	return Conversation{
		ID:           uuid.NewString(),
		SenderKey:    senderKey,
		CustomerName: displayName,
		CreatedAt:    now,
	}, nil
}

// NewCustomerMessage builds an inbound message for the thread.
// A zero sentAt means "now"; content may be empty (extraction just finds nothing).
func NewCustomerMessage(conversationID string, content string, sentAt time.Time) (Message, error) {
	if conversationID == "" {
		return Message{}, errors.New("conversation_id is required")
	}
	if sentAt.IsZero() {
		sentAt = time.Now().UTC()
	}
	return Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		Sender:         SenderCustomer,
		Content:        content,
		SentAt:         sentAt,
	}, nil
}
