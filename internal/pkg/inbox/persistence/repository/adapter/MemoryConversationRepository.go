package adapter

import (
	"context"
	"sort"
	"sync"
	"time"

	inbox "go-leadline/internal/pkg/inbox/application/domain"
	repository "go-leadline/internal/pkg/inbox/persistence/repository/port"
)

// MemoryConversationRepository keeps the live inbox in process memory. The
// console's polling viewer re-reads it on a fixed interval, so every read
// returns a deep snapshot: appends running between two polls can never expose
// a half-written message or reorder what a snapshot already captured.
type MemoryConversationRepository struct {
	mu    sync.RWMutex
	byID  map[string]*conversationState
	byKey map[string]*conversationState
	seq   []*conversationState // creation order, the tie-break for listings
}

type conversationState struct {
	conv inbox.Conversation
}

func NewMemoryConversationRepository() *MemoryConversationRepository {
	return &MemoryConversationRepository{
		byID:  make(map[string]*conversationState),
		byKey: make(map[string]*conversationState),
	}
}

// Ensure interface compliance at compile time
var _ repository.ConversationRepository = (*MemoryConversationRepository)(nil)

func (r *MemoryConversationRepository) ResolveOrCreate(ctx context.Context, senderKey string, displayName string) (inbox.Conversation, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if st, ok := r.byKey[senderKey]; ok {
		if displayName != "" && displayName != st.conv.CustomerName {
			st.conv.CustomerName = displayName
		}
		return snapshot(st), false, nil
	}

	conv, err := inbox.NewConversation(senderKey, displayName, time.Now().UTC())
	if err != nil {
		return inbox.Conversation{}, false, err
	}
	st := &conversationState{conv: conv}
	r.byID[conv.ID] = st
	r.byKey[senderKey] = st
	r.seq = append(r.seq, st)
	return snapshot(st), true, nil
}

func (r *MemoryConversationRepository) AppendMessage(ctx context.Context, conversationID string, m inbox.Message) (inbox.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	st, ok := r.byID[conversationID]
	if !ok {
		return inbox.Message{}, inbox.ErrConversationNotFound
	}

	if m.SentAt.IsZero() {
		m.SentAt = time.Now().UTC()
	}
	// Timestamps are non-decreasing within a thread; a backdated message is
	// clamped forward instead of rejected because ingestion must not fail
	// after the thread is resolved.
	if m.SentAt.Before(st.conv.LastUpdated) {
		m.SentAt = st.conv.LastUpdated
	}

	st.conv.Messages = append(st.conv.Messages, m)
	st.conv.LastUpdated = m.SentAt
	return m, nil
}

func (r *MemoryConversationRepository) SetLeadPhone(ctx context.Context, conversationID string, phone string, overwrite bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	st, ok := r.byID[conversationID]
	if !ok {
		return inbox.ErrConversationNotFound
	}
	if st.conv.CustomerPhone != "" && !overwrite {
		return inbox.ErrPhoneAlreadySet
	}
	st.conv.CustomerPhone = phone
	st.conv.IsLeadLinked = true
	return nil
}

func (r *MemoryConversationRepository) GetConversation(ctx context.Context, conversationID string) (inbox.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	st, ok := r.byID[conversationID]
	if !ok {
		return inbox.Conversation{}, inbox.ErrConversationNotFound
	}
	return snapshot(st), nil
}

func (r *MemoryConversationRepository) ListByRecency(ctx context.Context) ([]inbox.Conversation, error) {
	r.mu.RLock()
	out := make([]inbox.Conversation, 0, len(r.seq))
	for _, st := range r.seq {
		// A thread becomes visible once its first message lands.
		if len(st.conv.Messages) == 0 {
			continue
		}
		out = append(out, snapshot(st))
	}
	r.mu.RUnlock()

	// seq is creation order, so a stable sort gives the documented tie-break.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastUpdated.After(out[j].LastUpdated)
	})
	return out, nil
}

// snapshot copies the conversation and its message slice so callers can hold
// the result across later appends.
func snapshot(st *conversationState) inbox.Conversation {
	c := st.conv
	c.Messages = make([]inbox.Message, len(st.conv.Messages))
	copy(c.Messages, st.conv.Messages)
	return c
}
