package convstore

import (
	"context"
	"sync"
	"time"

	"assist-server/services/assistant-api/internal/domain/conversation"
	"assist-server/services/assistant-api/internal/infrastructure/metrics"
	"assist-server/services/assistant-api/internal/utils/idgen"
	"assist-server/services/assistant-api/internal/utils/platformerrors"
)

// Config holds the retention policy for the in-memory store.
type Config struct {
	MaxContextMessages int
}

// MemoryStore is the default conversation.Store: an in-memory registry keyed
// first by owner, then by conversation id. Nothing survives a process
// restart. A registry mutex guards the maps; a per-conversation mutex
// serializes mutations on one conversation across concurrent requests.
type MemoryStore struct {
	mu     sync.Mutex
	owners map[string]map[string]*conversation.State
	locks  map[string]*sync.Mutex

	maxContextMessages int
	clock              func() time.Time
}

var _ conversation.Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty registry with the given retention policy.
func NewMemoryStore(cfg Config) *MemoryStore {
	return &MemoryStore{
		owners:             make(map[string]map[string]*conversation.State),
		locks:              make(map[string]*sync.Mutex),
		maxContextMessages: cfg.MaxContextMessages,
		clock:              time.Now,
	}
}

func lockKey(ownerID, conversationID string) string {
	return ownerID + "\x00" + conversationID
}

func (s *MemoryStore) convLock(ownerID, conversationID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := lockKey(ownerID, conversationID)
	lock, ok := s.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[key] = lock
	}
	return lock
}

// Resolve implements conversation.Store. A caller-supplied id that is not
// yet registered under the owner is honored verbatim, which keeps
// client-directed conversation creation idempotent.
func (s *MemoryStore) Resolve(ctx context.Context, ownerID, locale, conversationID string) (*conversation.State, error) {
	s.mu.Lock()
	convs, ok := s.owners[ownerID]
	if !ok {
		convs = make(map[string]*conversation.State)
		s.owners[ownerID] = convs
	}

	if conversationID != "" {
		if state, found := convs[conversationID]; found {
			s.mu.Unlock()
			// The most recently requested locale always wins.
			lock := s.convLock(ownerID, conversationID)
			lock.Lock()
			state.Locale = locale
			lock.Unlock()
			return state, nil
		}
	}
	s.mu.Unlock()

	id := conversationID
	if id == "" {
		generated, err := idgen.GenerateSecureID("conv", 16)
		if err != nil {
			return nil, platformerrors.AsError(ctx, platformerrors.LayerInfrastructure, err, "failed to generate conversation ID")
		}
		id = generated
	}

	now := s.clock()
	state := &conversation.State{
		ID:        id,
		OwnerID:   ownerID,
		Locale:    locale,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	convs, ok = s.owners[ownerID]
	if !ok {
		convs = make(map[string]*conversation.State)
		s.owners[ownerID] = convs
	}
	// Another request may have created the same id in the meantime; the
	// registered state wins so both requests share one conversation.
	if existing, found := convs[id]; found {
		s.mu.Unlock()
		return existing, nil
	}
	convs[id] = state
	s.mu.Unlock()

	metrics.ConversationsCreatedTotal.Inc()
	return state, nil
}

// AppendMessage implements conversation.Store.
func (s *MemoryStore) AppendMessage(state *conversation.State, msg conversation.Message) {
	lock := s.convLock(state.OwnerID, state.ID)
	lock.Lock()
	defer lock.Unlock()

	msg.Timestamp = s.clock()
	state.Messages = append(state.Messages, msg)
	if overflow := len(state.Messages) - s.maxContextMessages; overflow > 0 {
		state.Messages = append([]conversation.Message(nil), state.Messages[overflow:]...)
	}
	state.UpdatedAt = msg.Timestamp
}

// PushIntent implements conversation.Store.
func (s *MemoryStore) PushIntent(state *conversation.State, intent *string) {
	if intent == nil || *intent == "" {
		return
	}

	lock := s.convLock(state.OwnerID, state.ID)
	lock.Lock()
	defer lock.Unlock()

	state.Intents = append(state.Intents, *intent)
	if overflow := len(state.Intents) - conversation.MaxRetainedIntents; overflow > 0 {
		state.Intents = append([]string(nil), state.Intents[overflow:]...)
	}
	state.UpdatedAt = s.clock()
}

// Snapshot implements conversation.Store.
func (s *MemoryStore) Snapshot(state *conversation.State) conversation.Snapshot {
	lock := s.convLock(state.OwnerID, state.ID)
	lock.Lock()
	defer lock.Unlock()

	messages := make([]conversation.SnapshotMessage, len(state.Messages))
	for i, msg := range state.Messages {
		var intent *string
		if msg.Intent != nil {
			value := *msg.Intent
			intent = &value
		}
		messages[i] = conversation.SnapshotMessage{
			Role:      string(msg.Role),
			Content:   msg.Content,
			Locale:    msg.Locale,
			Intent:    intent,
			Timestamp: msg.Timestamp.UTC().Format(time.RFC3339),
		}
	}

	intents := append([]string(nil), state.Intents...)

	return conversation.Snapshot{
		ID:        state.ID,
		OwnerID:   state.OwnerID,
		Locale:    state.Locale,
		Messages:  messages,
		Intents:   intents,
		CreatedAt: state.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: state.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// EvictIdle implements conversation.Store.
func (s *MemoryStore) EvictIdle(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for ownerID, convs := range s.owners {
		for id, state := range convs {
			idle := false
			if lock, ok := s.locks[lockKey(ownerID, id)]; ok {
				lock.Lock()
				idle = state.UpdatedAt.Before(cutoff)
				lock.Unlock()
			} else {
				idle = state.UpdatedAt.Before(cutoff)
			}
			if idle {
				delete(convs, id)
				delete(s.locks, lockKey(ownerID, id))
				evicted++
			}
		}
		if len(convs) == 0 {
			delete(s.owners, ownerID)
		}
	}

	if evicted > 0 {
		metrics.ConversationsEvictedTotal.Add(float64(evicted))
	}
	return evicted
}
