package convstore

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"assist-server/services/assistant-api/internal/domain/conversation"
)

func newTestStore(maxMessages int) *MemoryStore {
	return NewMemoryStore(Config{MaxContextMessages: maxMessages})
}

func TestResolveCreatesConversation(t *testing.T) {
	store := newTestStore(25)

	state, err := store.Resolve(context.Background(), "user-1", "en", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(state.ID, "conv_") {
		t.Errorf("generated id %q should carry the conv prefix", state.ID)
	}
	if state.OwnerID != "user-1" {
		t.Errorf("owner = %q, want user-1", state.OwnerID)
	}
	if state.Locale != "en" {
		t.Errorf("locale = %q, want en", state.Locale)
	}
}

func TestResolveHonorsCallerSuppliedID(t *testing.T) {
	store := newTestStore(25)

	state, err := store.Resolve(context.Background(), "user-1", "en", "conv_custom42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.ID != "conv_custom42" {
		t.Errorf("id = %q, want the caller-supplied value verbatim", state.ID)
	}

	again, err := store.Resolve(context.Background(), "user-1", "en", "conv_custom42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again != state {
		t.Error("resolving the same id twice should return the same conversation")
	}
}

func TestResolveIsScopedByOwner(t *testing.T) {
	store := newTestStore(25)

	first, err := store.Resolve(context.Background(), "user-1", "en", "conv_shared")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := store.Resolve(context.Background(), "user-2", "en", "conv_shared")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first == second {
		t.Error("conversations with the same id under different owners must be distinct")
	}
}

func TestResolveUpdatesLocale(t *testing.T) {
	store := newTestStore(25)

	state, err := store.Resolve(context.Background(), "user-1", "en", "conv_abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := store.Resolve(context.Background(), "user-1", "fr", "conv_abc"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.Locale != "fr" {
		t.Errorf("locale = %q, the most recent request's locale should win", state.Locale)
	}
}

func TestAppendMessageTrimsOldest(t *testing.T) {
	store := newTestStore(3)

	state, err := store.Resolve(context.Background(), "user-1", "en", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < 5; i++ {
		store.AppendMessage(state, conversation.Message{
			Role:    conversation.RoleUser,
			Content: fmt.Sprintf("message %d", i),
			Locale:  "en",
		})
	}

	if len(state.Messages) != 3 {
		t.Fatalf("retained %d messages, want 3", len(state.Messages))
	}
	for i, want := range []string{"message 2", "message 3", "message 4"} {
		if state.Messages[i].Content != want {
			t.Errorf("messages[%d] = %q, want %q (oldest dropped first)", i, state.Messages[i].Content, want)
		}
	}
}

func TestPushIntentCapsHistory(t *testing.T) {
	store := newTestStore(25)

	state, err := store.Resolve(context.Background(), "user-1", "en", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < conversation.MaxRetainedIntents+5; i++ {
		intent := fmt.Sprintf("intent_%d", i)
		store.PushIntent(state, &intent)
	}

	if len(state.Intents) != conversation.MaxRetainedIntents {
		t.Fatalf("retained %d intents, want %d", len(state.Intents), conversation.MaxRetainedIntents)
	}
	if state.Intents[0] != "intent_5" {
		t.Errorf("oldest retained intent = %q, want intent_5", state.Intents[0])
	}
}

func TestPushIntentIgnoresEmpty(t *testing.T) {
	store := newTestStore(25)

	state, err := store.Resolve(context.Background(), "user-1", "en", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	empty := ""
	store.PushIntent(state, nil)
	store.PushIntent(state, &empty)

	if len(state.Intents) != 0 {
		t.Errorf("nil and empty intents should not be recorded, got %v", state.Intents)
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	store := newTestStore(25)

	state, err := store.Resolve(context.Background(), "user-1", "en", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	intent := "general_question"
	store.AppendMessage(state, conversation.Message{
		Role:    conversation.RoleUser,
		Content: "hello",
		Locale:  "en",
		Intent:  &intent,
	})

	snap := store.Snapshot(state)
	if len(snap.Messages) != 1 {
		t.Fatalf("snapshot has %d messages, want 1", len(snap.Messages))
	}

	// Mutating the snapshot must not touch the stored conversation.
	snap.Messages[0].Content = "tampered"
	*snap.Messages[0].Intent = "tampered"
	if state.Messages[0].Content != "hello" {
		t.Error("snapshot shares message backing array with the store")
	}
	if *state.Messages[0].Intent != "general_question" {
		t.Error("snapshot shares intent pointer with the store")
	}

	if _, err := time.Parse(time.RFC3339, snap.Messages[0].Timestamp); err != nil {
		t.Errorf("snapshot timestamps must be RFC3339: %v", err)
	}
}

func TestEvictIdle(t *testing.T) {
	store := newTestStore(25)
	now := time.Now()
	store.clock = func() time.Time { return now.Add(-2 * time.Hour) }

	stale, err := store.Resolve(context.Background(), "user-1", "en", "conv_stale")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	store.AppendMessage(stale, conversation.Message{Role: conversation.RoleUser, Content: "old", Locale: "en"})

	store.clock = func() time.Time { return now }
	fresh, err := store.Resolve(context.Background(), "user-1", "en", "conv_fresh")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	store.AppendMessage(fresh, conversation.Message{Role: conversation.RoleUser, Content: "new", Locale: "en"})

	evicted := store.EvictIdle(now.Add(-time.Hour))
	if evicted != 1 {
		t.Fatalf("evicted %d conversations, want 1", evicted)
	}

	replacement, err := store.Resolve(context.Background(), "user-1", "en", "conv_stale")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(replacement.Messages) != 0 {
		t.Error("evicted conversation should restart empty when the id is reused")
	}

	kept, err := store.Resolve(context.Background(), "user-1", "en", "conv_fresh")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(kept.Messages) != 1 {
		t.Error("fresh conversation should survive eviction")
	}
}

func TestConcurrentAppends(t *testing.T) {
	store := newTestStore(200)

	state, err := store.Resolve(context.Background(), "user-1", "en", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			store.AppendMessage(state, conversation.Message{
				Role:    conversation.RoleUser,
				Content: fmt.Sprintf("message %d", n),
				Locale:  "en",
			})
		}(i)
	}
	wg.Wait()

	if len(state.Messages) != 50 {
		t.Errorf("retained %d messages after concurrent appends, want 50", len(state.Messages))
	}
}
