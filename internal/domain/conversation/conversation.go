package conversation

import (
	"time"
)

// ===============================================
// Conversation Types
// ===============================================

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single conversation turn. Immutable once appended.
type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Locale    string    `json:"locale"`
	Intent    *string   `json:"intent,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// State is the mutable per-conversation record. It is owned exclusively by
// the orchestration layer and only mutated through the store.
type State struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Locale    string    `json:"locale"`
	Messages  []Message `json:"messages"`
	Intents   []string  `json:"intents"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SnapshotMessage is the read-only projection of one turn, timestamps
// rendered as RFC 3339 strings.
type SnapshotMessage struct {
	Role      string  `json:"role"`
	Content   string  `json:"content"`
	Locale    string  `json:"locale"`
	Intent    *string `json:"intent,omitempty"`
	Timestamp string  `json:"timestamp"`
}

// Snapshot is a deep, fully stringified projection of a conversation. It
// never aliases the internal mutable state.
type Snapshot struct {
	ID        string            `json:"id"`
	OwnerID   string            `json:"owner_id"`
	Locale    string            `json:"locale"`
	Messages  []SnapshotMessage `json:"messages"`
	Intents   []string          `json:"intents"`
	CreatedAt string            `json:"created_at"`
	UpdatedAt string            `json:"updated_at"`
}
