package conversation

import (
	"context"
	"time"
)

// MaxRetainedIntents caps the intent history kept per conversation.
const MaxRetainedIntents = 10

// Store is the injected conversation registry. The orchestrator is the only
// caller; it never mutates a State directly, always through AppendMessage
// and PushIntent. Implementations must serialize mutations per conversation
// so two simultaneous turns on one conversation cannot interleave their
// trim and append operations.
type Store interface {
	// Resolve looks up ownerID's namespace. When conversationID is given and
	// found, the conversation's locale is updated to the requested one and
	// the existing state is returned. Otherwise a new state is created,
	// honoring a caller-supplied conversationID verbatim.
	Resolve(ctx context.Context, ownerID, locale, conversationID string) (*State, error)

	// AppendMessage stamps the current time on msg, appends it and trims the
	// history to the configured context window, oldest first.
	AppendMessage(state *State, msg Message)

	// PushIntent records an intent label. A nil or empty intent is a no-op.
	PushIntent(state *State, intent *string)

	// Snapshot returns a deep read-only projection of the state.
	Snapshot(state *State) Snapshot

	// EvictIdle removes conversations not updated since cutoff and reports
	// how many were reclaimed.
	EvictIdle(cutoff time.Time) int
}
