package chat

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Conversation is the append-only ordered log of turns. It is the
// source of truth for both rendering and request serialization.
//
// All appends go through a single writer lock so that a multi-goroutine
// host preserves chronological order; there are no deletion or mutation
// operations.
type Conversation struct {
	ID        string
	CreatedAt time.Time

	mu        sync.Mutex
	turns     []Turn
	updatedAt time.Time
}

// NewConversation creates an empty conversation with a generated ID.
func NewConversation() *Conversation {
	now := time.Now()
	return &Conversation{
		ID:        uuid.New().String(),
		CreatedAt: now,
		updatedAt: now,
	}
}

// Append adds a turn to the end of the log. It never fails.
func (c *Conversation) Append(turn Turn) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.turns = append(c.turns, turn)
	c.updatedAt = time.Now()
}

// Snapshot returns a consistent point-in-time copy of the full history.
// The returned slice is owned by the caller; later appends do not
// affect it.
func (c *Conversation) Snapshot() []Turn {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Turn, len(c.turns))
	copy(out, c.turns)
	return out
}

// Len returns the number of turns in the conversation.
func (c *Conversation) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.turns)
}

// IsEmpty reports whether the conversation has no turns.
func (c *Conversation) IsEmpty() bool {
	return c.Len() == 0
}

// UpdatedAt returns the time of the most recent append.
func (c *Conversation) UpdatedAt() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.updatedAt
}

// Last returns the most recent turn, or false if the log is empty.
func (c *Conversation) Last() (Turn, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.turns) == 0 {
		return Turn{}, false
	}
	return c.turns[len(c.turns)-1], true
}
