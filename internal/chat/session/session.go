// Package session persists conversation transcripts as JSON files so
// past exchanges can be listed and reviewed. Transcripts are an
// archive: media bytes are reduced to kind/MIME/size stubs and the
// in-memory conversation remains the source of truth while chatting.
package session

import (
	"time"

	"github.com/BenitThinot03/chat-verse-guide-ai/internal/chat"
)

// Transcript is one saved conversation.
type Transcript struct {
	ID        string    `json:"id"`   // conversation UUID
	Name      string    `json:"name"` // optional transcript name (empty by default)
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Turns     []Entry   `json:"turns"`
}

// Entry is one stored turn.
type Entry struct {
	Role  string `json:"role"`
	Parts []Part `json:"parts"`
}

// Part is one stored content part. Media payloads are not persisted;
// image and audio parts keep only their MIME type and size.
type Part struct {
	Kind     string `json:"kind"`
	Text     string `json:"text,omitempty"`
	MIMEType string `json:"mime_type,omitempty"`
	Size     int    `json:"size,omitempty"`
}

// FromConversation snapshots a conversation into a transcript.
func FromConversation(conv *chat.Conversation, model string) *Transcript {
	turns := conv.Snapshot()
	entries := make([]Entry, 0, len(turns))
	for _, turn := range turns {
		entry := Entry{Role: string(turn.Role), Parts: make([]Part, 0, len(turn.Parts))}
		for _, part := range turn.Parts {
			stored := Part{Kind: string(part.Kind)}
			if part.Kind == chat.PartText {
				stored.Text = part.Text
			} else {
				stored.MIMEType = part.MIMEType
				stored.Size = part.Size()
			}
			entry.Parts = append(entry.Parts, stored)
		}
		entries = append(entries, entry)
	}

	return &Transcript{
		ID:        conv.ID,
		Model:     model,
		CreatedAt: conv.CreatedAt,
		UpdatedAt: conv.UpdatedAt(),
		Turns:     entries,
	}
}

// GetShortID returns the shortened transcript ID (first 8 characters).
func (t *Transcript) GetShortID() string {
	if len(t.ID) >= 8 {
		return t.ID[:8]
	}
	return t.ID
}

// GetDisplayName returns the name if set, otherwise the short ID.
func (t *Transcript) GetDisplayName() string {
	if t.Name != "" {
		return t.Name
	}
	return t.GetShortID()
}

// TurnCount returns the number of turns in the transcript.
func (t *Transcript) TurnCount() int {
	return len(t.Turns)
}
