// Package chat implements the message-composition and request-lifecycle
// core of the guidechat client: typed content parts, the append-only
// conversation log, the pending-input staging slot, and the dispatcher
// that owns the single-outstanding-request invariant.
package chat

import "strings"

// Role identifies who contributed a turn to the conversation.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// PartKind discriminates the ContentPart tagged union.
type PartKind string

const (
	PartText  PartKind = "text"
	PartImage PartKind = "image"
	PartAudio PartKind = "audio"
)

// ContentPart is a single typed unit of message content.
// Text parts carry Text; image and audio parts carry Data and MIMEType.
type ContentPart struct {
	Kind     PartKind `json:"kind"`
	Text     string   `json:"text,omitempty"`
	Data     []byte   `json:"-"`
	MIMEType string   `json:"mime_type,omitempty"`
	FileName string   `json:"file_name,omitempty"`
}

// TextPart creates a text content part. The value is trimmed; callers
// should not create text parts from whitespace-only input.
func TextPart(text string) ContentPart {
	return ContentPart{Kind: PartText, Text: strings.TrimSpace(text)}
}

// ImagePart creates an image content part from raw bytes and a MIME type.
func ImagePart(data []byte, mimeType string) ContentPart {
	return ContentPart{Kind: PartImage, Data: data, MIMEType: mimeType}
}

// AudioPart creates an audio content part from raw bytes and a MIME type.
func AudioPart(data []byte, mimeType string) ContentPart {
	return ContentPart{Kind: PartAudio, Data: data, MIMEType: mimeType}
}

// Size returns the payload size of the part in bytes.
func (p ContentPart) Size() int {
	if p.Kind == PartText {
		return len(p.Text)
	}
	return len(p.Data)
}

// Turn is one role-attributed, ordered set of content parts.
// A Turn is immutable once appended to a Conversation; part order is
// preserved through serialization.
type Turn struct {
	Role  Role          `json:"role"`
	Parts []ContentPart `json:"parts"`
}

// NewTurn creates a turn with the given role and parts.
func NewTurn(role Role, parts ...ContentPart) Turn {
	return Turn{Role: role, Parts: parts}
}

// AssistantTextTurn creates an assistant turn holding a single text part.
func AssistantTextTurn(text string) Turn {
	return Turn{Role: RoleAssistant, Parts: []ContentPart{{Kind: PartText, Text: text}}}
}

// HasKind reports whether any part of the turn has the given kind.
func (t Turn) HasKind(kind PartKind) bool {
	for _, p := range t.Parts {
		if p.Kind == kind {
			return true
		}
	}
	return false
}

// Text returns the concatenated text of all text parts in the turn.
func (t Turn) Text() string {
	var sb strings.Builder
	for _, p := range t.Parts {
		if p.Kind != PartText {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(p.Text)
	}
	return sb.String()
}
