package chat

import "strings"

// PendingInput is the mutable staging area for the next user turn:
// typed text plus at most one attached image and one attached audio
// recording. It is owned by the composing side and converted into a
// Turn by Assemble before anything reaches the dispatcher.
type PendingInput struct {
	Text  string
	image *ContentPart
	audio *ContentPart
}

// AttachImage validates the blob against the image policy and stores it
// as the pending image, replacing any previous attachment. On a policy
// violation the pending input is left unchanged.
func (p *PendingInput) AttachImage(data []byte, mimeType string) error {
	if err := ValidateImage(mimeType, int64(len(data))); err != nil {
		return err
	}
	part := ImagePart(data, mimeType)
	p.image = &part
	return nil
}

// AttachAudio validates the blob against the audio policy and stores it
// as the pending recording, replacing any previous attachment.
func (p *PendingInput) AttachAudio(data []byte, mimeType string) error {
	if err := ValidateAudio(mimeType, int64(len(data))); err != nil {
		return err
	}
	part := AudioPart(data, mimeType)
	p.audio = &part
	return nil
}

// AttachImagePart stores an already-validated image part (from the
// capture adapter). Parts of any other kind are rejected.
func (p *PendingInput) AttachImagePart(part ContentPart) error {
	if part.Kind != PartImage {
		return &ValidationError{Kind: part.Kind, MIMEType: part.MIMEType, Size: int64(part.Size()),
			Reason: "not an image part"}
	}
	if err := ValidateImage(part.MIMEType, int64(len(part.Data))); err != nil {
		return err
	}
	p.image = &part
	return nil
}

// AttachAudioPart stores an already-validated audio part (from the
// capture adapter). Parts of any other kind are rejected.
func (p *PendingInput) AttachAudioPart(part ContentPart) error {
	if part.Kind != PartAudio {
		return &ValidationError{Kind: part.Kind, MIMEType: part.MIMEType, Size: int64(part.Size()),
			Reason: "not an audio part"}
	}
	if err := ValidateAudio(part.MIMEType, int64(len(part.Data))); err != nil {
		return err
	}
	p.audio = &part
	return nil
}

// HasImage reports whether an image is attached.
func (p *PendingInput) HasImage() bool { return p.image != nil }

// HasAudio reports whether a recording is attached.
func (p *PendingInput) HasAudio() bool { return p.audio != nil }

// ClearImage removes the attached image, if any.
func (p *PendingInput) ClearImage() { p.image = nil }

// ClearAudio removes the attached recording, if any.
func (p *PendingInput) ClearAudio() { p.audio = nil }

// Reset clears all pending state. The caller invokes this only after a
// successful append so that failed submissions never lose typed input.
func (p *PendingInput) Reset() {
	p.Text = ""
	p.image = nil
	p.audio = nil
}

// IsEmpty reports whether there is nothing to assemble: no media and no
// text left after trimming.
func (p *PendingInput) IsEmpty() bool {
	return strings.TrimSpace(p.Text) == "" && p.image == nil && p.audio == nil
}

// Assemble builds the user turn from the pending input. Parts are
// ordered text, image, audio; the text part is included only if it is
// non-empty after trimming. Assemble is a pure transformation: it does
// not clear the pending input.
func (p *PendingInput) Assemble() (Turn, error) {
	if p.IsEmpty() {
		return Turn{}, ErrEmptyInput
	}

	parts := make([]ContentPart, 0, 3)
	if text := strings.TrimSpace(p.Text); text != "" {
		parts = append(parts, TextPart(text))
	}
	if p.image != nil {
		parts = append(parts, *p.image)
	}
	if p.audio != nil {
		parts = append(parts, *p.audio)
	}

	return Turn{Role: RoleUser, Parts: parts}, nil
}
