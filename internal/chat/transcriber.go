package chat

import "context"

// Transcriber maps an audio part to text for providers whose wire
// format cannot carry raw audio. A real speech-to-text backend can be
// plugged in here; the dispatcher calls it before serialization.
type Transcriber interface {
	Transcribe(ctx context.Context, audio ContentPart) (string, error)
}

// AudioPlaceholder is what the default transcriber emits in place of a
// real transcription.
const AudioPlaceholder = "[Audio message transcription would go here]"

// PlaceholderTranscriber is the default Transcriber: it does not decode
// the audio at all and returns a fixed placeholder string.
type PlaceholderTranscriber struct{}

// Transcribe returns the fixed placeholder regardless of input.
func (PlaceholderTranscriber) Transcribe(_ context.Context, _ ContentPart) (string, error) {
	return AudioPlaceholder, nil
}
