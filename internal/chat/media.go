package chat

// Attach-time media policy: only these MIME types and sizes may enter
// the pending input. Out-of-policy files are rejected with a
// ValidationError before upload is ever attempted.

const (
	// MaxImageSize is the maximum accepted image payload (10 MB).
	MaxImageSize = 10 * 1024 * 1024
	// MaxAudioSize is the maximum accepted audio payload (25 MB).
	MaxAudioSize = 25 * 1024 * 1024
)

// imageMIMETypes lists the accepted image MIME types.
var imageMIMETypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// audioMIMETypes lists the accepted audio MIME types.
var audioMIMETypes = map[string]bool{
	"audio/mpeg": true,
	"audio/wav":  true,
	"audio/webm": true,
	"audio/ogg":  true,
}

// ValidateImage checks an image blob against the type and size policy.
func ValidateImage(mimeType string, size int64) error {
	if !imageMIMETypes[mimeType] {
		return &ValidationError{Kind: PartImage, MIMEType: mimeType, Size: size,
			Reason: "unsupported image type (accepted: jpeg, png, webp, gif)"}
	}
	if size > MaxImageSize {
		return &ValidationError{Kind: PartImage, MIMEType: mimeType, Size: size,
			Reason: "image exceeds the 10 MB limit"}
	}
	return nil
}

// ValidateAudio checks an audio blob against the type and size policy.
func ValidateAudio(mimeType string, size int64) error {
	if !audioMIMETypes[mimeType] {
		return &ValidationError{Kind: PartAudio, MIMEType: mimeType, Size: size,
			Reason: "unsupported audio type (accepted: mpeg, wav, webm, ogg)"}
	}
	if size > MaxAudioSize {
		return &ValidationError{Kind: PartAudio, MIMEType: mimeType, Size: size,
			Reason: "audio exceeds the 25 MB limit"}
	}
	return nil
}
