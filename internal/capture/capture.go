// Package capture adapts media input devices to the chat core. The
// recording lifecycle is an explicit two-phase protocol: Start yields a
// handle, Stop flushes the device and yields the audio blob. Stop
// releases the underlying resource exactly once, even when nothing was
// captured.
package capture

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BenitThinot03/chat-verse-guide-ai/internal/chat"
)

// Recorder owns the start/stop lifecycle of an audio recording.
type Recorder interface {
	// Start begins capturing and returns a handle for the recording.
	Start() (*Handle, error)
	// Stop ends the recording, releases the device, and returns the
	// captured audio. A recording with no data yields a zero-length
	// audio part rather than an error. Each handle can be stopped once.
	Stop(h *Handle) (chat.ContentPart, error)
}

// Handle identifies one in-progress recording.
type Handle struct {
	data     []byte
	mimeType string
	released bool
}

// ScriptedRecorder is a Recorder backed by pre-loaded bytes instead of
// a real device. The CLI uses it to attach recordings from files, and
// tests use it to drive the capture lifecycle deterministically.
type ScriptedRecorder struct {
	Data     []byte
	MIMEType string

	active bool
}

// Start begins a scripted recording. Only one recording may be active
// per recorder at a time.
func (r *ScriptedRecorder) Start() (*Handle, error) {
	if r.active {
		return nil, fmt.Errorf("a recording is already in progress")
	}
	r.active = true

	mimeType := r.MIMEType
	if mimeType == "" {
		mimeType = "audio/webm"
	}
	return &Handle{data: r.Data, mimeType: mimeType}, nil
}

// Stop releases the recording exactly once and returns the captured
// audio, which may be zero-length.
func (r *ScriptedRecorder) Stop(h *Handle) (chat.ContentPart, error) {
	if h == nil {
		return chat.ContentPart{}, fmt.Errorf("nil capture handle")
	}
	if h.released {
		return chat.ContentPart{}, fmt.Errorf("capture handle already released")
	}
	h.released = true
	r.active = false

	return chat.AudioPart(h.data, h.mimeType), nil
}

// imageMIMEByExt maps file extensions to MIME types for supported image
// formats.
var imageMIMEByExt = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".gif":  "image/gif",
}

// audioMIMEByExt maps file extensions to MIME types for supported audio
// formats.
var audioMIMEByExt = map[string]string{
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".webm": "audio/webm",
	".ogg":  "audio/ogg",
}

// FilePicker reads media files from disk, the CLI analog of a browser
// file input. Picked files are validated against the core media policy
// before they are returned.
type FilePicker struct{}

// PickImage reads an image file and returns it as a validated part.
func (FilePicker) PickImage(path string) (chat.ContentPart, error) {
	ext := strings.ToLower(filepath.Ext(path))
	mimeType, ok := imageMIMEByExt[ext]
	if !ok {
		return chat.ContentPart{}, &chat.ValidationError{
			Kind: chat.PartImage, MIMEType: mimeType,
			Reason: fmt.Sprintf("unrecognized image extension %q", ext),
		}
	}

	// Check the size before reading so an oversized file is never
	// pulled into memory.
	info, err := os.Stat(path)
	if err != nil {
		return chat.ContentPart{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if err := chat.ValidateImage(mimeType, info.Size()); err != nil {
		return chat.ContentPart{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return chat.ContentPart{}, fmt.Errorf("read image %s: %w", path, err)
	}

	part := chat.ImagePart(data, mimeType)
	part.FileName = filepath.Base(path)
	return part, nil
}

// PickAudio reads an audio file and returns it as a validated part.
func (FilePicker) PickAudio(path string) (chat.ContentPart, error) {
	ext := strings.ToLower(filepath.Ext(path))
	mimeType, ok := audioMIMEByExt[ext]
	if !ok {
		return chat.ContentPart{}, &chat.ValidationError{
			Kind: chat.PartAudio, MIMEType: mimeType,
			Reason: fmt.Sprintf("unrecognized audio extension %q", ext),
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return chat.ContentPart{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if err := chat.ValidateAudio(mimeType, info.Size()); err != nil {
		return chat.ContentPart{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return chat.ContentPart{}, fmt.Errorf("read audio %s: %w", path, err)
	}

	part := chat.AudioPart(data, mimeType)
	part.FileName = filepath.Base(path)
	return part, nil
}
