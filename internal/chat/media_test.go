package chat

import (
	"testing"
)

func TestValidateImage(t *testing.T) {
	tests := []struct {
		name     string
		mimeType string
		size     int
		wantErr  bool
	}{
		{name: "jpeg", mimeType: "image/jpeg", size: 1024},
		{name: "png", mimeType: "image/png", size: 1024},
		{name: "webp", mimeType: "image/webp", size: 1024},
		{name: "gif", mimeType: "image/gif", size: 1024},
		{name: "at the limit", mimeType: "image/jpeg", size: MaxImageSize},
		{name: "over the limit", mimeType: "image/jpeg", size: MaxImageSize + 1, wantErr: true},
		{name: "svg rejected", mimeType: "image/svg+xml", size: 1024, wantErr: true},
		{name: "empty mime", mimeType: "", size: 1024, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImage(tt.mimeType, int64(tt.size))
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateImage() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateAudio(t *testing.T) {
	tests := []struct {
		name     string
		mimeType string
		size     int
		wantErr  bool
	}{
		{name: "mpeg", mimeType: "audio/mpeg", size: 1024},
		{name: "wav", mimeType: "audio/wav", size: 1024},
		{name: "webm", mimeType: "audio/webm", size: 1024},
		{name: "ogg", mimeType: "audio/ogg", size: 1024},
		{name: "zero length clip", mimeType: "audio/webm", size: 0},
		{name: "at the limit", mimeType: "audio/mpeg", size: MaxAudioSize},
		{name: "over the limit", mimeType: "audio/mpeg", size: MaxAudioSize + 1, wantErr: true},
		{name: "aac rejected", mimeType: "audio/aac", size: 1024, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAudio(tt.mimeType, int64(tt.size))
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAudio() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
