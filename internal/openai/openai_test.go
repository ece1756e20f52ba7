package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/BenitThinot03/chat-verse-guide-ai/internal/chat"
)

type testConfig struct {
	baseURL string
}

func (c testConfig) GetBaseURL() string      { return c.baseURL }
func (c testConfig) GetModelName() string    { return DefaultModel }
func (c testConfig) GetInstructions() string { return "You are a helpful travel guide." }
func (c testConfig) GetMaxOutputTokens() int { return 300 }
func (c testConfig) GetTemperature() float64 { return 0.7 }

func TestFormatTurns(t *testing.T) {
	turns := []chat.Turn{
		chat.NewTurn(chat.RoleUser, chat.TextPart("What should I see in Paris?")),
		chat.AssistantTextTurn("The Eiffel Tower is a must-see."),
		chat.NewTurn(chat.RoleUser,
			chat.TextPart("And this place?"),
			chat.ImagePart([]byte{0xFF, 0xD8, 0xFF}, "image/jpeg"),
			chat.AudioPart([]byte("clip"), "audio/webm"),
		),
	}

	input := FormatTurns(turns)

	if len(input) != len(turns) {
		t.Fatalf("FormatTurns() produced %d entries, want %d", len(input), len(turns))
	}

	if input[0].Role != "user" || input[1].Role != "assistant" || input[2].Role != "user" {
		t.Errorf("roles = %s/%s/%s, want user/assistant/user",
			input[0].Role, input[1].Role, input[2].Role)
	}

	// multimodal turn keeps part order: text, image, audio
	content := input[2].Content
	if len(content) != 3 {
		t.Fatalf("multimodal entry has %d content blocks, want 3", len(content))
	}
	if content[0].Type != "text" || content[0].Text != "And this place?" {
		t.Errorf("block 0 = %+v, want text block", content[0])
	}
	if content[1].Type != "image" || content[1].ImageURL == nil {
		t.Fatalf("block 1 = %+v, want image block", content[1])
	}
	if !strings.HasPrefix(content[1].ImageURL.URL, "data:image/jpeg;base64,") {
		t.Errorf("image URL = %q, want data URL with jpeg prefix", content[1].ImageURL.URL)
	}
	if content[2].Type != "text" || content[2].Text != chat.AudioPlaceholder {
		t.Errorf("block 2 = %+v, want placeholder text for audio", content[2])
	}
}

func TestFormatTurns_TranscribedAudio(t *testing.T) {
	part := chat.AudioPart([]byte("clip"), "audio/webm")
	part.Text = "turn left at the bakery"

	input := FormatTurns([]chat.Turn{chat.NewTurn(chat.RoleUser, part)})

	if got := input[0].Content[0].Text; got != "turn left at the bakery" {
		t.Errorf("audio text = %q, want the transcription", got)
	}
}

func TestBuildRequest(t *testing.T) {
	client := NewClient(testConfig{}, nil)

	req := client.BuildRequest([]chat.Turn{chat.NewTurn(chat.RoleUser, chat.TextPart("hi"))})

	if req.Model != "gpt-4o-mini" {
		t.Errorf("Model = %q, want gpt-4o-mini", req.Model)
	}
	if req.Stream {
		t.Error("Stream = true, want false")
	}
	if !req.ParallelToolCalls {
		t.Error("ParallelToolCalls = false, want true")
	}
	if req.PreviousResponseID != nil {
		t.Errorf("PreviousResponseID = %v, want nil", req.PreviousResponseID)
	}
	if req.Text.ResponseFormat != "text" {
		t.Errorf("Text.ResponseFormat = %q, want text", req.Text.ResponseFormat)
	}
	if req.MaxOutputTokens != 300 {
		t.Errorf("MaxOutputTokens = %d, want 300", req.MaxOutputTokens)
	}
	if req.Temperature != 0.7 {
		t.Errorf("Temperature = %v, want 0.7", req.Temperature)
	}
	if len(req.Tools) != 1 || req.Tools[0].Function.Name != "getWeather" {
		t.Fatalf("Tools = %+v, want the getWeather function", req.Tools)
	}
	if got := req.Tools[0].Function.Parameters.Required; len(got) != 1 || got[0] != "city" {
		t.Errorf("tool required parameters = %v, want [city]", got)
	}
}

func TestClient_Respond(t *testing.T) {
	var gotPath, gotAuth string
	var gotRequest Request

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotRequest); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"output":[{"content":[{"text":"The Eiffel Tower is a must-see."}]}]}`))
	}))
	defer server.Close()

	client := NewClient(testConfig{baseURL: server.URL}, server.Client())
	turns := []chat.Turn{chat.NewTurn(chat.RoleUser, chat.TextPart("What should I see in Paris?"))}

	reply, err := client.Respond(context.Background(), "sk-test", turns)
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}

	if gotPath != "/responses" {
		t.Errorf("request path = %q, want /responses", gotPath)
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("Authorization = %q, want Bearer sk-test", gotAuth)
	}
	if len(gotRequest.Input) != 1 {
		t.Errorf("request input has %d entries, want 1", len(gotRequest.Input))
	}
	if reply.Role != chat.RoleAssistant {
		t.Errorf("reply role = %v, want assistant", reply.Role)
	}
	if reply.Text() != "The Eiffel Tower is a must-see." {
		t.Errorf("reply text = %q", reply.Text())
	}
}

func TestClient_RespondErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
	}{
		{
			name:       "server error",
			status:     http.StatusInternalServerError,
			body:       `{"error":{"message":"upstream overloaded"}}`,
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "unauthorized",
			status:     http.StatusUnauthorized,
			body:       `{"error":{"message":"invalid api key"}}`,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed body",
			status:     http.StatusOK,
			body:       `{"output":`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "empty output",
			status:     http.StatusOK,
			body:       `{"output":[]}`,
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(testConfig{baseURL: server.URL}, server.Client())
			turns := []chat.Turn{chat.NewTurn(chat.RoleUser, chat.TextPart("hi"))}

			_, err := client.Respond(context.Background(), "sk-test", turns)

			var transportErr *chat.TransportError
			if !errors.As(err, &transportErr) {
				t.Fatalf("Respond() error = %v, want TransportError", err)
			}
			if transportErr.StatusCode != tt.wantStatus {
				t.Errorf("StatusCode = %d, want %d", transportErr.StatusCode, tt.wantStatus)
			}
		})
	}
}

func TestClient_RespondConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(testConfig{baseURL: server.URL}, nil)
	turns := []chat.Turn{chat.NewTurn(chat.RoleUser, chat.TextPart("hi"))}

	_, err := client.Respond(context.Background(), "sk-test", turns)

	var transportErr *chat.TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("Respond() error = %v, want TransportError", err)
	}
	if transportErr.Unwrap() == nil {
		t.Error("TransportError carries no underlying error")
	}
}
