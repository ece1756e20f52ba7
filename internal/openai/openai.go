// Package openai implements the chat.Provider interface against
// OpenAI's Responses API, including the serialization of multimodal
// conversation history into the provider wire format.
package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/BenitThinot03/chat-verse-guide-ai/internal/chat"
)

const (
	ProviderName   = "openai"
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4o-mini"
)

// maxErrorBody limits how much of an error response body is carried in
// a TransportError.
const maxErrorBody = 512

// Request represents the request body for OpenAI's Responses API.
type Request struct {
	Model              string         `json:"model"`
	Input              []InputMessage `json:"input"`
	Instructions       string         `json:"instructions,omitempty"`
	MaxOutputTokens    int            `json:"max_output_tokens,omitempty"`
	Temperature        float64        `json:"temperature"`
	Stream             bool           `json:"stream"`
	ParallelToolCalls  bool           `json:"parallel_tool_calls"`
	PreviousResponseID *string        `json:"previous_response_id"`
	Text               TextOptions    `json:"text"`
	Tools              []Tool         `json:"tools,omitempty"`
}

// TextOptions selects the response format.
type TextOptions struct {
	ResponseFormat string `json:"response_format"`
}

// InputMessage is one role-tagged entry in the request input.
type InputMessage struct {
	Role    string         `json:"role"`
	Content []InputContent `json:"content"`
}

// InputContent is a typed content sub-entry of an input message.
type InputContent struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

// ImageURL carries an image reference; images are inlined as data URLs.
type ImageURL struct {
	URL string `json:"url"`
}

// Tool declares a function tool to the provider.
type Tool struct {
	Type     string   `json:"type"`
	Function Function `json:"function"`
}

// Function describes a callable function and its JSON-schema parameters.
type Function struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Parameters  Parameters `json:"parameters"`
}

// Parameters is the JSON-schema object describing function arguments.
type Parameters struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties"`
	Required   []string            `json:"required"`
}

// Property is a single JSON-schema parameter property.
type Property struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// WeatherTool is the one function tool advertised on every request.
// Execution is not implemented here; the declaration only tells the
// provider the capability exists.
var WeatherTool = Tool{
	Type: "function",
	Function: Function{
		Name:        "getWeather",
		Description: "Get the current weather in a given city.",
		Parameters: Parameters{
			Type: "object",
			Properties: map[string]Property{
				"city": {Type: "string", Description: "The name of the city"},
			},
			Required: []string{"city"},
		},
	},
}

// Response represents the response from OpenAI's Responses API.
type Response struct {
	Output []Output `json:"output"`
}

// Output represents an output element.
type Output struct {
	Content []OutputContent `json:"content"`
}

// OutputContent represents a content block with assistant text.
type OutputContent struct {
	Text string `json:"text"`
}

// Config defines the configuration surface the client needs.
type Config interface {
	GetBaseURL() string
	GetModelName() string
	GetInstructions() string
	GetMaxOutputTokens() int
	GetTemperature() float64
}

// Client sends serialized conversations to the Responses endpoint.
// It implements chat.Provider.
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a Responses API client. A nil httpClient falls back
// to http.DefaultClient.
func NewClient(config Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{config: config, httpClient: httpClient}
}

// FormatTurns serializes conversation history into the request input:
// one role-tagged entry per turn, parts in order. Text parts map to
// typed text entries, images are inlined as base64 data URLs, and audio
// is replaced by its transcription text because the wire format does
// not carry raw audio.
func FormatTurns(turns []chat.Turn) []InputMessage {
	input := make([]InputMessage, 0, len(turns))
	for _, turn := range turns {
		msg := InputMessage{
			Role:    string(turn.Role),
			Content: make([]InputContent, 0, len(turn.Parts)),
		}
		for _, part := range turn.Parts {
			switch part.Kind {
			case chat.PartText:
				msg.Content = append(msg.Content, InputContent{Type: "text", Text: part.Text})
			case chat.PartImage:
				url := fmt.Sprintf("data:%s;base64,%s", part.MIMEType, base64.StdEncoding.EncodeToString(part.Data))
				msg.Content = append(msg.Content, InputContent{Type: "image", ImageURL: &ImageURL{URL: url}})
			case chat.PartAudio:
				text := part.Text
				if text == "" {
					text = chat.AudioPlaceholder
				}
				msg.Content = append(msg.Content, InputContent{Type: "text", Text: text})
			}
		}
		input = append(input, msg)
	}
	return input
}

// BuildRequest assembles the full request payload for the given history.
func (c *Client) BuildRequest(turns []chat.Turn) Request {
	return Request{
		Model:              c.config.GetModelName(),
		Input:              FormatTurns(turns),
		Instructions:       c.config.GetInstructions(),
		MaxOutputTokens:    c.config.GetMaxOutputTokens(),
		Temperature:        c.config.GetTemperature(),
		Stream:             false,
		ParallelToolCalls:  true,
		PreviousResponseID: nil,
		Text:               TextOptions{ResponseFormat: "text"},
		Tools:              []Tool{WeatherTool},
	}
}

// Respond sends the conversation history and returns the assistant's
// reply as a turn. Network failures, non-success statuses, and
// malformed bodies all surface as *chat.TransportError.
func (c *Client) Respond(ctx context.Context, credential string, turns []chat.Turn) (chat.Turn, error) {
	payload := c.BuildRequest(turns)

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return chat.Turn{}, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.GetBaseURL()+"/responses", bytes.NewReader(jsonData))
	if err != nil {
		return chat.Turn{}, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+credential)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return chat.Turn{}, &chat.TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return chat.Turn{}, &chat.TransportError{StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return chat.Turn{}, &chat.TransportError{StatusCode: resp.StatusCode, Body: excerpt(body)}
	}

	var result Response
	if err := json.Unmarshal(body, &result); err != nil {
		return chat.Turn{}, &chat.TransportError{StatusCode: resp.StatusCode, Body: excerpt(body), Err: err}
	}

	if len(result.Output) == 0 || len(result.Output[0].Content) == 0 {
		return chat.Turn{}, &chat.TransportError{StatusCode: resp.StatusCode, Body: "no content in response"}
	}

	return chat.AssistantTextTurn(result.Output[0].Content[0].Text), nil
}

func excerpt(body []byte) string {
	if len(body) > maxErrorBody {
		return string(body[:maxErrorBody]) + "..."
	}
	return string(body)
}
