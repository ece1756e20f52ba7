package chat

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// Provider sends a serialized conversation to a model endpoint and
// returns the assistant's reply as a turn.
type Provider interface {
	Respond(ctx context.Context, credential string, turns []Turn) (Turn, error)
}

// CredentialSource supplies the API credential for outbound requests.
type CredentialSource interface {
	Credential() (string, error)
}

// StaticCredential is a CredentialSource holding a fixed string.
type StaticCredential string

// Credential returns the fixed credential string.
func (s StaticCredential) Credential() (string, error) {
	return string(s), nil
}

// CredentialChain tries each source in order and returns the first
// non-empty credential. An empty result from a source is not an error;
// a failing source aborts the chain.
type CredentialChain []CredentialSource

// Credential returns the first non-empty credential in the chain.
func (c CredentialChain) Credential() (string, error) {
	for _, source := range c {
		credential, err := source.Credential()
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(credential) != "" {
			return credential, nil
		}
	}
	return "", nil
}

// Dispatcher owns the request lifecycle for one conversation: it
// appends the user turn optimistically, issues exactly one outbound
// call per submission, and reconciles the reply (or failure) back into
// the conversation. At most one request is in flight at a time.
type Dispatcher struct {
	conv        *Conversation
	provider    Provider
	credentials CredentialSource
	transcriber Transcriber
	logger      *slog.Logger

	mu       sync.Mutex
	inFlight bool
}

// NewDispatcher creates a dispatcher for the given conversation. All
// collaborators are injected; a nil transcriber defaults to the
// placeholder implementation and a nil logger discards output.
func NewDispatcher(conv *Conversation, provider Provider, credentials CredentialSource, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		conv:        conv,
		provider:    provider,
		credentials: credentials,
		transcriber: PlaceholderTranscriber{},
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DispatcherOption configures optional dispatcher collaborators.
type DispatcherOption func(*Dispatcher)

// WithTranscriber replaces the default placeholder transcriber.
func WithTranscriber(t Transcriber) DispatcherOption {
	return func(d *Dispatcher) { d.transcriber = t }
}

// WithLogger sets the dispatcher's logger.
func WithLogger(l *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) { d.logger = l }
}

// InFlight reports whether a request is currently outstanding.
func (d *Dispatcher) InFlight() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.inFlight
}

// Conversation returns the conversation this dispatcher reconciles into.
func (d *Dispatcher) Conversation() *Conversation {
	return d.conv
}

// Submit records the user turn and requests an assistant reply.
//
// The turn is appended before the network call resolves, so a failure
// never loses the user's input: on any provider error the turn stays in
// the conversation and no assistant turn is added. Submit returns
// ErrBusy while another request is in flight, and a ConfigurationError
// (with the conversation untouched) when no credential is available.
func (d *Dispatcher) Submit(ctx context.Context, turn Turn) (Turn, error) {
	if len(turn.Parts) == 0 {
		return Turn{}, ErrEmptyInput
	}

	d.mu.Lock()
	if d.inFlight {
		d.mu.Unlock()
		return Turn{}, ErrBusy
	}
	d.inFlight = true
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		d.inFlight = false
		d.mu.Unlock()
	}()

	// The credential must be present before the request is constructed;
	// failing here leaves the conversation untouched.
	credential, err := d.credentials.Credential()
	if err != nil {
		return Turn{}, &ConfigurationError{Setting: "credential", Reason: err.Error()}
	}
	if strings.TrimSpace(credential) == "" {
		return Turn{}, &ConfigurationError{Setting: "credential", Reason: "no API key is set; check your credential"}
	}

	// Optimistic append: the user's turn is recorded even if the call
	// below fails.
	d.conv.Append(turn)
	history := d.conv.Snapshot()

	outbound, err := d.transcribeAudio(ctx, history)
	if err != nil {
		return Turn{}, fmt.Errorf("preparing audio for request: %w", err)
	}

	d.logger.Debug("dispatching request",
		"conversation", d.conv.ID,
		"turns", len(outbound),
		"parts", len(turn.Parts))

	reply, err := d.provider.Respond(ctx, credential, outbound)
	if err != nil {
		d.logger.Debug("request failed", "conversation", d.conv.ID, "error", err)
		return Turn{}, err
	}

	d.conv.Append(reply)
	d.logger.Debug("reply reconciled", "conversation", d.conv.ID, "turns", d.conv.Len())
	return reply, nil
}

// transcribeAudio returns a copy of the history in which every audio
// part carries its transcription in Text, ready for serialization. The
// stored conversation is never modified.
func (d *Dispatcher) transcribeAudio(ctx context.Context, turns []Turn) ([]Turn, error) {
	out := make([]Turn, len(turns))
	for i, turn := range turns {
		parts := make([]ContentPart, len(turn.Parts))
		copy(parts, turn.Parts)
		for j, part := range parts {
			if part.Kind != PartAudio || part.Text != "" {
				continue
			}
			text, err := d.transcriber.Transcribe(ctx, part)
			if err != nil {
				return nil, err
			}
			parts[j].Text = text
		}
		out[i] = Turn{Role: turn.Role, Parts: parts}
	}
	return out, nil
}
