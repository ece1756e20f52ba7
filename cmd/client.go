package cmd

import (
	"fmt"

	"github.com/BenitThinot03/chat-verse-guide-ai/internal/chat"
	"github.com/BenitThinot03/chat-verse-guide-ai/internal/chat/config"
	"github.com/BenitThinot03/chat-verse-guide-ai/internal/chat/persona"
	"github.com/BenitThinot03/chat-verse-guide-ai/internal/credential"
	"github.com/BenitThinot03/chat-verse-guide-ai/internal/observability"
	"github.com/BenitThinot03/chat-verse-guide-ai/internal/openai"
)

// newDispatcher wires the conversation core: credential store falling
// back to the configured token, the Responses API client, and a fresh
// conversation. The returned cleanup closes the credential store.
func newDispatcher(cfg *config.Config) (*chat.Dispatcher, func(), error) {
	store, err := credential.Open(cfg.CredentialDB)
	if err != nil {
		return nil, nil, fmt.Errorf("opening credential store: %w", err)
	}

	sources := chat.CredentialChain{store, chat.StaticCredential(cfg.Token)}
	client := openai.NewClient(cfg, nil)
	conv := chat.NewConversation()

	dispatcher := chat.NewDispatcher(conv, client, sources,
		chat.WithLogger(observability.NewLogger(verbose)))

	cleanup := func() { store.Close() }
	return dispatcher, cleanup, nil
}

// applyPersona overrides the configured instructions with a named
// persona template, if one is requested.
func applyPersona(cfg *config.Config, name string) error {
	if name == "" {
		name = cfg.Persona
	}
	if name == "" {
		return nil
	}

	p, err := persona.Load(name, cfg.PersonaDirs)
	if err != nil {
		return fmt.Errorf("loading persona: %w", err)
	}
	cfg.Instructions = p.Instructions
	return nil
}
