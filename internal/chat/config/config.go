// Package config holds the typed configuration for the guidechat
// client, loaded through viper from a TOML file and environment
// variables.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// DefaultInstructions is the system instruction sent with every request
// unless a persona overrides it.
const DefaultInstructions = "You are a very helpful and concise Guide assistant. And passionate about travel"

// Config holds the request metadata and client settings.
type Config struct {
	Model           string   `toml:"model" mapstructure:"model"`
	BaseURL         string   `toml:"base_url" mapstructure:"base_url"`
	Token           string   `toml:"token" mapstructure:"token"` // fallback credential, supports $VAR syntax
	Instructions    string   `toml:"instructions" mapstructure:"instructions"`
	Persona         string   `toml:"persona" mapstructure:"persona"` // persona template name, optional
	PersonaDirs     []string `toml:"persona_dirs" mapstructure:"persona_dirs"`
	MaxOutputTokens int      `toml:"max_output_tokens" mapstructure:"max_output_tokens"`
	Temperature     float64  `toml:"temperature" mapstructure:"temperature"`
	CredentialDB    string   `toml:"credential_db" mapstructure:"credential_db"` // path to the credential store
}

// GetBaseURL returns the provider base URL.
func (c *Config) GetBaseURL() string { return c.BaseURL }

// GetModelName returns the model identifier.
func (c *Config) GetModelName() string { return c.Model }

// GetInstructions returns the system instructions.
func (c *Config) GetInstructions() string { return c.Instructions }

// GetMaxOutputTokens returns the output length limit.
func (c *Config) GetMaxOutputTokens() int { return c.MaxOutputTokens }

// GetTemperature returns the sampling temperature.
func (c *Config) GetTemperature() float64 { return c.Temperature }

// NewDefaultConfig returns a new Config with default values.
func NewDefaultConfig(personaDir string) *Config {
	return &Config{
		Model:           "gpt-4o-mini",
		BaseURL:         "https://api.openai.com/v1",
		Token:           "$OPENAI_API_KEY", // Default to env var
		Instructions:    DefaultInstructions,
		PersonaDirs:     []string{personaDir},
		MaxOutputTokens: 300,
		Temperature:     0.7,
	}
}

// LoadConfig loads configuration from viper and validates it.
func LoadConfig() (*Config, error) {
	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %v", err)
	}

	// Expand environment variable references in the fallback token
	token, err := expandEnvVar(config.Token)
	if err != nil {
		return nil, fmt.Errorf("error expanding token: %v", err)
	}
	config.Token = token

	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Convert persona directories to absolute paths
	for i, dir := range config.PersonaDirs {
		absPath, err := ResolvePath(dir)
		if err != nil {
			return nil, fmt.Errorf("error resolving persona directory path '%s': %v", dir, err)
		}
		config.PersonaDirs[i] = absPath
	}

	// Resolve the credential store path relative to the config file
	if config.CredentialDB != "" {
		absPath, err := ResolvePath(config.CredentialDB)
		if err != nil {
			return nil, fmt.Errorf("error resolving credential store path '%s': %v", config.CredentialDB, err)
		}
		config.CredentialDB = absPath
	}

	return config, nil
}

// Validate checks field constraints that cannot be expressed in TOML.
func (c *Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("model must not be empty")
	}
	if c.BaseURL == "" {
		return fmt.Errorf("base_url must not be empty")
	}
	if c.Temperature < 0 || c.Temperature > 1 {
		return fmt.Errorf("temperature must be in [0, 1], got %g", c.Temperature)
	}
	if c.MaxOutputTokens < 0 {
		return fmt.Errorf("max_output_tokens must not be negative, got %d", c.MaxOutputTokens)
	}
	return nil
}
