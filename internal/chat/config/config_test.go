package config

import (
	"testing"
)

func TestNewDefaultConfig(t *testing.T) {
	c := NewDefaultConfig("/tmp/personas")

	if c.Model != "gpt-4o-mini" {
		t.Errorf("Model = %q, want gpt-4o-mini", c.Model)
	}
	if c.BaseURL != "https://api.openai.com/v1" {
		t.Errorf("BaseURL = %q", c.BaseURL)
	}
	if c.Token != "$OPENAI_API_KEY" {
		t.Errorf("Token = %q, want the env var reference", c.Token)
	}
	if c.Instructions != DefaultInstructions {
		t.Errorf("Instructions = %q", c.Instructions)
	}
	if c.MaxOutputTokens != 300 {
		t.Errorf("MaxOutputTokens = %d, want 300", c.MaxOutputTokens)
	}
	if c.Temperature != 0.7 {
		t.Errorf("Temperature = %g, want 0.7", c.Temperature)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("default config failed validation: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(c *Config) {}},
		{name: "temperature zero", mutate: func(c *Config) { c.Temperature = 0 }},
		{name: "temperature one", mutate: func(c *Config) { c.Temperature = 1 }},
		{name: "temperature negative", mutate: func(c *Config) { c.Temperature = -0.1 }, wantErr: true},
		{name: "temperature above one", mutate: func(c *Config) { c.Temperature = 1.5 }, wantErr: true},
		{name: "empty model", mutate: func(c *Config) { c.Model = "" }, wantErr: true},
		{name: "empty base url", mutate: func(c *Config) { c.BaseURL = "" }, wantErr: true},
		{name: "negative max tokens", mutate: func(c *Config) { c.MaxOutputTokens = -1 }, wantErr: true},
		{name: "zero max tokens", mutate: func(c *Config) { c.MaxOutputTokens = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewDefaultConfig("/tmp/personas")
			tt.mutate(c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestExpandEnvVar(t *testing.T) {
	t.Setenv("GUIDECHAT_TEST_TOKEN", "sk-from-env")

	tests := []struct {
		name  string
		value string
		want  string
	}{
		{name: "plain value", value: "sk-literal", want: "sk-literal"},
		{name: "dollar syntax", value: "$GUIDECHAT_TEST_TOKEN", want: "sk-from-env"},
		{name: "braced syntax", value: "${GUIDECHAT_TEST_TOKEN}", want: "sk-from-env"},
		{name: "unset variable", value: "$GUIDECHAT_TEST_UNSET", want: ""},
		{name: "empty value", value: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expandEnvVar(tt.value)
			if err != nil {
				t.Fatalf("expandEnvVar() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("expandEnvVar(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}
