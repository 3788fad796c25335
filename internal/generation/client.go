package generation

import (
	"context"
	"time"
)

// Client is the narrow contract the comment generator needs from a text
// generation provider. Implementations must be safe for concurrent use.
type Client interface {
	// Generate sends the system instruction and user prompt to the provider
	// and returns the generated text. It blocks for the round trip; callers
	// bound it with a context deadline.
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	// Name identifies the model for provenance records.
	Name() string
}

// Config is the explicit provider configuration. No package-level state:
// credentials and sampling parameters travel with the client instance.
type Config struct {
	Provider    string
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = "https://api.openai.com/v1"
	}
	if c.Model == "" {
		c.Model = "gpt-3.5-turbo"
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = 500
	}
	if c.Temperature == 0 {
		c.Temperature = 0.7
	}
	if c.Timeout <= 0 {
		c.Timeout = 60 * time.Second
	}
	return c
}
