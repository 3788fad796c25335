package generation

import "fmt"

// NewClient builds the provider named in the configuration.
// An empty provider defaults to OpenAI, which is what the original
// deployment used.
func NewClient(cfg Config) (Client, error) {
	switch cfg.Provider {
	case "", "openai":
		return NewOpenAIClient(cfg), nil
	case "gemini":
		return NewGeminiClient(cfg)
	default:
		return nil, fmt.Errorf("unknown generation provider %q", cfg.Provider)
	}
}
