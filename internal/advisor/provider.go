package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ProviderConfig selects and configures a tip provider
type ProviderConfig struct {
	Provider       string
	GeminiKey      string
	GeminiModel    string
	AnthropicKey   string
	AnthropicModel string
	OpenAIKey      string
	OpenAIModel    string
	OpenAIBaseURL  string
}

// NewGenerator builds the configured provider. A missing key yields
// ErrNoCredential; an unknown provider name is an error.
func NewGenerator(ctx context.Context, cfg ProviderConfig) (Generator, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", "gemini":
		g, err := NewGemini(ctx, cfg.GeminiKey, cfg.GeminiModel)
		if err != nil {
			return nil, err
		}
		return g, nil
	case "anthropic":
		g, err := NewAnthropic(cfg.AnthropicKey, cfg.AnthropicModel)
		if err != nil {
			return nil, err
		}
		return g, nil
	case "openai":
		g, err := NewOpenAI(cfg.OpenAIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL)
		if err != nil {
			return nil, err
		}
		return g, nil
	default:
		return nil, fmt.Errorf("unsupported tip provider: %s. Use 'gemini', 'anthropic' or 'openai'", cfg.Provider)
	}
}

// FromConfig builds an Advisor for cfg. A missing key is not an error: the
// advisor then answers FallbackNoKey.
func FromConfig(ctx context.Context, cfg ProviderConfig, city string, timeout time.Duration) (*Advisor, error) {
	gen, err := NewGenerator(ctx, cfg)
	if errors.Is(err, ErrNoCredential) {
		return New(nil, city, timeout), nil
	}
	if err != nil {
		return nil, err
	}
	return New(gen, city, timeout), nil
}
