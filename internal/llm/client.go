package llm

import (
	"context"
	"fmt"
)

// Client is an abstraction over LLM backends
type Client interface {
	// Generate issues a single generation request and returns the response text.
	// An empty string means the model produced no text.
	Generate(ctx context.Context, req *Request) (string, error)
	// GetModel returns the provider model for a tier
	GetModel(tier ModelTier) string
	// Close releases any resources held by the client
	Close() error
}

// Request describes one generation call.
type Request struct {
	Tier              ModelTier
	Model             string // overrides Tier when set
	SystemInstruction string
	Prompt            string

	Temperature     *float32
	MaxOutputTokens int32
	// ThinkingBudget is reserved out of MaxOutputTokens for internal reasoning.
	ThinkingBudget *int32

	// ResponseFields requests a JSON object with these string properties.
	ResponseFields []string
}

// Float32 returns a pointer to v.
func Float32(v float32) *float32 { return &v }

// Int32 returns a pointer to v.
func Int32(v int32) *int32 { return &v }

// NewClient creates a new LLM client based on configuration
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderGenerativeAI:
		client, err := NewGenerativeAIClient(ctx, config, apiKey)
		if err != nil {
			return nil, err
		}
		return client, nil
	case ProviderGemini, "":
		client, err := NewGeminiClient(ctx, config, apiKey)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", config.Provider)
	}
}

func resolveModel(config *Config, req *Request) (string, error) {
	if req.Model != "" {
		return req.Model, nil
	}
	model := config.GetModel(req.Tier)
	if model == "" {
		return "", fmt.Errorf("no model configured for tier %s", req.Tier)
	}
	return model, nil
}
