// Package llm provides centralized LLM configuration and client abstractions.
// This package enables switching between model tiers and Gemini SDKs.
package llm

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for simple tasks: classification, extraction, basic summarization
	TierLite ModelTier = "lite"
	// TierStandard is for moderate reasoning: parsing, structured output
	TierStandard ModelTier = "standard"
	// TierAdvanced is for complex text tasks such as strategy reports
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM backend
type Provider string

// Provider constants define supported LLM backends
const (
	// ProviderGemini talks to the Gemini API through google.golang.org/genai
	ProviderGemini Provider = "gemini"
	// ProviderGenerativeAI talks to the Gemini API through the generative-ai-go SDK.
	// It has no thinking budget support.
	ProviderGenerativeAI Provider = "generative-ai"
)

// Config holds the model configuration for the application
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-3-pro-preview",
		},
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := &Config{
		Provider: c.Provider,
		Models:   make(map[ModelTier]string),
	}
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[tier] = model
	return newConfig
}

// WithProvider returns a new Config using the given provider
func (c *Config) WithProvider(provider Provider) *Config {
	newConfig := c.WithModel(TierAdvanced, c.GetModel(TierAdvanced))
	newConfig.Provider = provider
	return newConfig
}
