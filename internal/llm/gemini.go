package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiClient implements Client on the google.golang.org/genai SDK
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{client: client, config: config}, nil
}

// Generate sends one GenerateContent request
func (c *GeminiClient) Generate(ctx context.Context, req *Request) (string, error) {
	modelName, err := resolveModel(c.config, req)
	if err != nil {
		return "", err
	}

	resp, err := c.client.Models.GenerateContent(ctx, modelName,
		[]*genai.Content{genai.NewContentFromText(req.Prompt, genai.RoleUser)},
		buildGenAIConfig(req),
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if resp == nil {
		return "", nil
	}
	return resp.Text(), nil
}

func buildGenAIConfig(req *Request) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Temperature:     req.Temperature,
		MaxOutputTokens: req.MaxOutputTokens,
	}
	if req.SystemInstruction != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.SystemInstruction, genai.RoleUser)
	}
	if req.ThinkingBudget != nil {
		cfg.ThinkingConfig = &genai.ThinkingConfig{ThinkingBudget: req.ThinkingBudget}
	}
	if len(req.ResponseFields) > 0 {
		props := make(map[string]*genai.Schema, len(req.ResponseFields))
		for _, field := range req.ResponseFields {
			props[field] = &genai.Schema{Type: genai.TypeString}
		}
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = &genai.Schema{
			Type:             genai.TypeObject,
			Properties:       props,
			Required:         req.ResponseFields,
			PropertyOrdering: req.ResponseFields,
		}
	}
	return cfg
}

// GetModel returns the model name for a tier
func (c *GeminiClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close is a no-op; the genai client holds no long-lived resources.
func (c *GeminiClient) Close() error {
	return nil
}
