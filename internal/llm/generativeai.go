package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GenerativeAIClient implements Client on the generative-ai-go SDK
type GenerativeAIClient struct {
	client *genai.Client
	config *Config
}

// NewGenerativeAIClient creates a new generative-ai-go backed client
func NewGenerativeAIClient(ctx context.Context, config *Config, apiKey string) (*GenerativeAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GenerativeAIClient{client: client, config: config}, nil
}

// Generate sends one GenerateContent request. ThinkingBudget is not supported by this SDK and is ignored.
func (c *GenerativeAIClient) Generate(ctx context.Context, req *Request) (string, error) {
	modelName, err := resolveModel(c.config, req)
	if err != nil {
		return "", err
	}

	model := c.client.GenerativeModel(modelName)
	if req.Temperature != nil {
		model.SetTemperature(*req.Temperature)
	}
	if req.MaxOutputTokens > 0 {
		model.SetMaxOutputTokens(req.MaxOutputTokens)
	}
	if req.SystemInstruction != "" {
		model.SystemInstruction = genai.NewUserContent(genai.Text(req.SystemInstruction))
	}
	if len(req.ResponseFields) > 0 {
		props := make(map[string]*genai.Schema, len(req.ResponseFields))
		for _, field := range req.ResponseFields {
			props[field] = &genai.Schema{Type: genai.TypeString}
		}
		model.ResponseMIMEType = "application/json"
		model.ResponseSchema = &genai.Schema{
			Type:       genai.TypeObject,
			Properties: props,
			Required:   req.ResponseFields,
		}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	return extractTextFromResponse(resp), nil
}

// GetModel returns the model name for a tier
func (c *GenerativeAIClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close releases resources held by the client
func (c *GenerativeAIClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// extractTextFromResponse joins the text parts of the first candidate.
func extractTextFromResponse(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return ""
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	return strings.Join(parts, "")
}
