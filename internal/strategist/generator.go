// Package strategist builds the passive income prompt and asks the text-generation service for a report.
package strategist

import (
	"context"
	"os"
	"strconv"
	"strings"

	"github.com/jonathan/income-strategist/internal/llm"
	"github.com/jonathan/income-strategist/internal/logger"
	"github.com/jonathan/income-strategist/internal/prompts"
	"github.com/jonathan/income-strategist/internal/schemas"
	"github.com/jonathan/income-strategist/internal/types"
)

const promptFile = "strategist.json"

// User-facing strings returned in place of a report.
const (
	FallbackReport      = "No report content could be generated. Please try again or refine your skills/goal."
	KeySelectionMessage = "API Key issue detected. Please ensure you have selected a valid paid API key via the dialog."
	MissingKeyMessage   = "API_KEY is not defined in the environment variables."
)

// entityNotFound is how the service reports an unusable or unselected API key.
const entityNotFound = "Requested entity was not found."

// Options are the generation parameters sent with every request.
type Options struct {
	LLM             *llm.Config
	Model           string // overrides the advanced tier model when set
	Temperature     float32
	MaxOutputTokens int32
	ThinkingBudget  int32
	Structured      bool
}

// DefaultOptions returns the parameters the strategist ships with.
func DefaultOptions() Options {
	return Options{
		LLM:             llm.DefaultConfig(),
		Temperature:     0.7,
		MaxOutputTokens: 800,
		ThinkingBudget:  200,
	}
}

// KeySelector is an optional host capability that lets the user pick a different API key.
type KeySelector interface {
	SelectKey(ctx context.Context) error
}

// ClientFactory opens an LLM client for one request.
type ClientFactory func(ctx context.Context, config *llm.Config, apiKey string) (llm.Client, error)

// CredentialFunc returns the API key, or "" when none is configured.
type CredentialFunc func() string

// EnvCredential reads GEMINI_API_KEY, falling back to API_KEY.
func EnvCredential() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return os.Getenv("API_KEY")
}

// Generator turns a UserInput into a raw report. It keeps no state between calls.
type Generator struct {
	opts       Options
	credential CredentialFunc
	newClient  ClientFactory
	selector   KeySelector
	log        *logger.Logger
}

// Option customizes a Generator.
type Option func(*Generator)

// WithCredential replaces the environment credential lookup.
func WithCredential(fn CredentialFunc) Option {
	return func(g *Generator) { g.credential = fn }
}

// WithClientFactory replaces llm.NewClient.
func WithClientFactory(fn ClientFactory) Option {
	return func(g *Generator) { g.newClient = fn }
}

// WithKeySelector installs the host's key selection capability.
func WithKeySelector(selector KeySelector) Option {
	return func(g *Generator) { g.selector = selector }
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(g *Generator) { g.log = l }
}

// New creates a Generator.
func New(opts Options, options ...Option) *Generator {
	if opts.LLM == nil {
		opts.LLM = llm.DefaultConfig()
	}
	g := &Generator{
		opts:       opts,
		credential: EnvCredential,
		newClient:  llm.NewClient,
		log:        logger.Nop(),
	}
	for _, o := range options {
		o(g)
	}
	return g
}

// Generate issues exactly one request for the given input.
// Identical inputs always hit the service again.
func (g *Generator) Generate(ctx context.Context, input types.UserInput) (string, error) {
	apiKey := g.credential()
	if apiKey == "" {
		return "", &ConfigError{Message: MissingKeyMessage}
	}

	req := g.BuildRequest(input)
	log := g.log.With("model", req.Model, "tier", req.Tier, "structured", g.opts.Structured)

	client, err := g.newClient(ctx, g.opts.LLM, apiKey)
	if err != nil {
		log.Error("failed to create LLM client", "error", err)
		return "", &GenerationError{Cause: err}
	}
	defer func() { _ = client.Close() }()

	text, err := client.Generate(ctx, req)
	if err != nil {
		log.Error("report generation failed", "error", err)
		if strings.Contains(err.Error(), entityNotFound) && g.selector != nil {
			if selErr := g.selector.SelectKey(ctx); selErr != nil {
				log.Warn("key selection failed", "error", selErr)
			}
			return KeySelectionMessage, nil
		}
		return "", &GenerationError{Cause: err}
	}

	if strings.TrimSpace(text) == "" {
		log.Warn("model returned no text")
		return FallbackReport, nil
	}
	log.Debug("report generated", "chars", len(text))
	return text, nil
}

// BuildRequest assembles the LLM request for an input.
func (g *Generator) BuildRequest(input types.UserInput) *llm.Request {
	req := &llm.Request{
		Tier:              llm.TierAdvanced,
		Model:             g.opts.Model,
		SystemInstruction: SystemInstruction(input, g.opts.Structured),
		Prompt:            UserPrompt(input),
		Temperature:       llm.Float32(g.opts.Temperature),
		MaxOutputTokens:   g.opts.MaxOutputTokens,
	}
	if g.opts.ThinkingBudget > 0 {
		req.ThinkingBudget = llm.Int32(g.opts.ThinkingBudget)
	}
	if g.opts.Structured {
		req.ResponseFields = schemas.ReportFields
	}
	return req
}

// SystemInstruction renders the strategist role for the input's goal.
func SystemInstruction(input types.UserInput, structured bool) string {
	instruction := prompts.Format(prompts.MustGet(promptFile, "system-instruction"), map[string]string{
		"Goal": FormatGoal(input.Goal),
	})
	if structured {
		instruction += " " + prompts.MustGet(promptFile, "structured-output")
	}
	return instruction
}

// UserPrompt renders the user turn.
func UserPrompt(input types.UserInput) string {
	return prompts.Format(prompts.MustGet(promptFile, "user-prompt"), map[string]string{
		"Skills": input.Skills,
		"Goal":   FormatGoal(input.Goal),
	})
}

// FormatGoal prints a goal without trailing zeros (25, 12.5).
func FormatGoal(goal float64) string {
	return strconv.FormatFloat(goal, 'f', -1, 64)
}
