// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/jonathan/income-strategist/internal/llm"
	"github.com/jonathan/income-strategist/internal/strategist"
	"gopkg.in/yaml.v3"
)

// Config represents settings loaded from a JSON or YAML file and the environment.
// The API key is deliberately absent: it is read from the environment at generation time.
type Config struct {
	// Server
	Port              int    `json:"port,omitempty" yaml:"port,omitempty" env:"PORT"`
	SessionTTLMinutes int    `json:"session_ttl_minutes,omitempty" yaml:"session_ttl_minutes,omitempty" env:"SESSION_TTL_MINUTES"`
	LogMode           string `json:"log_mode,omitempty" yaml:"log_mode,omitempty" env:"LOG_MODE"`

	// Generation
	Provider        string   `json:"provider,omitempty" yaml:"provider,omitempty" env:"LLM_PROVIDER"`
	Model           string   `json:"model,omitempty" yaml:"model,omitempty" env:"GEMINI_MODEL"`
	Temperature     *float32 `json:"temperature,omitempty" yaml:"temperature,omitempty" env:"TEMPERATURE"`
	MaxOutputTokens int32    `json:"max_output_tokens,omitempty" yaml:"max_output_tokens,omitempty" env:"MAX_OUTPUT_TOKENS"`
	ThinkingBudget  *int32   `json:"thinking_budget,omitempty" yaml:"thinking_budget,omitempty" env:"THINKING_BUDGET"`
	Structured      bool     `json:"structured,omitempty" yaml:"structured,omitempty" env:"STRUCTURED_OUTPUT"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Port:              8080,
		SessionTTLMinutes: 60,
		LogMode:           "development",
		Provider:          string(llm.ProviderGemini),
		Temperature:       llm.Float32(0.7),
		MaxOutputTokens:   800,
		ThinkingBudget:    llm.Int32(200),
	}
}

// Load builds the effective configuration: defaults, then the optional file, then the environment.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if path != "" {
		fileCfg, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg.MergeWithDefaults(cfg)
	}

	// Parse into an empty Config so only variables that are set override.
	var envCfg Config
	if err := env.Parse(&envCfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	structured := cfg.Structured
	cfg = envCfg.MergeWithDefaults(cfg)
	if _, ok := os.LookupEnv("STRUCTURED_OUTPUT"); !ok {
		cfg.Structured = structured
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.SessionTTLMinutes < 0 {
		return fmt.Errorf("config error: 'session_ttl_minutes' must be non-negative")
	}

	switch llm.Provider(c.Provider) {
	case llm.ProviderGemini, llm.ProviderGenerativeAI, "":
	default:
		return fmt.Errorf("config error: unknown provider %q", c.Provider)
	}

	if c.Temperature != nil && (*c.Temperature < 0 || *c.Temperature > 2) {
		return fmt.Errorf("config error: 'temperature' must be between 0 and 2")
	}
	if c.MaxOutputTokens < 0 {
		return fmt.Errorf("config error: 'max_output_tokens' must be non-negative")
	}
	if c.ThinkingBudget != nil {
		if *c.ThinkingBudget < 0 {
			return fmt.Errorf("config error: 'thinking_budget' must be non-negative")
		}
		// The reasoning budget comes out of the same cap as the visible output.
		if c.MaxOutputTokens > 0 && *c.ThinkingBudget >= c.MaxOutputTokens {
			return fmt.Errorf("config error: 'thinking_budget' (%d) must be less than 'max_output_tokens' (%d)",
				*c.ThinkingBudget, c.MaxOutputTokens)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with unset fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.SessionTTLMinutes == 0 {
		result.SessionTTLMinutes = defaults.SessionTTLMinutes
	}
	if result.LogMode == "" {
		result.LogMode = defaults.LogMode
	}
	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.Temperature == nil {
		result.Temperature = defaults.Temperature
	}
	if result.MaxOutputTokens == 0 {
		result.MaxOutputTokens = defaults.MaxOutputTokens
	}
	if result.ThinkingBudget == nil {
		result.ThinkingBudget = defaults.ThinkingBudget
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge

	return result
}

// StrategistOptions converts the generation settings into generator options.
func (c *Config) StrategistOptions() strategist.Options {
	opts := strategist.DefaultOptions()
	if c.Provider != "" {
		opts.LLM = opts.LLM.WithProvider(llm.Provider(c.Provider))
	}
	opts.Model = c.Model
	if c.Temperature != nil {
		opts.Temperature = *c.Temperature
	}
	if c.MaxOutputTokens > 0 {
		opts.MaxOutputTokens = c.MaxOutputTokens
	}
	if c.ThinkingBudget != nil {
		opts.ThinkingBudget = *c.ThinkingBudget
	}
	opts.Structured = c.Structured
	return opts
}
