package ratelimit

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

// Rule is the limit applied to one route.
type Rule struct {
	Path   string        // exact path, or a prefix when it ends in "/"
	Method string        // HTTP method
	Limit  int           // requests per Window; 0 means unlimited
	Window time.Duration // refill window
	Burst  int           // bucket capacity; defaults to Limit
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	IdleTimeout     time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	Rules           []Rule
}

// envConfig mirrors the RATE_LIMIT_* environment variables.
type envConfig struct {
	Enabled         bool          `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	DefaultLimit    int           `env:"RATE_LIMIT_DEFAULT_LIMIT" envDefault:"600"`
	DefaultWindow   time.Duration `env:"RATE_LIMIT_DEFAULT_WINDOW" envDefault:"1m"`
	ReportLimit     int           `env:"RATE_LIMIT_REPORT_LIMIT" envDefault:"20"`
	ReportWindow    time.Duration `env:"RATE_LIMIT_REPORT_WINDOW" envDefault:"1h"`
	ReportBurst     int           `env:"RATE_LIMIT_REPORT_BURST" envDefault:"3"`
	CleanupInterval time.Duration `env:"RATE_LIMIT_CLEANUP_INTERVAL" envDefault:"5m"`
	IdleTimeout     time.Duration `env:"RATE_LIMIT_IDLE_TIMEOUT" envDefault:"1h"`
	Whitelist       []string      `env:"RATE_LIMIT_WHITELIST" envSeparator:","`
	Blacklist       []string      `env:"RATE_LIMIT_BLACKLIST" envSeparator:","`
}

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig() (*Config, error) {
	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		return nil, fmt.Errorf("failed to parse rate limit environment: %w", err)
	}
	if !ec.Enabled {
		return &Config{Enabled: false}, nil
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    ec.DefaultLimit,
		DefaultWindow:   ec.DefaultWindow,
		CleanupInterval: ec.CleanupInterval,
		IdleTimeout:     ec.IdleTimeout,
		Whitelist:       toSet(ec.Whitelist),
		Blacklist:       toSet(ec.Blacklist),
		Rules:           ReportRules(ec.ReportLimit, ec.ReportWindow, ec.ReportBurst),
	}, nil
}

// ReportRules limits the routes that call the text-generation service.
func ReportRules(limit int, window time.Duration, burst int) []Rule {
	return []Rule{
		{Path: "/", Method: "POST", Limit: limit, Window: window, Burst: burst},
		{Path: "/api/report", Method: "POST", Limit: limit, Window: window, Burst: burst},
		{Path: "/api/report/stream", Method: "POST", Limit: limit, Window: window, Burst: burst},
	}
}

func toSet(items []string) map[string]bool {
	result := make(map[string]bool)
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			result[item] = true
		}
	}
	return result
}
