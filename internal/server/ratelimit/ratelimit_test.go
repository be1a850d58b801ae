package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock lets tests move time without sleeping.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestLimiter(config *Config) (*Limiter, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	l := NewLimiter(config)
	l.now = clock.Now
	return l, clock
}

func TestBucket_TakeAndRefill(t *testing.T) {
	start := time.Now()
	b := newBucket(10, 1.0, start)

	for i := 0; i < 10; i++ {
		assert.True(t, b.take(start), "request %d should be allowed", i+1)
	}
	assert.False(t, b.take(start))
	assert.Equal(t, time.Second, b.untilNext())
	assert.Equal(t, 10*time.Second, b.untilFull())

	assert.True(t, b.take(start.Add(1100*time.Millisecond)))
	assert.False(t, b.take(start.Add(1100*time.Millisecond)))
}

func TestLimiter_Allow(t *testing.T) {
	limiter, _ := newTestLimiter(&Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute})
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/api/state", "GET")
		require.True(t, allowed, "request %d should be allowed", i+1)
		assert.Equal(t, 10, info.Limit)
		assert.Equal(t, 9-i, info.Remaining)
	}

	allowed, info := limiter.Allow("127.0.0.1", "/api/state", "GET")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
}

func TestLimiter_RefillOverTime(t *testing.T) {
	limiter, clock := newTestLimiter(&Config{
		Enabled: true,
		Rules:   []Rule{{Path: "/api/report", Method: "POST", Limit: 60, Window: time.Minute, Burst: 1}},
	})
	defer limiter.Stop()

	allowed, _ := limiter.Allow("c", "/api/report", "POST")
	require.True(t, allowed)
	allowed, _ = limiter.Allow("c", "/api/report", "POST")
	require.False(t, allowed)

	clock.Advance(time.Second)
	allowed, _ = limiter.Allow("c", "/api/report", "POST")
	assert.True(t, allowed)
}

func TestLimiter_WhitelistAndBlacklist(t *testing.T) {
	limiter, _ := newTestLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"127.0.0.1": true},
		Blacklist:     map[string]bool{"192.168.1.1": true},
	})
	defer limiter.Stop()

	for i := 0; i < 50; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/", "GET")
		require.True(t, allowed)
		assert.Equal(t, 0, info.Limit)
	}

	allowed, _ := limiter.Allow("192.168.1.1", "/", "GET")
	assert.False(t, allowed)
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		allowed, _ := limiter.Allow("127.0.0.1", "/api/report", "POST")
		require.True(t, allowed)
	}
}

func TestLimiter_ReportRules(t *testing.T) {
	limiter, _ := newTestLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		Rules:         ReportRules(5, time.Hour, 2),
	})
	defer limiter.Stop()

	for i := 0; i < 2; i++ {
		allowed, info := limiter.Allow("c", "/api/report", "POST")
		require.True(t, allowed)
		assert.Equal(t, 5, info.Limit)
	}
	allowed, _ := limiter.Allow("c", "/api/report", "POST")
	assert.False(t, allowed, "burst exhausted")

	// The page itself is not an expensive route
	allowed, info := limiter.Allow("c", "/", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 1000, info.Limit)

	// Health is unlimited
	for i := 0; i < 10; i++ {
		allowed, info = limiter.Allow("c", "/health", "GET")
		require.True(t, allowed)
		assert.Equal(t, 0, info.Limit)
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	limiter, _ := newTestLimiter(&Config{Enabled: true, DefaultLimit: 100, DefaultWindow: time.Minute})
	defer limiter.Stop()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowedCount := 0
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if allowed, _ := limiter.Allow("127.0.0.1", "/api/state", "GET"); allowed {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, allowedCount)
}

func TestLimiter_Cleanup(t *testing.T) {
	limiter, clock := newTestLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
		IdleTimeout:   time.Minute,
	})
	defer limiter.Stop()

	limiter.Allow("a", "/", "GET")
	clock.Advance(45 * time.Second)
	limiter.Allow("b", "/", "GET")
	clock.Advance(30 * time.Second)

	limiter.Cleanup()

	assert.Equal(t, 1, limiter.Len())
}

func TestLimiter_StopIsIdempotent(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Minute, CleanupInterval: time.Millisecond})
	limiter.Stop()
	limiter.Stop()
}

func TestNewLimiter_NilConfig(t *testing.T) {
	limiter := NewLimiter(nil)
	defer limiter.Stop()

	allowed, info := limiter.Allow("127.0.0.1", "/", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 600, info.Limit)
}

func TestMatchRule(t *testing.T) {
	rules := []Rule{
		{Path: "/", Method: "POST", Limit: 1},
		{Path: "/api/", Method: "GET", Limit: 2},
		{Path: "/api/state", Method: "GET", Limit: 3},
	}

	assert.Equal(t, 1, MatchRule("/", "POST", rules).Limit)
	assert.Nil(t, MatchRule("/anything", "POST", rules), "root rule is exact only")
	assert.Equal(t, 3, MatchRule("/api/state", "GET", rules).Limit)
	assert.Equal(t, 2, MatchRule("/api/other", "GET", rules).Limit)
	assert.Nil(t, MatchRule("/api/state", "DELETE", rules))
	assert.Equal(t, 0, MatchRule("/health", "GET", rules).Limit)
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_REPORT_LIMIT", "7")
	t.Setenv("RATE_LIMIT_WHITELIST", "10.0.0.1, 10.0.0.2")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.Enabled)
	assert.Equal(t, 600, cfg.DefaultLimit)
	assert.Equal(t, time.Minute, cfg.DefaultWindow)
	assert.True(t, cfg.Whitelist["10.0.0.2"])
	require.Len(t, cfg.Rules, 3)
	assert.Equal(t, 7, cfg.Rules[1].Limit)
	assert.Equal(t, time.Hour, cfg.Rules[1].Window)
}

func TestLoadConfig_Disabled(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.False(t, cfg.Enabled)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("RATE_LIMIT_DEFAULT_WINDOW", "soon")

	_, err := LoadConfig()
	assert.Error(t, err)
}
