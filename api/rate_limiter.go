package api

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitConfig holds the rate limiting configuration
type RateLimitConfig struct {
	Enabled         bool          `json:"enabled"`
	DefaultRPS      int           `json:"default_rps"`
	DefaultBurst    int           `json:"default_burst"`
	CleanupInterval time.Duration `json:"cleanup_interval"`
	IdleTimeout     time.Duration `json:"idle_timeout"`

	// Tighter limits for matching routes, checked on top of the IP limit
	EndpointLimits []EndpointLimit `json:"endpoint_limits"`

	WhitelistIPs []string `json:"whitelist_ips"`
}

// EndpointLimit limits requests whose route starts with PathPrefix
type EndpointLimit struct {
	PathPrefix string `json:"path_prefix"`
	Method     string `json:"method"` // empty means all methods
	RPS        int    `json:"rps"`
	Burst      int    `json:"burst"`
}

// DefaultRateLimitConfig returns the default configuration. Transactions get
// a lower budget than reads.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Enabled:         true,
		DefaultRPS:      20,
		DefaultBurst:    40,
		CleanupInterval: time.Minute,
		IdleTimeout:     10 * time.Minute,
		EndpointLimits: []EndpointLimit{
			{PathPrefix: "/api/tx", Method: "POST", RPS: 5, Burst: 10},
		},
		WhitelistIPs: []string{},
	}
}

// Validate checks the configuration
func (c RateLimitConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.DefaultRPS <= 0 {
		return fmt.Errorf("default_rps must be positive, got %d", c.DefaultRPS)
	}
	if c.DefaultBurst <= 0 {
		return fmt.Errorf("default_burst must be positive, got %d", c.DefaultBurst)
	}
	for _, limit := range c.EndpointLimits {
		if limit.PathPrefix == "" {
			return fmt.Errorf("endpoint limit needs a path prefix")
		}
		if limit.RPS <= 0 || limit.Burst <= 0 {
			return fmt.Errorf("endpoint %s: rps and burst must be positive", limit.PathPrefix)
		}
	}
	return nil
}

// RateLimitHeaders are returned to the client with every limited response
type RateLimitHeaders struct {
	Limit      int
	Remaining  int
	RetryAfter int
}

type clientLimiter struct {
	mu        sync.Mutex
	limiter   *rate.Limiter
	endpoints map[int]*rate.Limiter
	lastSeen  time.Time
}

// RateLimiter enforces a token bucket per client IP, plus per-route buckets
// for the configured endpoint limits
type RateLimiter struct {
	config    RateLimitConfig
	whitelist map[string]struct{}

	clients sync.Map // ip -> *clientLimiter

	allowed  atomic.Uint64
	rejected atomic.Uint64

	stopOnce sync.Once
	stopChan chan struct{}
}

// NewRateLimiter creates a limiter and starts its cleanup loop
func NewRateLimiter(config RateLimitConfig) *RateLimiter {
	rl := &RateLimiter{
		config:    config,
		whitelist: make(map[string]struct{}, len(config.WhitelistIPs)),
		stopChan:  make(chan struct{}),
	}
	for _, ip := range config.WhitelistIPs {
		rl.whitelist[ip] = struct{}{}
	}
	if config.Enabled && config.CleanupInterval > 0 {
		go rl.cleanupRoutine()
	}
	return rl
}

// Allow reports whether a request from ip to route may proceed
func (rl *RateLimiter) Allow(ip, method, route string) (bool, RateLimitHeaders) {
	if !rl.config.Enabled {
		return true, RateLimitHeaders{}
	}
	if _, ok := rl.whitelist[ip]; ok {
		rl.allowed.Add(1)
		return true, RateLimitHeaders{}
	}

	value, _ := rl.clients.LoadOrStore(ip, &clientLimiter{
		limiter:   rate.NewLimiter(rate.Limit(rl.config.DefaultRPS), rl.config.DefaultBurst),
		endpoints: make(map[int]*rate.Limiter),
	})
	client := value.(*clientLimiter)

	client.mu.Lock()
	defer client.mu.Unlock()
	client.lastSeen = time.Now()

	limit, burst, limiter := rl.config.DefaultRPS, rl.config.DefaultBurst, client.limiter
	for i, endpoint := range rl.config.EndpointLimits {
		if !endpoint.matches(method, route) {
			continue
		}
		l, ok := client.endpoints[i]
		if !ok {
			l = rate.NewLimiter(rate.Limit(endpoint.RPS), endpoint.Burst)
			client.endpoints[i] = l
		}
		// both buckets are charged; the endpoint one is reported
		if !client.limiter.Allow() {
			return rl.reject(limit)
		}
		limit, burst, limiter = endpoint.RPS, endpoint.Burst, l
		break
	}

	if !limiter.Allow() {
		return rl.reject(limit)
	}

	rl.allowed.Add(1)
	remaining := int(limiter.Tokens())
	if remaining < 0 {
		remaining = 0
	}
	if remaining > burst {
		remaining = burst
	}
	return true, RateLimitHeaders{Limit: limit, Remaining: remaining}
}

func (rl *RateLimiter) reject(limit int) (bool, RateLimitHeaders) {
	rl.rejected.Add(1)
	return false, RateLimitHeaders{Limit: limit, Remaining: 0, RetryAfter: 1}
}

func (e EndpointLimit) matches(method, route string) bool {
	if e.Method != "" && !strings.EqualFold(e.Method, method) {
		return false
	}
	return strings.HasPrefix(route, e.PathPrefix)
}

func (rl *RateLimiter) cleanupRoutine() {
	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup(time.Now())
		case <-rl.stopChan:
			return
		}
	}
}

// cleanup drops clients idle for longer than IdleTimeout
func (rl *RateLimiter) cleanup(now time.Time) int {
	removed := 0
	rl.clients.Range(func(key, value interface{}) bool {
		client := value.(*clientLimiter)
		client.mu.Lock()
		lastSeen := client.lastSeen
		client.mu.Unlock()

		if now.Sub(lastSeen) > rl.config.IdleTimeout {
			rl.clients.Delete(key)
			removed++
		}
		return true
	})
	return removed
}

// Close stops the cleanup loop
func (rl *RateLimiter) Close() {
	rl.stopOnce.Do(func() { close(rl.stopChan) })
}

// Stats returns statistics about the rate limiter
func (rl *RateLimiter) Stats() map[string]interface{} {
	clients := 0
	rl.clients.Range(func(_, _ interface{}) bool {
		clients++
		return true
	})

	return map[string]interface{}{
		"enabled":  rl.config.Enabled,
		"clients":  clients,
		"allowed":  rl.allowed.Load(),
		"rejected": rl.rejected.Load(),
	}
}
