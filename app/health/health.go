// Package health checks that a node can serve pair operations.
//
// Endpoints:
//   - /health - liveness
//   - /health/ready - readiness, cached
//   - /health/detailed - every probe including invariants, never cached
package health

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"cosmossdk.io/log"
	"github.com/gin-gonic/gin"
)

// Status represents the health status of a component
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

// ComponentHealth represents the health status of a single component
type ComponentHealth struct {
	Status    Status                 `json:"status"`
	Message   string                 `json:"message,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Metrics   map[string]interface{} `json:"metrics,omitempty"`
}

// HealthCheck represents the overall health check response
type HealthCheck struct {
	Status     Status                     `json:"status"`
	Timestamp  time.Time                  `json:"timestamp"`
	Height     uint64                     `json:"height"`
	Components map[string]ComponentHealth `json:"components,omitempty"`
}

// Probe checks one component.
type Probe func(ctx context.Context) ComponentHealth

// Source supplies the probes of a node.
type Source interface {
	// HealthProbes returns cheap probes run on every readiness check.
	HealthProbes() map[string]Probe
	// DetailedProbes returns probes only run by the detailed check.
	DetailedProbes() map[string]Probe
	// Height is the current block.
	Height() uint64
}

// Config holds configuration for the health checker
type Config struct {
	// CacheDuration is how long to cache readiness results
	CacheDuration time.Duration

	// MaxProbeTime marks a component degraded when its probe is slower
	MaxProbeTime time.Duration
}

// DefaultConfig returns the default health check configuration
func DefaultConfig() Config {
	return Config{
		CacheDuration: 5 * time.Second,
		MaxProbeTime:  time.Second,
	}
}

// Checker performs health checks on the node's components
type Checker struct {
	logger log.Logger
	source Source
	cfg    Config

	mu           sync.RWMutex
	lastCheck    time.Time
	cachedHealth *HealthCheck
}

// NewChecker creates a new health checker
func NewChecker(logger log.Logger, cfg Config, source Source) *Checker {
	return &Checker{
		logger: logger,
		source: source,
		cfg:    cfg,
	}
}

// Check runs the probes. Readiness results are cached for CacheDuration.
func (c *Checker) Check(ctx context.Context, detailed bool) *HealthCheck {
	if !detailed {
		if cached := c.cached(); cached != nil {
			return cached
		}
	}

	probes := c.source.HealthProbes()
	if detailed {
		for name, probe := range c.source.DetailedProbes() {
			probes[name] = probe
		}
	}

	health := &HealthCheck{
		Timestamp:  time.Now(),
		Height:     c.source.Height(),
		Components: make(map[string]ComponentHealth, len(probes)),
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	for name, probe := range probes {
		wg.Add(1)
		go func(name string, probe Probe) {
			defer wg.Done()
			start := time.Now()
			result := probe(ctx)
			if elapsed := time.Since(start); elapsed > c.cfg.MaxProbeTime && result.Status == StatusHealthy {
				result.Status = StatusDegraded
				result.Message = "probe is slow: " + elapsed.String()
			}
			mu.Lock()
			health.Components[name] = result
			mu.Unlock()
		}(name, probe)
	}
	wg.Wait()

	health.Status = OverallStatus(health.Components)

	if !detailed {
		c.mu.Lock()
		c.lastCheck = time.Now()
		c.cachedHealth = health
		c.mu.Unlock()
	}
	if health.Status != StatusHealthy {
		c.logger.Error("health check not healthy", "status", health.Status, "components", unhealthyNames(health.Components))
	}
	return health
}

// OverallStatus is the worst status among components
func OverallStatus(components map[string]ComponentHealth) Status {
	hasDegraded := false
	for _, component := range components {
		switch component.Status {
		case StatusUnhealthy:
			return StatusUnhealthy
		case StatusDegraded:
			hasDegraded = true
		}
	}
	if hasDegraded {
		return StatusDegraded
	}
	return StatusHealthy
}

func (c *Checker) cached() *HealthCheck {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.cachedHealth == nil || time.Since(c.lastCheck) >= c.cfg.CacheDuration {
		return nil
	}
	return c.cachedHealth
}

func unhealthyNames(components map[string]ComponentHealth) []string {
	var names []string
	for name, component := range components {
		if component.Status != StatusHealthy {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// RegisterRoutes registers health check endpoints
func (c *Checker) RegisterRoutes(router gin.IRouter) {
	router.GET("/health", c.handleHealth)
	router.GET("/health/ready", c.handleHealthReady)
	router.GET("/health/detailed", c.handleHealthDetailed)
}

func (c *Checker) handleHealth(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (c *Checker) handleHealthReady(ctx *gin.Context) {
	health := c.Check(ctx.Request.Context(), false)
	ctx.JSON(statusCode(health), health)
}

func (c *Checker) handleHealthDetailed(ctx *gin.Context) {
	health := c.Check(ctx.Request.Context(), true)
	ctx.JSON(statusCode(health), health)
}

// degraded is still ready
func statusCode(health *HealthCheck) int {
	if health.Status == StatusUnhealthy {
		return http.StatusServiceUnavailable
	}
	return http.StatusOK
}
