package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"cosmossdk.io/log"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/onsenswap/onsenswap/app"
	"github.com/onsenswap/onsenswap/app/health"
)

// Server is the HTTP surface of a node
type Server struct {
	router      *gin.Engine
	node        *app.OnsenApp
	config      Config
	logger      log.Logger
	health      *health.Checker
	rateLimiter *RateLimiter
	auditLogger *AuditLogger
	auth        *TokenAuth
}

// Config holds server configuration
type Config struct {
	Address         string
	CORSOrigins     []string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	RequestTimeout  time.Duration

	// EnableTx mounts the /api/tx routes. Callers are named in the request
	// body, so these belong on dev nodes only.
	EnableTx bool

	// AuthSecret, when set, requires an HS256 bearer token on /api/tx
	AuthSecret string

	RateLimit RateLimitConfig

	// Audit logging of tx requests; empty AuditLogDir disables it
	AuditLogDir string

	// ServeMetrics mounts promhttp under /metrics
	ServeMetrics bool
}

// DefaultConfig returns default server configuration
func DefaultConfig() Config {
	return Config{
		Address:         "127.0.0.1:1317",
		CORSOrigins:     []string{"http://localhost:3000"},
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		RequestTimeout:  30 * time.Second,
		EnableTx:        true,
		RateLimit:       DefaultRateLimitConfig(),
	}
}

// ConfigFromApp maps the node configuration onto server settings
func ConfigFromApp(cfg app.Config) Config {
	config := DefaultConfig()
	config.Address = cfg.API.Address
	config.RateLimit.DefaultRPS = cfg.API.RateLimit
	config.RateLimit.DefaultBurst = cfg.API.RateLimit * 2
	config.AuditLogDir = filepath.Join(cfg.Home, "audit")
	config.AuthSecret = cfg.API.AuthSecret
	return config
}

// NewServer creates a new API server instance
func NewServer(node *app.OnsenApp, config Config) (*Server, error) {
	if err := config.RateLimit.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rate limit config: %w", err)
	}

	logger := node.Logger().With("module", "api")

	auditLogger, err := NewAuditLogger(config.AuditLogDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize audit logger: %w", err)
	}

	s := &Server{
		node:        node,
		config:      config,
		logger:      logger,
		health:      health.NewChecker(logger, health.DefaultConfig(), node),
		rateLimiter: NewRateLimiter(config.RateLimit),
		auditLogger: auditLogger,
		auth:        NewTokenAuth(config.AuthSecret),
	}
	s.setupRouter()
	return s, nil
}

// setupRouter configures the Gin router with all routes and middleware
func (s *Server) setupRouter() {
	s.router = gin.New()

	// Global middleware - ORDER MATTERS!
	// 1. Recovery (must be first to catch panics)
	s.router.Use(RecoveryMiddleware(s.logger))

	// 2. Security headers
	s.router.Use(SecurityHeadersMiddleware())

	// 3. Request size limiting
	s.router.Use(RequestSizeLimitMiddleware(MaxRequestSize))

	// 4. Request ID (for tracing)
	s.router.Use(RequestIDMiddleware())

	// 5. Logging and metrics
	s.router.Use(LoggerMiddleware(s.logger))
	s.router.Use(MetricsMiddleware())

	// 6. CORS
	s.router.Use(CORSMiddleware(s.config.CORSOrigins))

	// 7. Rate limiting
	s.router.Use(RateLimitMiddleware(s.rateLimiter, s.auditLogger))

	// 8. Timeout
	s.router.Use(TimeoutMiddleware(s.config.RequestTimeout))

	s.health.RegisterRoutes(s.router)
	s.router.GET("/rate-limit/stats", s.handleRateLimitStats)
	if s.config.ServeMetrics {
		s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	s.registerRoutes()
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Address,
		Handler:           s.router,
		ReadTimeout:       s.config.ReadTimeout,
		ReadHeaderTimeout: s.config.ReadTimeout,
		WriteTimeout:      s.config.WriteTimeout,
		MaxHeaderBytes:    1 << 20, // 1 MB
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting API server", "address", s.config.Address, "tx_routes", s.config.EnableTx)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("API server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down API server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	s.Close()
	return nil
}

// Close releases the rate limiter and audit log
func (s *Server) Close() {
	s.rateLimiter.Close()
	if err := s.auditLogger.Close(); err != nil {
		s.logger.Error("failed to close audit log", "error", err)
	}
}

// handleRateLimitStats returns rate limiter statistics
func (s *Server) handleRateLimitStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.rateLimiter.Stats())
}
