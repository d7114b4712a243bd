package api

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const auditFileName = "audit.log"

// AuditLogger writes one JSON line per state-changing request. A nil or
// disabled logger drops events.
type AuditLogger struct {
	mu      sync.Mutex
	logger  zerolog.Logger
	file    *os.File
	logDir  string
	maxSize int64
	enabled bool
}

// AuditEvent describes a state-changing request
type AuditEvent struct {
	EventType string
	Severity  string // "info", "warning", "critical"
	IPAddress string
	Action    string
	Status    string // "success", "failure", "blocked"
	RequestID string
	Height    uint64
	Details   map[string]interface{}
}

// NewAuditLogger opens <logDir>/audit.log for appending. An empty logDir
// returns a disabled logger.
func NewAuditLogger(logDir string) (*AuditLogger, error) {
	if logDir == "" {
		return &AuditLogger{}, nil
	}
	if err := os.MkdirAll(logDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create audit log directory: %w", err)
	}

	al := &AuditLogger{
		logDir:  logDir,
		maxSize: 100 * 1024 * 1024, // 100 MB
		enabled: true,
	}
	if err := al.openFile(); err != nil {
		return nil, err
	}
	return al, nil
}

// NewAuditLoggerWithWriter logs to w without rotation
func NewAuditLoggerWithWriter(w io.Writer) *AuditLogger {
	return &AuditLogger{
		logger:  zerolog.New(w).With().Timestamp().Logger(),
		enabled: true,
	}
}

func (al *AuditLogger) openFile() error {
	f, err := os.OpenFile(filepath.Join(al.logDir, auditFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	al.file = f
	al.logger = zerolog.New(f).With().Timestamp().Logger()
	return nil
}

// rotate moves a full log aside and starts a new one. Caller holds mu.
func (al *AuditLogger) rotate() error {
	if al.file == nil {
		return nil
	}
	info, err := al.file.Stat()
	if err != nil || info.Size() < al.maxSize {
		return err
	}
	if err := al.file.Close(); err != nil {
		return err
	}
	rotated := filepath.Join(al.logDir, fmt.Sprintf("audit-%s.log", time.Now().UTC().Format("20060102T150405")))
	if err := os.Rename(filepath.Join(al.logDir, auditFileName), rotated); err != nil {
		return err
	}
	return al.openFile()
}

// Log records an event
func (al *AuditLogger) Log(event AuditEvent) {
	if al == nil || !al.enabled {
		return
	}

	al.mu.Lock()
	defer al.mu.Unlock()

	if err := al.rotate(); err != nil {
		al.logger.Error().Err(err).Msg("audit log rotation failed")
	}

	var e *zerolog.Event
	switch event.Severity {
	case "critical":
		e = al.logger.Error()
	case "warning":
		e = al.logger.Warn()
	default:
		e = al.logger.Info()
	}

	e.Str("event_type", event.EventType).
		Str("ip_address", event.IPAddress).
		Str("action", event.Action).
		Str("status", event.Status).
		Str("request_id", event.RequestID).
		Uint64("height", event.Height)
	if len(event.Details) > 0 {
		e = e.Fields(event.Details)
	}
	e.Send()

	if event.Severity == "critical" && al.file != nil {
		_ = al.file.Sync()
	}
}

// Close closes the log file
func (al *AuditLogger) Close() error {
	if al == nil || al.file == nil {
		return nil
	}
	al.mu.Lock()
	defer al.mu.Unlock()
	err := al.file.Close()
	al.file = nil
	al.enabled = false
	return err
}

// LogRateLimitExceeded logs rate limit violations
func (al *AuditLogger) LogRateLimitExceeded(c *gin.Context, limit int) {
	al.Log(AuditEvent{
		EventType: "rate_limit_exceeded",
		Severity:  "warning",
		IPAddress: c.ClientIP(),
		Action:    c.Request.Method + " " + c.Request.URL.Path,
		Status:    "blocked",
		RequestID: c.GetString(requestIDKey),
		Details:   map[string]interface{}{"limit": limit},
	})
}

// AuditMiddleware logs every request passing through it once it completes
func AuditMiddleware(auditLogger *AuditLogger, height func() uint64) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		statusCode := c.Writer.Status()
		severity, status := "info", "success"
		switch {
		case statusCode >= 500:
			severity, status = "critical", "failure"
		case statusCode >= 400:
			severity, status = "warning", "failure"
		}

		details := map[string]interface{}{
			"status_code": statusCode,
			"duration_ms": time.Since(start).Milliseconds(),
		}
		if code := c.GetString(errorCodeKey); code != "" {
			details["error_code"] = code
		}
		if operator := c.GetString(operatorKey); operator != "" {
			details["operator"] = operator
		}

		auditLogger.Log(AuditEvent{
			EventType: "tx",
			Severity:  severity,
			IPAddress: c.ClientIP(),
			Action:    c.Request.Method + " " + c.FullPath(),
			Status:    status,
			RequestID: c.GetString(requestIDKey),
			Height:    height(),
			Details:   details,
		})
	}
}
