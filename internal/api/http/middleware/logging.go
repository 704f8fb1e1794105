package middleware

import (
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/dtroode/cardkeeper-server/internal/logger"
)

// Logging writes an access log entry for each API request.
type Logging struct {
	logger *logger.Logger
}

// NewLogging creates a new Logging middleware.
func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// Handle logs operation, status and duration once the request is served.
func (l *Logging) Handle(ctx huma.Context, next func(huma.Context)) {
	start := time.Now()

	next(ctx)

	status := ctx.Status()
	args := []any{
		"method", ctx.Method(),
		"path", ctx.URL().Path,
		"operation", ctx.Operation().OperationID,
		"status", status,
		"duration_ms", time.Since(start).Milliseconds(),
		"remote_addr", ctx.RemoteAddr(),
		"user_agent", ctx.Header("User-Agent"),
	}

	switch {
	case status >= 500:
		l.logger.Error("HTTP request failed", args...)
	case status >= 400:
		l.logger.Warn("HTTP request rejected", args...)
	default:
		l.logger.Info("HTTP request completed", args...)
	}
}
