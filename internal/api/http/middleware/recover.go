package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/danielgtaylor/huma/v2"

	"github.com/dtroode/cardkeeper-server/internal/logger"
)

// Recover turns handler panics into 500 responses.
type Recover struct {
	api    huma.API
	logger *logger.Logger
}

// NewRecover creates a new Recover middleware.
func NewRecover(api huma.API, logger *logger.Logger) *Recover {
	return &Recover{api: api, logger: logger}
}

// Handle must run before any other middleware.
func (m *Recover) Handle(ctx huma.Context, next func(huma.Context)) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("HTTP handler panicked",
				"path", ctx.URL().Path,
				"panic", r,
				"stack", string(debug.Stack()))
			_ = huma.WriteErr(m.api, ctx, http.StatusInternalServerError, "internal server error")
		}
	}()

	next(ctx)
}
