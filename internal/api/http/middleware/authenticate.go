package middleware

import (
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/dtroode/cardkeeper-server/internal/logger"
	"github.com/dtroode/cardkeeper-server/internal/model"
)

// Authenticate validates bearer tokens and injects the user id into the request context.
type Authenticate struct {
	api            huma.API
	verifier       model.IdentityVerifier
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
// api is used to render rejections in the API's error format.
func NewAuthenticate(api huma.API, verifier model.IdentityVerifier, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{api: api, verifier: verifier, contextManager: contextManager, logger: logger}
}

// Handle rejects requests without a valid bearer token with 403.
func (m *Authenticate) Handle(ctx huma.Context, next func(huma.Context)) {
	token, ok := bearerToken(ctx.Header("Authorization"))
	if !ok {
		_ = huma.WriteErr(m.api, ctx, http.StatusForbidden, "missing authorization token")
		return
	}

	userID, err := m.verifier.Verify(ctx.Context(), token)
	if err != nil || userID == "" {
		m.logger.Debug("Authenticate middleware: token rejected",
			"path", ctx.URL().Path,
			"error", err)
		_ = huma.WriteErr(m.api, ctx, http.StatusForbidden, "invalid authorization token")
		return
	}

	next(huma.WithContext(ctx, m.contextManager.SetUserIDToContext(ctx.Context(), userID)))
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	return token, token != ""
}
