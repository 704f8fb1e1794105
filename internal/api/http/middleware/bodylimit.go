package middleware

import (
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

const multipartContentType = "multipart/form-data"

// adapterContext is implemented by the huma adapter contexts before any middleware wraps them.
type adapterContext interface {
	Unwrap() (*http.Request, http.ResponseWriter)
}

// BodyLimit caps multipart request bodies at the operation's MaxBodyBytes.
// huma applies that limit to buffered bodies only, multipart forms are parsed unbounded.
type BodyLimit struct {
	api huma.API
}

// NewBodyLimit creates a new BodyLimit middleware.
func NewBodyLimit(api huma.API) *BodyLimit {
	return &BodyLimit{api: api}
}

// Handle must run before any middleware that replaces the huma context.
func (m *BodyLimit) Handle(ctx huma.Context, next func(huma.Context)) {
	op := ctx.Operation()
	if op == nil || op.MaxBodyBytes <= 0 || op.RequestBody == nil || op.RequestBody.Content[multipartContentType] == nil {
		next(ctx)
		return
	}

	ac, ok := ctx.(adapterContext)
	if !ok {
		next(ctx)
		return
	}

	r, w := ac.Unwrap()
	if r.ContentLength > op.MaxBodyBytes {
		_ = huma.WriteErr(m.api, ctx, http.StatusBadRequest, fmt.Sprintf("request body exceeds %d bytes", op.MaxBodyBytes))
		return
	}
	if r.Body != nil {
		r.Body = http.MaxBytesReader(w, r.Body, op.MaxBodyBytes)
	}

	next(ctx)
}
