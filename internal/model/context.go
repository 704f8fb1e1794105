package model

import "context"

// ContextManager stores and retrieves the authenticated principal id.
type ContextManager interface {
	SetUserIDToContext(ctx context.Context, userID string) context.Context
	GetUserIDFromContext(ctx context.Context) (string, bool)
}
