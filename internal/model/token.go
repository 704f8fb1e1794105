package model

import "context"

// IdentityVerifier validates a bearer credential and returns the principal id it was issued to.
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (string, error)
}
