package token

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dtroode/cardkeeper-server/internal/model"
)

var _ model.IdentityVerifier = (*Introspector)(nil)

// IntrospectionResult mirrors the identity provider's introspection response.
type IntrospectionResult struct {
	Active bool   `json:"active"`
	UserID string `json:"user_id"`
}

// Introspector verifies bearer tokens against a remote introspection endpoint.
type Introspector struct {
	url            string
	resourceSecret string
	client         *http.Client
}

// NewIntrospector creates an introspector that POSTs to url. A nil client uses http.DefaultClient.
func NewIntrospector(url, resourceSecret string, client *http.Client) *Introspector {
	if client == nil {
		client = http.DefaultClient
	}
	return &Introspector{
		url:            url,
		resourceSecret: resourceSecret,
		client:         client,
	}
}

// Verify asks the identity provider whether the token is active and returns its user id.
func (i *Introspector) Verify(ctx context.Context, token string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, i.url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build introspect request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if i.resourceSecret != "" {
		req.Header.Set("X-Resource-Secret", i.resourceSecret)
	}

	resp, err := i.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to introspect token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("introspect returned %s", resp.Status)
	}

	var result IntrospectionResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode introspect response: %w", err)
	}
	if !result.Active {
		return "", fmt.Errorf("token is not active")
	}
	if result.UserID == "" {
		return "", fmt.Errorf("introspect response has no user id")
	}

	return result.UserID, nil
}
