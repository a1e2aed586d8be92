// Package auth integrates the external identity provider. The billing core
// never reads the authenticated identity; it is consumed only at the
// plan-selection edge.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Identity is the provider's view of the current user.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// ErrTokenRejected indicates the provider did not accept the bearer token.
var ErrTokenRejected = errors.New("auth: token rejected")

// Verifier resolves a bearer token to an identity.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// ProviderClient verifies tokens against the identity provider's userinfo
// endpoint.
type ProviderClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewProviderClient constructs a provider-backed verifier.
func NewProviderClient(baseURL string) *ProviderClient {
	return &ProviderClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Verify calls the provider's userinfo endpoint with the bearer token.
func (c *ProviderClient) Verify(ctx context.Context, token string) (*Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/userinfo", c.baseURL), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("auth: userinfo: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, ErrTokenRejected
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("auth: provider returned status %d", resp.StatusCode)
	}

	var id Identity
	if err := json.NewDecoder(resp.Body).Decode(&id); err != nil {
		return nil, fmt.Errorf("auth: decode userinfo: %w", err)
	}
	return &id, nil
}
