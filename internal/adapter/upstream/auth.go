package upstream

import (
	"context"
	"net/http"

	"github.com/jasamarga/toll-ops-gateway/internal/store"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the backend's login payload. Status is only trusted
// together with a non-empty token; the backend has been seen returning
// status=true with an empty token on partial failures.
type LoginResponse struct {
	Status     bool   `json:"status"`
	Message    string `json:"message"`
	Code       any    `json:"code"`
	IsLoggedIn int    `json:"is_logged_in"`
	Token      string `json:"token"`
	Username   string `json:"username,omitempty"`
}

// Login is the one unauthenticated call; its 401 means bad credentials,
// so it bypasses the session hooks entirely.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	var resp LoginResponse
	err := c.doPublic(ctx, http.MethodPost, "/auth/login", nil, LoginRequest{
		Username: username,
		Password: password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout tells the backend to invalidate the session. Best effort: the
// local store is cleared by the caller regardless of the outcome.
func (c *Client) Logout(ctx context.Context, sess *store.Store) error {
	return c.do(ctx, sess, http.MethodPost, "/auth/logout", nil, nil, nil)
}

// ValidateToken probes the backend with the current token.
func (c *Client) ValidateToken(ctx context.Context, sess *store.Store) bool {
	err := c.do(ctx, sess, http.MethodGet, "/auth/validate", nil, nil, nil)
	return err == nil
}
