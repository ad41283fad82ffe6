// Package session is the auth state machine for one device: hydrate
// from the token store, log in against the backend, log out. Handlers
// only ever see a Session snapshot and a redirect target.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jasamarga/toll-ops-gateway/internal/adapter/upstream"
	"github.com/jasamarga/toll-ops-gateway/internal/domain/models"
	"github.com/jasamarga/toll-ops-gateway/internal/domain/types"
	"github.com/jasamarga/toll-ops-gateway/internal/store"
	"github.com/jasamarga/toll-ops-gateway/pkg/logger"
	wrap "github.com/jasamarga/toll-ops-gateway/pkg/logger/wrapper"
	"github.com/jasamarga/toll-ops-gateway/pkg/metrics"
)

const (
	DashboardPath = "/dashboard"

	// MsgInvalidCredentials and friends are shown to operators as-is
	MsgInvalidCredentials = "Username atau password salah"
	MsgEndpointNotFound   = "Endpoint login tidak ditemukan"
	MsgLoginFailed        = "Login gagal"
)

// LoginError is a backend rejection that came with a 2xx status:
// falsy status flag or a missing token.
type LoginError struct {
	Message string
}

func (e *LoginError) Error() string {
	return "login failed: " + e.Message
}

type BackendAuth interface {
	Login(ctx context.Context, username, password string) (*upstream.LoginResponse, error)
	Logout(ctx context.Context, sess *store.Store) error
}

// Session is a point-in-time view of one device's auth state
type Session struct {
	State types.AuthState     `json:"state"`
	User  *models.UserProfile `json:"user,omitempty"`
}

func (s Session) Authenticated() bool {
	return s.State == types.StateAuthenticated
}

// LoginOutcome tells the caller where to send the browser next
type LoginOutcome struct {
	Session  Session
	Redirect string
}

type Controller struct {
	api         BackendAuth
	serviceName string
	log         logger.Logger
}

func NewController(api BackendAuth, serviceName string, log logger.Logger) *Controller {
	return &Controller{api: api, serviceName: serviceName, log: log}
}

// Hydrate resolves the device's state from the token store. A token
// with no readable user profile still counts as authenticated; the
// profile is rebuilt from the token claims.
func (c *Controller) Hydrate(ctx context.Context, sess *store.Store) Session {
	token, ok := sess.Token(ctx)
	if !ok {
		return Session{State: types.StateUnauthenticated}
	}

	user, ok := sess.User(ctx)
	if !ok {
		user = profileFromToken(token, "")
	}
	return Session{State: types.StateAuthenticated, User: user}
}

// Login authenticates against the backend and persists the session to
// both mediums. Logging in while already authenticated is a no-op that
// just points the browser at the dashboard.
func (c *Controller) Login(ctx context.Context, sess *store.Store, username, password string) (*LoginOutcome, error) {
	ctx = wrap.WithAction(ctx, "login")

	if current := c.Hydrate(ctx, sess); current.Authenticated() {
		c.log.Info(ctx, "login skipped, session already active")
		return &LoginOutcome{Session: current, Redirect: DashboardPath}, nil
	}

	resp, err := c.api.Login(ctx, username, password)
	if err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("backend login: %w", err))
	}

	// a truthy status with an empty token is still a failure
	if !resp.Status || resp.Token == "" {
		msg := resp.Message
		if msg == "" {
			msg = MsgLoginFailed
		}
		return nil, wrap.Error(ctx, &LoginError{Message: msg})
	}

	name := resp.Username
	if name == "" {
		name = username
	}
	user := profileFromToken(resp.Token, name)

	sess.SetToken(ctx, resp.Token)
	sess.SetUser(ctx, user)

	ctx = wrap.WithUserID(ctx, user.Username)
	c.log.Info(ctx, "login successful")
	metrics.SessionSyncTotal.WithLabelValues(c.serviceName, "login").Inc()

	return &LoginOutcome{
		Session:  Session{State: types.StateAuthenticated, User: user},
		Redirect: DashboardPath,
	}, nil
}

// Logout clears the device's session everywhere and sends the browser
// to the login page. The backend call is best effort; local state is
// dropped no matter what it says.
func (c *Controller) Logout(ctx context.Context, sess *store.Store) string {
	ctx = wrap.WithAction(ctx, "logout")

	if err := c.api.Logout(ctx, sess); err != nil {
		c.log.Warn(ctx, "backend logout failed, clearing local session anyway", "error", err.Error())
	}

	sess.ClearAll(ctx)
	c.log.Info(ctx, "logout complete")

	return store.LoginPath
}

// ErrorMessage maps a login failure to the message the operator sees.
// Priority: 401, 404, the server's structured message, the transport
// error text, then the generic fallback.
func ErrorMessage(err error) string {
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Status == http.StatusUnauthorized:
			return MsgInvalidCredentials
		case apiErr.Status == http.StatusNotFound:
			return MsgEndpointNotFound
		case !apiErr.IsTransport() && apiErr.Message != upstream.FallbackErrorMessage && apiErr.Message != "":
			return apiErr.Message
		case apiErr.IsTransport() && apiErr.Message != "":
			return apiErr.Message
		}
		return upstream.FallbackErrorMessage
	}

	var loginErr *LoginError
	if errors.As(err, &loginErr) {
		return loginErr.Message
	}

	return upstream.FallbackErrorMessage
}
