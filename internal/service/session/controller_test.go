package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jasamarga/toll-ops-gateway/internal/adapter/upstream"
	"github.com/jasamarga/toll-ops-gateway/internal/domain/models"
	"github.com/jasamarga/toll-ops-gateway/internal/domain/types"
	"github.com/jasamarga/toll-ops-gateway/internal/store"
	"github.com/jasamarga/toll-ops-gateway/pkg/logger"
)

var testLog = logger.InitLogger("session-test", logger.LevelError)

type stubBackend struct {
	resp       *upstream.LoginResponse
	loginErr   error
	logoutErr  error
	loginCalls int
}

func (s *stubBackend) Login(context.Context, string, string) (*upstream.LoginResponse, error) {
	s.loginCalls++
	return s.resp, s.loginErr
}

func (s *stubBackend) Logout(context.Context, *store.Store) error {
	return s.logoutErr
}

func emptySession(t *testing.T) *store.Store {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "/login", nil)
	w := httptest.NewRecorder()
	cookie := store.NewCookieMedium(w, r, store.DefaultCookieMaxAge)
	persistent := store.NewDeviceMedium(store.NewMemoryDeviceStore(), "device-1")
	return store.New(persistent, cookie, testLog)
}

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestHydrate_NoToken(t *testing.T) {
	c := NewController(&stubBackend{}, "session-test", testLog)

	got := c.Hydrate(context.Background(), emptySession(t))

	assert.Equal(t, types.StateUnauthenticated, got.State)
	assert.Nil(t, got.User)
}

func TestHydrate_TokenWithoutProfile(t *testing.T) {
	ctx := context.Background()
	sess := emptySession(t)
	sess.SetToken(ctx, signedToken(t, jwt.MapClaims{"username": "operator", "role": "Admin"}))

	c := NewController(&stubBackend{}, "session-test", testLog)
	got := c.Hydrate(ctx, sess)

	require.True(t, got.Authenticated())
	require.NotNil(t, got.User)
	assert.Equal(t, "operator", got.User.Username)
	assert.Equal(t, "Admin", got.User.Role)
}

func TestLogin_Success(t *testing.T) {
	ctx := context.Background()
	token := signedToken(t, jwt.MapClaims{"id": float64(7), "username": "operator", "role": "Admin"})
	backend := &stubBackend{resp: &upstream.LoginResponse{Status: true, Token: token}}
	sess := emptySession(t)

	c := NewController(backend, "session-test", testLog)
	out, err := c.Login(ctx, sess, "operator", "secret")

	require.NoError(t, err)
	assert.Equal(t, DashboardPath, out.Redirect)
	require.True(t, out.Session.Authenticated())
	assert.Equal(t, 7, out.Session.User.ID)
	assert.Equal(t, "Admin", out.Session.User.Role)

	// both mediums now hold the session
	gotToken, ok := sess.Token(ctx)
	require.True(t, ok)
	assert.Equal(t, token, gotToken)
	user, ok := sess.User(ctx)
	require.True(t, ok)
	assert.Equal(t, "operator", user.Username)
}

func TestLogin_OpaqueTokenFallsBackToLegacyProfile(t *testing.T) {
	backend := &stubBackend{resp: &upstream.LoginResponse{Status: true, Token: "not-a-jwt"}}

	c := NewController(backend, "session-test", testLog)
	out, err := c.Login(context.Background(), emptySession(t), "operator", "secret")

	require.NoError(t, err)
	assert.Equal(t, 1, out.Session.User.ID)
	assert.Equal(t, "operator", out.Session.User.Username)
	assert.Equal(t, FallbackRole, out.Session.User.Role)
}

func TestLogin_AlreadyAuthenticatedIsNoOp(t *testing.T) {
	ctx := context.Background()
	sess := emptySession(t)
	sess.SetToken(ctx, "tok")
	sess.SetUser(ctx, &models.UserProfile{ID: 1, Username: "operator", Role: FallbackRole})

	backend := &stubBackend{}
	c := NewController(backend, "session-test", testLog)
	out, err := c.Login(ctx, sess, "operator", "secret")

	require.NoError(t, err)
	assert.Equal(t, DashboardPath, out.Redirect)
	assert.Zero(t, backend.loginCalls, "backend must not be called again")
}

func TestLogin_FalsyStatus(t *testing.T) {
	backend := &stubBackend{resp: &upstream.LoginResponse{Status: false, Message: "Akun terkunci"}}

	c := NewController(backend, "session-test", testLog)
	_, err := c.Login(context.Background(), emptySession(t), "operator", "secret")

	require.Error(t, err)
	assert.Equal(t, "Akun terkunci", ErrorMessage(err))
}

func TestLogin_EmptyTokenIsFailure(t *testing.T) {
	backend := &stubBackend{resp: &upstream.LoginResponse{Status: true, Token: ""}}

	c := NewController(backend, "session-test", testLog)
	_, err := c.Login(context.Background(), emptySession(t), "operator", "secret")

	require.Error(t, err)
	var loginErr *LoginError
	assert.True(t, errors.As(err, &loginErr))
}

func TestLogout_ClearsEvenWhenBackendFails(t *testing.T) {
	ctx := context.Background()
	sess := emptySession(t)
	sess.SetToken(ctx, "tok")

	c := NewController(&stubBackend{logoutErr: errors.New("backend down")}, "session-test", testLog)
	redirect := c.Logout(ctx, sess)

	assert.Equal(t, store.LoginPath, redirect)
	_, ok := sess.Token(ctx)
	assert.False(t, ok)
}

func TestErrorMessage_Priority(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"unauthorized", &upstream.APIError{Status: http.StatusUnauthorized, Message: "whatever"}, MsgInvalidCredentials},
		{"not found", &upstream.APIError{Status: http.StatusNotFound}, MsgEndpointNotFound},
		{"structured message", &upstream.APIError{Status: http.StatusBadRequest, Message: "Permintaan tidak valid"}, "Permintaan tidak valid"},
		{"server fallback", &upstream.APIError{Status: http.StatusInternalServerError}, upstream.FallbackErrorMessage},
		{"unknown error", errors.New("boom"), upstream.FallbackErrorMessage},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ErrorMessage(tc.err))
		})
	}
}
