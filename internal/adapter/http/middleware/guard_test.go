package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jasamarga/toll-ops-gateway/internal/store"
	"github.com/jasamarga/toll-ops-gateway/pkg/logger"
)

var testLog = logger.InitLogger("middleware-test", logger.LevelError)

func runGuard(t *testing.T, path string, token string) (*httptest.ResponseRecorder, *http.Request) {
	t.Helper()

	var forwarded *http.Request
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		forwarded = r
		w.WriteHeader(http.StatusOK)
	})

	m := NewMiddleware("middleware-test", testLog)
	r := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		r.AddCookie(&http.Cookie{Name: store.TokenCookie, Value: token})
	}
	w := httptest.NewRecorder()

	m.Guard(next).ServeHTTP(w, r)
	return w, forwarded
}

func TestGuard_ProtectedWithoutToken(t *testing.T) {
	w, forwarded := runGuard(t, "/dashboard", "")

	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, "/login?callbackUrl=%2Fdashboard", w.Header().Get("Location"))
	assert.Nil(t, forwarded)
}

func TestGuard_ProtectedSubpathWithoutToken(t *testing.T) {
	w, _ := runGuard(t, "/master-gerbang/edit", "")

	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, "/login?callbackUrl=%2Fmaster-gerbang%2Fedit", w.Header().Get("Location"))
}

func TestGuard_LoginWithTokenFollowsCallback(t *testing.T) {
	w, _ := runGuard(t, "/login?callbackUrl=%2Ftrafficlight", "tok")

	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, "/trafficlight", w.Header().Get("Location"))
}

func TestGuard_LoginWithTokenDefaultsToDashboard(t *testing.T) {
	w, _ := runGuard(t, "/login", "tok")

	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
}

func TestGuard_RootRedirects(t *testing.T) {
	w, _ := runGuard(t, "/", "")
	assert.Equal(t, "/login", w.Header().Get("Location"))

	w, _ = runGuard(t, "/", "tok")
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
}

func TestGuard_ForwardInjectsTokenHeader(t *testing.T) {
	w, forwarded := runGuard(t, "/dashboard", "tok-xyz")

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, forwarded)
	assert.Equal(t, "tok-xyz", forwarded.Header.Get(AuthTokenHeader))
}

func TestGuard_UnprotectedWithoutTokenForwards(t *testing.T) {
	w, forwarded := runGuard(t, "/about", "")

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, forwarded)
	assert.Empty(t, forwarded.Header.Get(AuthTokenHeader))
}

func TestGuard_SkipsInfrastructurePaths(t *testing.T) {
	for _, path := range []string{"/api/auth/login", "/metrics", "/health", "/swagger/index.html", "/ws/dashboard", "/favicon.ico"} {
		w, forwarded := runGuard(t, path, "")
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.NotNil(t, forwarded, path)
	}
}

func TestGuard_AcceptsLegacyCookie(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	m := NewMiddleware("middleware-test", testLog)

	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	r.AddCookie(&http.Cookie{Name: store.LegacyTokenCookie, Value: "legacy-tok"})
	w := httptest.NewRecorder()

	m.Guard(next).ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeviceID_AssignsCookieOnce(t *testing.T) {
	m := NewMiddleware("middleware-test", testLog)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	w := httptest.NewRecorder()
	m.DeviceID(next).ServeHTTP(w, r)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, store.DeviceCookie, cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)

	// a request that already carries the cookie keeps its ID
	r2 := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	r2.AddCookie(&http.Cookie{Name: store.DeviceCookie, Value: cookies[0].Value})
	w2 := httptest.NewRecorder()
	m.DeviceID(next).ServeHTTP(w2, r2)
	assert.Empty(t, w2.Result().Cookies())
}
