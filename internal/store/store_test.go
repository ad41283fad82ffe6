package store

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jasamarga/toll-ops-gateway/internal/domain/models"
	"github.com/jasamarga/toll-ops-gateway/pkg/logger"
)

var testLog = logger.InitLogger("store-test", logger.LevelError)

func newCookieMedium(t *testing.T, cookies ...*http.Cookie) (*CookieMedium, *httptest.ResponseRecorder) {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	w := httptest.NewRecorder()
	return NewCookieMedium(w, r, DefaultCookieMaxAge), w
}

func deviceMedium() *DeviceMedium {
	return NewDeviceMedium(NewMemoryDeviceStore(), "device-1")
}

func TestSynchronize_MirrorsPersistentToCookie(t *testing.T) {
	ctx := context.Background()

	persistent := deviceMedium()
	require.NoError(t, persistent.SetToken(ctx, "tok-123"))

	cookie, rec := newCookieMedium(t)
	s := New(persistent, cookie, testLog)

	res := s.Synchronize(ctx, "/dashboard")
	assert.False(t, res.RedirectToLogin)

	got, ok := cookie.Token(ctx)
	require.True(t, ok)
	assert.Equal(t, "tok-123", got)

	// the response must actually carry the Set-Cookie header
	found := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == TokenCookie && c.Value == "tok-123" {
			found = true
			assert.Equal(t, "/", c.Path)
			assert.Equal(t, int(DefaultCookieMaxAge.Seconds()), c.MaxAge)
		}
	}
	assert.True(t, found, "token cookie not written")
}

func TestSynchronize_MirrorsCookieToPersistent(t *testing.T) {
	ctx := context.Background()

	persistent := deviceMedium()
	cookie, _ := newCookieMedium(t, &http.Cookie{Name: TokenCookie, Value: "tok-456"})
	s := New(persistent, cookie, testLog)

	res := s.Synchronize(ctx, "/dashboard")
	assert.False(t, res.RedirectToLogin)

	got, ok := persistent.Token(ctx)
	require.True(t, ok)
	assert.Equal(t, "tok-456", got)
}

func TestSynchronize_NoTokenForcesLogout(t *testing.T) {
	ctx := context.Background()

	persistent := deviceMedium()
	require.NoError(t, persistent.SetUser(ctx, &models.UserProfile{ID: 1, Username: "ops"}))

	cookie, rec := newCookieMedium(t)
	s := New(persistent, cookie, testLog)

	res := s.Synchronize(ctx, "/dashboard")
	assert.True(t, res.RedirectToLogin)

	// both mediums end up empty
	_, ok := persistent.User(ctx)
	assert.False(t, ok)

	expired := 0
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge < 0 {
			expired++
		}
	}
	assert.GreaterOrEqual(t, expired, 2, "auth cookies should be expired")
}

func TestSynchronize_LoginPageSkipsRedirect(t *testing.T) {
	ctx := context.Background()

	s := New(deviceMedium(), mustCookieMedium(t), testLog)

	res := s.Synchronize(ctx, LoginPath)
	assert.False(t, res.RedirectToLogin)
}

func mustCookieMedium(t *testing.T) *CookieMedium {
	m, _ := newCookieMedium(t)
	return m
}

func TestSynchronize_Idempotent(t *testing.T) {
	ctx := context.Background()

	persistent := deviceMedium()
	require.NoError(t, persistent.SetToken(ctx, "tok-789"))
	cookie, _ := newCookieMedium(t, &http.Cookie{Name: TokenCookie, Value: "tok-789"})
	s := New(persistent, cookie, testLog)

	for range 3 {
		res := s.Synchronize(ctx, "/trafficlight")
		assert.False(t, res.RedirectToLogin)
	}

	got, ok := s.Token(ctx)
	require.True(t, ok)
	assert.Equal(t, "tok-789", got)
}

func TestCookieMedium_LegacyTokenName(t *testing.T) {
	ctx := context.Background()

	cookie, _ := newCookieMedium(t, &http.Cookie{Name: LegacyTokenCookie, Value: "old-tok"})
	got, ok := cookie.Token(ctx)
	require.True(t, ok)
	assert.Equal(t, "old-tok", got)
}

func TestCookieMedium_MalformedUserReadsAsAbsent(t *testing.T) {
	ctx := context.Background()

	cookie, _ := newCookieMedium(t, &http.Cookie{Name: UserCookie, Value: "%7Bnot-json"})
	_, ok := cookie.User(ctx)
	assert.False(t, ok)
}

func TestCookieMedium_UserRoundTrip(t *testing.T) {
	ctx := context.Background()

	cookie, rec := newCookieMedium(t)
	want := &models.UserProfile{ID: 1, Username: "operator", Role: "Super Admin"}
	require.NoError(t, cookie.SetUser(ctx, want))

	// same-request overlay read
	got, ok := cookie.User(ctx)
	require.True(t, ok)
	assert.Equal(t, want, got)

	// next-request read through the escaped cookie value
	var raw string
	for _, c := range rec.Result().Cookies() {
		if c.Name == UserCookie {
			raw = c.Value
		}
	}
	require.NotEmpty(t, raw)

	r2 := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	r2.AddCookie(&http.Cookie{Name: UserCookie, Value: raw})
	next := NewCookieMedium(httptest.NewRecorder(), r2, DefaultCookieMaxAge)
	got2, ok := next.User(ctx)
	require.True(t, ok)
	assert.Equal(t, want, got2)

	decoded, err := url.QueryUnescape(raw)
	require.NoError(t, err)
	assert.Contains(t, decoded, `"username":"operator"`)
}

func TestStore_TokenPrefersPersistent(t *testing.T) {
	ctx := context.Background()

	persistent := deviceMedium()
	require.NoError(t, persistent.SetToken(ctx, "primary"))
	cookie, _ := newCookieMedium(t, &http.Cookie{Name: TokenCookie, Value: "secondary"})

	s := New(persistent, cookie, testLog)
	got, ok := s.Token(ctx)
	require.True(t, ok)
	assert.Equal(t, "primary", got)
}

func TestMemoryDeviceStore_ClearIsIdempotent(t *testing.T) {
	ctx := context.Background()

	ds := NewMemoryDeviceStore()
	require.NoError(t, ds.SetToken(ctx, "d1", "tok"))
	require.NoError(t, ds.Clear(ctx, "d1"))
	require.NoError(t, ds.Clear(ctx, "d1"))

	c, err := ds.Get(ctx, "d1")
	require.NoError(t, err)
	assert.Nil(t, c)
}
