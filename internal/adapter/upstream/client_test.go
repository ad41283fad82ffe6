package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jasamarga/toll-ops-gateway/internal/domain/models"
	"github.com/jasamarga/toll-ops-gateway/internal/domain/types"
	"github.com/jasamarga/toll-ops-gateway/internal/store"
	"github.com/jasamarga/toll-ops-gateway/pkg/logger"
)

var testLog = logger.InitLogger("upstream-test", logger.LevelError)

func newSession(t *testing.T, token string) *store.Store {
	t.Helper()

	persistent := store.NewDeviceMedium(store.NewMemoryDeviceStore(), "device-1")
	if token != "" {
		require.NoError(t, persistent.SetToken(context.Background(), token))
	}

	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	w := httptest.NewRecorder()
	cookie := store.NewCookieMedium(w, r, store.DefaultCookieMaxAge)

	return store.New(persistent, cookie, testLog)
}

func newClient(baseURL string) *Client {
	return New(baseURL, "upstream-test", DefaultTimeout, testLog)
}

func TestDo_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"status":true}`))
	}))
	defer srv.Close()

	sess := newSession(t, "tok-abc")
	err := newClient(srv.URL).do(context.Background(), sess, http.MethodGet, "/auth/validate", nil, nil, nil)

	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-abc", gotAuth)
}

func TestDo_NoTokenAbortsBeforeNetwork(t *testing.T) {
	hit := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit = true
	}))
	defer srv.Close()

	sess := newSession(t, "")
	err := newClient(srv.URL).do(context.Background(), sess, http.MethodGet, "/lalins", nil, nil, nil)

	assert.ErrorIs(t, err, types.ErrNoAuthToken)
	assert.False(t, hit, "request must not reach the backend without a token")
}

func TestDo_UnauthorizedClearsStore(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	ctx := context.Background()
	sess := newSession(t, "tok-expired")

	err := newClient(srv.URL).do(ctx, sess, http.MethodGet, "/lalins", nil, nil, nil)
	assert.ErrorIs(t, err, types.ErrSessionExpired)

	_, ok := sess.Token(ctx)
	assert.False(t, ok, "both mediums must be cleared after a 401")
}

func TestLogin_BypassesAuthHooks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{
			"status":  false,
			"message": "Username atau password salah",
			"code":    "INVALID_CREDENTIALS",
		})
	}))
	defer srv.Close()

	_, err := newClient(srv.URL).Login(context.Background(), "admin", "wrong")

	// a login 401 is a credential failure, never an expired session
	require.NotErrorIs(t, err, types.ErrSessionExpired)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Username atau password salah", apiErr.Message)
	assert.Equal(t, "INVALID_CREDENTIALS", apiErr.Code)
}

func TestLogin_DecodesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)

		var body LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Super Admin", body.Username)

		json.NewEncoder(w).Encode(map[string]any{
			"status":       true,
			"message":      "Login berhasil",
			"is_logged_in": 1,
			"token":        "jwt-token-here",
		})
	}))
	defer srv.Close()

	resp, err := newClient(srv.URL).Login(context.Background(), "Super Admin", "password12345")

	require.NoError(t, err)
	assert.True(t, resp.Status)
	assert.Equal(t, 1, resp.IsLoggedIn)
	assert.Equal(t, "jwt-token-here", resp.Token)
}

func TestListLalins_DecodesPagedEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/lalins", r.URL.Path)
		assert.Equal(t, "2023-11-01", r.URL.Query().Get("tanggal"))

		json.NewEncoder(w).Encode(map[string]any{
			"status": true,
			"data": map[string]any{
				"total_pages":  3,
				"current_page": 1,
				"count":        25,
				"rows": map[string]any{
					"count": 2,
					"rows": []map[string]any{
						{"id": 1, "IdGerbang": 10, "Tunai": 5, "eBca": 2},
						{"id": 2, "IdGerbang": 11, "eFlo": 7},
					},
				},
			},
		})
	}))
	defer srv.Close()

	sess := newSession(t, "tok")
	rows, page, err := newClient(srv.URL).ListLalins(context.Background(), sess, models.LalinFilter{Tanggal: "2023-11-01"})

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(5), rows[0].Tunai)
	assert.Equal(t, int64(7), rows[1].EFlo)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 25, page.Count)
}

func TestDeleteGerbang_SendsCompositeKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/gerbangs", r.URL.Path)

		var key models.GatewayKey
		require.NoError(t, json.NewDecoder(r.Body).Decode(&key))
		assert.Equal(t, 4, key.ID)
		assert.Equal(t, 2, key.IdCabang)

		w.Write([]byte(`{"status":true}`))
	}))
	defer srv.Close()

	sess := newSession(t, "tok")
	err := newClient(srv.URL).DeleteGerbang(context.Background(), sess, models.GatewayKey{ID: 4, IdCabang: 2})
	require.NoError(t, err)
}

func TestDecodeAPIError_FallbackMessage(t *testing.T) {
	apiErr := decodeAPIError(http.StatusInternalServerError, []byte("not json"))
	assert.Equal(t, FallbackErrorMessage, apiErr.Message)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
}
