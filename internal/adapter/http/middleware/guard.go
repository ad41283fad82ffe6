package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/jasamarga/toll-ops-gateway/internal/store"
	"github.com/jasamarga/toll-ops-gateway/pkg/metrics"
)

// AuthTokenHeader carries the session token to downstream page handlers
const AuthTokenHeader = "x-auth-token"

// protectedPaths require a session; matching is exact or by subpath
var protectedPaths = []string{
	"/dashboard",
	"/trafficlight",
	"/master-gerbang",
	"/profile",
	"/settings",
}

// skipPrefixes are never guarded: API routes carry their own session
// handling, the rest are infrastructure endpoints and assets.
var skipPrefixes = []string{
	"/api",
	"/metrics",
	"/health",
	"/swagger",
	"/ws",
	"/static",
	"/favicon.ico",
}

// Guard is the page route guard. The rules run in a fixed order; the
// first match wins:
//
//  1. no token, protected path  -> /login?callbackUrl=<path> (no param for /)
//  2. token, /login             -> callbackUrl or /dashboard
//  3. no token, /               -> /login
//  4. token, /                  -> /dashboard
//  5. forward, token copied into the x-auth-token header
func (m *Middleware) Guard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		for _, prefix := range skipPrefixes {
			if path == prefix || strings.HasPrefix(path, prefix+"/") {
				next.ServeHTTP(w, r)
				return
			}
		}

		token := guardToken(r)

		if token == "" && isProtected(path) {
			target := store.LoginPath
			if path != "/" {
				target += "?callbackUrl=" + url.QueryEscape(path)
			}
			metrics.SessionRedirectsTotal.WithLabelValues(m.serviceName, "guard").Inc()
			http.Redirect(w, r, target, http.StatusTemporaryRedirect)
			return
		}

		if token != "" && path == store.LoginPath {
			target := "/dashboard"
			if cb := r.URL.Query().Get("callbackUrl"); cb != "" {
				target = cb
			}
			http.Redirect(w, r, target, http.StatusTemporaryRedirect)
			return
		}

		if path == "/" {
			if token == "" {
				http.Redirect(w, r, store.LoginPath, http.StatusTemporaryRedirect)
			} else {
				http.Redirect(w, r, "/dashboard", http.StatusTemporaryRedirect)
			}
			return
		}

		if token != "" {
			r.Header.Set(AuthTokenHeader, token)
		}
		next.ServeHTTP(w, r)
	})
}

// guardToken reads the session cookie, accepting the legacy name too
func guardToken(r *http.Request) string {
	if c, err := r.Cookie(store.TokenCookie); err == nil && c.Value != "" {
		return c.Value
	}
	if c, err := r.Cookie(store.LegacyTokenCookie); err == nil && c.Value != "" {
		return c.Value
	}
	return ""
}

func isProtected(path string) bool {
	for _, p := range protectedPaths {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}
