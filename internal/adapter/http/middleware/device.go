package middleware

import (
	"net/http"
	"time"

	"github.com/jasamarga/toll-ops-gateway/internal/domain/models"
	"github.com/jasamarga/toll-ops-gateway/internal/store"
	wrap "github.com/jasamarga/toll-ops-gateway/pkg/logger/wrapper"
	"github.com/jasamarga/toll-ops-gateway/pkg/uuid"
)

// deviceCookieMaxAge outlives the session cookies so the persistent
// store keeps working across logins.
const deviceCookieMaxAge = 365 * 24 * time.Hour

// DeviceID pins every browser to a stable device cookie. The value keys
// the server-side credential store; a request without the cookie gets a
// fresh one on the way out.
func (m *Middleware) DeviceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		deviceID := ""
		if c, err := r.Cookie(store.DeviceCookie); err == nil && c.Value != "" {
			deviceID = c.Value
		}

		if deviceID == "" {
			deviceID = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     store.DeviceCookie,
				Value:    deviceID,
				Path:     "/",
				MaxAge:   int(deviceCookieMaxAge.Seconds()),
				SameSite: http.SameSiteLaxMode,
				HttpOnly: true,
			})
		}

		ctx := models.WithDeviceID(r.Context(), deviceID)
		ctx = wrap.WithDeviceID(ctx, deviceID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
