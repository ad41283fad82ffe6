package handler

import (
	"net/http"
	"time"

	"github.com/jasamarga/toll-ops-gateway/internal/domain/models"
	"github.com/jasamarga/toll-ops-gateway/internal/store"
	"github.com/jasamarga/toll-ops-gateway/pkg/logger"
)

// Sessions builds the per-request token store: the device-keyed
// persistent medium plus the request's cookie medium. Every handler
// that talks to the backend goes through it.
type Sessions struct {
	devices      store.DeviceStore
	cookieMaxAge time.Duration
	log          logger.Logger
}

func NewSessions(devices store.DeviceStore, cookieMaxAge time.Duration, log logger.Logger) *Sessions {
	if cookieMaxAge <= 0 {
		cookieMaxAge = store.DefaultCookieMaxAge
	}
	return &Sessions{devices: devices, cookieMaxAge: cookieMaxAge, log: log}
}

// FromRequest binds both mediums to this request/response pair. The
// device ID comes from the DeviceID middleware; a request that skipped
// it degrades to a cookie-only session keyed by an empty device.
func (s *Sessions) FromRequest(w http.ResponseWriter, r *http.Request) *store.Store {
	deviceID := models.DeviceIDFromContext(r.Context())
	persistent := store.NewDeviceMedium(s.devices, deviceID)
	cookie := store.NewCookieMedium(w, r, s.cookieMaxAge)
	return store.New(persistent, cookie, s.log)
}
