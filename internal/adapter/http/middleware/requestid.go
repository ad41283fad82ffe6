package middleware

import (
	"net/http"

	wrap "github.com/jasamarga/toll-ops-gateway/pkg/logger/wrapper"
	"github.com/jasamarga/toll-ops-gateway/pkg/uuid"
)

const requestIDHeader = "X-Request-Id"

// RequestID takes the caller's request ID or mints one, echoes it on
// the response and threads it through the log context.
func (m *Middleware) RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		w.Header().Set(requestIDHeader, requestID)

		ctx := wrap.WithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
