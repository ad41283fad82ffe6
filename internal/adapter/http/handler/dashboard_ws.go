package handler

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/jasamarga/toll-ops-gateway/internal/domain/models"
	"github.com/jasamarga/toll-ops-gateway/pkg/logger"
	wrap "github.com/jasamarga/toll-ops-gateway/pkg/logger/wrapper"
	"github.com/jasamarga/toll-ops-gateway/pkg/metrics"
	ws "github.com/jasamarga/toll-ops-gateway/pkg/wsHub"
)

// DashboardWS keeps one websocket per device so open dashboards can be
// told to refetch when new lalin data lands.
type DashboardWS struct {
	hub         *ws.ConnectionHub
	serviceName string
	upgrader    websocket.Upgrader
	log         logger.Logger
}

func NewDashboardWS(hub *ws.ConnectionHub, serviceName string, log logger.Logger) *DashboardWS {
	return &DashboardWS{
		hub:         hub,
		serviceName: serviceName,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// the dashboard pages are same-origin; no cross-site clients
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		log: log,
	}
}

// Serve upgrades the connection and parks it in the hub until the
// client goes away. Incoming frames are ignored; the stream is
// server-to-client only.
func (h *DashboardWS) Serve(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "dashboard_ws")

	deviceID := models.DeviceIDFromContext(ctx)
	if deviceID == "" {
		errorResponse(w, http.StatusBadRequest, "missing device cookie")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error(ctx, "websocket upgrade failed", err)
		return
	}

	wsConn := ws.NewConn(ctx, deviceID, conn)
	if err := h.hub.Add(wsConn); err != nil {
		h.log.Error(ctx, "failed to register websocket connection", err)
		wsConn.Close()
		return
	}
	metrics.WebSocketConnectionsGauge.WithLabelValues(h.serviceName).Inc()
	h.log.Info(ctx, "dashboard connected", "connections", h.hub.Count())

	defer func() {
		h.hub.Delete(deviceID)
		metrics.WebSocketConnectionsGauge.WithLabelValues(h.serviceName).Dec()
		h.log.Info(ctx, "dashboard disconnected", "connections", h.hub.Count())
	}()

	// block until the peer closes; frames from the client are dropped
	_ = wsConn.Listen(func(msg any) error { return nil })
}
