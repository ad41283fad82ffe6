package ws

import (
	"context"
	"errors"
	"sync"

	"github.com/jasamarga/toll-ops-gateway/pkg/logger"
	wrap "github.com/jasamarga/toll-ops-gateway/pkg/logger/wrapper"
)

var (
	ErrEmptyConn      = errors.New("connection is empty")
	ErrConnIsNotFound = errors.New("connection not found")
)

// ConnectionHub keeps track of every active dashboard WebSocket connection,
// keyed by the device ID of the browser that opened it.
type ConnectionHub struct {
	clients map[string]*Conn
	l       logger.Logger
	mu      sync.Mutex
	wg      sync.WaitGroup
}

func NewConnHub(l logger.Logger) *ConnectionHub {
	return &ConnectionHub{
		clients: make(map[string]*Conn),
		l:       l,
	}
}

// Add registers a new connection. An existing connection for the same
// device is closed and replaced.
func (h *ConnectionHub) Add(newConn *Conn) error {
	if newConn == nil {
		return ErrEmptyConn
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	ctx := wrap.WithAction(context.Background(), "add_ws_connection")

	if existing, ok := h.clients[newConn.deviceID]; ok {
		h.l.Warn(ctx,
			"replacing existing connection",
			"device_id", existing.deviceID,
		)
		if err := existing.Close(); err != nil {
			h.l.Warn(ctx,
				"failed to close existing conn",
				"device_id", existing.deviceID,
				"err", err.Error(),
			)
		}
	}

	h.clients[newConn.deviceID] = newConn
	h.wg.Add(1)

	return nil
}

// Delete removes and closes the connection for the given device
func (h *ConnectionHub) Delete(deviceID string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	ctx := wrap.WithAction(context.Background(), "ws_connection_delete")

	conn, ok := h.clients[deviceID]
	if !ok {
		h.l.Warn(ctx,
			"delete called for unknown device",
			"device_id", deviceID,
		)
		return ErrConnIsNotFound
	}

	if err := conn.Close(); err != nil {
		h.l.Warn(ctx,
			"failed to close conn",
			"device_id", conn.deviceID,
			"err", err.Error(),
		)
	}

	delete(h.clients, deviceID)
	h.wg.Done()

	return nil
}

// SendTo delivers a message to one client by device ID.
// Returns ErrConnIsNotFound when the device has no open connection.
func (h *ConnectionHub) SendTo(deviceID string, msg map[string]any) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conn, ok := h.clients[deviceID]; ok {
		return conn.Send(msg)
	}
	return ErrConnIsNotFound
}

// Broadcast delivers a message to every connected client. Dead connections
// are dropped from the hub instead of failing the broadcast.
func (h *ConnectionHub) Broadcast(msg map[string]any) {
	h.mu.Lock()
	clients := make([]*Conn, 0, len(h.clients))
	for _, conn := range h.clients {
		clients = append(clients, conn)
	}
	h.mu.Unlock()

	ctx := wrap.WithAction(context.Background(), "ws_broadcast")

	for _, conn := range clients {
		if err := conn.Send(msg); err != nil {
			h.l.Warn(ctx,
				"dropping dead connection",
				"device_id", conn.deviceID,
				"err", err.Error(),
			)
			_ = h.Delete(conn.deviceID)
		}
	}
}

// Count returns the number of open connections
func (h *ConnectionHub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close closes every websocket connection
func (h *ConnectionHub) Close() {
	ctx := wrap.WithAction(context.Background(), "hub_close")

	h.mu.Lock()
	clients := make([]*Conn, 0, len(h.clients))
	for _, conn := range h.clients {
		clients = append(clients, conn)
	}
	h.mu.Unlock()

	for _, conn := range clients {
		_ = h.Delete(conn.deviceID)
	}

	h.wg.Wait()

	h.l.Info(ctx, "all websocket connections closed gracefully")
}
