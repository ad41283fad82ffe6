package models

import "context"

type deviceCtxKey struct{}

// WithDeviceID stores the device cookie value for the request
func WithDeviceID(ctx context.Context, deviceID string) context.Context {
	return context.WithValue(ctx, deviceCtxKey{}, deviceID)
}

// DeviceIDFromContext returns the device ID set by the middleware,
// empty when the request never went through it.
func DeviceIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(deviceCtxKey{}).(string); ok {
		return v
	}
	return ""
}
