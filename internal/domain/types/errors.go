package types

import "errors"

var (
	// ErrNoAuthToken: a request needed a token but neither storage medium held one
	ErrNoAuthToken = errors.New("no authentication token")
	// ErrSessionExpired: the backend answered 401 for an authenticated call
	ErrSessionExpired = errors.New("session expired")

	ErrNotFound       = errors.New("requested item not found")
	ErrGatewayExists  = errors.New("gateway already exists")
	ErrInvalidPayload = errors.New("invalid payload")
)
