package upstream

import (
	"encoding/json"
	"fmt"
)

// FallbackErrorMessage mirrors the backend's language for unexpected failures
const FallbackErrorMessage = "Terjadi kesalahan pada server"

// APIError carries a non-2xx backend response (or a transport failure,
// in which case Status is zero).
type APIError struct {
	Status  int
	Code    string
	Message string

	transport bool
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("upstream error: status %d", e.Status)
}

// IsTransport reports whether the request never produced an HTTP response
func (e *APIError) IsTransport() bool {
	return e.transport
}

func decodeAPIError(status int, raw []byte) *APIError {
	apiErr := &APIError{Status: status, Message: FallbackErrorMessage}

	var body struct {
		Code    any    `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			apiErr.Message = body.Message
		}
		switch v := body.Code.(type) {
		case string:
			apiErr.Code = v
		case float64:
			apiErr.Code = fmt.Sprintf("%.0f", v)
		}
	}

	return apiErr
}
