// Package upstream is the HTTP client for the toll operator's REST
// backend. Every authenticated call goes through the same two hooks: a
// request hook that synchronizes the token store and attaches the bearer
// token, and a response hook that turns a 401 into a cleared store plus
// ErrSessionExpired. Feature code never inspects status codes itself.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jasamarga/toll-ops-gateway/internal/domain/types"
	"github.com/jasamarga/toll-ops-gateway/internal/store"
	"github.com/jasamarga/toll-ops-gateway/pkg/logger"
	wrap "github.com/jasamarga/toll-ops-gateway/pkg/logger/wrapper"
	"github.com/jasamarga/toll-ops-gateway/pkg/metrics"
)

// DefaultTimeout bounds every backend round trip
const DefaultTimeout = 30 * time.Second

type Client struct {
	baseURL     string
	serviceName string
	http        *http.Client
	log         logger.Logger
}

func New(baseURL, serviceName string, timeout time.Duration, log logger.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		serviceName: serviceName,
		http:        &http.Client{Timeout: timeout},
		log:         log,
	}
}

// do issues an authenticated request. The request hook runs first:
// synchronize the token store, then read the token; a missing token
// aborts the call before it reaches the network.
func (c *Client) do(ctx context.Context, sess *store.Store, method, path string, query url.Values, body, out any) error {
	ctx = wrap.WithAction(ctx, "upstream_request")

	sess.Synchronize(ctx, "")

	token, ok := sess.Token(ctx)
	if !ok {
		metrics.SessionRedirectsTotal.WithLabelValues(c.serviceName, "no_token").Inc()
		return types.ErrNoAuthToken
	}

	return c.roundTrip(ctx, method, path, query, body, out, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	}, func(status int) error {
		// response hook: one place decides what a 401 means
		if status == http.StatusUnauthorized {
			sess.ClearAll(ctx)
			metrics.SessionRedirectsTotal.WithLabelValues(c.serviceName, "unauthorized").Inc()
			return types.ErrSessionExpired
		}
		return nil
	})
}

// doPublic issues a request without the auth hooks. Only the login
// endpoint uses it; its 401 is a credential failure, not an expired
// session, and must reach the caller untouched.
func (c *Client) doPublic(ctx context.Context, method, path string, query url.Values, body, out any) error {
	return c.roundTrip(ctx, method, path, query, body, out, nil, nil)
}

func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, body, out any,
	decorate func(*http.Request), on4xx func(status int) error,
) error {
	endpoint := c.baseURL + path

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if len(query) > 0 {
		req.URL.RawQuery = query.Encode()
	}
	req.Header.Set("Content-Type", "application/json")
	if decorate != nil {
		decorate(req)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.RecordUpstreamRequest(c.serviceName, path, 0, time.Since(start))
		return &APIError{Message: err.Error(), transport: true}
	}
	defer resp.Body.Close()

	metrics.RecordUpstreamRequest(c.serviceName, path, resp.StatusCode, time.Since(start))

	if on4xx != nil {
		if hookErr := on4xx(resp.StatusCode); hookErr != nil {
			return hookErr
		}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Status: resp.StatusCode, Message: err.Error(), transport: true}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp.StatusCode, raw)
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	return nil
}
