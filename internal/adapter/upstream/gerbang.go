package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jasamarga/toll-ops-gateway/internal/domain/models"
	"github.com/jasamarga/toll-ops-gateway/internal/store"
)

// ListGerbangs fetches the gateway master data page by page.
func (c *Client) ListGerbangs(ctx context.Context, sess *store.Store, f models.GatewayFilter) ([]models.GatewayRecord, models.PageInfo, error) {
	query := url.Values{}
	if f.Page > 0 {
		query.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		query.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Search != "" {
		query.Set("search", f.Search)
	}

	var env pagedEnvelope[models.GatewayRecord]
	if err := c.do(ctx, sess, http.MethodGet, "/gerbangs", query, nil, &env); err != nil {
		return nil, models.PageInfo{}, err
	}

	return env.Data.Rows.Rows, env.pageInfo(), nil
}

func (c *Client) CreateGerbang(ctx context.Context, sess *store.Store, g models.GatewayRecord) error {
	return c.do(ctx, sess, http.MethodPost, "/gerbangs", nil, g, nil)
}

func (c *Client) UpdateGerbang(ctx context.Context, sess *store.Store, g models.GatewayRecord) error {
	path := fmt.Sprintf("/gerbang/%d", g.ID)
	return c.do(ctx, sess, http.MethodPut, path, nil, g, nil)
}

// DeleteGerbang removes a gateway. The backend identifies records by the
// composite (id, IdCabang) pair carried in the request body.
func (c *Client) DeleteGerbang(ctx context.Context, sess *store.Store, key models.GatewayKey) error {
	return c.do(ctx, sess, http.MethodDelete, "/gerbangs", nil, key, nil)
}
