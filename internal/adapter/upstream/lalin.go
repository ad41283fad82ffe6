package upstream

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jasamarga/toll-ops-gateway/internal/domain/models"
	"github.com/jasamarga/toll-ops-gateway/internal/store"
)

// pagedEnvelope matches the backend's nested pagination shape:
// data.rows.rows holds the records.
type pagedEnvelope[T any] struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Code    any    `json:"code"`
	Data    struct {
		TotalPages  int `json:"total_pages"`
		CurrentPage int `json:"current_page"`
		Count       int `json:"count"`
		Rows        struct {
			Count int `json:"count"`
			Rows  []T `json:"rows"`
		} `json:"rows"`
	} `json:"data"`
}

func (e *pagedEnvelope[T]) pageInfo() models.PageInfo {
	return models.PageInfo{
		TotalPages:  e.Data.TotalPages,
		CurrentPage: e.Data.CurrentPage,
		Count:       e.Data.Count,
	}
}

// ListLalins fetches traffic rows for the given filter. The backend
// treats tanggal as the day to report on; the remaining filter fields
// are optional.
func (c *Client) ListLalins(ctx context.Context, sess *store.Store, f models.LalinFilter) ([]models.TrafficRow, models.PageInfo, error) {
	query := url.Values{}
	if f.Tanggal != "" {
		query.Set("tanggal", f.Tanggal)
	}
	if f.Page > 0 {
		query.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		query.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Search != "" {
		query.Set("search", f.Search)
	}
	if f.Gerbang > 0 {
		query.Set("gerbang", strconv.Itoa(f.Gerbang))
	}
	if f.Shift > 0 {
		query.Set("shift", strconv.Itoa(f.Shift))
	}

	var env pagedEnvelope[models.TrafficRow]
	if err := c.do(ctx, sess, http.MethodGet, "/lalins", query, nil, &env); err != nil {
		return nil, models.PageInfo{}, err
	}

	return env.Data.Rows.Rows, env.pageInfo(), nil
}
