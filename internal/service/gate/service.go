// Package gate manages the toll gate master data. The backend owns the
// records; this service adds input validation and the same client-side
// name filter the master data screen applies on top of the backend's
// paging.
package gate

import (
	"context"
	"fmt"
	"strings"

	"github.com/jasamarga/toll-ops-gateway/internal/domain/models"
	"github.com/jasamarga/toll-ops-gateway/internal/domain/types"
	"github.com/jasamarga/toll-ops-gateway/internal/store"
	"github.com/jasamarga/toll-ops-gateway/pkg/logger"
	wrap "github.com/jasamarga/toll-ops-gateway/pkg/logger/wrapper"
)

type Backend interface {
	ListGerbangs(ctx context.Context, sess *store.Store, f models.GatewayFilter) ([]models.GatewayRecord, models.PageInfo, error)
	CreateGerbang(ctx context.Context, sess *store.Store, g models.GatewayRecord) error
	UpdateGerbang(ctx context.Context, sess *store.Store, g models.GatewayRecord) error
	DeleteGerbang(ctx context.Context, sess *store.Store, key models.GatewayKey) error
}

type Service struct {
	api Backend
	log logger.Logger
}

func New(api Backend, log logger.Logger) *Service {
	return &Service{api: api, log: log}
}

// List fetches one page of gates. The backend's search is unreliable,
// so the name filter is re-applied here over the returned rows, against
// both the gate and the branch name.
func (s *Service) List(ctx context.Context, sess *store.Store, f models.GatewayFilter) ([]models.GatewayRecord, models.PageInfo, error) {
	ctx = wrap.WithAction(ctx, "list_gerbang")

	rows, page, err := s.api.ListGerbangs(ctx, sess, f)
	if err != nil {
		return nil, models.PageInfo{}, wrap.Error(ctx, fmt.Errorf("could not list gerbang: %w", err))
	}

	if f.Search == "" {
		return rows, page, nil
	}

	needle := strings.ToLower(f.Search)
	filtered := make([]models.GatewayRecord, 0, len(rows))
	for _, g := range rows {
		if strings.Contains(strings.ToLower(g.NamaGerbang), needle) ||
			strings.Contains(strings.ToLower(g.NamaCabang), needle) {
			filtered = append(filtered, g)
		}
	}
	return filtered, page, nil
}

func (s *Service) Create(ctx context.Context, sess *store.Store, g models.GatewayRecord) error {
	ctx = wrap.WithAction(ctx, "create_gerbang")

	if err := validate(g); err != nil {
		return err
	}
	if err := s.api.CreateGerbang(ctx, sess, g); err != nil {
		return wrap.Error(ctx, fmt.Errorf("could not create gerbang: %w", err))
	}

	s.log.Info(ctx, "gerbang created", "id", g.ID, "id_cabang", g.IdCabang)
	return nil
}

func (s *Service) Update(ctx context.Context, sess *store.Store, g models.GatewayRecord) error {
	ctx = wrap.WithAction(ctx, "update_gerbang")

	if err := validate(g); err != nil {
		return err
	}
	if err := s.api.UpdateGerbang(ctx, sess, g); err != nil {
		return wrap.Error(ctx, fmt.Errorf("could not update gerbang: %w", err))
	}

	s.log.Info(ctx, "gerbang updated", "id", g.ID, "id_cabang", g.IdCabang)
	return nil
}

// Delete removes a gate by its composite (id, branch) key
func (s *Service) Delete(ctx context.Context, sess *store.Store, key models.GatewayKey) error {
	ctx = wrap.WithAction(ctx, "delete_gerbang")

	if key.ID <= 0 || key.IdCabang <= 0 {
		return types.ErrInvalidPayload
	}
	if err := s.api.DeleteGerbang(ctx, sess, key); err != nil {
		return wrap.Error(ctx, fmt.Errorf("could not delete gerbang: %w", err))
	}

	s.log.Info(ctx, "gerbang deleted", "id", key.ID, "id_cabang", key.IdCabang)
	return nil
}

func validate(g models.GatewayRecord) error {
	if g.ID <= 0 || g.IdCabang <= 0 {
		return types.ErrInvalidPayload
	}
	if strings.TrimSpace(g.NamaGerbang) == "" || strings.TrimSpace(g.NamaCabang) == "" {
		return types.ErrInvalidPayload
	}
	return nil
}
