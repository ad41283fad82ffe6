package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/jasamarga/toll-ops-gateway/internal/adapter/http/handler/dto"
	"github.com/jasamarga/toll-ops-gateway/internal/domain/models"
	"github.com/jasamarga/toll-ops-gateway/internal/store"
	"github.com/jasamarga/toll-ops-gateway/pkg/logger"
	wrap "github.com/jasamarga/toll-ops-gateway/pkg/logger/wrapper"
	"github.com/jasamarga/toll-ops-gateway/pkg/validator"
)

type GateService interface {
	List(ctx context.Context, sess *store.Store, f models.GatewayFilter) ([]models.GatewayRecord, models.PageInfo, error)
	Create(ctx context.Context, sess *store.Store, g models.GatewayRecord) error
	Update(ctx context.Context, sess *store.Store, g models.GatewayRecord) error
	Delete(ctx context.Context, sess *store.Store, key models.GatewayKey) error
}

type Gerbang struct {
	gates    GateService
	sessions *Sessions
	log      logger.Logger
}

func NewGerbang(gates GateService, sessions *Sessions, log logger.Logger) *Gerbang {
	return &Gerbang{
		gates:    gates,
		sessions: sessions,
		log:      log,
	}
}

// List godoc
// @Summary      List toll gates
// @Tags         Gerbang
// @Produce      json
// @Param        page   query int    false "Page number"
// @Param        limit  query int    false "Page size"
// @Param        search query string false "Gate or branch name filter"
// @Success      200  {object}  map[string]any
// @Router       /api/gerbangs [get]
func (h *Gerbang) List(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "list_gerbang")

	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))
	filter := models.GatewayFilter{
		Page:   page,
		Limit:  limit,
		Search: query.Get("search"),
	}

	sess := h.sessions.FromRequest(w, r)
	rows, pageInfo, err := h.gates.List(ctx, sess, filter)
	if err != nil {
		h.log.Error(wrap.ErrorCtx(ctx, err), "failed to list gerbang", err)
		toastResponse(w, GetCode(err), "Error", "Gagal memuat data gerbang")
		return
	}

	response := envelope{
		"status": true,
		"data": envelope{
			"rows": rows,
			"page": pageInfo,
		},
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.log.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// Create godoc
// @Summary      Create a toll gate
// @Tags         Gerbang
// @Accept       json
// @Produce      json
// @Param        request body dto.GerbangRequest true "Gate"
// @Success      201  {object}  map[string]any
// @Router       /api/gerbangs [post]
func (h *Gerbang) Create(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "create_gerbang")

	req := &dto.GerbangRequest{}
	if err := readJSON(w, r, req); err != nil {
		h.log.Error(ctx, "failed to read request JSON data", err)
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	req.Validate(v)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	sess := h.sessions.FromRequest(w, r)
	if err := h.gates.Create(ctx, sess, req.ToModel()); err != nil {
		h.log.Error(wrap.ErrorCtx(ctx, err), "failed to create gerbang", err)
		toastResponse(w, GetCode(err), "Error", "Gagal menambah data gerbang")
		return
	}

	response := envelope{"status": true, "message": "Data gerbang berhasil ditambahkan"}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		h.log.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// Update godoc
// @Summary      Update a toll gate
// @Tags         Gerbang
// @Accept       json
// @Produce      json
// @Param        id      path int               true "Gate ID"
// @Param        request body dto.GerbangRequest true "Gate"
// @Success      200  {object}  map[string]any
// @Router       /api/gerbang/{id} [put]
func (h *Gerbang) Update(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "update_gerbang")

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		badRequestResponse(w, "invalid gerbang id")
		return
	}

	req := &dto.GerbangRequest{}
	if err := readJSON(w, r, req); err != nil {
		h.log.Error(ctx, "failed to read request JSON data", err)
		badRequestResponse(w, err.Error())
		return
	}
	req.ID = id

	v := validator.New()
	req.Validate(v)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	sess := h.sessions.FromRequest(w, r)
	if err := h.gates.Update(ctx, sess, req.ToModel()); err != nil {
		h.log.Error(wrap.ErrorCtx(ctx, err), "failed to update gerbang", err)
		toastResponse(w, GetCode(err), "Error", "Gagal mengubah data gerbang")
		return
	}

	response := envelope{"status": true, "message": "Data gerbang berhasil diubah"}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.log.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// Delete godoc
// @Summary      Delete a toll gate
// @Description  Deletes by the composite (id, IdCabang) key in the body
// @Tags         Gerbang
// @Accept       json
// @Produce      json
// @Param        request body dto.DeleteGerbangRequest true "Composite key"
// @Success      200  {object}  map[string]any
// @Router       /api/gerbangs [delete]
func (h *Gerbang) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "delete_gerbang")

	req := &dto.DeleteGerbangRequest{}
	if err := readJSON(w, r, req); err != nil {
		h.log.Error(ctx, "failed to read request JSON data", err)
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	req.Validate(v)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	sess := h.sessions.FromRequest(w, r)
	if err := h.gates.Delete(ctx, sess, models.GatewayKey{ID: req.ID, IdCabang: req.IdCabang}); err != nil {
		h.log.Error(wrap.ErrorCtx(ctx, err), "failed to delete gerbang", err)
		toastResponse(w, GetCode(err), "Error", "Gagal menghapus data gerbang")
		return
	}

	response := envelope{"status": true, "message": "Data gerbang berhasil dihapus"}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.log.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}
