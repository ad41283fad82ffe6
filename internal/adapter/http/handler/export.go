package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jasamarga/toll-ops-gateway/internal/domain/types"
	"github.com/jasamarga/toll-ops-gateway/internal/service/export"
	"github.com/jasamarga/toll-ops-gateway/internal/store"
	"github.com/jasamarga/toll-ops-gateway/pkg/logger"
	wrap "github.com/jasamarga/toll-ops-gateway/pkg/logger/wrapper"
)

type ExportService interface {
	Daily(ctx context.Context, sess *store.Store, tanggal string, format types.ExportFormat) (*export.File, error)
}

type Export struct {
	exports  ExportService
	sessions *Sessions
	log      logger.Logger
}

func NewExport(exports ExportService, sessions *Sessions, log logger.Logger) *Export {
	return &Export{
		exports:  exports,
		sessions: sessions,
		log:      log,
	}
}

// Daily godoc
// @Summary      Download the daily traffic report
// @Tags         Reports
// @Produce      application/octet-stream
// @Param        tanggal query string false "Report date (yyyy-mm-dd)"
// @Param        format  query string false "csv | xlsx"
// @Success      200  {file}  file
// @Router       /api/reports/export [get]
func (h *Export) Daily(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "export_daily")

	format := types.ExportFormat(r.URL.Query().Get("format"))
	if format == "" {
		format = types.FormatCSV
	}
	if format != types.FormatCSV && format != types.FormatXLSX {
		badRequestResponse(w, fmt.Sprintf("unsupported format %q", format))
		return
	}

	sess := h.sessions.FromRequest(w, r)
	file, err := h.exports.Daily(ctx, sess, queryDate(r), format)
	if err != nil {
		h.log.Error(wrap.ErrorCtx(ctx, err), "failed to export daily report", err)
		toastResponse(w, GetCode(err), "Gagal", "Gagal mengekspor laporan")
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(file.Content); err != nil {
		h.log.Error(ctx, "failed to stream export", err)
	}
}
