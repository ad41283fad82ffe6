package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/jasamarga/toll-ops-gateway/internal/domain/types"
	"github.com/jasamarga/toll-ops-gateway/internal/service/report"
	"github.com/jasamarga/toll-ops-gateway/internal/store"
	"github.com/jasamarga/toll-ops-gateway/pkg/logger"
	wrap "github.com/jasamarga/toll-ops-gateway/pkg/logger/wrapper"
)

// DefaultReportDate matches the seed dataset the backend ships with
const DefaultReportDate = "2023-11-01"

type ReportService interface {
	Summary(ctx context.Context, sess *store.Store, tanggal string, gerbang int) (*report.Summary, error)
	Daily(ctx context.Context, sess *store.Store, tanggal string, mode types.PaymentMode, page, limit int) (*report.DailyReport, error)
	Clusters(ctx context.Context, sess *store.Store, tanggal string) (*report.ClusterTotals, error)
}

type Report struct {
	reports  ReportService
	sessions *Sessions
	log      logger.Logger
}

func NewReport(reports ReportService, sessions *Sessions, log logger.Logger) *Report {
	return &Report{
		reports:  reports,
		sessions: sessions,
		log:      log,
	}
}

// Summary godoc
// @Summary      Dashboard summary
// @Description  Headline stats plus chart series for one day
// @Tags         Reports
// @Produce      json
// @Param        tanggal query string false "Report date (yyyy-mm-dd)"
// @Param        gerbang query int false "Filter to a single gate"
// @Success      200  {object}  map[string]any
// @Router       /api/dashboard/summary [get]
func (h *Report) Summary(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "dashboard_summary")

	tanggal := queryDate(r)
	gerbang, _ := strconv.Atoi(r.URL.Query().Get("gerbang"))

	sess := h.sessions.FromRequest(w, r)
	summary, err := h.reports.Summary(ctx, sess, tanggal, gerbang)
	if err != nil {
		h.log.Error(wrap.ErrorCtx(ctx, err), "failed to build dashboard summary", err)
		toastResponse(w, GetCode(err), "Error", "Gagal memuat data dashboard")
		return
	}

	response := envelope{"status": true, "data": summary}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.log.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// Lalins godoc
// @Summary      Daily traffic report
// @Description  Paginated lalin rows with mode-selectable totals
// @Tags         Reports
// @Produce      json
// @Param        tanggal query string false "Report date (yyyy-mm-dd)"
// @Param        mode    query string false "tunai | etoll | flo | ktp | etoll_tunai_flo | keseluruhan"
// @Param        page    query int    false "Page number"
// @Param        limit   query int    false "Page size"
// @Success      200  {object}  map[string]any
// @Router       /api/reports/lalins [get]
func (h *Report) Lalins(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "daily_report")

	query := r.URL.Query()
	tanggal := queryDate(r)
	mode := types.ParsePaymentMode(query.Get("mode"))
	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))

	sess := h.sessions.FromRequest(w, r)
	daily, err := h.reports.Daily(ctx, sess, tanggal, mode, page, limit)
	if err != nil {
		h.log.Error(wrap.ErrorCtx(ctx, err), "failed to build daily report", err)
		toastResponse(w, GetCode(err), "Gagal", "Gagal memuat data laporan")
		return
	}

	response := envelope{"status": true, "data": daily}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.log.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// Clusters godoc
// @Summary      Payment cluster totals
// @Tags         Reports
// @Produce      json
// @Param        tanggal query string false "Report date (yyyy-mm-dd)"
// @Success      200  {object}  map[string]any
// @Router       /api/reports/clusters [get]
func (h *Report) Clusters(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "report_clusters")

	sess := h.sessions.FromRequest(w, r)
	totals, err := h.reports.Clusters(ctx, sess, queryDate(r))
	if err != nil {
		h.log.Error(wrap.ErrorCtx(ctx, err), "failed to build cluster totals", err)
		toastResponse(w, GetCode(err), "Gagal", "Gagal memuat data laporan")
		return
	}

	response := envelope{"status": true, "data": totals}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.log.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

func queryDate(r *http.Request) string {
	if tanggal := r.URL.Query().Get("tanggal"); tanggal != "" {
		return tanggal
	}
	return DefaultReportDate
}
