package report

import (
	"context"
	"fmt"

	"github.com/jasamarga/toll-ops-gateway/internal/domain/models"
	"github.com/jasamarga/toll-ops-gateway/internal/domain/types"
	"github.com/jasamarga/toll-ops-gateway/internal/store"
	"github.com/jasamarga/toll-ops-gateway/pkg/logger"
	wrap "github.com/jasamarga/toll-ops-gateway/pkg/logger/wrapper"
)

// DefaultPageSize matches the dashboard table page length
const DefaultPageSize = 10

type LalinLister interface {
	ListLalins(ctx context.Context, sess *store.Store, f models.LalinFilter) ([]models.TrafficRow, models.PageInfo, error)
}

type Service struct {
	api LalinLister
	log logger.Logger
}

func New(api LalinLister, log logger.Logger) *Service {
	return &Service{api: api, log: log}
}

// Summary is the dashboard payload: headline stats plus the four chart
// series for one day.
type Summary struct {
	Stats          DashboardStats `json:"stats"`
	PaymentMethods []Bucket       `json:"paymentMethods"`
	Gateways       []Bucket       `json:"gateways"`
	Shifts         []Bucket       `json:"shifts"`
	Branches       []Bucket       `json:"branches"`
}

// ReportRow is one line of the daily traffic report with the cluster
// columns the table shows. Total reflects the requested payment mode.
type ReportRow struct {
	ID       int64  `json:"id"`
	Tanggal  string `json:"tanggal"`
	Gerbang  string `json:"gerbang"`
	Shift    string `json:"shift"`
	Golongan string `json:"golongan"`
	Tunai    int64  `json:"tunai"`
	EToll    int64  `json:"etoll"`
	Flo      int64  `json:"flo"`
	KTP      int64  `json:"ktp"`
	Total    int64  `json:"total"`
}

// DailyReport is the paginated report payload
type DailyReport struct {
	Rows []ReportRow     `json:"rows"`
	Page models.PageInfo `json:"page"`
}

// ClusterTotals are the summary cards under the report table
type ClusterTotals struct {
	TotalTunai         int64 `json:"totalTunai"`
	TotalEToll         int64 `json:"totalEToll"`
	TotalFlo           int64 `json:"totalFlo"`
	TotalKTP           int64 `json:"totalKTP"`
	TotalETollTunaiFlo int64 `json:"totalETollTunaiFlo"`
	TotalKeseluruhan   int64 `json:"totalKeseluruhan"`
}

// Summary fetches the day's rows and aggregates them. A non-zero
// gerbang narrows every chart and stat to that gateway, mirroring the
// dashboard filter.
func (s *Service) Summary(ctx context.Context, sess *store.Store, tanggal string, gerbang int) (*Summary, error) {
	ctx = wrap.WithAction(ctx, "dashboard_summary")

	rows, err := s.fetchDay(ctx, sess, tanggal)
	if err != nil {
		return nil, err
	}

	if gerbang > 0 {
		filtered := rows[:0]
		for _, row := range rows {
			if row.IdGerbang == gerbang {
				filtered = append(filtered, row)
			}
		}
		rows = filtered
	}

	return &Summary{
		Stats:          Stats(rows),
		PaymentMethods: PaymentMethodTotals(rows),
		Gateways:       GatewayTotals(rows),
		Shifts:         ShiftTotals(rows),
		Branches:       BranchTotals(rows),
	}, nil
}

// Daily builds the paginated traffic report for one day. Pagination is
// done here over the full day's rows so page boundaries stay stable
// regardless of how the backend pages.
func (s *Service) Daily(ctx context.Context, sess *store.Store, tanggal string, mode types.PaymentMode, page, limit int) (*DailyReport, error) {
	ctx = wrap.WithAction(ctx, "daily_report")

	rows, err := s.fetchDay(ctx, sess, tanggal)
	if err != nil {
		return nil, err
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}

	totalPages := (len(rows) + limit - 1) / limit
	start := (page - 1) * limit
	if start > len(rows) {
		start = len(rows)
	}
	end := start + limit
	if end > len(rows) {
		end = len(rows)
	}

	out := make([]ReportRow, 0, end-start)
	for _, row := range rows[start:end] {
		out = append(out, buildReportRow(row, mode))
	}

	return &DailyReport{
		Rows: out,
		Page: models.PageInfo{
			TotalPages:  totalPages,
			CurrentPage: page,
			Count:       len(rows),
		},
	}, nil
}

// Clusters computes the per-cluster totals for the report summary cards
func (s *Service) Clusters(ctx context.Context, sess *store.Store, tanggal string) (*ClusterTotals, error) {
	ctx = wrap.WithAction(ctx, "report_clusters")

	rows, err := s.fetchDay(ctx, sess, tanggal)
	if err != nil {
		return nil, err
	}
	totals := ClusterTotalsOf(rows)
	return &totals, nil
}

// ClusterTotalsOf sums the four payment clusters plus the two derived
// grand totals over the rows.
func ClusterTotalsOf(rows []models.TrafficRow) ClusterTotals {
	var t ClusterTotals
	for _, row := range rows {
		t.TotalTunai += row.Tunai
		for _, ch := range types.ClusterETol {
			t.TotalEToll += row.Channel(ch)
		}
		t.TotalFlo += row.EFlo
		for _, ch := range types.ClusterKTP {
			t.TotalKTP += row.Channel(ch)
		}
	}
	t.TotalETollTunaiFlo = t.TotalTunai + t.TotalEToll + t.TotalFlo
	t.TotalKeseluruhan = t.TotalETollTunaiFlo + t.TotalKTP
	return t
}

// DailyRows exposes the raw day fetch for the export flow
func (s *Service) DailyRows(ctx context.Context, sess *store.Store, tanggal string) ([]models.TrafficRow, error) {
	return s.fetchDay(ctx, sess, tanggal)
}

func (s *Service) fetchDay(ctx context.Context, sess *store.Store, tanggal string) ([]models.TrafficRow, error) {
	rows, _, err := s.api.ListLalins(ctx, sess, models.LalinFilter{Tanggal: tanggal})
	if err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("could not fetch lalin rows: %w", err))
	}
	return rows, nil
}

func buildReportRow(row models.TrafficRow, mode types.PaymentMode) ReportRow {
	etoll := int64(0)
	for _, ch := range types.ClusterETol {
		etoll += row.Channel(ch)
	}
	ktp := int64(0)
	for _, ch := range types.ClusterKTP {
		ktp += row.Channel(ch)
	}

	shift, ok := types.ShiftLabels[row.Shift]
	if !ok {
		shift = fmt.Sprintf("Shift %d", row.Shift)
	}
	golongan, ok := types.GolonganLabels[row.Golongan]
	if !ok {
		golongan = fmt.Sprintf("Gol %d", row.Golongan)
	}

	return ReportRow{
		ID:       row.ID,
		Tanggal:  row.Tanggal,
		Gerbang:  fmt.Sprintf("Gerbang %d", row.IdGerbang),
		Shift:    shift,
		Golongan: golongan,
		Tunai:    row.Tunai,
		EToll:    etoll,
		Flo:      row.EFlo,
		KTP:      ktp,
		Total:    ModeTotal(row, mode),
	}
}
