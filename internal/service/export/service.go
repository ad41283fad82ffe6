package export

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jasamarga/toll-ops-gateway/internal/domain/models"
	"github.com/jasamarga/toll-ops-gateway/internal/domain/types"
	"github.com/jasamarga/toll-ops-gateway/internal/store"
	"github.com/jasamarga/toll-ops-gateway/pkg/logger"
	wrap "github.com/jasamarga/toll-ops-gateway/pkg/logger/wrapper"
	"github.com/jasamarga/toll-ops-gateway/pkg/metrics"
)

// lalinColumns is the daily report layout: identity columns, then one
// column per payment channel, then the row total.
var lalinColumns = []Column{
	{Key: "Tanggal", Title: "Tanggal"},
	{Key: "IdCabang", Title: "Ruas"},
	{Key: "IdGerbang", Title: "Gerbang"},
	{Key: "IdGardu", Title: "Gardu"},
	{Key: "Shift", Title: "Shift"},
	{Key: "Golongan", Title: "Golongan"},
	{Key: "Tunai", Title: "Tunai"},
	{Key: "eBca", Title: "BCA"},
	{Key: "eBri", Title: "BRI"},
	{Key: "eBni", Title: "BNI"},
	{Key: "eMandiri", Title: "Mandiri"},
	{Key: "eDKI", Title: "DKI"},
	{Key: "eMega", Title: "Mega"},
	{Key: "eNobu", Title: "Nobu"},
	{Key: "eFlo", Title: "Flo"},
	{Key: "DinasOpr", Title: "DinasOpr"},
	{Key: "DinasMitra", Title: "DinasMitra"},
	{Key: "DinasKary", Title: "DinasKary"},
	{Key: "Total", Title: "Total"},
}

type RowSource interface {
	DailyRows(ctx context.Context, sess *store.Store, tanggal string) ([]models.TrafficRow, error)
}

type Service struct {
	reports     RowSource
	serviceName string
	log         logger.Logger
}

func New(reports RowSource, serviceName string, log logger.Logger) *Service {
	return &Service{reports: reports, serviceName: serviceName, log: log}
}

// File is a rendered download
type File struct {
	Name        string
	ContentType string
	Content     []byte
}

// Daily renders the full traffic report for one day in the requested
// format. Identity columns keep their raw values; counters get the
// Indonesian grouping.
func (s *Service) Daily(ctx context.Context, sess *store.Store, tanggal string, format types.ExportFormat) (*File, error) {
	ctx = wrap.WithAction(ctx, "export_daily")

	rows, err := s.reports.DailyRows(ctx, sess, tanggal)
	if err != nil {
		metrics.RecordExport(s.serviceName, string(format), err)
		return nil, err
	}

	headers := Headers(lalinColumns)
	prepared := PrepareRows(lalinRowMaps(rows), lalinColumns)

	var file *File
	switch format {
	case types.FormatXLSX:
		content, err := WriteXLSX(headers, prepared)
		if err != nil {
			metrics.RecordExport(s.serviceName, string(format), err)
			return nil, wrap.Error(ctx, fmt.Errorf("render xlsx: %w", err))
		}
		file = &File{
			Name:        fmt.Sprintf("laporan-lalin-%s.xlsx", tanggal),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Content:     content,
		}
	case types.FormatCSV:
		content, err := WriteCSV(headers, prepared)
		if err != nil {
			metrics.RecordExport(s.serviceName, string(format), err)
			return nil, wrap.Error(ctx, fmt.Errorf("render csv: %w", err))
		}
		file = &File{
			Name:        fmt.Sprintf("laporan-lalin-%s.csv", tanggal),
			ContentType: "text/csv; charset=utf-8",
			Content:     content,
		}
	default:
		return nil, types.ErrInvalidPayload
	}

	metrics.RecordExport(s.serviceName, string(format), nil)
	s.log.Info(ctx, "report exported", "tanggal", tanggal, "format", string(format), "rows", len(rows))
	return file, nil
}

func lalinRowMaps(rows []models.TrafficRow) []map[string]any {
	out := make([]map[string]any, 0, len(rows))
	for _, r := range rows {
		out = append(out, map[string]any{
			"Tanggal":    r.Tanggal,
			"IdCabang":   strconv.Itoa(r.IdCabang),
			"IdGerbang":  strconv.Itoa(r.IdGerbang),
			"IdGardu":    strconv.Itoa(r.IdGardu),
			"Shift":      strconv.Itoa(r.Shift),
			"Golongan":   strconv.Itoa(r.Golongan),
			"Tunai":      r.Tunai,
			"eBca":       r.EBca,
			"eBri":       r.EBri,
			"eBni":       r.EBni,
			"eMandiri":   r.EMandiri,
			"eDKI":       r.EDKI,
			"eMega":      r.EMega,
			"eNobu":      r.ENobu,
			"eFlo":       r.EFlo,
			"DinasOpr":   r.DinasOpr,
			"DinasMitra": r.DinasMitra,
			"DinasKary":  r.DinasKary,
			"Total":      r.Total(),
		})
	}
	return out
}
