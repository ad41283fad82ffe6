// Package report turns raw lalin rows into the figures the dashboard
// and the daily traffic report show: per-channel, per-gateway, per-shift
// and per-branch buckets plus the headline stats. All aggregation is
// pure; the backend is only asked for the day's rows once.
package report

import (
	"fmt"
	"math"
	"sort"

	"github.com/jasamarga/toll-ops-gateway/internal/domain/models"
	"github.com/jasamarga/toll-ops-gateway/internal/domain/types"
)

// MaxGatewayBuckets caps the per-gateway chart at the busiest gates
const MaxGatewayBuckets = 10

// Bucket is one labelled value in a chart series
type Bucket struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// DashboardStats are the headline cards. Revenue assumes a flat
// 10,000 IDR tariff per transaction, same as the reporting backend.
type DashboardStats struct {
	TotalTransactions int64 `json:"totalTransactions"`
	TotalRevenue      int64 `json:"totalRevenue"`
	AvgPerHour        int64 `json:"avgPerHour"`
	TotalGerbang      int   `json:"totalGerbang"`
	TotalBranches     int   `json:"totalBranches"`
}

// PaymentMethodTotals sums every channel across the rows. Every channel
// appears in the result under its display label, in report column order,
// even when its total is zero.
func PaymentMethodTotals(rows []models.TrafficRow) []Bucket {
	totals := make(map[string]int64, len(types.PaymentChannels))
	for _, row := range rows {
		for _, ch := range types.PaymentChannels {
			totals[ch] += row.Channel(ch)
		}
	}

	buckets := make([]Bucket, 0, len(types.PaymentChannels))
	for _, ch := range types.PaymentChannels {
		buckets = append(buckets, Bucket{Name: types.PaymentLabels[ch], Value: totals[ch]})
	}
	return buckets
}

// GatewayTotals sums row totals per gateway, busiest first, capped at
// MaxGatewayBuckets.
func GatewayTotals(rows []models.TrafficRow) []Bucket {
	totals := map[int]int64{}
	for _, row := range rows {
		totals[row.IdGerbang] += row.Total()
	}

	buckets := make([]Bucket, 0, len(totals))
	for id, total := range totals {
		buckets = append(buckets, Bucket{Name: fmt.Sprintf("Gerbang %d", id), Value: total})
	}
	sortDesc(buckets)

	if len(buckets) > MaxGatewayBuckets {
		buckets = buckets[:MaxGatewayBuckets]
	}
	return buckets
}

// ShiftTotals sums row totals per shift. The three operational shifts
// are always present; rows with an unexpected shift number accumulate
// under their literal key.
func ShiftTotals(rows []models.TrafficRow) []Bucket {
	totals := map[int]int64{1: 0, 2: 0, 3: 0}
	for _, row := range rows {
		totals[row.Shift] += row.Total()
	}

	shifts := make([]int, 0, len(totals))
	for shift := range totals {
		shifts = append(shifts, shift)
	}
	sort.Ints(shifts)

	buckets := make([]Bucket, 0, len(shifts))
	for _, shift := range shifts {
		label, ok := types.ShiftLabels[shift]
		if !ok {
			label = fmt.Sprintf("Shift %d", shift)
		}
		buckets = append(buckets, Bucket{Name: label, Value: totals[shift]})
	}
	return buckets
}

// BranchTotals sums row totals per branch (ruas), busiest first,
// untruncated.
func BranchTotals(rows []models.TrafficRow) []Bucket {
	totals := map[int]int64{}
	for _, row := range rows {
		totals[row.IdCabang] += row.Total()
	}

	buckets := make([]Bucket, 0, len(totals))
	for id, total := range totals {
		buckets = append(buckets, Bucket{Name: fmt.Sprintf("Ruas %d", id), Value: total})
	}
	sortDesc(buckets)
	return buckets
}

// ModeTotal returns the row's transaction count for one payment mode
func ModeTotal(row models.TrafficRow, mode types.PaymentMode) int64 {
	etoll := int64(0)
	for _, ch := range types.ClusterETol {
		etoll += row.Channel(ch)
	}
	ktp := int64(0)
	for _, ch := range types.ClusterKTP {
		ktp += row.Channel(ch)
	}

	switch mode {
	case types.ModeTunai:
		return row.Tunai
	case types.ModeEToll:
		return etoll
	case types.ModeFlo:
		return row.EFlo
	case types.ModeKTP:
		return ktp
	case types.ModeETollTunaiFlo:
		return row.Tunai + etoll + row.EFlo
	default:
		return row.Tunai + etoll + row.EFlo + ktp
	}
}

// Stats computes the headline numbers for a day's rows
func Stats(rows []models.TrafficRow) DashboardStats {
	var total int64
	gerbang := map[int]struct{}{}
	branches := map[int]struct{}{}

	for _, row := range rows {
		total += row.Total()
		gerbang[row.IdGerbang] = struct{}{}
		branches[row.IdCabang] = struct{}{}
	}

	return DashboardStats{
		TotalTransactions: total,
		TotalRevenue:      total * 10000,
		AvgPerHour:        int64(math.Round(float64(total) / 24)),
		TotalGerbang:      len(gerbang),
		TotalBranches:     len(branches),
	}
}

func sortDesc(buckets []Bucket) {
	sort.SliceStable(buckets, func(i, j int) bool {
		if buckets[i].Value != buckets[j].Value {
			return buckets[i].Value > buckets[j].Value
		}
		return buckets[i].Name < buckets[j].Name
	})
}
