package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jasamarga/toll-ops-gateway/internal/domain/models"
	"github.com/jasamarga/toll-ops-gateway/internal/domain/types"
)

func sampleDay() []models.TrafficRow {
	return []models.TrafficRow{
		{ID: 1, IdCabang: 1, IdGerbang: 7, Shift: 1, Golongan: 1, Tunai: 10, EBca: 5},
		{ID: 2, IdCabang: 1, IdGerbang: 7, Shift: 2, Golongan: 2, EFlo: 20},
		{ID: 3, IdCabang: 2, IdGerbang: 7, Shift: 3, Golongan: 1, DinasOpr: 3},
	}
}

func bucketValue(t *testing.T, buckets []Bucket, name string) int64 {
	t.Helper()
	for _, b := range buckets {
		if b.Name == name {
			return b.Value
		}
	}
	t.Fatalf("bucket %q not found", name)
	return 0
}

func TestPaymentMethodTotals(t *testing.T) {
	buckets := PaymentMethodTotals(sampleDay())

	require.Len(t, buckets, len(types.PaymentChannels))
	assert.Equal(t, int64(10), bucketValue(t, buckets, "Tunai"))
	assert.Equal(t, int64(5), bucketValue(t, buckets, "BCA"))
	assert.Equal(t, int64(20), bucketValue(t, buckets, "Flo"))
	assert.Equal(t, int64(3), bucketValue(t, buckets, "DinasOpr"))

	// channels with no traffic still get a zero bucket
	assert.Equal(t, int64(0), bucketValue(t, buckets, "Mandiri"))
	assert.Equal(t, int64(0), bucketValue(t, buckets, "Mega"))
	assert.Equal(t, int64(0), bucketValue(t, buckets, "Nobu"))
}

func TestPaymentMethodTotals_EmptyInput(t *testing.T) {
	buckets := PaymentMethodTotals(nil)

	require.Len(t, buckets, len(types.PaymentChannels))
	for _, b := range buckets {
		assert.Zero(t, b.Value, b.Name)
	}
}

func TestGatewayTotals_SumsAcrossShifts(t *testing.T) {
	buckets := GatewayTotals(sampleDay())

	require.Len(t, buckets, 1)
	assert.Equal(t, "Gerbang 7", buckets[0].Name)
	assert.Equal(t, int64(38), buckets[0].Value)
}

func TestGatewayTotals_DescendingTopTen(t *testing.T) {
	rows := make([]models.TrafficRow, 0, 12)
	for i := 1; i <= 12; i++ {
		rows = append(rows, models.TrafficRow{IdGerbang: i, Tunai: int64(i * 10)})
	}

	buckets := GatewayTotals(rows)

	require.Len(t, buckets, MaxGatewayBuckets)
	assert.Equal(t, "Gerbang 12", buckets[0].Name)
	assert.Equal(t, int64(120), buckets[0].Value)
	for i := 1; i < len(buckets); i++ {
		assert.GreaterOrEqual(t, buckets[i-1].Value, buckets[i].Value)
	}
	// the two quietest gates fall off
	for _, b := range buckets {
		assert.NotEqual(t, "Gerbang 1", b.Name)
		assert.NotEqual(t, "Gerbang 2", b.Name)
	}
}

func TestShiftTotals_SeedsOperationalShifts(t *testing.T) {
	buckets := ShiftTotals(nil)

	require.Len(t, buckets, 3)
	assert.Equal(t, types.ShiftLabels[1], buckets[0].Name)
	assert.Equal(t, types.ShiftLabels[2], buckets[1].Name)
	assert.Equal(t, types.ShiftLabels[3], buckets[2].Name)
	for _, b := range buckets {
		assert.Zero(t, b.Value)
	}
}

func TestShiftTotals_UnexpectedShiftKeepsLiteralKey(t *testing.T) {
	rows := append(sampleDay(), models.TrafficRow{Shift: 4, Tunai: 7})

	buckets := ShiftTotals(rows)

	require.Len(t, buckets, 4)
	assert.Equal(t, int64(15), bucketValue(t, buckets, types.ShiftLabels[1]))
	assert.Equal(t, int64(20), bucketValue(t, buckets, types.ShiftLabels[2]))
	assert.Equal(t, int64(3), bucketValue(t, buckets, types.ShiftLabels[3]))
	assert.Equal(t, int64(7), bucketValue(t, buckets, "Shift 4"))
}

func TestBranchTotals_DescendingUntruncated(t *testing.T) {
	buckets := BranchTotals(sampleDay())

	require.Len(t, buckets, 2)
	assert.Equal(t, "Ruas 1", buckets[0].Name)
	assert.Equal(t, int64(35), buckets[0].Value)
	assert.Equal(t, "Ruas 2", buckets[1].Name)
	assert.Equal(t, int64(3), buckets[1].Value)
}

func TestModeTotal(t *testing.T) {
	row := models.TrafficRow{
		Tunai: 10, EBca: 1, EBri: 2, EBni: 3, EMandiri: 4, EDKI: 5, EMega: 6, ENobu: 7,
		EFlo: 20, DinasOpr: 1, DinasMitra: 2, DinasKary: 3,
	}

	cases := []struct {
		mode types.PaymentMode
		want int64
	}{
		{types.ModeTunai, 10},
		{types.ModeEToll, 28},
		{types.ModeFlo, 20},
		{types.ModeKTP, 6},
		{types.ModeETollTunaiFlo, 58},
		{types.ModeKeseluruhan, 64},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ModeTotal(row, tc.mode), string(tc.mode))
	}
}

func TestStats(t *testing.T) {
	got := Stats(sampleDay())

	assert.Equal(t, int64(38), got.TotalTransactions)
	assert.Equal(t, int64(380000), got.TotalRevenue)
	// 38/24 = 1.58..., rounded to 2
	assert.Equal(t, int64(2), got.AvgPerHour)
	assert.Equal(t, 1, got.TotalGerbang)
	assert.Equal(t, 2, got.TotalBranches)
}

func TestStats_EmptyInput(t *testing.T) {
	got := Stats(nil)
	assert.Zero(t, got.TotalTransactions)
	assert.Zero(t, got.TotalRevenue)
	assert.Zero(t, got.AvgPerHour)
	assert.Zero(t, got.TotalGerbang)
	assert.Zero(t, got.TotalBranches)
}

func TestClusterTotalsOf(t *testing.T) {
	got := ClusterTotalsOf(sampleDay())

	assert.Equal(t, int64(10), got.TotalTunai)
	assert.Equal(t, int64(5), got.TotalEToll)
	assert.Equal(t, int64(20), got.TotalFlo)
	assert.Equal(t, int64(3), got.TotalKTP)
	assert.Equal(t, int64(35), got.TotalETollTunaiFlo)
	assert.Equal(t, int64(38), got.TotalKeseluruhan)
}
