package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jasamarga/toll-ops-gateway/internal/domain/models"
	"github.com/jasamarga/toll-ops-gateway/internal/domain/types"
	"github.com/jasamarga/toll-ops-gateway/internal/store"
	"github.com/jasamarga/toll-ops-gateway/pkg/logger"
)

var testLog = logger.InitLogger("export-test", logger.LevelError)

func TestFormatNumber(t *testing.T) {
	cases := map[int64]string{
		0:        "0",
		7:        "7",
		999:      "999",
		1000:     "1.000",
		1234567:  "1.234.567",
		-1234567: "-1.234.567",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatNumber(in))
	}
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "", FormatValue(nil))
	assert.Equal(t, "Ya", FormatValue(true))
	assert.Equal(t, "Tidak", FormatValue(false))
	assert.Equal(t, "1.234", FormatValue(int64(1234)))
	assert.Equal(t, "1.234", FormatValue(float64(1234)))
	assert.Equal(t, "02/11/2023", FormatValue("2023-11-02"))
	assert.Equal(t, "02/11/2023", FormatValue(time.Date(2023, 11, 2, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Gerbang 7", FormatValue("Gerbang 7"))
}

func TestPrepareRows_KeepsEveryRow(t *testing.T) {
	cols := []Column{{Key: "a", Title: "A"}, {Key: "b", Title: "B"}}
	data := []map[string]any{
		{"a": int64(1000), "b": true},
		{"a": nil},
		{},
	}

	rows := PrepareRows(data, cols)

	require.Len(t, rows, 3)
	assert.Equal(t, []string{"1.000", "Ya"}, rows[0])
	assert.Equal(t, []string{"", ""}, rows[1])
	assert.Equal(t, []string{"", ""}, rows[2])
}

type stubSource struct {
	rows []models.TrafficRow
}

func (s *stubSource) DailyRows(context.Context, *store.Store, string) ([]models.TrafficRow, error) {
	return s.rows, nil
}

func testSession(t *testing.T) *store.Store {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "/trafficlight", nil)
	w := httptest.NewRecorder()
	return store.New(
		store.NewDeviceMedium(store.NewMemoryDeviceStore(), "device-1"),
		store.NewCookieMedium(w, r, store.DefaultCookieMaxAge),
		testLog,
	)
}

func sampleRows() []models.TrafficRow {
	return []models.TrafficRow{
		{ID: 1, IdCabang: 1, IdGerbang: 7, IdGardu: 2, Tanggal: "2023-11-01", Shift: 1, Golongan: 1, Tunai: 1500, EBca: 2000},
		{ID: 2, IdCabang: 2, IdGerbang: 8, IdGardu: 1, Tanggal: "2023-11-01", Shift: 2, Golongan: 2, EFlo: 12345},
	}
}

func TestDaily_CSVRoundTrip(t *testing.T) {
	svc := New(&stubSource{rows: sampleRows()}, "export-test", testLog)

	file, err := svc.Daily(context.Background(), testSession(t), "2023-11-01", types.FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "laporan-lalin-2023-11-01.csv", file.Name)

	records, err := csv.NewReader(bytes.NewReader(file.Content)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3, "header plus both rows")

	header := records[0]
	assert.Equal(t, "Tanggal", header[0])
	assert.Equal(t, "Total", header[len(header)-1])

	first := records[1]
	assert.Equal(t, "01/11/2023", first[0])
	assert.Equal(t, "1.500", first[6])
	assert.Equal(t, "2.000", first[7])
	assert.Equal(t, "3.500", first[len(first)-1])

	second := records[2]
	assert.Equal(t, "12.345", second[14])
}

func TestDaily_XLSX(t *testing.T) {
	svc := New(&stubSource{rows: sampleRows()}, "export-test", testLog)

	file, err := svc.Daily(context.Background(), testSession(t), "2023-11-01", types.FormatXLSX)
	require.NoError(t, err)
	assert.Equal(t, "laporan-lalin-2023-11-01.xlsx", file.Name)

	wb, err := excelize.OpenReader(bytes.NewReader(file.Content))
	require.NoError(t, err)
	defer wb.Close()

	rows, err := wb.GetRows("Laporan")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Tanggal", rows[0][0])
	assert.Equal(t, "3.500", rows[1][len(rows[1])-1])
}

func TestDaily_UnknownFormat(t *testing.T) {
	svc := New(&stubSource{}, "export-test", testLog)

	_, err := svc.Daily(context.Background(), testSession(t), "2023-11-01", types.ExportFormat("pdf"))

	assert.ErrorIs(t, err, types.ErrInvalidPayload)
}
