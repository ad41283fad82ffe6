package gate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jasamarga/toll-ops-gateway/internal/domain/models"
	"github.com/jasamarga/toll-ops-gateway/internal/domain/types"
	"github.com/jasamarga/toll-ops-gateway/internal/store"
	"github.com/jasamarga/toll-ops-gateway/pkg/logger"
)

var testLog = logger.InitLogger("gate-test", logger.LevelError)

type stubBackend struct {
	rows    []models.GatewayRecord
	deleted []models.GatewayKey
	created []models.GatewayRecord
}

func (s *stubBackend) ListGerbangs(context.Context, *store.Store, models.GatewayFilter) ([]models.GatewayRecord, models.PageInfo, error) {
	return s.rows, models.PageInfo{TotalPages: 1, CurrentPage: 1, Count: len(s.rows)}, nil
}

func (s *stubBackend) CreateGerbang(_ context.Context, _ *store.Store, g models.GatewayRecord) error {
	s.created = append(s.created, g)
	return nil
}

func (s *stubBackend) UpdateGerbang(context.Context, *store.Store, models.GatewayRecord) error {
	return nil
}

func (s *stubBackend) DeleteGerbang(_ context.Context, _ *store.Store, key models.GatewayKey) error {
	s.deleted = append(s.deleted, key)
	return nil
}

func testSession(t *testing.T) *store.Store {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "/master-gerbang", nil)
	w := httptest.NewRecorder()
	return store.New(
		store.NewDeviceMedium(store.NewMemoryDeviceStore(), "device-1"),
		store.NewCookieMedium(w, r, store.DefaultCookieMaxAge),
		testLog,
	)
}

func TestList_FiltersByGateAndBranchName(t *testing.T) {
	backend := &stubBackend{rows: []models.GatewayRecord{
		{ID: 1, IdCabang: 1, NamaGerbang: "Cikampek Utama", NamaCabang: "Jakarta-Cikampek"},
		{ID: 2, IdCabang: 1, NamaGerbang: "Kalihurip", NamaCabang: "Cipularang"},
		{ID: 3, IdCabang: 2, NamaGerbang: "Pasteur", NamaCabang: "Padaleunyi"},
	}}
	svc := New(backend, testLog)

	rows, _, err := svc.List(context.Background(), testSession(t), models.GatewayFilter{Search: "cikampek"})

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Cikampek Utama", rows[0].NamaGerbang)
}

func TestList_NoSearchReturnsAll(t *testing.T) {
	backend := &stubBackend{rows: []models.GatewayRecord{{ID: 1, IdCabang: 1}}}
	svc := New(backend, testLog)

	rows, page, err := svc.List(context.Background(), testSession(t), models.GatewayFilter{})

	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, 1, page.Count)
}

func TestCreate_RejectsIncompleteRecord(t *testing.T) {
	backend := &stubBackend{}
	svc := New(backend, testLog)

	err := svc.Create(context.Background(), testSession(t), models.GatewayRecord{ID: 1, IdCabang: 1, NamaGerbang: " "})

	assert.ErrorIs(t, err, types.ErrInvalidPayload)
	assert.Empty(t, backend.created)
}

func TestDelete_UsesCompositeKey(t *testing.T) {
	backend := &stubBackend{}
	svc := New(backend, testLog)

	err := svc.Delete(context.Background(), testSession(t), models.GatewayKey{ID: 4, IdCabang: 2})

	require.NoError(t, err)
	require.Len(t, backend.deleted, 1)
	assert.Equal(t, models.GatewayKey{ID: 4, IdCabang: 2}, backend.deleted[0])
}

func TestDelete_RejectsZeroKey(t *testing.T) {
	svc := New(&stubBackend{}, testLog)

	err := svc.Delete(context.Background(), testSession(t), models.GatewayKey{ID: 4})

	assert.ErrorIs(t, err, types.ErrInvalidPayload)
}
