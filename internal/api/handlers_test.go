package api

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recon-insights/internal/domain"
	"recon-insights/internal/usecase"
	mock_usecase "recon-insights/internal/usecase/mocks"
)

var (
	snapshotBody = json.RawMessage(`{
		"summary": {"ordersDelivered": {"amount": 5000, "number": 50}},
		"reconciled": {"payu": {"total_count": 45, "total_sale_amount": 4500, "total_comission": 90}},
		"unreconciled": {"payu": {"total_count": 5, "total_sale_amount": 500}},
		"unreconciled_reasons": [{"reason": "Short payment, partial", "amount": 500, "count": 5}]
	}`)
	fixedNow = time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)
)

func newTestServer(t *testing.T, source usecase.SnapshotSource) http.Handler {
	t.Helper()
	h := &Handlers{
		uc: usecase.NewDashboardUseCase(source),
		defaults: domain.DashboardRequest{
			Platforms: []domain.Platform{domain.PlatformD2C},
			DateField: domain.DateFieldSettlement,
			ActiveTab: "overview",
		},
		now: func() time.Time { return fixedNow },
	}
	return h.routes()
}

func TestHealth(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	rec := httptest.NewRecorder()
	newTestServer(t, mock_usecase.NewMockSnapshotSource(ctrl)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestGetDashboard(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name       string
		url        string
		setup      func(source *mock_usecase.MockSnapshotSource)
		wantStatus int
		check      func(t *testing.T, body []byte)
	}{
		{
			name: "query overrides defaults",
			url:  "/api/v1/dashboard?platform=amazon&date_field=invoice&start=2025-01-01&end=2025-01-31",
			setup: func(source *mock_usecase.MockSnapshotSource) {
				q := domain.Query{
					Platform:  domain.PlatformAmazon,
					DateField: domain.DateFieldInvoice,
					Start:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
					End:       time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
				}
				source.EXPECT().GetSnapshot(gomock.Any(), q).Return(snapshotBody, nil)
				source.EXPECT().GetAgeing(gomock.Any(), q).Return(nil, nil)
				source.EXPECT().GetGrowth(gomock.Any(), q).Return(nil, nil)
			},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var view domain.DashboardView
				require.NoError(t, json.Unmarshal(body, &view))
				assert.InDelta(t, 90.0, view.Summary.ReconciliationPercent, 0.0001)
				assert.Equal(t, domain.BandGood, view.Summary.Band)
			},
		},
		{
			name:       "invalid platform",
			url:        "/api/v1/dashboard?platform=ebay",
			setup:      func(source *mock_usecase.MockSnapshotSource) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid date",
			url:        "/api/v1/dashboard?start=01-31-2025",
			setup:      func(source *mock_usecase.MockSnapshotSource) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "end before start",
			url:        "/api/v1/dashboard?start=2025-02-01&end=2025-01-01",
			setup:      func(source *mock_usecase.MockSnapshotSource) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "upstream failure",
			url:  "/api/v1/dashboard",
			setup: func(source *mock_usecase.MockSnapshotSource) {
				source.EXPECT().GetSnapshot(gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))
				source.EXPECT().GetAgeing(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
				source.EXPECT().GetGrowth(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
			},
			wantStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := mock_usecase.NewMockSnapshotSource(ctrl)
			tt.setup(source)

			rec := httptest.NewRecorder()
			newTestServer(t, source).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.url, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.check != nil {
				tt.check(t, rec.Body.Bytes())
			}
		})
	}
}

func TestExportDashboard(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := mock_usecase.NewMockSnapshotSource(ctrl)
	source.EXPECT().GetSnapshot(gomock.Any(), gomock.Any()).Return(snapshotBody, nil).Times(2)
	source.EXPECT().GetAgeing(gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)
	source.EXPECT().GetGrowth(gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)
	server := newTestServer(t, source)

	url := "/api/v1/dashboard/export?start=2025-01-01&end=2025-01-31"
	first := httptest.NewRecorder()
	server.ServeHTTP(first, httptest.NewRequest(http.MethodGet, url, nil))
	second := httptest.NewRecorder()
	server.ServeHTTP(second, httptest.NewRequest(http.MethodGet, url, nil))

	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "text/csv; charset=utf-8", first.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="reconciliation_settlement_2025-01-01_2025-01-31.csv"`, first.Header().Get("Content-Disposition"))
	assert.Equal(t, first.Body.String(), second.Body.String())

	reader := csv.NewReader(strings.NewReader(first.Body.String()))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	require.NoError(t, err)

	var generatedAt, reason string
	for _, rec := range records {
		switch {
		case rec[0] == "Context" && rec[1] == "Generated At":
			generatedAt = rec[2]
		case rec[0] == "Unreconciled Reasons" && rec[1] != "Reason":
			reason = rec[1]
		}
	}
	assert.Equal(t, "2025-02-01T10:00:00Z", generatedAt)
	assert.Equal(t, "Short payment, partial", reason)
}

func TestBuildViews(t *testing.T) {
	server := newTestServer(t, nil)

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{
			name:       "snapshot with ageing",
			body:       `{"snapshot":` + string(snapshotBody) + `,"ageing":[{"settlement_provider":"payu","averageDaysToSettle":3,"distribution":{"2-3d":4}}]}`,
			wantStatus: http.StatusOK,
		},
		{name: "missing snapshot", body: `{"ageing":[]}`, wantStatus: http.StatusBadRequest},
		{name: "not json", body: `snapshot=1`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/views", strings.NewReader(tt.body))
			server.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			if tt.wantStatus != http.StatusOK {
				return
			}

			var view domain.DashboardView
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
			assert.InDelta(t, 90.0, view.Summary.ReconciliationPercent, 0.0001)
			require.Len(t, view.Ageing.Providers, 1)
			assert.Equal(t, "PayU", view.Ageing.Providers[0].Provider)
		})
	}
}
