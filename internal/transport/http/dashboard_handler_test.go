package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apierrors "fidash/internal/errors"
	"fidash/internal/exporter"
	"fidash/internal/services"
	"fidash/pkg/contracts/domain"
)

// MockDashboardService mocks DashboardServiceInterface
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Overview(ctx context.Context, f services.Filters) *services.OverviewPage {
	return m.Called(ctx, f).Get(0).(*services.OverviewPage)
}

func (m *MockDashboardService) Coverage(ctx context.Context, f services.Filters) *services.CoveragePage {
	return m.Called(ctx, f).Get(0).(*services.CoveragePage)
}

func (m *MockDashboardService) Trends(ctx context.Context, f services.Filters) *services.TrendsPage {
	return m.Called(ctx, f).Get(0).(*services.TrendsPage)
}

func (m *MockDashboardService) Events(ctx context.Context, f services.Filters) *services.EventsPage {
	return m.Called(ctx, f).Get(0).(*services.EventsPage)
}

func (m *MockDashboardService) Forecasts(ctx context.Context, f services.Filters) *services.ForecastsPage {
	return m.Called(ctx, f).Get(0).(*services.ForecastsPage)
}

func (m *MockDashboardService) Indicators(ctx context.Context) *services.MetaIndicators {
	return m.Called(ctx).Get(0).(*services.MetaIndicators)
}

func (m *MockDashboardService) Categories(ctx context.Context) *services.MetaCategories {
	return m.Called(ctx).Get(0).(*services.MetaCategories)
}

func (m *MockDashboardService) FilterMeta(ctx context.Context) *services.MetaFilters {
	return m.Called(ctx).Get(0).(*services.MetaFilters)
}

func (m *MockDashboardService) ExportForecasts(ctx context.Context, w io.Writer) error {
	return m.Called(ctx, w).Error(0)
}

func (m *MockDashboardService) HasForecasts(ctx context.Context) bool {
	return m.Called(ctx).Bool(0)
}

func (m *MockDashboardService) Reload(ctx context.Context) {
	m.Called(ctx)
}

func newTestHandler(service DashboardServiceInterface) chi.Router {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewDashboardHandler(service, logger, apierrors.NewErrorHandler(logger, false))

	r := chi.NewRouter()
	r.Mount("/api", handler.Routes())
	return r
}

func TestGetPage_Overview(t *testing.T) {
	service := new(MockDashboardService)
	service.On("Overview", mock.Anything, services.Filters{}).
		Return(&services.OverviewPage{Title: "Ethiopia Financial Inclusion Dashboard"})

	router := newTestHandler(service)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/pages/overview", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var page services.OverviewPage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, "Ethiopia Financial Inclusion Dashboard", page.Title)
	service.AssertExpectations(t)
}

func TestGetPage_FiltersBound(t *testing.T) {
	service := new(MockDashboardService)
	expected := services.Filters{
		FromYear:   2015,
		ToYear:     2025,
		Scenario:   domain.ScenarioOptimistic,
		Indicators: []string{"ACC_OWNERSHIP", "USG_DIGITAL_PAYMENT"},
	}
	service.On("Trends", mock.Anything, expected).Return(&services.TrendsPage{})

	router := newTestHandler(service)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/api/pages/trends?from_year=2015&to_year=2025&scenario=optimistic&indicators=ACC_OWNERSHIP,USG_DIGITAL_PAYMENT", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	service.AssertExpectations(t)
}

func TestGetPage_UnknownPage(t *testing.T) {
	router := newTestHandler(new(MockDashboardService))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/pages/bogus", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var problem map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Equal(t, "/errors/page/not-found", problem["type"])
}

func TestGetPage_InvalidScenario(t *testing.T) {
	router := newTestHandler(new(MockDashboardService))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/pages/overview?scenario=wild", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var problem map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Equal(t, "/errors/validation", problem["type"])
	assert.Equal(t, "VALIDATION_FAILED", problem["error_code"])
}

func TestGetPage_InvalidYears(t *testing.T) {
	router := newTestHandler(new(MockDashboardService))

	tests := []struct {
		name  string
		query string
	}{
		{"non numeric", "?from_year=abc"},
		{"out of range", "?from_year=1492"},
		{"inverted range", "?from_year=2025&to_year=2015"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/pages/overview"+tt.query, nil))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestMetaEndpoints(t *testing.T) {
	service := new(MockDashboardService)
	service.On("Indicators", mock.Anything).
		Return(&services.MetaIndicators{Indicators: []string{"ACC_OWNERSHIP"}})
	service.On("Categories", mock.Anything).
		Return(&services.MetaCategories{Categories: []string{"policy"}})
	service.On("FilterMeta", mock.Anything).
		Return(&services.MetaFilters{MinYear: 2014, MaxYear: 2027, Scenarios: []string{"base", "optimistic", "pessimistic"}})

	router := newTestHandler(service)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/meta/indicators", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ACC_OWNERSHIP")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/meta/categories", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "policy")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/meta/filters", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	var meta services.MetaFilters
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &meta))
	assert.Equal(t, 2027, meta.MaxYear)
}

func TestExportForecasts(t *testing.T) {
	service := new(MockDashboardService)
	service.On("HasForecasts", mock.Anything).Return(true)
	service.On("ExportForecasts", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			w := args.Get(1).(io.Writer)
			exporter.WriteForecastCSV(w, []domain.ForecastRow{
				{IndicatorCode: "ACC_OWNERSHIP", Year: 2027, Scenario: domain.ScenarioBase, ForecastValue: 57.3},
			})
		}).
		Return(nil)

	router := newTestHandler(service)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/export/forecasts", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="ethiopia_fi_forecast_2025_2027.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Contains(t, rec.Body.String(), "ACC_OWNERSHIP,2027,base,57.3")
}

func TestExportForecasts_MissingData(t *testing.T) {
	service := new(MockDashboardService)
	service.On("HasForecasts", mock.Anything).Return(false)

	router := newTestHandler(service)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/export/forecasts", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var problem map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Equal(t, "/errors/forecasts/missing", problem["type"])
}

func TestReloadData(t *testing.T) {
	service := new(MockDashboardService)
	service.On("Reload", mock.Anything).Return()

	router := newTestHandler(service)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/data/reload", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)
	service.AssertExpectations(t)
}
