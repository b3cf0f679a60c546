package http

import (
	"context"
	"io"

	"fidash/internal/services"
)

// DashboardServiceInterface defines what the handlers need from the page
// rendering service. Pages never error; only the export can fail, and
// only on the write path.
type DashboardServiceInterface interface {
	Overview(ctx context.Context, f services.Filters) *services.OverviewPage
	Coverage(ctx context.Context, f services.Filters) *services.CoveragePage
	Trends(ctx context.Context, f services.Filters) *services.TrendsPage
	Events(ctx context.Context, f services.Filters) *services.EventsPage
	Forecasts(ctx context.Context, f services.Filters) *services.ForecastsPage

	Indicators(ctx context.Context) *services.MetaIndicators
	Categories(ctx context.Context) *services.MetaCategories
	FilterMeta(ctx context.Context) *services.MetaFilters

	ExportForecasts(ctx context.Context, w io.Writer) error
	HasForecasts(ctx context.Context) bool
	Reload(ctx context.Context)
}

// HealthServiceInterface defines what the health handler needs.
type HealthServiceInterface interface {
	Check(ctx context.Context) *services.HealthStatus
	Live(ctx context.Context) bool
	Ready(ctx context.Context) bool
	Version(ctx context.Context) *services.VersionInfo
}
