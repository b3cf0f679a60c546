package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"fidash/internal/config"
	apierrors "fidash/internal/errors"
	"fidash/internal/services"
	"fidash/pkg/contracts/domain"
)

var validate = validator.New()

// DashboardHandler serves the page view models, selector metadata, the
// forecast export and the data reload hook.
type DashboardHandler struct {
	service      DashboardServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service DashboardServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	return &DashboardHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "dashboard_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the dashboard routes
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/pages", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Get("/{page}", h.GetPage)
	})

	r.Route("/meta", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Get("/indicators", h.GetIndicators)
		r.Get("/categories", h.GetCategories)
		r.Get("/filters", h.GetFilterMeta)
	})

	r.Get("/export/forecasts", h.ExportForecasts)
	r.Post("/data/reload", h.ReloadData)

	return r
}

// filterParams is the validated shape of the shared query parameters.
type filterParams struct {
	FromYear int    `validate:"omitempty,gte=1900,lte=2100"`
	ToYear   int    `validate:"omitempty,gte=1900,lte=2100"`
	Scenario string `validate:"omitempty,oneof=base optimistic pessimistic"`
}

// bindFilters parses and validates the shared page filters from the query
// string.
func bindFilters(r *http.Request) (services.Filters, *apierrors.APIError) {
	q := r.URL.Query()
	var f services.Filters

	parseYear := func(name string) (int, *apierrors.APIError) {
		raw := q.Get(name)
		if raw == "" {
			return 0, nil
		}
		year, err := strconv.Atoi(raw)
		if err != nil {
			return 0, apierrors.ErrValidation(name, fmt.Sprintf("%q is not a valid year", raw))
		}
		return year, nil
	}

	fromYear, apiErr := parseYear("from_year")
	if apiErr != nil {
		return f, apiErr
	}
	toYear, apiErr := parseYear("to_year")
	if apiErr != nil {
		return f, apiErr
	}

	params := filterParams{
		FromYear: fromYear,
		ToYear:   toYear,
		Scenario: q.Get("scenario"),
	}
	if err := validate.Struct(params); err != nil {
		field := "filters"
		if ve, ok := err.(validator.ValidationErrors); ok && len(ve) > 0 {
			field = strings.ToLower(ve[0].Field())
		}
		return f, apierrors.ErrValidation(field, "invalid filter value")
	}
	if fromYear != 0 && toYear != 0 && fromYear > toYear {
		return f, apierrors.ErrValidation("from_year", "from_year must not exceed to_year")
	}

	f.FromYear = fromYear
	f.ToYear = toYear
	f.Scenario = domain.Scenario(params.Scenario)
	f.Indicators = splitMulti(q["indicators"])
	f.Categories = splitMulti(q["categories"])
	f.Indicator = q.Get("indicator")

	return f, nil
}

// splitMulti accepts both repeated params and comma-separated lists.
func splitMulti(values []string) []string {
	var out []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// GetPage handles GET /api/pages/{page}
func (h *DashboardHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	page := chi.URLParam(r, "page")

	filters, apiErr := bindFilters(r)
	if apiErr != nil {
		h.errorHandler.HandleError(w, r, apiErr)
		return
	}

	h.logger.InfoContext(r.Context(), "rendering page",
		slog.String("page", page),
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("scenario", string(filters.Scenario)))

	var view interface{}
	switch page {
	case "overview":
		view = h.service.Overview(r.Context(), filters)
	case "coverage":
		view = h.service.Coverage(r.Context(), filters)
	case "trends":
		view = h.service.Trends(r.Context(), filters)
	case "events":
		view = h.service.Events(r.Context(), filters)
	case "forecasts":
		view = h.service.Forecasts(r.Context(), filters)
	default:
		h.errorHandler.HandleError(w, r, apierrors.ErrPageNotFound)
		return
	}

	render.JSON(w, r, view)
}

// GetIndicators handles GET /api/meta/indicators
func (h *DashboardHandler) GetIndicators(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.Indicators(r.Context()))
}

// GetCategories handles GET /api/meta/categories
func (h *DashboardHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.Categories(r.Context()))
}

// GetFilterMeta handles GET /api/meta/filters
func (h *DashboardHandler) GetFilterMeta(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.FilterMeta(r.Context()))
}

// ExportForecasts handles GET /api/export/forecasts. The body is the
// long-form forecast table as a BOM-prefixed CSV download.
func (h *DashboardHandler) ExportForecasts(w http.ResponseWriter, r *http.Request) {
	if !h.service.HasForecasts(r.Context()) {
		h.errorHandler.HandleError(w, r, apierrors.ErrForecastsMissing)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", config.ExportFileName))
	w.WriteHeader(http.StatusOK)

	if err := h.service.ExportForecasts(r.Context(), w); err != nil {
		// Headers are gone; all we can do is log
		h.logger.ErrorContext(r.Context(), "forecast export failed mid-stream",
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.GetReqID(r.Context())))
	}
}

// ReloadData handles POST /api/data/reload
func (h *DashboardHandler) ReloadData(w http.ResponseWriter, r *http.Request) {
	h.service.Reload(r.Context())

	h.logger.InfoContext(r.Context(), "data reload triggered",
		slog.String("request_id", middleware.GetReqID(r.Context())))

	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]interface{}{
		"success": true,
		"message": "Dataset cache invalidated. Datasets reload on next access.",
	})
}
