package dataset

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/errgroup"

	"fidash/internal/infrastructure"
	"fidash/pkg/contracts/domain"
)

// Store memoizes the four dataset loads for the process lifetime. Each
// dataset loads at most once per generation; Reload starts a fresh
// generation. Restart or Reload are the only refresh mechanisms.
type Store struct {
	loader  *Loader
	logger  *slog.Logger
	metrics *infrastructure.DashboardMetrics

	mu    sync.Mutex
	state *storeState
}

// storeState is one memoization generation.
type storeState struct {
	unifiedOnce sync.Once
	unified     []domain.UnifiedRow
	impactLinks []domain.ImpactLink
	unifiedWarn []string

	featuresOnce sync.Once
	features     *domain.EventFeatures
	featuresWarn []string

	matrixOnce sync.Once
	matrix     *domain.ImpactMatrix
	matrixWarn []string

	forecastOnce sync.Once
	forecastLong []domain.ForecastRow
	forecastWide []domain.ForecastBand
	forecastWarn []string
}

// NewStore creates a memoizing store over the loader. Metrics may be nil.
func NewStore(loader *Loader, logger *slog.Logger, metrics *infrastructure.DashboardMetrics) *Store {
	return &Store{
		loader:  loader,
		logger:  logger.With(slog.String("component", "dataset_store")),
		metrics: metrics,
		state:   &storeState{},
	}
}

func (s *Store) current() *storeState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Reload discards the memoized datasets. The next access re-reads from
// disk. Requests in flight keep the generation they started with.
func (s *Store) Reload(ctx context.Context) {
	s.mu.Lock()
	s.state = &storeState{}
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "dataset cache invalidated")
}

// Warm loads all four datasets concurrently. Loads never fail; the error
// return only reflects context cancellation.
func (s *Store) Warm(ctx context.Context) error {
	st := s.current()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.ensureUnified(ctx, st)
		return ctx.Err()
	})
	g.Go(func() error {
		s.ensureFeatures(ctx, st)
		return ctx.Err()
	})
	g.Go(func() error {
		s.ensureMatrix(ctx, st)
		return ctx.Err()
	})
	g.Go(func() error {
		s.ensureForecasts(ctx, st)
		return ctx.Err()
	})

	return g.Wait()
}

// Snapshot assembles one generation's datasets, loading any that have not
// been touched yet. A concurrent Reload does not affect a snapshot already
// being assembled.
func (s *Store) Snapshot(ctx context.Context) *domain.Snapshot {
	st := s.current()
	s.ensureUnified(ctx, st)
	s.ensureFeatures(ctx, st)
	s.ensureMatrix(ctx, st)
	s.ensureForecasts(ctx, st)

	var warnings []string
	warnings = append(warnings, st.unifiedWarn...)
	warnings = append(warnings, st.featuresWarn...)
	warnings = append(warnings, st.matrixWarn...)
	warnings = append(warnings, st.forecastWarn...)

	return &domain.Snapshot{
		Unified:      st.unified,
		ImpactLinks:  st.impactLinks,
		Features:     st.features,
		Matrix:       st.matrix,
		ForecastLong: st.forecastLong,
		ForecastWide: st.forecastWide,
		Warnings:     warnings,
	}
}

func (s *Store) ensureUnified(ctx context.Context, st *storeState) {
	st.unifiedOnce.Do(func() {
		start := time.Now()
		st.unified, st.impactLinks, st.unifiedWarn = s.loader.LoadUnified(ctx)
		s.record(ctx, "unified", time.Since(start), len(st.unifiedWarn))
	})
}

func (s *Store) ensureFeatures(ctx context.Context, st *storeState) {
	st.featuresOnce.Do(func() {
		start := time.Now()
		st.features, st.featuresWarn = s.loader.LoadEventFeatures(ctx)
		s.record(ctx, "event_features", time.Since(start), len(st.featuresWarn))
	})
}

func (s *Store) ensureMatrix(ctx context.Context, st *storeState) {
	st.matrixOnce.Do(func() {
		start := time.Now()
		st.matrix, st.matrixWarn = s.loader.LoadEventMatrix(ctx)
		s.record(ctx, "event_matrix", time.Since(start), len(st.matrixWarn))
	})
}

func (s *Store) ensureForecasts(ctx context.Context, st *storeState) {
	st.forecastOnce.Do(func() {
		start := time.Now()
		st.forecastLong, st.forecastWide, st.forecastWarn = s.loader.LoadForecasts(ctx)
		s.record(ctx, "forecasts", time.Since(start), len(st.forecastWarn))
	})
}

func (s *Store) record(ctx context.Context, dataset string, duration time.Duration, warnings int) {
	if s.metrics == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("dataset", dataset))
	s.metrics.DatasetLoadDuration.Record(ctx, duration.Seconds(), attrs)
	if warnings > 0 {
		s.metrics.DatasetLoadWarnings.Add(ctx, int64(warnings), attrs)
	}
}
