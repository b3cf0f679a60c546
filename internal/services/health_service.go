package services

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"fidash/internal/dataset"
)

// HealthService provides health check functionality
type HealthService struct {
	version   string
	buildTime string
	store     *dataset.Store
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
	Datasets  *DatasetHealth         `json:"datasets,omitempty"`
}

// DatasetHealth summarizes what the dataset store currently serves.
type DatasetHealth struct {
	UnifiedRows  int      `json:"unified_rows"`
	ImpactLinks  int      `json:"impact_links"`
	ForecastRows int      `json:"forecast_rows"`
	HasFeatures  bool     `json:"has_features"`
	HasMatrix    bool     `json:"has_matrix"`
	Warnings     []string `json:"warnings,omitempty"`
}

// VersionInfo represents build information
type VersionInfo struct {
	Version   string `json:"version"`
	BuildTime string `json:"build_time,omitempty"`
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// NewHealthService creates a new health service
func NewHealthService(version, buildTime string, store *dataset.Store, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		version:   version,
		buildTime: buildTime,
		store:     store,
		startTime: time.Now(),
		logger:    logger.With(slog.String("component", "health_service")),
	}
}

// Check returns the overall health status. The service is degraded, not
// down, when datasets carry warnings.
func (h *HealthService) Check(ctx context.Context) *HealthStatus {
	snap := h.store.Snapshot(ctx)

	status := "healthy"
	if len(snap.Warnings) > 0 {
		status = "degraded"
	}

	return &HealthStatus{
		Status:    status,
		Timestamp: time.Now(),
		Version:   h.version,
		Runtime: map[string]interface{}{
			"uptime_seconds": time.Since(h.startTime).Seconds(),
			"goroutines":     runtime.NumGoroutine(),
			"go_version":     runtime.Version(),
		},
		Datasets: &DatasetHealth{
			UnifiedRows:  len(snap.Unified),
			ImpactLinks:  len(snap.ImpactLinks),
			ForecastRows: len(snap.ForecastLong),
			HasFeatures:  snap.Features != nil,
			HasMatrix:    snap.Matrix != nil,
			Warnings:     snap.Warnings,
		},
	}
}

// Live reports process liveness. Always true while the process runs.
func (h *HealthService) Live(ctx context.Context) bool {
	return true
}

// Ready reports whether the service can serve pages. The dashboard is
// ready as soon as the store answers, even with degraded datasets.
func (h *HealthService) Ready(ctx context.Context) bool {
	return h.store.Snapshot(ctx) != nil
}

// Version returns build information.
func (h *HealthService) Version(ctx context.Context) *VersionInfo {
	return &VersionInfo{
		Version:   h.version,
		BuildTime: h.buildTime,
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}
