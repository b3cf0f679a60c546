package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fidash/internal/config"
)

func TestStore_SnapshotMemoizes(t *testing.T) {
	cfg, _, processed := newTestConfig(t)
	writeFixture(t, processed, config.UnifiedEnrichedCSV, unifiedFixture)

	store := NewStore(NewLoader(cfg, testLogger()), testLogger(), nil)

	first := store.Snapshot(context.Background())
	require.Len(t, first.Unified, 8)

	// A file change is invisible until Reload: the load ran once
	require.NoError(t, os.Remove(filepath.Join(processed, config.UnifiedEnrichedCSV)))
	second := store.Snapshot(context.Background())
	assert.Len(t, second.Unified, 8)
}

func TestStore_ReloadStartsFreshGeneration(t *testing.T) {
	cfg, _, processed := newTestConfig(t)
	writeFixture(t, processed, config.UnifiedEnrichedCSV, unifiedFixture)

	store := NewStore(NewLoader(cfg, testLogger()), testLogger(), nil)

	first := store.Snapshot(context.Background())
	require.Len(t, first.Unified, 8)

	require.NoError(t, os.Remove(filepath.Join(processed, config.UnifiedEnrichedCSV)))
	store.Reload(context.Background())

	second := store.Snapshot(context.Background())
	assert.Empty(t, second.Unified)
	assert.NotEmpty(t, second.Warnings)
}

func TestStore_WarningsAggregateAcrossDatasets(t *testing.T) {
	cfg, _, _ := newTestConfig(t)

	store := NewStore(NewLoader(cfg, testLogger()), testLogger(), nil)
	snapshot := store.Snapshot(context.Background())

	// unified + features + matrix + forecasts all missing
	assert.Len(t, snapshot.Warnings, 4)
	assert.Nil(t, snapshot.Features)
	assert.Nil(t, snapshot.Matrix)
	assert.False(t, snapshot.HasForecasts())
	assert.False(t, snapshot.HasBands())
}

func TestStore_WarmLoadsEverything(t *testing.T) {
	cfg, _, processed := newTestConfig(t)
	writeFixture(t, processed, config.UnifiedEnrichedCSV, unifiedFixture)
	writeFixture(t, processed, config.ForecastLongCSV,
		`indicator_code,year,scenario,forecast_value
ACC_OWNERSHIP,2027,base,57.3
`)

	store := NewStore(NewLoader(cfg, testLogger()), testLogger(), nil)
	require.NoError(t, store.Warm(context.Background()))

	// Warm populated the generation; Snapshot reads the same data
	snapshot := store.Snapshot(context.Background())
	assert.Len(t, snapshot.Unified, 8)
	assert.True(t, snapshot.HasForecasts())
}

func TestStore_SnapshotIsConcurrencySafe(t *testing.T) {
	cfg, _, processed := newTestConfig(t)
	writeFixture(t, processed, config.UnifiedEnrichedCSV, unifiedFixture)

	store := NewStore(NewLoader(cfg, testLogger()), testLogger(), nil)

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			snapshot := store.Snapshot(context.Background())
			assert.Len(t, snapshot.Unified, 8)
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
