package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	envVars := []string{
		"FIDASH_SERVER_PORT", "FIDASH_SERVER_READ_TIMEOUT",
		"FIDASH_LOGGING_LEVEL", "FIDASH_LOGGING_OUTPUT",
		"FIDASH_PATHS_DATA_RAW_DIR", "FIDASH_PATHS_DATA_PROCESSED_DIR",
		"FIDASH_SECURITY_ALLOWED_ORIGINS",
	}
	for _, v := range envVars {
		t.Setenv(v, "")
		os.Unsetenv(v)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "data/raw", cfg.Paths.DataRawDir)
	assert.Equal(t, "data/processed", cfg.Paths.DataProcessedDir)
	assert.True(t, cfg.Security.RateLimit.Enabled)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("FIDASH_SERVER_PORT", "9191")
	t.Setenv("FIDASH_LOGGING_LEVEL", "debug")
	t.Setenv("FIDASH_PATHS_DATA_PROCESSED_DIR", "/srv/fi/processed")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/srv/fi/processed", cfg.Paths.DataProcessedDir)
	assert.Equal(t, filepath.Join("/srv/fi/processed", ForecastLongCSV), cfg.ProcessedPath(ForecastLongCSV))
}

func TestValidateRejectsBadPort(t *testing.T) {
	cfg := Default()
	cfg.Server.Port = -1
	err := cfg.validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid server port")
}

func TestValidateNormalizesLogging(t *testing.T) {
	cfg := Default()
	cfg.Logging.Format = "text"
	cfg.Logging.Output = "syslog"
	cfg.Logging.FilePath = ""

	require.NoError(t, cfg.validate())
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "both", cfg.Logging.Output)
	assert.Equal(t, "logs/app.log", cfg.Logging.FilePath)
}

func TestPathHelpers(t *testing.T) {
	cfg := Default()
	assert.Equal(t, filepath.Join("data", "raw", UnifiedWorkbook), cfg.RawPath(UnifiedWorkbook))
	assert.Equal(t, filepath.Join("data", "processed", UnifiedEnrichedCSV), cfg.ProcessedPath(UnifiedEnrichedCSV))
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "present.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n"), 0o644))

	assert.True(t, FileExists(path))
	assert.False(t, FileExists(filepath.Join(dir, "absent.csv")))
	assert.False(t, FileExists(dir))
}
