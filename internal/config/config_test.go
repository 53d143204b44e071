package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recon-analysis-backend/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, time.Hour, cfg.Engine.DataLagThreshold())
	assert.Equal(t, 4, cfg.Engine.JoinWorkers)
	assert.Equal(t, 10*time.Second, cfg.Engine.FetchTimeout())
	assert.False(t, cfg.SeedDemo)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("DATA_LAG_THRESHOLD_SECONDS", "120")
	t.Setenv("JOIN_WORKERS", "8")
	t.Setenv("SEED_DEMO_DATA", "true")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, 2*time.Minute, cfg.Engine.DataLagThreshold())
	assert.Equal(t, 8, cfg.Engine.JoinWorkers)
	assert.True(t, cfg.SeedDemo)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")

	_, err := config.Load()
	assert.Error(t, err)
}
