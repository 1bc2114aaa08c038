package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadAppliesEnvOverrides(t *testing.T) {
	t.Setenv("VERBOSE", "true")
	t.Setenv("PREGEX_CACHE_DIR", t.TempDir())
	t.Setenv("PREGEX_BATCH_WORKERS", "4")
	t.Setenv("PREGEX_DEFAULT_GEO_P", "0.25")

	cfg, err := Load()
	require.NoError(t, err)
	require.True(t, cfg.Verbose)
	require.Equal(t, 4, cfg.BatchWorkers)
	require.Equal(t, 0.25, cfg.DefaultGeoP)
}

func TestLoadFallsBackToDefaultsWithoutEnv(t *testing.T) {
	for _, key := range []string{"VERBOSE", "PREGEX_CACHE_DIR", "PREGEX_BATCH_WORKERS", "PREGEX_DEFAULT_GEO_P"} {
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := Load()
	require.NoError(t, err)
	require.False(t, cfg.Verbose)
	require.Equal(t, 8, cfg.BatchWorkers)
	require.Equal(t, 0.5, cfg.DefaultGeoP)
}
