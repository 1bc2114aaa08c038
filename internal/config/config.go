// Package config loads pregex's environment/.env-driven configuration:
// log verbosity, the NFA disk-cache directory, per-distribution
// default parameters, and a batch worker count. The distribution
// defaults and the worker count are only loaded here: the AST builder
// uses its own built-in defaults, and pregex.Batch starts one goroutine
// per input.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds the complete application configuration.
type Config struct {
	Verbose      bool
	CacheDir     string
	LogDir       string
	BatchWorkers int

	// Per-distribution default parameters read from the environment.
	// The AST builder does not read these fields; a clause that omits
	// its argument always gets the builder's built-in default.
	DefaultGeoP  float64
	DefaultBinP  float64
	DefaultBerP  float64
	DefaultZipfS float64
}

// Load loads configuration from .env files and environment variables,
// binary-relative .env first, then working-directory .env, then the
// process environment — the same two-phase order as the config loader
// in the retrieved mcs-mcp repo.
func Load() (*Config, error) {
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("loaded configuration from binary directory")
		}
	}

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found in working directory, relying on environment variables")
	}

	cacheDir := getEnv("PREGEX_CACHE_DIR", defaultCacheDir(exeDir))
	logDir := getEnv("PREGEX_LOG_DIR", filepath.Join(cacheDir, "..", "logs"))

	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		log.Warn().Err(err).Str("path", cacheDir).Msg("failed to create cache directory")
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		log.Warn().Err(err).Str("path", logDir).Msg("failed to create log directory")
	}

	cfg := &Config{
		Verbose:      getEnvBool("VERBOSE", false),
		CacheDir:     cacheDir,
		LogDir:       logDir,
		BatchWorkers: getEnvInt("PREGEX_BATCH_WORKERS", 8),
		DefaultGeoP:  getEnvFloat("PREGEX_DEFAULT_GEO_P", 0.5),
		DefaultBinP:  getEnvFloat("PREGEX_DEFAULT_BIN_P", 1.0),
		DefaultBerP:  getEnvFloat("PREGEX_DEFAULT_BER_P", 1.0),
		DefaultZipfS: getEnvFloat("PREGEX_DEFAULT_ZIPF_S", 1.0),
	}

	return cfg, nil
}

func defaultCacheDir(exeDir string) string {
	if exeDir != "" {
		return filepath.Join(exeDir, "cache")
	}
	return filepath.Join(".", "cache")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}
