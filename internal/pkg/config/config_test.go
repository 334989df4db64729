package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{
		"SERVER_PORT", "LOG_LEVEL", "MAPBOX_TOKEN", "MAPBOX_BASE_URL", "DEFAULT_LANGUAGE",
		"GEOCODE_CONCURRENCY", "GEOCODE_TIMEOUT", "GEO_BATCH_URL", "GOOGLE_GENERATIVE_AI_API_KEY",
		"GEMINI_MODEL", "METRICS_ADDR", "OTEL_EXPORTER_OTLP_ENDPOINT", "GENERATION_TTL",
	} {
		t.Setenv(k, "")
	}

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "8091", cfg.ServerPort)
	assert.Equal(t, "https://api.mapbox.com", cfg.Mapbox.BaseURL)
	assert.Equal(t, "ko", cfg.Mapbox.DefaultLanguage)
	assert.Empty(t, cfg.Mapbox.Token)
	assert.Equal(t, 4, cfg.Geocode.Concurrency)
	assert.Equal(t, 8*time.Second, cfg.Geocode.Timeout)
	assert.Equal(t, 30*time.Minute, cfg.GenerationTTL)
	assert.Equal(t, ":9092", cfg.Observability.MetricsAddr)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GEOCODE_CONCURRENCY", "8")
	t.Setenv("GEOCODE_TIMEOUT", "2s")
	t.Setenv("GEO_BATCH_URL", "http://geo.internal:8091/")
	t.Setenv("PPROF_ADDR", "")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Geocode.Concurrency)
	assert.Equal(t, 2*time.Second, cfg.Geocode.Timeout)
	assert.Equal(t, "http://geo.internal:8091", cfg.Geocode.BatchURL)
	assert.Empty(t, cfg.Observability.PprofAddr, "an explicitly empty PPROF_ADDR disables profiling")
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := map[string][2]string{
		"non-numeric concurrency": {"GEOCODE_CONCURRENCY", "many"},
		"zero concurrency":        {"GEOCODE_CONCURRENCY", "0"},
		"bad timeout":             {"GEOCODE_TIMEOUT", "soon"},
		"negative timeout":        {"GEOCODE_TIMEOUT", "-1s"},
		"bad ttl":                 {"GENERATION_TTL", "1 hour"},
	}
	for name, kv := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
