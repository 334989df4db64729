package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type MapboxConfig struct {
	Token           string
	BaseURL         string
	DefaultLanguage string
}

type GeocodeConfig struct {
	Concurrency int
	Timeout     time.Duration
	// BatchURL points at a remote batch endpoint. Empty resolves in-process.
	BatchURL string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type ObservabilityConfig struct {
	ServiceName  string
	MetricsAddr  string
	PprofAddr    string
	OTLPEndpoint string
}

type Config struct {
	ServerPort    string
	LogLevel      string
	Mapbox        MapboxConfig
	Geocode       GeocodeConfig
	Gemini        GeminiConfig
	Observability ObservabilityConfig
	GenerationTTL time.Duration
}

// Load reads configuration from the environment. A missing Mapbox token is
// not an error here; geocoding calls report it when they are made.
func Load() (*Config, error) {
	concurrency, err := getEnvInt("GEOCODE_CONCURRENCY", 4)
	if err != nil {
		return nil, err
	}
	timeout, err := getEnvDuration("GEOCODE_TIMEOUT", 8*time.Second)
	if err != nil {
		return nil, err
	}
	ttl, err := getEnvDuration("GENERATION_TTL", 30*time.Minute)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		ServerPort: getEnvOrDefault("SERVER_PORT", "8091"),
		LogLevel:   getEnvOrDefault("LOG_LEVEL", "info"),
		Mapbox: MapboxConfig{
			Token:           os.Getenv("MAPBOX_TOKEN"),
			BaseURL:         getEnvOrDefault("MAPBOX_BASE_URL", "https://api.mapbox.com"),
			DefaultLanguage: getEnvOrDefault("DEFAULT_LANGUAGE", "ko"),
		},
		Geocode: GeocodeConfig{
			Concurrency: concurrency,
			Timeout:     timeout,
			BatchURL:    strings.TrimRight(os.Getenv("GEO_BATCH_URL"), "/"),
		},
		Gemini: GeminiConfig{
			APIKey: os.Getenv("GOOGLE_GENERATIVE_AI_API_KEY"),
			Model:  os.Getenv("GEMINI_MODEL"),
		},
		Observability: ObservabilityConfig{
			ServiceName:  getEnvOrDefault("SERVICE_NAME", "trip-planner"),
			MetricsAddr:  getEnvOrDefault("METRICS_ADDR", ":9092"),
			PprofAddr:    os.Getenv("PPROF_ADDR"),
			OTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		},
		GenerationTTL: ttl,
	}
	if _, ok := os.LookupEnv("PPROF_ADDR"); !ok {
		cfg.Observability.PprofAddr = ":6060"
	}

	if cfg.Geocode.Concurrency < 1 {
		return nil, fmt.Errorf("GEOCODE_CONCURRENCY must be at least 1, got %d", cfg.Geocode.Concurrency)
	}
	if cfg.Geocode.Timeout <= 0 {
		return nil, fmt.Errorf("GEOCODE_TIMEOUT must be positive, got %s", cfg.Geocode.Timeout)
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q: %w", key, value, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", key, value, err)
	}
	return d, nil
}
