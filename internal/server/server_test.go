package server

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-tripplanner/internal/pkg/config"
)

func testConfig() *config.Config {
	return &config.Config{
		ServerPort: "0",
		Mapbox:     config.MapboxConfig{BaseURL: "http://unused", DefaultLanguage: "ko"},
		Geocode:    config.GeocodeConfig{Concurrency: 1, Timeout: time.Second},
		Observability: config.ObservabilityConfig{
			ServiceName: "trip-planner-test",
		},
		GenerationTTL: time.Minute,
	}
}

func TestSetupRouterServesAPI(t *testing.T) {
	r := SetupRouter(testConfig(), zap.NewNop())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

	body := `{"plan": {"title": "t", "days": [{"items": [{"place": {"name": "Ueno Park", "category": "sight", "lat": 35.71, "lng": 139.77}}]}]}}`
	req := httptest.NewRequest(http.MethodPost, "/api/plans/ids", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":`)
}

func TestSetupRouterWithoutLLMKey(t *testing.T) {
	r := SetupRouter(testConfig(), zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/generate", bytes.NewBufferString(`{"regions": ["Seoul"], "days": 1, "interests": []}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"MISSING_API_KEY"}`, w.Body.String())
}

func TestHTTPServer(t *testing.T) {
	srv := New(testConfig(), zap.NewNop())
	handler := http.NewServeMux()
	srv.SetRouter(handler)

	hs := srv.HTTPServer()
	assert.Equal(t, ":0", hs.Addr)
	assert.Equal(t, handler, hs.Handler)
	assert.Equal(t, 2*time.Minute, hs.WriteTimeout)
}

func TestStartPprofServerDisabled(t *testing.T) {
	assert.Nil(t, StartPprofServer("", zap.NewNop()))
}
