package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-tripplanner/internal/app/domain/enrich"
	"github.com/FACorreiaa/go-tripplanner/internal/pkg/config"
)

// fakeMapbox answers known place names and returns no features otherwise.
func fakeMapbox(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "Blue Bottle Kiyosumi"):
			_, _ = w.Write([]byte(`{"features":[{"center":[139.7990,35.6806],"text":"Blue Bottle","place_name":"Blue Bottle Coffee Kiyosumi, Koto City, Tokyo"}]}`))
		default:
			_, _ = w.Write([]byte(`{"features":[]}`))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(mapboxURL, token string) *config.Config {
	return &config.Config{
		Mapbox:        config.MapboxConfig{Token: token, BaseURL: mapboxURL, DefaultLanguage: "ko"},
		Geocode:       config.GeocodeConfig{Concurrency: 2, Timeout: time.Second},
		GenerationTTL: time.Minute,
	}
}

func newRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	Register(r, NewAppHandlers(cfg, nil, zap.NewNop()))
	return r
}

func TestHealth(t *testing.T) {
	r := newRouter(testConfig("http://unused", ""))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","mapbox":false,"llm":false}`, w.Body.String())
}

func TestEnrichEndToEnd(t *testing.T) {
	r := newRouter(testConfig(fakeMapbox(t).URL, "pk.test"))

	body := `{
	  "regionHint": "Tokyo Japan",
	  "plan": {"title": "Tokyo", "days": [
	    {"items": [{"place": {"name": "Blue Bottle Kiyosumi", "category": "cafe"}}]},
	    {"items": [{"id": "fixed", "place": {"name": "Asakusa", "category": "sight", "lat": 35.70, "lng": 139.75}}]}
	  ]}
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/plans/enrich", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp enrich.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Plan)

	first := resp.Plan.Days[0].Items[0]
	assert.NotEmpty(t, first.ID)
	require.True(t, first.Place.HasCoordinates())
	assert.InDelta(t, 35.6806, *first.Place.Lat, 1e-9)
	assert.InDelta(t, 139.7990, *first.Place.Lng, 1e-9)
	assert.Equal(t, "Blue Bottle Coffee Kiyosumi, Koto City, Tokyo", first.Place.Address)

	second := resp.Plan.Days[1].Items[0]
	assert.Equal(t, "fixed", second.ID)
	assert.InDelta(t, 35.70, *second.Place.Lat, 1e-9)
}

func TestEnrichWithoutTokenLeavesPlan(t *testing.T) {
	r := newRouter(testConfig("http://unused", ""))

	body := `{"plan": {"title": "t", "days": [{"items": [{"id": "a", "place": {"name": "Somewhere", "category": "sight"}}]}]}}`
	req := httptest.NewRequest(http.MethodPost, "/api/plans/enrich", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp enrich.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Plan)
	assert.False(t, resp.Plan.Days[0].Items[0].Place.HasCoordinates())
	assert.Equal(t, 1, resp.Stats.Unresolved)
}

func TestResolveWithoutToken(t *testing.T) {
	r := newRouter(testConfig("http://unused", ""))

	req := httptest.NewRequest(http.MethodPost, "/api/geo/resolve", bytes.NewBufferString(`{"q": "Tokyo"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"MISSING_MAPBOX_TOKEN"}`, w.Body.String())
}
