package itinerary

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-tripplanner/internal/app/handlers"
	"github.com/FACorreiaa/go-tripplanner/internal/app/models"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(handlers.NewBaseHandler(nil), NewIDAssigner())
	router := gin.New()
	router.POST("/api/plans/ids", h.AssignIDs)
	router.POST("/api/plans/replace-item", h.ReplaceItem)
	router.POST("/api/plans/legs", h.Legs)
	return router
}

func post(router http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

const tokyoPlan = `{
  "title": "Tokyo",
  "days": [{"items": [
    {"id": "a", "place": {"name": "Tokyo Station", "category": "transport", "lat": 35.681236, "lng": 139.767125}},
    {"place": {"name": "Imperial Palace", "category": "sight"}},
    {"id": "c", "place": {"name": "Shinjuku", "category": "sight", "lat": 35.690921, "lng": 139.700258}}
  ]}]
}`

func TestAssignIDsHandler(t *testing.T) {
	w := post(setupRouter(), "/api/plans/ids", `{"plan": `+tokyoPlan+`}`)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Plan models.TripPlan `json:"plan"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	items := body.Plan.Days[0].Items
	assert.Equal(t, "a", items[0].ID)
	assert.NotEmpty(t, items[1].ID)
	assert.Equal(t, "c", items[2].ID)
}

func TestReplaceItemHandler(t *testing.T) {
	router := setupRouter()

	w := post(router, "/api/plans/replace-item",
		`{"plan": `+tokyoPlan+`, "dayIndex": 0, "itemId": "c", "item": {"place": {"name": "Shibuya Sky", "category": "sight"}}}`)
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Plan models.TripPlan `json:"plan"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "c", body.Plan.Days[0].Items[2].ID)
	assert.Equal(t, "Shibuya Sky", body.Plan.Days[0].Items[2].Place.Name)

	w = post(router, "/api/plans/replace-item",
		`{"plan": `+tokyoPlan+`, "dayIndex": 0, "itemId": "zzz", "item": {"place": {"name": "X", "category": "sight"}}}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = post(router, "/api/plans/replace-item",
		`{"plan": `+tokyoPlan+`, "dayIndex": 3, "itemId": "c", "item": {"place": {"name": "X", "category": "sight"}}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLegsHandler(t *testing.T) {
	router := setupRouter()

	w := post(router, "/api/plans/legs", `{"plan": `+tokyoPlan+`, "mode": "transit"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var body LegsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Days, 1)
	require.Len(t, body.Days[0], 1)
	assert.Equal(t, 28, body.Days[0][0].Minutes)
	require.NotNil(t, body.Center)
	assert.InDelta(t, 35.686, body.Center.Lat, 0.001)
	require.NotNil(t, body.Bounds)
	assert.InDelta(t, 139.700258, body.Bounds.MinLng, 1e-9)

	w = post(router, "/api/plans/legs", `{"plan": `+tokyoPlan+`, "mode": "teleport"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
