package enrich

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-tripplanner/internal/app/domain/itinerary"
	"github.com/FACorreiaa/go-tripplanner/internal/app/handlers"
	"github.com/FACorreiaa/go-tripplanner/internal/app/models"
	"github.com/FACorreiaa/go-tripplanner/internal/app/observability/metrics"
	"github.com/FACorreiaa/go-tripplanner/internal/pkg/geo"
)

// Request is the body of POST /api/plans/enrich. PlanKey identifies the
// caller's plan across requests; when set, a result superseded by a newer
// request for the same key is discarded.
type Request struct {
	Plan       json.RawMessage `json:"plan" binding:"required"`
	RegionHint string          `json:"regionHint,omitempty"`
	Language   string          `json:"language,omitempty"`
	PlanKey    string          `json:"planKey,omitempty"`
	Proximity  *geo.Point      `json:"proximity,omitempty"`
}

type Response struct {
	Plan       *models.TripPlan `json:"plan,omitempty"`
	Stats      Stats            `json:"stats"`
	Generation uint64           `json:"generation,omitempty"`
	Stale      bool             `json:"stale"`
}

type Handler struct {
	*handlers.BaseHandler
	service Service
	ids     *itinerary.IDAssigner
	tracker *itinerary.GenerationTracker
}

func NewHandler(base *handlers.BaseHandler, service Service, ids *itinerary.IDAssigner, tracker *itinerary.GenerationTracker) *Handler {
	return &Handler{BaseHandler: base, service: service, ids: ids, tracker: tracker}
}

// EnrichPlan handles POST /api/plans/enrich.
func (h *Handler) EnrichPlan(c *gin.Context) {
	var req Request
	if !h.BindJSON(c, &req) {
		return
	}
	if req.Proximity != nil && !req.Proximity.Valid() {
		c.JSON(http.StatusBadRequest, handlers.ErrorResponse{Error: "INVALID_INPUT", Detail: "proximity out of range"})
		return
	}
	plan, err := models.DecodePlan(req.Plan)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	var gen uint64
	if req.PlanKey != "" {
		gen = h.tracker.Begin(req.PlanKey)
	}

	ctx := c.Request.Context()
	enriched, stats := h.service.Enrich(ctx, h.ids.Assign(plan), Options{
		RegionHint: req.RegionHint,
		Language:   req.Language,
		Proximity:  req.Proximity,
	})

	if req.PlanKey != "" && !h.tracker.IsCurrent(req.PlanKey, gen) {
		metrics.Get().StaleEnrichmentsDiscards.Add(ctx, 1)
		h.Logger.Info("Discarding superseded enrichment",
			zap.String("planKey", req.PlanKey),
			zap.Uint64("generation", gen),
			zap.Uint64("latest", h.tracker.Latest(req.PlanKey)))
		c.JSON(http.StatusOK, Response{Stats: stats, Generation: gen, Stale: true})
		return
	}

	c.JSON(http.StatusOK, Response{Plan: &enriched, Stats: stats, Generation: gen})
}
