package itinerary

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-tripplanner/internal/app/handlers"
	"github.com/FACorreiaa/go-tripplanner/internal/app/models"
	"github.com/FACorreiaa/go-tripplanner/internal/pkg/geo"
)

type PlanRequest struct {
	Plan json.RawMessage `json:"plan" binding:"required"`
}

type ReplaceRequest struct {
	Plan     json.RawMessage `json:"plan" binding:"required"`
	DayIndex int             `json:"dayIndex"`
	ItemID   string          `json:"itemId" binding:"required"`
	Item     json.RawMessage `json:"item" binding:"required"`
}

type LegsRequest struct {
	Plan json.RawMessage `json:"plan" binding:"required"`
	Mode string          `json:"mode,omitempty"`
}

type LegsResponse struct {
	Mode   geo.TravelMode `json:"mode"`
	Days   [][]Leg        `json:"days"`
	Center *geo.Point     `json:"center,omitempty"`
	Bounds *geo.Bounds    `json:"bounds,omitempty"`
}

type Handler struct {
	*handlers.BaseHandler
	ids *IDAssigner
}

func NewHandler(base *handlers.BaseHandler, ids *IDAssigner) *Handler {
	return &Handler{BaseHandler: base, ids: ids}
}

// AssignIDs handles POST /api/plans/ids.
func (h *Handler) AssignIDs(c *gin.Context) {
	var req PlanRequest
	if !h.BindJSON(c, &req) {
		return
	}
	plan, err := models.DecodePlan(req.Plan)
	if err != nil {
		h.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plan": h.ids.Assign(plan)})
}

// ReplaceItem handles POST /api/plans/replace-item.
func (h *Handler) ReplaceItem(c *gin.Context) {
	var req ReplaceRequest
	if !h.BindJSON(c, &req) {
		return
	}
	plan, err := models.DecodePlan(req.Plan)
	if err != nil {
		h.RespondError(c, err)
		return
	}
	item, err := models.DecodeItem(req.Item)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	out, err := ReplaceItem(plan, req.DayIndex, req.ItemID, item)
	if err != nil {
		h.RespondError(c, err)
		return
	}
	h.Logger.Debug("Item replaced", zap.String("itemId", req.ItemID), zap.Int("dayIndex", req.DayIndex))
	c.JSON(http.StatusOK, gin.H{"plan": out})
}

// Legs handles POST /api/plans/legs.
func (h *Handler) Legs(c *gin.Context) {
	var req LegsRequest
	if !h.BindJSON(c, &req) {
		return
	}
	mode, err := geo.ParseTravelMode(req.Mode)
	if err != nil {
		h.RespondError(c, fmt.Errorf("%w: %v", models.ErrBadRequest, err))
		return
	}
	plan, err := models.DecodePlan(req.Plan)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	resp := LegsResponse{Mode: mode, Days: PlanLegs(plan, mode)}
	points := LocatedPoints(plan)
	if center, ok := geo.CalculateCenterPoint(points); ok {
		resp.Center = &center
	}
	if bounds, ok := geo.CalculateBounds(points); ok {
		resp.Bounds = &bounds
	}
	c.JSON(http.StatusOK, resp)
}
