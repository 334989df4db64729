package planner

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-tripplanner/internal/app/handlers"
	"github.com/FACorreiaa/go-tripplanner/internal/app/models"
)

type RegenerateRequest struct {
	DayIndex *int            `json:"dayIndex" binding:"required"`
	Item     json.RawMessage `json:"item" binding:"required"`
}

type AlternativesRequest struct {
	DayIndex int             `json:"dayIndex"`
	ItemID   string          `json:"itemId"`
	Item     json.RawMessage `json:"item,omitempty"`
}

type Handler struct {
	*handlers.BaseHandler
	service Service
}

func NewHandler(base *handlers.BaseHandler, service Service) *Handler {
	return &Handler{BaseHandler: base, service: service}
}

// Generate handles POST /api/generate.
func (h *Handler) Generate(c *gin.Context) {
	var in models.TripInput
	if !h.BindJSON(c, &in) {
		return
	}
	plan, err := h.service.GeneratePlan(c.Request.Context(), in)
	if err != nil {
		h.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// RegenerateItem handles POST /api/regenerate-item.
func (h *Handler) RegenerateItem(c *gin.Context) {
	var req RegenerateRequest
	if !h.BindJSON(c, &req) {
		return
	}
	if *req.DayIndex < 0 {
		h.RespondError(c, fmt.Errorf("%w: dayIndex must be >= 0", models.ErrBadRequest))
		return
	}
	item, err := models.DecodeItem(req.Item)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	out, err := h.service.RegenerateItem(c.Request.Context(), *req.DayIndex, item)
	if err != nil {
		h.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": out})
}

// Alternatives handles POST /api/items/alternatives.
func (h *Handler) Alternatives(c *gin.Context) {
	var req AlternativesRequest
	if !h.BindJSON(c, &req) {
		return
	}
	var current *models.TripItem
	if len(req.Item) > 0 && string(req.Item) != "null" {
		item, err := models.DecodeItem(req.Item)
		if err != nil {
			h.RespondError(c, err)
			return
		}
		current = &item
	}

	candidates, err := h.service.Alternatives(c.Request.Context(), req.DayIndex, current)
	if err != nil {
		h.RespondError(c, err)
		return
	}
	h.Logger.Debug("Alternatives generated", zap.String("itemId", req.ItemID), zap.Int("count", len(candidates)))
	c.JSON(http.StatusOK, gin.H{"candidates": candidates})
}
