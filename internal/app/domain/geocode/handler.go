package geocode

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-tripplanner/internal/app/handlers"
	"github.com/FACorreiaa/go-tripplanner/internal/pkg/geo"
)

// ResolveRequest is the body of POST /api/geo/resolve.
// Proximity is [lng, lat].
type ResolveRequest struct {
	Q         string    `json:"q"`
	Proximity []float64 `json:"proximity,omitempty"`
	Language  string    `json:"language,omitempty"`
}

// ResolveResponse mirrors the provider outcome. Only OK is set when
// nothing was found.
type ResolveResponse struct {
	OK        bool     `json:"ok"`
	Lat       *float64 `json:"lat,omitempty"`
	Lng       *float64 `json:"lng,omitempty"`
	Name      string   `json:"name,omitempty"`
	PlaceName string   `json:"place_name,omitempty"`
}

type Handler struct {
	*handlers.BaseHandler
	resolver Resolver
	batch    BatchResolver
}

func NewHandler(base *handlers.BaseHandler, resolver Resolver, batch BatchResolver) *Handler {
	return &Handler{BaseHandler: base, resolver: resolver, batch: batch}
}

// Resolve handles POST /api/geo/resolve.
func (h *Handler) Resolve(c *gin.Context) {
	var req ResolveRequest
	if !h.BindJSON(c, &req) {
		return
	}
	q := Query{Text: req.Q, Language: req.Language}
	if req.Proximity != nil {
		if len(req.Proximity) != 2 {
			c.JSON(http.StatusBadRequest, handlers.ErrorResponse{Error: "INVALID_INPUT", Detail: "proximity must be [lng, lat]"})
			return
		}
		q.Proximity = &geo.Point{Lng: req.Proximity[0], Lat: req.Proximity[1]}
	}

	res, err := h.resolver.Resolve(c.Request.Context(), q)
	if err != nil {
		h.RespondError(c, err)
		return
	}
	if !res.Resolved {
		c.JSON(http.StatusOK, ResolveResponse{OK: false})
		return
	}
	h.Logger.Debug("Place resolved", zap.String("query", req.Q))
	c.JSON(http.StatusOK, ResolveResponse{
		OK:        true,
		Lat:       &res.Lat,
		Lng:       &res.Lng,
		Name:      res.Name,
		PlaceName: res.DisplayName,
	})
}

// Batch handles POST /api/geo/batch.
func (h *Handler) Batch(c *gin.Context) {
	var req BatchRequest
	if !h.BindJSON(c, &req) {
		return
	}
	for _, it := range req.Items {
		if it.ID == "" {
			c.JSON(http.StatusBadRequest, handlers.ErrorResponse{Error: "INVALID_INPUT", Detail: "every item needs an id"})
			return
		}
	}

	resp, err := h.batch.ResolveBatch(c.Request.Context(), req)
	if err != nil {
		h.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
