package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-tripplanner/internal/app/models"
)

// ErrorResponse is the JSON body of every failed API call.
type ErrorResponse struct {
	Error  string                  `json:"error"`
	Detail string                  `json:"detail,omitempty"`
	Status int                     `json:"status,omitempty"`
	Issues models.ValidationErrors `json:"issues,omitempty"`
}

// statusCoder is implemented by errors that carry an upstream status.
type statusCoder interface {
	error
	UpstreamStatus() int
}

type BaseHandler struct {
	Logger *zap.Logger
}

func NewBaseHandler(logger *zap.Logger) *BaseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BaseHandler{Logger: logger}
}

// BindJSON decodes the request body into v and answers 400 on failure.
func (h *BaseHandler) BindJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		h.Logger.Debug("Invalid request body", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "INVALID_REQUEST", Detail: err.Error()})
		return false
	}
	return true
}

// RespondError maps a domain error onto an HTTP status and JSON body.
func (h *BaseHandler) RespondError(c *gin.Context, err error) {
	status, body := ErrorBody(err)
	if status >= http.StatusInternalServerError {
		h.Logger.Error("Request failed", zap.String("path", c.FullPath()), zap.Int("status", status), zap.Error(err))
	} else {
		h.Logger.Info("Request rejected", zap.String("path", c.FullPath()), zap.Int("status", status), zap.Error(err))
	}
	c.JSON(status, body)
}

// ErrorBody classifies err. Input problems are 4xx, misconfiguration is 500
// and failing collaborators are 502.
func ErrorBody(err error) (int, ErrorResponse) {
	var issues models.ValidationErrors
	switch {
	case errors.As(err, &issues):
		return http.StatusUnprocessableEntity, ErrorResponse{Error: "INVALID_SHAPE", Issues: issues}
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound, ErrorResponse{Error: "NOT_FOUND", Detail: err.Error()}
	case errors.Is(err, models.ErrEmptyQuery),
		errors.Is(err, models.ErrEmptyBatch),
		errors.Is(err, models.ErrInvalidLanguage),
		errors.Is(err, models.ErrBadRequest):
		return http.StatusBadRequest, ErrorResponse{Error: "INVALID_INPUT", Detail: err.Error()}
	case errors.Is(err, models.ErrMissingToken):
		return http.StatusInternalServerError, ErrorResponse{Error: "MISSING_MAPBOX_TOKEN"}
	case errors.Is(err, models.ErrMissingAPIKey):
		return http.StatusInternalServerError, ErrorResponse{Error: "MISSING_API_KEY"}
	case errors.Is(err, models.ErrGeocodeFailed):
		body := ErrorResponse{Error: "GEOCODE_FAILED", Detail: err.Error()}
		var sc statusCoder
		if errors.As(err, &sc) {
			body.Status = sc.UpstreamStatus()
		}
		return http.StatusBadGateway, body
	case errors.Is(err, models.ErrBatchFailed):
		return http.StatusBadGateway, ErrorResponse{Error: "BATCH_FAILED", Detail: err.Error()}
	case errors.Is(err, models.ErrGeneration):
		return http.StatusBadGateway, ErrorResponse{Error: "GENERATION_FAILED", Detail: err.Error()}
	default:
		return http.StatusInternalServerError, ErrorResponse{Error: "SERVER_ERROR", Detail: err.Error()}
	}
}
