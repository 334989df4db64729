package routes

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-tripplanner/internal/app/domain/enrich"
	"github.com/FACorreiaa/go-tripplanner/internal/app/domain/geocode"
	"github.com/FACorreiaa/go-tripplanner/internal/app/domain/itinerary"
	"github.com/FACorreiaa/go-tripplanner/internal/app/domain/planner"
	"github.com/FACorreiaa/go-tripplanner/internal/app/handlers"
	"github.com/FACorreiaa/go-tripplanner/internal/app/models"
	"github.com/FACorreiaa/go-tripplanner/internal/pkg/config"
)

type AppHandlers struct {
	Geocode   *geocode.Handler
	Enrich    *enrich.Handler
	Planner   *planner.Handler
	Itinerary *itinerary.Handler

	mapboxConfigured bool
	llmConfigured    bool
}

// Setup builds every dependency from cfg and registers the API routes.
func Setup(r *gin.Engine, cfg *config.Config, log *zap.Logger) {
	generator, err := planner.NewContentGenerator(context.Background(), cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		if errors.Is(err, models.ErrMissingAPIKey) {
			log.Warn("GOOGLE_GENERATIVE_AI_API_KEY not set, generation endpoints will answer 500")
		} else {
			log.Error("Failed to initialize AI client", zap.Error(err))
		}
		generator = nil
	}
	setupRouter(r, NewAppHandlers(cfg, generator, log))
}

// NewAppHandlers wires services and handlers. A nil generator disables the
// LLM endpoints.
func NewAppHandlers(cfg *config.Config, generator planner.ContentGenerator, log *zap.Logger) *AppHandlers {
	base := handlers.NewBaseHandler(log)
	ids := itinerary.NewIDAssigner()
	tracker := itinerary.NewGenerationTracker(cfg.GenerationTTL)

	resolver := geocode.NewMapboxResolver(geocode.MapboxConfig{
		Token:           cfg.Mapbox.Token,
		BaseURL:         cfg.Mapbox.BaseURL,
		DefaultLanguage: cfg.Mapbox.DefaultLanguage,
	}, log)
	localBatch := geocode.NewLocalBatchResolver(resolver, cfg.Geocode.Concurrency, cfg.Geocode.Timeout, log)

	var enrichBatch geocode.BatchResolver = localBatch
	if cfg.Geocode.BatchURL != "" {
		log.Info("Enrichment uses remote batch endpoint", zap.String("url", cfg.Geocode.BatchURL))
		enrichBatch = geocode.NewHTTPBatchClient(cfg.Geocode.BatchURL, nil, log)
	}

	return &AppHandlers{
		Geocode:          geocode.NewHandler(base, resolver, localBatch),
		Enrich:           enrich.NewHandler(base, enrich.NewServiceImpl(enrichBatch, log), ids, tracker),
		Planner:          planner.NewHandler(base, planner.NewServiceImpl(generator, ids, log)),
		Itinerary:        itinerary.NewHandler(base, ids),
		mapboxConfigured: cfg.Mapbox.Token != "",
		llmConfigured:    generator != nil,
	}
}

func setupRouter(r *gin.Engine, h *AppHandlers) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"mapbox": h.mapboxConfigured,
			"llm":    h.llmConfigured,
		})
	})

	api := r.Group("/api")
	{
		api.POST("/generate", h.Planner.Generate)
		api.POST("/regenerate-item", h.Planner.RegenerateItem)
		api.POST("/items/alternatives", h.Planner.Alternatives)

		geo := api.Group("/geo")
		geo.POST("/resolve", h.Geocode.Resolve)
		geo.POST("/batch", h.Geocode.Batch)

		plans := api.Group("/plans")
		plans.POST("/ids", h.Itinerary.AssignIDs)
		plans.POST("/enrich", h.Enrich.EnrichPlan)
		plans.POST("/replace-item", h.Itinerary.ReplaceItem)
		plans.POST("/legs", h.Itinerary.Legs)
	}
}

// Register mounts already-built handlers; used by tests and embedders.
func Register(r *gin.Engine, h *AppHandlers) {
	setupRouter(r, h)
}
