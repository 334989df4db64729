package planner

import (
	"context"
	"errors"
	"fmt"

	generativeAI "github.com/FACorreiaa/go-genai-sdk/lib"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/FACorreiaa/go-tripplanner/internal/app/domain/itinerary"
	"github.com/FACorreiaa/go-tripplanner/internal/app/models"
	"github.com/FACorreiaa/go-tripplanner/internal/app/observability/metrics"
)

const (
	planTemperature        = 0.6
	alternativeTemperature = 0.7
	alternativeCount       = 3
)

// ContentGenerator is the slice of the LLM client the planner needs.
// *generativeAI.LLMChatClient and *GeminiGenerator satisfy it.
type ContentGenerator interface {
	GenerateResponse(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

var (
	_ ContentGenerator = (*generativeAI.LLMChatClient)(nil)
	_ ContentGenerator = (*GeminiGenerator)(nil)
	_ Service          = (*ServiceImpl)(nil)
)

// Service produces draft plans and item suggestions with an LLM. Every
// returned plan or item has passed shape validation and carries ids.
type Service interface {
	GeneratePlan(ctx context.Context, in models.TripInput) (models.TripPlan, error)
	RegenerateItem(ctx context.Context, dayIndex int, item models.TripItem) (models.TripItem, error)
	Alternatives(ctx context.Context, dayIndex int, item *models.TripItem) ([]models.TripItem, error)
}

type ServiceImpl struct {
	logger    *zap.Logger
	generator ContentGenerator
	ids       *itinerary.IDAssigner
}

// NewServiceImpl builds the planner. A nil generator makes every call fail
// with models.ErrMissingAPIKey.
func NewServiceImpl(generator ContentGenerator, ids *itinerary.IDAssigner, logger *zap.Logger) *ServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ids == nil {
		ids = itinerary.NewIDAssigner()
	}
	return &ServiceImpl{logger: logger, generator: generator, ids: ids}
}

func jsonConfig(temperature float32, system bool) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](temperature),
		ResponseMIMEType: "application/json",
	}
	if system {
		cfg.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}
	return cfg
}

// generate runs one prompt and returns the extracted JSON document.
func (s *ServiceImpl) generate(ctx context.Context, kind, prompt string, cfg *genai.GenerateContentConfig) ([]byte, error) {
	if s.generator == nil {
		return nil, models.ErrMissingAPIKey
	}
	resp, err := s.generator.GenerateResponse(ctx, prompt, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", models.ErrGeneration, kind, err)
	}
	text := responseText(resp)
	if text == "" {
		return nil, errEmptyResponse
	}
	return extractJSON(text)
}

func (s *ServiceImpl) finish(ctx context.Context, span trace.Span, l *zap.Logger, kind string, err error) {
	outcome := "ok"
	var issues models.ValidationErrors
	switch {
	case err == nil:
	case errors.As(err, &issues):
		outcome = "invalid_shape"
	case errors.Is(err, models.ErrMissingAPIKey):
		outcome = "unconfigured"
	default:
		outcome = "failed"
	}
	metrics.Get().PlanGenerationsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("outcome", outcome),
	))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Generation failed")
		l.Warn("Generation failed", zap.String("outcome", outcome), zap.Error(err))
		return
	}
	span.SetStatus(codes.Ok, "Generated")
}

func (s *ServiceImpl) GeneratePlan(ctx context.Context, in models.TripInput) (plan models.TripPlan, err error) {
	ctx, span := otel.Tracer("PlannerService").Start(ctx, "GeneratePlan", trace.WithAttributes(
		attribute.Int("trip.days", in.Days),
		attribute.StringSlice("trip.regions", in.Regions),
	))
	defer span.End()
	l := s.logger.With(zap.String("method", "GeneratePlan"))
	defer func() { s.finish(ctx, span, l, "plan", err) }()

	in, err = in.Normalize()
	if err != nil {
		return models.TripPlan{}, err
	}
	data, err := s.generate(ctx, "plan", planPrompt(in), jsonConfig(planTemperature, true))
	if err != nil {
		return models.TripPlan{}, err
	}
	if firstByte(data) != '{' {
		return models.TripPlan{}, errNotObject
	}
	parsed, err := models.DecodePlan(data)
	if err != nil {
		return models.TripPlan{}, err
	}

	plan = s.ids.Assign(parsed)
	l.Info("Draft plan generated", zap.String("title", plan.Title), zap.Int("days", len(plan.Days)), zap.Int("items", plan.ItemCount()))
	return plan, nil
}

// RegenerateItem asks for a replacement of item. The replacement keeps
// item's id so it can be spliced back with itinerary.ReplaceItem.
func (s *ServiceImpl) RegenerateItem(ctx context.Context, dayIndex int, item models.TripItem) (out models.TripItem, err error) {
	ctx, span := otel.Tracer("PlannerService").Start(ctx, "RegenerateItem", trace.WithAttributes(
		attribute.Int("item.day_index", dayIndex),
		attribute.String("item.name", item.Place.Name),
	))
	defer span.End()
	l := s.logger.With(zap.String("method", "RegenerateItem"), zap.String("item", item.Place.Name))
	defer func() { s.finish(ctx, span, l, "item", err) }()

	if dayIndex < 0 {
		return models.TripItem{}, fmt.Errorf("%w: dayIndex must be >= 0", models.ErrBadRequest)
	}
	if err = item.Validate(); err != nil {
		return models.TripItem{}, err
	}
	data, err := s.generate(ctx, "item", regeneratePrompt(dayIndex, item), jsonConfig(planTemperature, false))
	if err != nil {
		return models.TripItem{}, err
	}
	if firstByte(data) != '{' {
		return models.TripItem{}, errNotObject
	}
	out, err = models.DecodeItem(data)
	if err != nil {
		return models.TripItem{}, err
	}

	out.ID = item.ID
	return s.ids.AssignItem(out), nil
}

// Alternatives returns up to three candidate items with fresh ids.
func (s *ServiceImpl) Alternatives(ctx context.Context, dayIndex int, item *models.TripItem) (items []models.TripItem, err error) {
	ctx, span := otel.Tracer("PlannerService").Start(ctx, "Alternatives", trace.WithAttributes(
		attribute.Int("item.day_index", dayIndex),
	))
	defer span.End()
	l := s.logger.With(zap.String("method", "Alternatives"))
	defer func() { s.finish(ctx, span, l, "alternatives", err) }()

	if dayIndex < 0 {
		return nil, fmt.Errorf("%w: dayIndex must be >= 0", models.ErrBadRequest)
	}
	data, err := s.generate(ctx, "alternatives", alternativesPrompt(dayIndex, item), jsonConfig(alternativeTemperature, false))
	if err != nil {
		return nil, err
	}
	if firstByte(data) != '[' {
		return nil, errNotArray
	}
	items, err = models.DecodeItems(data)
	if err != nil {
		return nil, err
	}
	if len(items) > alternativeCount {
		items = items[:alternativeCount]
	}
	for i := range items {
		items[i].ID = ""
		items[i] = s.ids.AssignItem(items[i])
	}
	span.SetAttributes(attribute.Int("alternatives.count", len(items)))
	return items, nil
}
