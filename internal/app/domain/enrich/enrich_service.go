package enrich

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-tripplanner/internal/app/domain/geocode"
	"github.com/FACorreiaa/go-tripplanner/internal/app/models"
	"github.com/FACorreiaa/go-tripplanner/internal/app/observability/metrics"
	"github.com/FACorreiaa/go-tripplanner/internal/pkg/geo"
)

var _ Service = (*ServiceImpl)(nil)

// Options tune one enrichment pass.
type Options struct {
	RegionHint string
	Language   string
	// Proximity biases lookups. Nil sends no bias; none is derived from
	// the plan.
	Proximity *geo.Point
}

// Stats summarises an enrichment pass.
type Stats struct {
	Items       int  `json:"items"`
	Missing     int  `json:"missing"`
	Resolved    int  `json:"resolved"`
	Unresolved  int  `json:"unresolved"`
	Skipped     int  `json:"skipped"`
	BatchFailed bool `json:"batchFailed"`
}

// Service fills in missing coordinates on a plan.
type Service interface {
	// Enrich never fails: a plan it cannot improve is returned as given.
	Enrich(ctx context.Context, plan models.TripPlan, opts Options) (models.TripPlan, Stats)
}

type ServiceImpl struct {
	logger   *zap.Logger
	resolver geocode.BatchResolver
}

func NewServiceImpl(resolver geocode.BatchResolver, logger *zap.Logger) *ServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ServiceImpl{logger: logger, resolver: resolver}
}

// missingItems lists the batch items for every placed item without a full
// coordinate pair. Items without an id cannot be matched back and are
// counted as skipped. Duplicate ids are requested once.
func missingItems(plan models.TripPlan) (items []geocode.BatchItem, skipped int) {
	seen := make(map[string]struct{})
	for _, day := range plan.Days {
		for _, it := range day.Items {
			if it.Place.HasCoordinates() {
				continue
			}
			if it.ID == "" {
				skipped++
				continue
			}
			if _, dup := seen[it.ID]; dup {
				continue
			}
			seen[it.ID] = struct{}{}
			items = append(items, geocode.BatchItem{ID: it.ID, Name: it.Place.Name, Address: it.Place.Address})
		}
	}
	return items, skipped
}

func (s *ServiceImpl) Enrich(ctx context.Context, plan models.TripPlan, opts Options) (models.TripPlan, Stats) {
	ctx, span := otel.Tracer("EnrichService").Start(ctx, "Enrich", trace.WithAttributes(
		attribute.String("enrich.region_hint", opts.RegionHint),
		attribute.Int("enrich.days", len(plan.Days)),
	))
	defer span.End()

	l := s.logger.With(zap.String("method", "Enrich"), zap.String("title", plan.Title))
	start := time.Now()

	stats := Stats{Items: plan.ItemCount()}
	items, skipped := missingItems(plan)
	stats.Skipped = skipped
	stats.Missing = len(items)
	span.SetAttributes(attribute.Int("enrich.missing", len(items)))

	if len(items) == 0 {
		span.SetStatus(codes.Ok, "Nothing to enrich")
		l.Debug("Plan already complete", zap.Int("items", stats.Items), zap.Int("skipped", skipped))
		return plan.Clone(), stats
	}

	resp, err := s.resolver.ResolveBatch(ctx, geocode.BatchRequest{
		Items:      items,
		RegionHint: opts.RegionHint,
		Language:   opts.Language,
		Proximity:  opts.Proximity,
	})
	if err != nil {
		stats.BatchFailed = true
		stats.Unresolved = len(items)
		s.record(ctx, 0, len(items), start)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Batch resolution failed")
		l.Warn("Batch resolution failed, returning plan unchanged", zap.Error(err))
		return plan.Clone(), stats
	}

	out := merge(plan, resp.Result)
	for _, it := range items {
		if usable(resp.Result[it.ID]) {
			stats.Resolved++
		}
	}
	stats.Unresolved = stats.Missing - stats.Resolved

	s.record(ctx, stats.Resolved, stats.Unresolved, start)
	span.SetAttributes(
		attribute.Int("enrich.resolved", stats.Resolved),
		attribute.Int("enrich.unresolved", stats.Unresolved),
	)
	span.SetStatus(codes.Ok, "Plan enriched")
	l.Info("Plan enriched",
		zap.Int("missing", stats.Missing),
		zap.Int("resolved", stats.Resolved),
		zap.Int("unresolved", stats.Unresolved))
	return out, stats
}

// merge returns a copy of plan with resolved hits applied. Located items,
// unresolved items, day order and item order are left as they were.
func merge(plan models.TripPlan, hits map[string]geocode.BatchHit) models.TripPlan {
	out := plan.Clone()
	for d := range out.Days {
		for i := range out.Days[d].Items {
			it := &out.Days[d].Items[i]
			if it.ID == "" || it.Place.HasCoordinates() {
				continue
			}
			hit, ok := hits[it.ID]
			if !ok || !usable(hit) {
				continue
			}
			it.Place = it.Place.WithCoordinates(*hit.Lat, *hit.Lng)
			if it.Place.Address == "" && hit.PlaceName != "" {
				it.Place.Address = hit.PlaceName
			}
		}
	}
	return out
}

// usable rejects hits a remote resolver reported outside WGS84 bounds.
func usable(hit geocode.BatchHit) bool {
	return hit.Resolved() && geo.ValidateCoordinates(*hit.Lat, *hit.Lng)
}

func (s *ServiceImpl) record(ctx context.Context, resolved, unresolved int, start time.Time) {
	m := metrics.Get()
	m.EnrichmentItemsTotal.Add(ctx, int64(resolved), metric.WithAttributes(attribute.String("outcome", "resolved")))
	m.EnrichmentItemsTotal.Add(ctx, int64(unresolved), metric.WithAttributes(attribute.String("outcome", "unresolved")))
	m.EnrichmentDuration.Record(ctx, time.Since(start).Seconds())
}
