package geocode

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/go-tripplanner/internal/app/models"
	"github.com/FACorreiaa/go-tripplanner/internal/pkg/geo"
)

const (
	DefaultConcurrency = 4
	DefaultItemTimeout = 8 * time.Second
)

// BatchItem is one place to resolve, keyed by its itinerary item id.
type BatchItem struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

// BatchRequest is the body of a batch resolution call.
type BatchRequest struct {
	Items      []BatchItem `json:"items"`
	RegionHint string      `json:"regionHint,omitempty"`
	Language   string      `json:"language,omitempty"`
	Proximity  *geo.Point  `json:"proximity,omitempty"`
}

// BatchHit is the outcome for one id. Lat and Lng are nil when unresolved.
type BatchHit struct {
	Lat       *float64 `json:"lat,omitempty"`
	Lng       *float64 `json:"lng,omitempty"`
	PlaceName string   `json:"place_name,omitempty"`
}

// Resolved reports whether the hit carries a full coordinate pair.
func (h BatchHit) Resolved() bool {
	return h.Lat != nil && h.Lng != nil
}

// BatchResponse maps item ids to their outcome. Missing ids are unresolved.
type BatchResponse struct {
	OK     bool                `json:"ok"`
	Result map[string]BatchHit `json:"result"`
}

// BatchResolver resolves many places in one call. An error means the whole
// batch failed; per-item failures are reported as unresolved hits.
type BatchResolver interface {
	ResolveBatch(ctx context.Context, req BatchRequest) (BatchResponse, error)
}

// BuildQuery joins name, address and region hint with single spaces,
// skipping empty parts.
func BuildQuery(name, address, regionHint string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{name, address, regionHint} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// Ensure implementation satisfies the interface
var _ BatchResolver = (*LocalBatchResolver)(nil)

// LocalBatchResolver fans a batch out over a Resolver with a concurrency
// cap. Each item is resolved in isolation: its errors, timeouts and empty
// results only leave that item unresolved.
type LocalBatchResolver struct {
	resolver    Resolver
	concurrency int
	itemTimeout time.Duration
	logger      *zap.Logger
}

func NewLocalBatchResolver(resolver Resolver, concurrency int, itemTimeout time.Duration, logger *zap.Logger) *LocalBatchResolver {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	if itemTimeout <= 0 {
		itemTimeout = DefaultItemTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocalBatchResolver{
		resolver:    resolver,
		concurrency: concurrency,
		itemTimeout: itemTimeout,
		logger:      logger,
	}
}

func (b *LocalBatchResolver) ResolveBatch(ctx context.Context, req BatchRequest) (BatchResponse, error) {
	ctx, span := otel.Tracer("GeocodeService").Start(ctx, "ResolveBatch", trace.WithAttributes(
		attribute.Int("batch.items", len(req.Items)),
		attribute.Int("batch.concurrency", b.concurrency),
		attribute.String("batch.region_hint", req.RegionHint),
	))
	defer span.End()

	l := b.logger.With(zap.String("method", "ResolveBatch"), zap.Int("items", len(req.Items)))

	if len(req.Items) == 0 {
		span.SetStatus(codes.Error, "Empty batch")
		return BatchResponse{}, models.ErrEmptyBatch
	}

	// One slot per item; goroutines never share a slot.
	hits := make([]BatchHit, len(req.Items))

	var g errgroup.Group
	g.SetLimit(b.concurrency)
	for i, item := range req.Items {
		g.Go(func() error {
			hits[i] = b.resolveOne(ctx, item, req, l)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Batch cancelled")
		l.Warn("Batch cancelled before completion", zap.Error(err))
		return BatchResponse{}, fmt.Errorf("%w: %v", models.ErrBatchFailed, err)
	}

	out := BatchResponse{OK: true, Result: make(map[string]BatchHit, len(req.Items))}
	resolved := 0
	for i, item := range req.Items {
		if hits[i].Resolved() {
			resolved++
		}
		out.Result[item.ID] = hits[i]
	}

	span.SetAttributes(attribute.Int("batch.resolved", resolved))
	span.SetStatus(codes.Ok, "Batch resolved")
	l.Info("Batch resolved", zap.Int("resolved", resolved), zap.Int("unresolved", len(req.Items)-resolved))
	return out, nil
}

func (b *LocalBatchResolver) resolveOne(ctx context.Context, item BatchItem, req BatchRequest, l *zap.Logger) BatchHit {
	ctx, cancel := context.WithTimeout(ctx, b.itemTimeout)
	defer cancel()

	q := Query{
		Text:      BuildQuery(item.Name, item.Address, req.RegionHint),
		Language:  req.Language,
		Proximity: req.Proximity,
	}
	res, err := b.resolver.Resolve(ctx, q)
	if err != nil {
		l.Warn("Item left unresolved", zap.String("id", item.ID), zap.String("query", q.Text), zap.Error(err))
		return BatchHit{}
	}
	if !res.Resolved {
		return BatchHit{}
	}
	lat, lng := res.Lat, res.Lng
	return BatchHit{Lat: &lat, Lng: &lng, PlaceName: res.DisplayName}
}
