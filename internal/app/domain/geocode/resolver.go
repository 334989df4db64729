package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/FACorreiaa/go-tripplanner/internal/app/models"
	"github.com/FACorreiaa/go-tripplanner/internal/app/observability/metrics"
	"github.com/FACorreiaa/go-tripplanner/internal/pkg/geo"
)

const (
	DefaultMapboxBaseURL = "https://api.mapbox.com"
	DefaultLanguage      = "ko"

	placesEndpoint  = "/geocoding/v5/mapbox.places/"
	maxResponseSize = 1 << 20
)

// Query is a single free-text place lookup.
type Query struct {
	Text      string
	Language  string     // BCP-47 tag, provider default when empty
	Proximity *geo.Point // biases results towards this point
}

// Result is the outcome of a lookup. Resolved is false when the provider
// understood the request but had nothing usable to return.
type Result struct {
	Resolved    bool
	Lat         float64
	Lng         float64
	Name        string
	DisplayName string
}

// Resolver turns a free-text query into coordinates.
type Resolver interface {
	Resolve(ctx context.Context, q Query) (Result, error)
}

// Ensure implementation satisfies the interface
var _ Resolver = (*MapboxResolver)(nil)

// MapboxConfig configures a MapboxResolver.
type MapboxConfig struct {
	Token           string
	BaseURL         string
	DefaultLanguage string
	HTTPClient      *http.Client
}

// MapboxResolver resolves places with the Mapbox Geocoding v5 API.
type MapboxResolver struct {
	token           string
	baseURL         string
	defaultLanguage string
	client          *http.Client
	logger          *zap.Logger
}

func NewMapboxResolver(cfg MapboxConfig, logger *zap.Logger) *MapboxResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultMapboxBaseURL
	}
	lang := cfg.DefaultLanguage
	if lang == "" {
		lang = DefaultLanguage
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &MapboxResolver{
		token:           cfg.Token,
		baseURL:         base,
		defaultLanguage: lang,
		client:          client,
		logger:          logger,
	}
}

// Resolve looks the query up with the provider. Every call is a live
// lookup; nothing is cached.
func (r *MapboxResolver) Resolve(ctx context.Context, q Query) (Result, error) {
	ctx, span := otel.Tracer("GeocodeService").Start(ctx, "Resolve", trace.WithAttributes(
		attribute.String("geocode.query", q.Text),
		attribute.Bool("geocode.proximity", q.Proximity != nil),
	))
	defer span.End()

	start := time.Now()
	text := strings.TrimSpace(q.Text)
	l := r.logger.With(zap.String("method", "Resolve"), zap.String("query", text))

	lang, err := r.validate(text, q)
	if err != nil {
		r.record(ctx, "rejected", start)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Geocode request rejected")
		l.Debug("Geocode request rejected", zap.Error(err))
		return Result{}, err
	}

	reqURL := r.buildURL(text, lang, q.Proximity)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", models.ErrBadRequest, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := r.client.Do(req)
	if err != nil {
		failure := newFailure(0, err.Error(), err)
		r.record(ctx, "failed", start)
		span.RecordError(failure)
		span.SetStatus(codes.Error, "Geocode transport error")
		l.Warn("Geocode provider unreachable", zap.Error(err))
		return Result{}, failure
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		failure := newFailure(resp.StatusCode, err.Error(), err)
		r.record(ctx, "failed", start)
		span.RecordError(failure)
		span.SetStatus(codes.Error, "Geocode body read failed")
		return Result{}, failure
	}
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		failure := newFailure(resp.StatusCode, string(body), nil)
		r.record(ctx, "failed", start)
		span.RecordError(failure)
		span.SetStatus(codes.Error, "Geocode provider returned an error status")
		l.Warn("Geocode provider returned an error status", zap.Int("status", resp.StatusCode))
		return Result{}, failure
	}
	if !json.Valid(body) {
		failure := newFailure(resp.StatusCode, "INVALID_JSON_RESPONSE", nil)
		r.record(ctx, "failed", start)
		span.RecordError(failure)
		span.SetStatus(codes.Error, "Geocode provider returned invalid JSON")
		l.Warn("Geocode provider returned invalid JSON")
		return Result{}, failure
	}

	result := parseResponse(body)
	if !result.Resolved {
		r.record(ctx, "no_result", start)
		span.SetStatus(codes.Ok, "No result")
		l.Debug("Geocode returned no usable result")
		return result, nil
	}

	r.record(ctx, "resolved", start)
	span.SetAttributes(
		attribute.Float64("geocode.lat", result.Lat),
		attribute.Float64("geocode.lng", result.Lng),
	)
	span.SetStatus(codes.Ok, "Resolved")
	l.Debug("Geocode resolved", zap.Float64("lat", result.Lat), zap.Float64("lng", result.Lng))
	return result, nil
}

// validate rejects inputs that must never reach the network and returns
// the normalised language tag.
func (r *MapboxResolver) validate(text string, q Query) (string, error) {
	if text == "" {
		return "", models.ErrEmptyQuery
	}
	lang, err := NormalizeLanguage(q.Language, r.defaultLanguage)
	if err != nil {
		return "", err
	}
	if q.Proximity != nil && !q.Proximity.Valid() {
		return "", fmt.Errorf("%w: proximity out of range", models.ErrBadRequest)
	}
	if r.token == "" {
		return "", models.ErrMissingToken
	}
	return lang, nil
}

func (r *MapboxResolver) buildURL(text, lang string, proximity *geo.Point) string {
	params := url.Values{}
	params.Set("access_token", r.token)
	params.Set("limit", "1")
	params.Set("language", lang)
	if proximity != nil {
		params.Set("proximity", proximity.ProximityParam())
	}
	return r.baseURL + placesEndpoint + url.PathEscape(text) + ".json?" + params.Encode()
}

func (r *MapboxResolver) record(ctx context.Context, outcome string, start time.Time) {
	m := metrics.Get()
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	m.GeocodeRequestsTotal.Add(ctx, 1, attrs)
	m.GeocodeDuration.Record(ctx, time.Since(start).Seconds(), attrs)
}

// NormalizeLanguage returns the canonical BCP-47 form of lang, or of
// fallback when lang is empty.
func NormalizeLanguage(lang, fallback string) (string, error) {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		lang = fallback
	}
	if lang == "" {
		lang = DefaultLanguage
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return "", fmt.Errorf("%w: %q", models.ErrInvalidLanguage, lang)
	}
	return tag.String(), nil
}
