package geocode

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-tripplanner/internal/app/models"
)

const batchPath = "/api/geo/batch"

// Ensure implementation satisfies the interface
var _ BatchResolver = (*HTTPBatchClient)(nil)

// HTTPBatchClient calls a remote batch resolution endpoint. Any failure of
// the exchange is a whole-batch failure.
type HTTPBatchClient struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

func NewHTTPBatchClient(baseURL string, client *http.Client, logger *zap.Logger) *HTTPBatchClient {
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPBatchClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		logger:  logger,
	}
}

func (c *HTTPBatchClient) ResolveBatch(ctx context.Context, req BatchRequest) (BatchResponse, error) {
	ctx, span := otel.Tracer("GeocodeService").Start(ctx, "HTTPResolveBatch", trace.WithAttributes(
		attribute.Int("batch.items", len(req.Items)),
		attribute.String("batch.endpoint", c.baseURL+batchPath),
	))
	defer span.End()

	l := c.logger.With(zap.String("method", "HTTPResolveBatch"), zap.Int("items", len(req.Items)))

	fail := func(err error) (BatchResponse, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Batch request failed")
		l.Warn("Batch request failed", zap.Error(err))
		return BatchResponse{}, err
	}

	if len(req.Items) == 0 {
		return BatchResponse{}, models.ErrEmptyBatch
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return fail(fmt.Errorf("%w: encode request: %v", models.ErrBatchFailed, err))
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+batchPath, bytes.NewReader(payload))
	if err != nil {
		return fail(fmt.Errorf("%w: %v", models.ErrBatchFailed, err))
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return fail(fmt.Errorf("%w: %v", models.ErrBatchFailed, err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fail(fmt.Errorf("%w: read body: %v", models.ErrBatchFailed, err))
	}
	if resp.StatusCode != http.StatusOK {
		return fail(fmt.Errorf("%w: status %d: %s", models.ErrBatchFailed, resp.StatusCode, truncateDetail(string(body))))
	}

	var out BatchResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return fail(fmt.Errorf("%w: decode response: %v", models.ErrBatchFailed, err))
	}
	if !out.OK {
		return fail(fmt.Errorf("%w: endpoint reported failure", models.ErrBatchFailed))
	}
	if out.Result == nil {
		out.Result = map[string]BatchHit{}
	}

	span.SetStatus(codes.Ok, "Batch resolved")
	return out, nil
}
