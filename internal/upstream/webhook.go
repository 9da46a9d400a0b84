package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/donaldgifford/vitam-chat/internal/metrics"
)

const (
	defaultTimeout = 45 * time.Second
	maxBodyBytes   = 4 << 20
	errBodyPreview = 512
)

// WebhookClient implements Client by POSTing JSON to an HTTP webhook.
type WebhookClient struct {
	endpoint    string
	headers     map[string]string
	client      *http.Client
	maxBody     int64
	rateLimiter *RateLimiter
	tracer      trace.Tracer
	log         *slog.Logger
}

// WebhookOption configures the WebhookClient.
type WebhookOption func(*WebhookClient)

// WithHTTPClient overrides the default HTTP client. The default client's
// transport propagates trace context; a replacement is used as given.
func WithHTTPClient(c *http.Client) WebhookOption {
	return func(w *WebhookClient) {
		w.client = c
	}
}

// WithTimeout sets the per-call timeout on the default HTTP client.
func WithTimeout(d time.Duration) WebhookOption {
	return func(w *WebhookClient) {
		w.client.Timeout = d
	}
}

// WithHeaders adds static headers to every call.
func WithHeaders(h map[string]string) WebhookOption {
	return func(w *WebhookClient) {
		for k, v := range h {
			w.headers[k] = v
		}
	}
}

// WithMaxResponseBytes caps the accepted reply size. Larger replies fail
// with ErrResponseTooLarge.
func WithMaxResponseBytes(n int64) WebhookOption {
	return func(w *WebhookClient) {
		w.maxBody = n
	}
}

// WithRateLimiter enables per-second and daily limiting.
func WithRateLimiter(rl *RateLimiter) WebhookOption {
	return func(w *WebhookClient) {
		w.rateLimiter = rl
	}
}

// WithTracerProvider overrides the global tracer provider.
func WithTracerProvider(tp trace.TracerProvider) WebhookOption {
	return func(w *WebhookClient) {
		w.tracer = tp.Tracer(tracerName)
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) WebhookOption {
	return func(w *WebhookClient) {
		w.log = l
	}
}

const tracerName = "github.com/donaldgifford/vitam-chat/internal/upstream"

// NewWebhookClient creates a client for endpoint. An empty endpoint is
// accepted; every Send then fails with ErrEndpointNotConfigured.
func NewWebhookClient(endpoint string, opts ...WebhookOption) *WebhookClient {
	w := &WebhookClient{
		endpoint: endpoint,
		headers:  make(map[string]string),
		maxBody:  maxBodyBytes,
		client: &http.Client{
			Timeout:   defaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		tracer: otel.Tracer(tracerName),
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Endpoint returns the configured webhook URL.
func (w *WebhookClient) Endpoint() string {
	return w.endpoint
}

// RateLimiter returns the limiter, or nil when limiting is disabled.
func (w *WebhookClient) RateLimiter() *RateLimiter {
	return w.rateLimiter
}

// Send implements Client.Send.
func (w *WebhookClient) Send(ctx context.Context, req Request) (*Response, error) {
	ctx, span := w.tracer.Start(ctx, "upstream.Send",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("chat.session_id", req.SessionID),
			attribute.Int("chat.input_length", len(req.ChatInput)),
		),
	)
	defer span.End()

	resp, err := w.send(ctx, req)
	if err != nil {
		reason := FailureReason(err)
		metrics.UpstreamFailuresTotal.WithLabelValues(reason).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, reason)
		return resp, err
	}

	span.SetAttributes(
		attribute.Int("http.response.status_code", resp.StatusCode),
		attribute.Int("http.response.body.size", len(resp.Body)),
	)
	return resp, nil
}

func (w *WebhookClient) send(ctx context.Context, req Request) (*Response, error) {
	if w.endpoint == "" {
		return nil, ErrEndpointNotConfigured
	}

	if w.rateLimiter != nil {
		if err := w.rateLimiter.Wait(ctx); err != nil {
			if errors.Is(err, ErrDailyLimitReached) {
				metrics.UpstreamDailyLimitHits.Inc()
			}
			return nil, fmt.Errorf("rate limit: %w", err)
		}
		metrics.UpstreamDailyUsage.Set(float64(w.rateLimiter.DailyCount()))
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		w.endpoint,
		bytes.NewReader(body),
	)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	for k, v := range w.headers {
		httpReq.Header.Set(k, v)
	}

	metrics.UpstreamRequestsTotal.Inc()
	start := time.Now()

	resp, err := w.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("calling upstream webhook: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, w.maxBody+1))
	latency := time.Since(start)
	metrics.UpstreamRequestDuration.Observe(latency.Seconds())
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if int64(len(respBody)) > w.maxBody {
		return &Response{StatusCode: resp.StatusCode, Latency: latency},
			fmt.Errorf("%w: more than %d bytes", ErrResponseTooLarge, w.maxBody)
	}

	out := &Response{
		StatusCode: resp.StatusCode,
		Body:       respBody,
		Latency:    latency,
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		preview := string(respBody)
		if len(preview) > errBodyPreview {
			preview = strings.ToValidUTF8(preview[:errBodyPreview], "")
		}
		return out, &StatusError{StatusCode: resp.StatusCode, Body: preview}
	}

	w.log.DebugContext(ctx, "upstream reply received",
		"status", resp.StatusCode,
		"bytes", len(respBody),
		"latency_ms", latency.Milliseconds(),
	)
	return out, nil
}
