// Package engine orchestrates chat sends, cart operations and the periodic
// housekeeping jobs around the session registry and the exchange log.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/donaldgifford/vitam-chat/internal/config"
	"github.com/donaldgifford/vitam-chat/internal/metrics"
	"github.com/donaldgifford/vitam-chat/internal/notify"
	"github.com/donaldgifford/vitam-chat/internal/session"
	"github.com/donaldgifford/vitam-chat/internal/store"
	"github.com/donaldgifford/vitam-chat/internal/upstream"
	"github.com/donaldgifford/vitam-chat/pkg/cart"
	"github.com/donaldgifford/vitam-chat/pkg/normalize"
	domain "github.com/donaldgifford/vitam-chat/pkg/types"
)

const tracerName = "github.com/donaldgifford/vitam-chat/internal/engine"

// storeTimeout bounds exchange log writes, which outlive the request context.
const storeTimeout = 5 * time.Second

// Sentinel errors.
var (
	ErrEmptyMessage    = errors.New("message content is empty")
	ErrProductNotFound = errors.New("product not found in session transcript")
)

// SendError is returned when the upstream call fails. Message is the text
// shown to the chat user; the underlying cause is kept for logs.
type SendError struct {
	Message string
	Reason  string
	Err     error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("upstream %s: %v", e.Reason, e.Err)
}

func (e *SendError) Unwrap() error {
	return e.Err
}

// SendResult is the outcome of a successful chat send.
type SendResult struct {
	UserMessage      domain.ChatMessage `json:"user_message"`
	AssistantMessage domain.ChatMessage `json:"assistant_message"`
	Shape            domain.Shape       `json:"shape"`
	Enveloped        bool               `json:"enveloped"`
}

// AddResult is the outcome of adding a product to a cart.
type AddResult struct {
	Product  domain.Product     `json:"product"`
	Quantity int                `json:"quantity"`
	Notice   string             `json:"notice"`
	Cart     domain.CartSummary `json:"cart"`
}

// AddedToCartNotice is the confirmation shown after an add.
func AddedToCartNotice(name string) string {
	return name + " ajouté au panier !"
}

// Engine serves chat sends and cart operations for live sessions.
type Engine struct {
	sessions   *session.Manager
	upstream   upstream.Client
	normalizer *normalize.Normalizer
	store      store.Store
	notifier   notify.Notifier
	log        *slog.Logger
	tracer     trace.Tracer
	nowFunc    func() time.Time

	endpoint     string
	errorMessage string
	openOnAdd    bool
	retention    time.Duration
}

// NewEngine creates a new Engine with injected dependencies. The exchange log
// and notifier are optional.
func NewEngine(
	sessions *session.Manager,
	client upstream.Client,
	normalizer *normalize.Normalizer,
	opts ...EngineOption,
) *Engine {
	eng := &Engine{
		sessions:     sessions,
		upstream:     client,
		normalizer:   normalizer,
		log:          slog.Default(),
		tracer:       otel.Tracer(tracerName),
		nowFunc:      time.Now,
		errorMessage: config.DefaultErrorMessage,
		retention:    30 * 24 * time.Hour,
	}
	for _, opt := range opts {
		opt(eng)
	}
	return eng
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.log = l
	}
}

// WithStore enables the exchange log.
func WithStore(s store.Store) EngineOption {
	return func(e *Engine) {
		e.store = s
	}
}

// WithNotifier sets where upstream failures are reported.
func WithNotifier(n notify.Notifier) EngineOption {
	return func(e *Engine) {
		e.notifier = n
	}
}

// WithTracerProvider sets the tracer provider for send spans.
func WithTracerProvider(tp trace.TracerProvider) EngineOption {
	return func(e *Engine) {
		e.tracer = tp.Tracer(tracerName)
	}
}

// WithNowFunc overrides the clock.
func WithNowFunc(f func() time.Time) EngineOption {
	return func(e *Engine) {
		e.nowFunc = f
	}
}

// WithEndpoint records the upstream endpoint for failure alerts.
func WithEndpoint(endpoint string) EngineOption {
	return func(e *Engine) {
		e.endpoint = endpoint
	}
}

// WithErrorMessage sets the text shown to users when a send fails.
func WithErrorMessage(msg string) EngineOption {
	return func(e *Engine) {
		if msg != "" {
			e.errorMessage = msg
		}
	}
}

// WithOpenOnAdd opens the cart whenever a product is added.
func WithOpenOnAdd(open bool) EngineOption {
	return func(e *Engine) {
		e.openOnAdd = open
	}
}

// WithRetention sets how long exchanges are kept before purging.
func WithRetention(d time.Duration) EngineOption {
	return func(e *Engine) {
		e.retention = d
	}
}

// Sessions returns the session registry.
func (eng *Engine) Sessions() *session.Manager {
	return eng.sessions
}

// Store returns the exchange log, or nil when it is disabled.
func (eng *Engine) Store() store.Store {
	return eng.store
}

// CreateSession opens a session seeded with the welcome message.
func (eng *Engine) CreateSession() *session.Session {
	return eng.sessions.Create()
}

// History returns the transcript of a session.
func (eng *Engine) History(id string) ([]domain.ChatMessage, error) {
	s, err := eng.sessions.Get(id)
	if err != nil {
		return nil, err
	}
	return s.Messages(), nil
}

// Send appends the user message, forwards it upstream and appends the
// normalized reply. On upstream failure the user message stays in the
// transcript and a *SendError carrying the user-facing message is returned.
func (eng *Engine) Send(ctx context.Context, sessionID, content string) (*SendResult, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyMessage
	}

	s, err := eng.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	ctx, span := eng.tracer.Start(ctx, "engine.Send",
		trace.WithAttributes(attribute.String("chat.session_id", sessionID)),
	)
	defer span.End()

	done := s.BeginSend()
	defer done()

	userMsg := s.Append(domain.RoleUser, content, nil)

	resp, err := eng.upstream.Send(ctx, upstream.Request{
		ChatInput: content,
		SessionID: sessionID,
	})
	if err != nil {
		reason := upstream.FailureReason(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, reason)
		eng.log.WarnContext(ctx, "upstream send failed",
			"session_id", sessionID,
			"reason", reason,
			"error", err,
		)
		eng.recordFailure(ctx, sessionID, content, resp, reason, err)
		return nil, &SendError{Message: eng.errorMessage, Reason: reason, Err: err}
	}

	reply := eng.normalize(ctx, resp.Body)
	assistantMsg := s.Append(domain.RoleAssistant, reply.Text, reply.Products)

	span.SetAttributes(
		attribute.String("chat.reply.shape", string(reply.Shape)),
		attribute.Int("chat.reply.products", len(reply.Products)),
	)

	eng.record(ctx, &domain.Exchange{
		SessionID:    sessionID,
		ChatInput:    content,
		RawBody:      string(resp.Body),
		Shape:        reply.Shape,
		Enveloped:    reply.Enveloped,
		ReplyText:    reply.Text,
		ProductCount: len(reply.Products),
		HTTPStatus:   resp.StatusCode,
		LatencyMS:    resp.Latency.Milliseconds(),
	})

	return &SendResult{
		UserMessage:      userMsg,
		AssistantMessage: assistantMsg,
		Shape:            reply.Shape,
		Enveloped:        reply.Enveloped,
	}, nil
}

// Normalize runs a raw payload through the normalizer and records the
// shape metrics, without touching any session.
func (eng *Engine) Normalize(ctx context.Context, body []byte) domain.Reply {
	return eng.normalize(ctx, body)
}

func (eng *Engine) normalize(ctx context.Context, body []byte) domain.Reply {
	_, span := eng.tracer.Start(ctx, "normalize.Reply")
	defer span.End()

	reply := eng.normalizer.NormalizeBytes(body)

	metrics.RepliesTotal.WithLabelValues(string(reply.Shape)).Inc()
	metrics.ProductsMappedTotal.Add(float64(len(reply.Products)))
	if reply.Enveloped {
		metrics.EnvelopedRepliesTotal.Inc()
	}
	if reply.Shape == domain.ShapeFallback {
		metrics.FallbackRepliesTotal.Inc()
		eng.log.DebugContext(ctx, "upstream reply carried no usable text", "bytes", len(body))
	}

	span.SetAttributes(
		attribute.String("chat.reply.shape", string(reply.Shape)),
		attribute.Bool("chat.reply.enveloped", reply.Enveloped),
	)
	return reply
}

func (eng *Engine) recordFailure(
	ctx context.Context,
	sessionID, content string,
	resp *upstream.Response,
	reason string,
	sendErr error,
) {
	e := &domain.Exchange{
		SessionID: sessionID,
		ChatInput: content,
		Shape:     domain.ShapeFailed,
		ErrorText: sendErr.Error(),
	}
	alert := &notify.FailureAlert{
		SessionID:  sessionID,
		ChatInput:  content,
		Endpoint:   eng.endpoint,
		Reason:     reason,
		Error:      sendErr.Error(),
		OccurredAt: eng.nowFunc(),
	}
	if resp != nil {
		e.RawBody = string(resp.Body)
		e.HTTPStatus = resp.StatusCode
		e.LatencyMS = resp.Latency.Milliseconds()
		alert.HTTPStatus = resp.StatusCode
		alert.Latency = resp.Latency
	}

	eng.record(ctx, e)

	if eng.notifier == nil || reason == "canceled" {
		return
	}
	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), storeTimeout)
	defer cancel()
	if err := eng.notifier.SendFailure(nctx, alert); err != nil {
		metrics.NotificationFailuresTotal.Inc()
		eng.log.ErrorContext(ctx, "sending failure notification", "error", err)
	}
}

// record writes an exchange to the log. Failures are logged and counted,
// never returned to the chat user.
func (eng *Engine) record(ctx context.Context, e *domain.Exchange) {
	if eng.store == nil {
		return
	}

	sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), storeTimeout)
	defer cancel()

	if err := eng.store.RecordExchange(sctx, e); err != nil {
		metrics.StoreErrorsTotal.WithLabelValues("record").Inc()
		eng.log.ErrorContext(ctx, "recording exchange", "session_id", e.SessionID, "error", err)
		return
	}
	metrics.ExchangesRecordedTotal.Inc()
}

// Cart returns the cart summary of a session.
func (eng *Engine) Cart(sessionID string) (domain.CartSummary, error) {
	s, err := eng.sessions.Get(sessionID)
	if err != nil {
		return domain.CartSummary{}, err
	}
	return s.CartSummary(), nil
}

// AddToCart adds a full product to the session cart.
func (eng *Engine) AddToCart(sessionID string, p domain.Product) (*AddResult, error) {
	s, err := eng.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return eng.add(s, p), nil
}

// AddRecommended adds a product recommended earlier in the transcript.
func (eng *Engine) AddRecommended(sessionID, productID string) (*AddResult, error) {
	s, err := eng.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	p, ok := s.FindProduct(productID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, productID)
	}
	return eng.add(s, p), nil
}

func (eng *Engine) add(s *session.Session, p domain.Product) *AddResult {
	res := &AddResult{Product: p}
	s.WithCart(func(c *cart.Cart) {
		res.Quantity = c.Add(p)
		if eng.openOnAdd {
			c.SetOpen(true)
		}
		res.Cart = c.Summary()
	})
	res.Notice = AddedToCartNotice(p.Name)

	metrics.CartAddsTotal.Inc()
	eng.log.Debug("product added to cart",
		"session_id", s.ID(),
		"product_id", p.ID,
		"quantity", res.Quantity,
	)
	return res
}

// RemoveFromCart deletes a product line. Unknown ids are a no-op.
func (eng *Engine) RemoveFromCart(sessionID, productID string) (domain.CartSummary, error) {
	s, err := eng.sessions.Get(sessionID)
	if err != nil {
		return domain.CartSummary{}, err
	}

	var summary domain.CartSummary
	s.WithCart(func(c *cart.Cart) {
		if c.Remove(productID) {
			metrics.CartRemovesTotal.Inc()
		}
		summary = c.Summary()
	})
	return summary, nil
}

// ClearCart empties the session cart, leaving its open state alone.
func (eng *Engine) ClearCart(sessionID string) (domain.CartSummary, error) {
	s, err := eng.sessions.Get(sessionID)
	if err != nil {
		return domain.CartSummary{}, err
	}

	var summary domain.CartSummary
	s.WithCart(func(c *cart.Cart) {
		c.Clear()
		summary = c.Summary()
	})
	return summary, nil
}

// SetCartOpen sets the cart drawer state.
func (eng *Engine) SetCartOpen(sessionID string, open bool) (domain.CartSummary, error) {
	s, err := eng.sessions.Get(sessionID)
	if err != nil {
		return domain.CartSummary{}, err
	}

	var summary domain.CartSummary
	s.WithCart(func(c *cart.Cart) {
		c.SetOpen(open)
		summary = c.Summary()
	})
	return summary, nil
}

// SweepSessions removes sessions idle for longer than idle.
func (eng *Engine) SweepSessions(idle time.Duration) int {
	return eng.sessions.Sweep(idle)
}

// PurgeExchanges drops exchange log rows older than the retention window.
func (eng *Engine) PurgeExchanges(ctx context.Context) (int64, error) {
	if eng.store == nil || eng.retention <= 0 {
		return 0, nil
	}

	n, err := eng.store.PurgeExchanges(ctx, eng.nowFunc().Add(-eng.retention))
	if err != nil {
		metrics.StoreErrorsTotal.WithLabelValues("purge").Inc()
		return 0, fmt.Errorf("purging exchanges: %w", err)
	}
	metrics.ExchangesPurgedTotal.Add(float64(n))
	return n, nil
}
