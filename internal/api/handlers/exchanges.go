package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/vitam-chat/internal/store"
	domain "github.com/donaldgifford/vitam-chat/pkg/types"
)

const errExchangeLogDisabled = "exchange log is disabled"

// ExchangesHandler serves the upstream exchange log.
type ExchangesHandler struct {
	store   store.Store
	nowFunc func() time.Time
}

// NewExchangesHandler creates a new ExchangesHandler. A nil store answers
// every request with 503.
func NewExchangesHandler(s store.Store) *ExchangesHandler {
	return &ExchangesHandler{store: s, nowFunc: time.Now}
}

// --- Input/Output types ---

// ListExchangesInput filters the exchange log.
type ListExchangesInput struct {
	SessionID  string `query:"session_id"  doc:"Filter by session ID"`
	Shape      string `query:"shape"       doc:"Filter by resolved payload shape" enum:"direct,embedded,plain,fallback,failed,"`
	Since      string `query:"since"       doc:"Only exchanges at or after this RFC 3339 time"`
	FailedOnly bool   `query:"failed_only" doc:"Only exchanges whose upstream call failed"`
	Limit      int    `query:"limit"       doc:"Number of results (default 50)"   minimum:"1" maximum:"500"`
	Offset     int    `query:"offset"      doc:"Pagination offset"                minimum:"0"`
	OrderBy    string `query:"order_by"    doc:"Sort field"                       enum:"created_at,latency,"`
}

// ListExchangesOutput is a page of exchanges.
type ListExchangesOutput struct {
	Body struct {
		Exchanges []domain.Exchange `json:"exchanges"`
		Total     int               `json:"total"`
		Limit     int               `json:"limit"`
		Offset    int               `json:"offset"`
	}
}

// GetExchangeInput identifies one exchange.
type GetExchangeInput struct {
	ID string `path:"id" doc:"Exchange UUID"`
}

// GetExchangeOutput is a single exchange, raw payload included.
type GetExchangeOutput struct {
	Body domain.Exchange
}

// ExchangeStatsInput selects the aggregation window.
type ExchangeStatsInput struct {
	Hours int `query:"hours" doc:"Window size in hours (default 24)" minimum:"1" maximum:"8760"`
}

// ExchangeStatsOutput aggregates exchanges per shape.
type ExchangeStatsOutput struct {
	Body struct {
		Since  time.Time          `json:"since"`
		Total  int                `json:"total"`
		Shapes []domain.ShapeStat `json:"shapes"`
	}
}

// --- Handlers ---

// ListExchanges returns exchanges with optional filters and pagination.
func (h *ExchangesHandler) ListExchanges(
	ctx context.Context,
	input *ListExchangesInput,
) (*ListExchangesOutput, error) {
	if h.store == nil {
		return nil, huma.Error503ServiceUnavailable(errExchangeLogDisabled)
	}

	q := &store.ExchangeQuery{
		FailedOnly: input.FailedOnly,
		Limit:      input.Limit,
		Offset:     input.Offset,
		OrderBy:    input.OrderBy,
	}
	if input.SessionID != "" {
		q.SessionID = &input.SessionID
	}
	if input.Shape != "" {
		q.Shape = &input.Shape
	}
	if input.Since != "" {
		since, err := time.Parse(time.RFC3339, input.Since)
		if err != nil {
			return nil, huma.Error400BadRequest("since must be an RFC 3339 timestamp")
		}
		q.Since = &since
	}

	exchanges, total, err := h.store.ListExchanges(ctx, q)
	if err != nil {
		return nil, huma.Error500InternalServerError("exchange query failed: " + err.Error())
	}

	resp := &ListExchangesOutput{}
	resp.Body.Exchanges = exchanges
	resp.Body.Total = total
	resp.Body.Limit = q.Limit
	resp.Body.Offset = q.Offset
	return resp, nil
}

// GetExchange returns a single exchange by ID.
func (h *ExchangesHandler) GetExchange(
	ctx context.Context,
	input *GetExchangeInput,
) (*GetExchangeOutput, error) {
	if h.store == nil {
		return nil, huma.Error503ServiceUnavailable(errExchangeLogDisabled)
	}

	e, err := h.store.GetExchange(ctx, input.ID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, huma.Error404NotFound("exchange not found")
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("getting exchange: " + err.Error())
	}
	return &GetExchangeOutput{Body: *e}, nil
}

// Stats aggregates exchanges by resolved shape over the requested window.
func (h *ExchangesHandler) Stats(
	ctx context.Context,
	input *ExchangeStatsInput,
) (*ExchangeStatsOutput, error) {
	if h.store == nil {
		return nil, huma.Error503ServiceUnavailable(errExchangeLogDisabled)
	}

	hours := input.Hours
	if hours == 0 {
		hours = 24
	}
	since := h.nowFunc().Add(-time.Duration(hours) * time.Hour)

	stats, err := h.store.ShapeStats(ctx, since)
	if err != nil {
		return nil, huma.Error500InternalServerError("exchange stats failed: " + err.Error())
	}

	resp := &ExchangeStatsOutput{}
	resp.Body.Since = since
	resp.Body.Shapes = stats
	if resp.Body.Shapes == nil {
		resp.Body.Shapes = []domain.ShapeStat{}
	}
	for _, s := range stats {
		resp.Body.Total += s.Count
	}
	return resp, nil
}

// RegisterExchangeRoutes registers exchange log endpoints with the Huma API.
func RegisterExchangeRoutes(api huma.API, h *ExchangesHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-exchanges",
		Method:      http.MethodGet,
		Path:        "/api/v1/exchanges",
		Summary:     "List upstream exchanges",
		Description: "Returns recorded upstream round trips, newest first, with optional filters and pagination.",
		Tags:        []string{"exchanges"},
		Errors:      []int{http.StatusBadRequest, http.StatusServiceUnavailable},
	}, h.ListExchanges)

	huma.Register(api, huma.Operation{
		OperationID: "get-exchange-stats",
		Method:      http.MethodGet,
		Path:        "/api/v1/exchanges/stats",
		Summary:     "Aggregate exchanges by payload shape",
		Description: "Counts exchanges per resolved shape with enveloped counts and averages, over the last N hours.",
		Tags:        []string{"exchanges"},
		Errors:      []int{http.StatusServiceUnavailable},
	}, h.Stats)

	huma.Register(api, huma.Operation{
		OperationID: "get-exchange",
		Method:      http.MethodGet,
		Path:        "/api/v1/exchanges/{id}",
		Summary:     "Get an exchange by ID",
		Description: "Returns one exchange including the raw upstream payload.",
		Tags:        []string{"exchanges"},
		Errors:      []int{http.StatusNotFound, http.StatusServiceUnavailable},
	}, h.GetExchange)
}
