package client

import (
	"context"
	"net/url"
	"strconv"
	"time"

	domain "github.com/donaldgifford/vitam-chat/pkg/types"
)

// ExchangeFilter narrows an exchange listing. Zero values are omitted.
type ExchangeFilter struct {
	SessionID  string
	Shape      string
	Since      time.Time
	FailedOnly bool
	Limit      int
	Offset     int
	OrderBy    string
}

func (f ExchangeFilter) values() url.Values {
	v := url.Values{}
	if f.SessionID != "" {
		v.Set("session_id", f.SessionID)
	}
	if f.Shape != "" {
		v.Set("shape", f.Shape)
	}
	if !f.Since.IsZero() {
		v.Set("since", f.Since.UTC().Format(time.RFC3339))
	}
	if f.FailedOnly {
		v.Set("failed_only", "true")
	}
	if f.Limit > 0 {
		v.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Offset > 0 {
		v.Set("offset", strconv.Itoa(f.Offset))
	}
	if f.OrderBy != "" {
		v.Set("order_by", f.OrderBy)
	}
	return v
}

// ExchangePage is one page of the exchange log.
type ExchangePage struct {
	Exchanges []domain.Exchange `json:"exchanges"`
	Total     int               `json:"total"`
	Limit     int               `json:"limit"`
	Offset    int               `json:"offset"`
}

// ExchangeStats aggregates the exchange log by payload shape.
type ExchangeStats struct {
	Since  time.Time          `json:"since"`
	Total  int                `json:"total"`
	Shapes []domain.ShapeStat `json:"shapes"`
}

// Quota is the upstream rate limiter status.
type Quota struct {
	Enabled    bool      `json:"enabled"`
	DailyLimit int64     `json:"daily_limit"`
	DailyUsed  int64     `json:"daily_used"`
	Remaining  int64     `json:"remaining"`
	ResetAt    time.Time `json:"reset_at"`
}

// ListExchanges returns a page of recorded upstream exchanges.
func (c *Client) ListExchanges(ctx context.Context, f ExchangeFilter) (*ExchangePage, error) {
	path := "/api/v1/exchanges"
	if q := f.values().Encode(); q != "" {
		path += "?" + q
	}

	var page ExchangePage
	if err := c.get(ctx, path, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetExchange returns one exchange including its raw payload.
func (c *Client) GetExchange(ctx context.Context, id string) (*domain.Exchange, error) {
	var e domain.Exchange
	if err := c.get(ctx, "/api/v1/exchanges/"+url.PathEscape(id), &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// ExchangeStats aggregates exchanges over the last hours. Zero uses the
// server default.
func (c *Client) ExchangeStats(ctx context.Context, hours int) (*ExchangeStats, error) {
	path := "/api/v1/exchanges/stats"
	if hours > 0 {
		path += "?hours=" + strconv.Itoa(hours)
	}

	var s ExchangeStats
	if err := c.get(ctx, path, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Normalize runs a raw payload through the server's normalizer.
func (c *Client) Normalize(ctx context.Context, payload []byte) (*domain.Reply, error) {
	var r domain.Reply
	if err := c.postRaw(ctx, "/api/v1/normalize", payload, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Quota returns the upstream rate limiter status.
func (c *Client) Quota(ctx context.Context) (*Quota, error) {
	var q Quota
	if err := c.get(ctx, "/api/v1/upstream/quota", &q); err != nil {
		return nil, err
	}
	return &q, nil
}
