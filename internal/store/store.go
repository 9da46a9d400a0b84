// Package store defines the datastore abstraction for the upstream exchange
// log. Business logic depends on the Store interface, never on concrete
// implementations, so it can be tested with mocks and run without a database.
package store

import (
	"context"
	"errors"
	"time"

	domain "github.com/donaldgifford/vitam-chat/pkg/types"
)

// ErrNotFound is returned when a requested exchange does not exist.
var ErrNotFound = errors.New("not found")

// ExchangeQuery defines optional filters for exchange queries.
type ExchangeQuery struct {
	SessionID  *string
	Shape      *string
	Since      *time.Time
	FailedOnly bool
	Limit      int // default 50
	Offset     int
	OrderBy    string // "created_at", "latency"
}

// Store defines all data access operations for the exchange log.
type Store interface {
	// Exchanges
	RecordExchange(ctx context.Context, e *domain.Exchange) error
	GetExchange(ctx context.Context, id string) (*domain.Exchange, error)
	ListExchanges(ctx context.Context, q *ExchangeQuery) ([]domain.Exchange, int, error)
	ShapeStats(ctx context.Context, since time.Time) ([]domain.ShapeStat, error)
	PurgeExchanges(ctx context.Context, olderThan time.Time) (int64, error)

	// Migrations
	Migrate(ctx context.Context) error

	// Health
	Ping(ctx context.Context) error
}
