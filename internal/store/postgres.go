package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/donaldgifford/vitam-chat/pkg/types"
)

const defaultPoolSize = 10

// PostgresStore implements Store using pgxpool (connection-pooled PostgreSQL).
// Methods require a live database and are exercised by the integration tests.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// PostgresOption configures a PostgresStore.
type PostgresOption func(*pgxpool.Config)

// WithPoolSize caps the number of pooled connections.
func WithPoolSize(n int) PostgresOption {
	return func(c *pgxpool.Config) {
		if n > 0 {
			c.MaxConns = int32(n) //nolint:gosec // bounded by config validation
		}
	}
}

// NewPostgresStore creates a new PostgresStore with connection pooling.
func NewPostgresStore(
	ctx context.Context,
	connString string,
	opts ...PostgresOption,
) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	cfg.MaxConns = defaultPoolSize
	for _, opt := range opts {
		opt(cfg)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close gracefully shuts down the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate applies pending SQL schema migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := RunMigrations(ctx, s.pool)
	return err
}

// MigrationStatuses reports which bundled migrations have been applied.
func (s *PostgresStore) MigrationStatuses(ctx context.Context) ([]MigrationState, error) {
	return MigrationStatuses(ctx, s.pool)
}

// RecordExchange inserts an exchange and fills in its generated ID and
// creation time.
func (s *PostgresStore) RecordExchange(ctx context.Context, e *domain.Exchange) error {
	args := pgx.NamedArgs{
		"session_id":    e.SessionID,
		"chat_input":    e.ChatInput,
		"raw_body":      e.RawBody,
		"shape":         string(e.Shape),
		"enveloped":     e.Enveloped,
		"reply_text":    e.ReplyText,
		"product_count": e.ProductCount,
		"http_status":   e.HTTPStatus,
		"latency_ms":    e.LatencyMS,
		"error_text":    e.ErrorText,
	}

	if err := s.pool.QueryRow(ctx, queryInsertExchange, args).Scan(&e.ID, &e.CreatedAt); err != nil {
		return fmt.Errorf("inserting exchange: %w", err)
	}
	return nil
}

// GetExchange retrieves an exchange by its UUID.
func (s *PostgresStore) GetExchange(ctx context.Context, id string) (*domain.Exchange, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	e := &domain.Exchange{}
	if err := scanExchange(s.pool.QueryRow(ctx, queryGetExchangeByID, id), e); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting exchange: %w", err)
	}
	return e, nil
}

// ListExchanges queries exchanges with optional filters, returning results
// and the total count.
func (s *PostgresStore) ListExchanges(
	ctx context.Context,
	q *ExchangeQuery,
) ([]domain.Exchange, int, error) {
	if q == nil {
		q = &ExchangeQuery{}
	}
	dataSQL, countSQL, args := q.ToSQL()

	var total int
	if err := s.pool.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting exchanges: %w", err)
	}

	rows, err := s.pool.Query(ctx, dataSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying exchanges: %w", err)
	}
	defer rows.Close()

	exchanges := []domain.Exchange{}
	for rows.Next() {
		var e domain.Exchange
		if err := scanExchange(rows, &e); err != nil {
			return nil, 0, fmt.Errorf("scanning exchange: %w", err)
		}
		exchanges = append(exchanges, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating exchanges: %w", err)
	}

	return exchanges, total, nil
}

// ShapeStats aggregates exchanges created at or after since, grouped by shape.
func (s *PostgresStore) ShapeStats(ctx context.Context, since time.Time) ([]domain.ShapeStat, error) {
	rows, err := s.pool.Query(ctx, queryShapeStats, since)
	if err != nil {
		return nil, fmt.Errorf("querying shape stats: %w", err)
	}
	defer rows.Close()

	stats := []domain.ShapeStat{}
	for rows.Next() {
		var st domain.ShapeStat
		var shape string
		if err := rows.Scan(
			&shape, &st.Count, &st.Enveloped, &st.AvgProducts, &st.AvgLatencyMS,
		); err != nil {
			return nil, fmt.Errorf("scanning shape stat: %w", err)
		}
		st.Shape = domain.Shape(shape)
		stats = append(stats, st)
	}
	return stats, rows.Err()
}

// PurgeExchanges deletes exchanges created before olderThan and returns the
// number of rows removed.
func (s *PostgresStore) PurgeExchanges(ctx context.Context, olderThan time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx, queryPurgeExchanges, olderThan)
	if err != nil {
		return 0, fmt.Errorf("purging exchanges: %w", err)
	}
	return tag.RowsAffected(), nil
}

// scanExchange scans a row in exchangeColumns order.
func scanExchange(row pgx.Row, e *domain.Exchange) error {
	var shape string
	if err := row.Scan(
		&e.ID, &e.SessionID, &e.ChatInput, &e.RawBody, &shape, &e.Enveloped,
		&e.ReplyText, &e.ProductCount, &e.HTTPStatus, &e.LatencyMS, &e.ErrorText, &e.CreatedAt,
	); err != nil {
		return err
	}
	e.Shape = domain.Shape(shape)
	return nil
}
