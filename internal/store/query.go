package store

import (
	"fmt"
	"strings"
)

const (
	defaultLimit = 50
	maxLimit     = 500

	orderByCreatedAt = "created_at"
	orderByLatency   = "latency"
)

// validOrderBy maps allowed OrderBy values to their SQL column expressions.
var validOrderBy = map[string]string{
	orderByCreatedAt: "created_at DESC",
	orderByLatency:   "latency_ms DESC",
}

const defaultOrderBy = "created_at DESC"

const exchangeColumns = `id, session_id, chat_input, raw_body, shape, enveloped,
	reply_text, product_count, http_status, latency_ms, error_text, created_at`

const (
	baseExchangesSelect  = "SELECT " + exchangeColumns + " FROM exchanges"
	countExchangesSelect = "SELECT COUNT(*) FROM exchanges"
)

// ToSQL builds the WHERE clause, ORDER BY, LIMIT, and OFFSET for an exchange
// query. It returns the data and count SQL plus their shared positional
// parameters.
func (q *ExchangeQuery) ToSQL() (dataSQL, countSQL string, args []any) {
	var conditions []string
	paramIdx := 1

	if q.SessionID != nil {
		conditions = append(conditions, fmt.Sprintf("session_id = $%d", paramIdx))
		args = append(args, *q.SessionID)
		paramIdx++
	}

	if q.Shape != nil {
		conditions = append(conditions, fmt.Sprintf("shape = $%d", paramIdx))
		args = append(args, *q.Shape)
		paramIdx++
	}

	if q.Since != nil {
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", paramIdx))
		args = append(args, *q.Since)
	}

	if q.FailedOnly {
		conditions = append(conditions, "error_text <> ''")
	}

	var whereClause string
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	orderClause := defaultOrderBy
	if col, ok := validOrderBy[q.OrderBy]; ok {
		orderClause = col
	}

	limit := q.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	limit = min(limit, maxLimit)

	offset := max(q.Offset, 0)

	dataSQL = fmt.Sprintf(
		"%s%s ORDER BY %s LIMIT %d OFFSET %d",
		baseExchangesSelect, whereClause, orderClause, limit, offset,
	)

	countSQL = countExchangesSelect + whereClause

	return dataSQL, countSQL, args
}
