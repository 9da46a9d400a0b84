package store

// Exchange log queries. PostgresStore methods reference these constants.
const (
	queryInsertExchange = `
		INSERT INTO exchanges (
			session_id, chat_input, raw_body, shape, enveloped,
			reply_text, product_count, http_status, latency_ms, error_text
		) VALUES (
			@session_id, @chat_input, @raw_body, @shape, @enveloped,
			@reply_text, @product_count, @http_status, @latency_ms, @error_text
		)
		RETURNING id, created_at`

	queryGetExchangeByID = baseExchangesSelect + `
		WHERE id = $1`

	// Failed exchanges carry the "failed" shape, so grouping by shape keeps
	// them in their own bucket.
	queryShapeStats = `
		SELECT shape,
			COUNT(*),
			COUNT(*) FILTER (WHERE enveloped),
			COALESCE(AVG(product_count), 0)::float8,
			COALESCE(AVG(latency_ms), 0)::float8
		FROM exchanges
		WHERE created_at >= $1
		GROUP BY shape
		ORDER BY COUNT(*) DESC, shape`

	queryPurgeExchanges = `
		DELETE FROM exchanges
		WHERE created_at < $1`
)
