package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/vitam-chat/internal/api/handlers"
	"github.com/donaldgifford/vitam-chat/internal/upstream"
)

func TestGetQuota(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		rl          *upstream.RateLimiter
		preCalls    int
		wantEnabled string
		wantLimit   string
		wantUsed    string
		wantRemain  string
	}{
		{
			name:        "nil rate limiter returns zeroes",
			rl:          nil,
			wantEnabled: `"enabled":false`,
			wantLimit:   `"daily_limit":0`,
			wantUsed:    `"daily_used":0`,
			wantRemain:  `"remaining":0`,
		},
		{
			name:        "fresh rate limiter",
			rl:          upstream.NewRateLimiter(100, 10, 5000),
			wantEnabled: `"enabled":true`,
			wantLimit:   `"daily_limit":5000`,
			wantUsed:    `"daily_used":0`,
			wantRemain:  `"remaining":5000`,
		},
		{
			name:        "rate limiter with usage",
			rl:          upstream.NewRateLimiter(100, 10, 100),
			preCalls:    3,
			wantEnabled: `"enabled":true`,
			wantLimit:   `"daily_limit":100`,
			wantUsed:    `"daily_used":3`,
			wantRemain:  `"remaining":97`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if tt.rl != nil {
				for range tt.preCalls {
					require.NoError(t, tt.rl.Wait(t.Context()))
				}
			}

			_, api := humatest.New(t)
			handlers.RegisterQuotaRoutes(api, handlers.NewQuotaHandler(tt.rl))

			resp := api.Get("/api/v1/upstream/quota")
			require.Equal(t, http.StatusOK, resp.Code)

			body := resp.Body.String()
			assert.Contains(t, body, tt.wantEnabled)
			assert.Contains(t, body, tt.wantLimit)
			assert.Contains(t, body, tt.wantUsed)
			assert.Contains(t, body, tt.wantRemain)
			assert.Contains(t, body, `"reset_at"`)
		})
	}
}

func TestGetQuota_ResetAtValue(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)
	rl := upstream.NewRateLimiter(
		5, 10, 5000,
		upstream.WithRateLimiterNowFunc(func() time.Time { return now }),
	)

	_, api := humatest.New(t)
	handlers.RegisterQuotaRoutes(api, handlers.NewQuotaHandler(rl))

	resp := api.Get("/api/v1/upstream/quota")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "2025-06-16T14:30:00Z")
}
