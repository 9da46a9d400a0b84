package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/vitam-chat/internal/upstream"
)

// QuotaHandler provides the upstream quota status endpoint.
type QuotaHandler struct {
	rl *upstream.RateLimiter
}

// NewQuotaHandler creates a new QuotaHandler. rl may be nil when limiting is off.
func NewQuotaHandler(rl *upstream.RateLimiter) *QuotaHandler {
	return &QuotaHandler{rl: rl}
}

// QuotaOutput is the response body for the quota endpoint.
type QuotaOutput struct {
	Body struct {
		Enabled    bool      `json:"enabled"     example:"true"                 doc:"Whether upstream rate limiting is configured"`
		DailyLimit int64     `json:"daily_limit" example:"10000"                doc:"Configured daily upstream call limit"`
		DailyUsed  int64     `json:"daily_used"  example:"142"                  doc:"Upstream calls made in the current 24-hour window"`
		Remaining  int64     `json:"remaining"   example:"9858"                 doc:"Upstream calls remaining in the current window"`
		ResetAt    time.Time `json:"reset_at"    example:"2025-06-16T14:30:00Z" doc:"When the current 24-hour window expires"`
	}
}

// GetQuota returns the current upstream quota status.
func (h *QuotaHandler) GetQuota(_ context.Context, _ *struct{}) (*QuotaOutput, error) {
	resp := &QuotaOutput{}
	if h.rl == nil {
		return resp, nil
	}

	q := h.rl.Quota()
	resp.Body.Enabled = true
	resp.Body.DailyLimit = q.DailyLimit
	resp.Body.DailyUsed = q.DailyUsed
	resp.Body.Remaining = q.Remaining
	resp.Body.ResetAt = q.ResetAt

	return resp, nil
}

// RegisterQuotaRoutes registers the quota endpoint with the Huma API.
func RegisterQuotaRoutes(api huma.API, h *QuotaHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-upstream-quota",
		Method:      http.MethodGet,
		Path:        "/api/v1/upstream/quota",
		Summary:     "Get upstream quota status",
		Description: "Returns the current daily webhook call usage, remaining quota, and window reset time.",
		Tags:        []string{"upstream"},
	}, h.GetQuota)
}
