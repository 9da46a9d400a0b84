package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/vitam-chat/internal/engine"
	domain "github.com/donaldgifford/vitam-chat/pkg/types"
)

// NormalizeHandler exposes the reply normalizer for payload debugging.
type NormalizeHandler struct {
	engine *engine.Engine
}

// NewNormalizeHandler creates a new NormalizeHandler.
func NewNormalizeHandler(eng *engine.Engine) *NormalizeHandler {
	return &NormalizeHandler{engine: eng}
}

// NormalizeInput is any raw upstream payload, JSON or not.
type NormalizeInput struct {
	RawBody []byte
}

// NormalizeOutput is the normalized reply with its detected shape.
type NormalizeOutput struct {
	Body domain.Reply
}

// Normalize runs a payload through the normalizer without touching a session.
func (h *NormalizeHandler) Normalize(ctx context.Context, input *NormalizeInput) (*NormalizeOutput, error) {
	return &NormalizeOutput{Body: h.engine.Normalize(ctx, input.RawBody)}, nil
}

// RegisterNormalizeRoutes registers the normalize endpoint with the Huma API.
func RegisterNormalizeRoutes(api huma.API, h *NormalizeHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "normalize-reply",
		Method:      http.MethodPost,
		Path:        "/api/v1/normalize",
		Summary:     "Normalize an upstream payload",
		Description: "Returns the reply text, mapped products and detected payload shape for a raw webhook body. " +
			"Any body is accepted; unusable payloads resolve to the fallback shape.",
		Tags: []string{"normalize"},
	}, h.Normalize)
}
