package handlers

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/vitam-chat/internal/engine"
	"github.com/donaldgifford/vitam-chat/internal/session"
)

// engineError maps engine and session errors onto HTTP problems.
func engineError(err error) error {
	var sendErr *engine.SendError
	switch {
	case errors.Is(err, session.ErrNotFound):
		return huma.Error404NotFound("session not found")
	case errors.Is(err, engine.ErrProductNotFound):
		return huma.Error404NotFound(err.Error())
	case errors.Is(err, engine.ErrEmptyMessage):
		return huma.Error400BadRequest("content must not be empty")
	case errors.As(err, &sendErr):
		return huma.Error502BadGateway(sendErr.Message)
	default:
		return huma.Error500InternalServerError(err.Error())
	}
}
