package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/vitam-chat/internal/engine"
	domain "github.com/donaldgifford/vitam-chat/pkg/types"
)

// SessionsHandler serves chat sessions and message sends.
type SessionsHandler struct {
	engine *engine.Engine
}

// NewSessionsHandler creates a new SessionsHandler.
func NewSessionsHandler(eng *engine.Engine) *SessionsHandler {
	return &SessionsHandler{engine: eng}
}

// --- Input/Output types ---

// SessionPath identifies a session in the URL.
type SessionPath struct {
	ID string `path:"id" doc:"Session ID"`
}

// CreateSessionOutput is the response for creating a session.
type CreateSessionOutput struct {
	Body struct {
		ID        string               `json:"id"         example:"5f0c7a9e-3f7a-4a51-9d7b-2a1c7f3e9b10"`
		CreatedAt time.Time            `json:"created_at"`
		Messages  []domain.ChatMessage `json:"messages"`
	}
}

// ListMessagesOutput is the transcript of a session.
type ListMessagesOutput struct {
	Body struct {
		Messages []domain.ChatMessage `json:"messages"`
		Typing   bool                 `json:"typing" doc:"A send is in flight for this session"`
	}
}

// SendMessageInput is a chat message from the visitor.
type SendMessageInput struct {
	SessionPath
	Body struct {
		Content string `json:"content" doc:"Message text" example:"Que me conseillez-vous contre la fatigue ?" maxLength:"4000"`
	}
}

// SendMessageOutput carries both appended transcript entries.
type SendMessageOutput struct {
	Body engine.SendResult
}

// --- Handlers ---

// CreateSession opens a new session seeded with the welcome message.
func (h *SessionsHandler) CreateSession(_ context.Context, _ *struct{}) (*CreateSessionOutput, error) {
	s := h.engine.CreateSession()

	resp := &CreateSessionOutput{}
	resp.Body.ID = s.ID()
	resp.Body.CreatedAt = s.CreatedAt()
	resp.Body.Messages = s.Messages()
	return resp, nil
}

// ListMessages returns the transcript of a session.
func (h *SessionsHandler) ListMessages(_ context.Context, input *SessionPath) (*ListMessagesOutput, error) {
	s, err := h.engine.Sessions().Get(input.ID)
	if err != nil {
		return nil, engineError(err)
	}

	resp := &ListMessagesOutput{}
	resp.Body.Messages = s.Messages()
	resp.Body.Typing = s.Typing()
	return resp, nil
}

// SendMessage forwards a visitor message upstream and returns the reply.
func (h *SessionsHandler) SendMessage(ctx context.Context, input *SendMessageInput) (*SendMessageOutput, error) {
	res, err := h.engine.Send(ctx, input.ID, input.Body.Content)
	if err != nil {
		return nil, engineError(err)
	}
	return &SendMessageOutput{Body: *res}, nil
}

// RegisterSessionRoutes registers session endpoints with the Huma API.
func RegisterSessionRoutes(api huma.API, h *SessionsHandler) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-session",
		Method:        http.MethodPost,
		Path:          "/api/v1/sessions",
		Summary:       "Create a chat session",
		Description:   "Opens a session whose transcript starts with the welcome message.",
		Tags:          []string{"sessions"},
		DefaultStatus: http.StatusCreated,
	}, h.CreateSession)

	huma.Register(api, huma.Operation{
		OperationID: "list-messages",
		Method:      http.MethodGet,
		Path:        "/api/v1/sessions/{id}/messages",
		Summary:     "Get a session transcript",
		Description: "Returns every message of the session in order.",
		Tags:        []string{"sessions"},
		Errors:      []int{http.StatusNotFound},
	}, h.ListMessages)

	huma.Register(api, huma.Operation{
		OperationID: "send-message",
		Method:      http.MethodPost,
		Path:        "/api/v1/sessions/{id}/messages",
		Summary:     "Send a chat message",
		Description: "Appends the message, forwards it to the upstream webhook and appends the normalized reply. " +
			"Upstream failures return 502 with the user-facing error message; the visitor's message stays in the transcript.",
		Tags:   []string{"sessions"},
		Errors: []int{http.StatusBadRequest, http.StatusNotFound, http.StatusBadGateway},
	}, h.SendMessage)
}
