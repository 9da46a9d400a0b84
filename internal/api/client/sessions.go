package client

import (
	"context"
	"net/url"
	"time"

	domain "github.com/donaldgifford/vitam-chat/pkg/types"
)

// Session is a newly created chat session.
type Session struct {
	ID        string               `json:"id"`
	CreatedAt time.Time            `json:"created_at"`
	Messages  []domain.ChatMessage `json:"messages"`
}

// Transcript is the message history of a session.
type Transcript struct {
	Messages []domain.ChatMessage `json:"messages"`
	Typing   bool                 `json:"typing"`
}

// SendResult is the pair of messages appended by a send.
type SendResult struct {
	UserMessage      domain.ChatMessage `json:"user_message"`
	AssistantMessage domain.ChatMessage `json:"assistant_message"`
	Shape            domain.Shape       `json:"shape"`
	Enveloped        bool               `json:"enveloped"`
}

func sessionPath(id string) string {
	return "/api/v1/sessions/" + url.PathEscape(id)
}

// CreateSession opens a new chat session.
func (c *Client) CreateSession(ctx context.Context) (*Session, error) {
	var s Session
	if err := c.post(ctx, "/api/v1/sessions", struct{}{}, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Messages returns the transcript of a session.
func (c *Client) Messages(ctx context.Context, sessionID string) (*Transcript, error) {
	var t Transcript
	if err := c.get(ctx, sessionPath(sessionID)+"/messages", &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Send posts a chat message and returns the appended messages.
func (c *Client) Send(ctx context.Context, sessionID, content string) (*SendResult, error) {
	var res SendResult
	req := map[string]string{"content": content}
	if err := c.post(ctx, sessionPath(sessionID)+"/messages", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
