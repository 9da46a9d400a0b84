package web

import (
	"errors"
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/donaldgifford/vitam-chat/internal/session"
)

// Handler serves the transcript pages.
type Handler struct {
	sessions *session.Manager
}

// NewHandler creates a new Handler.
func NewHandler(sessions *session.Manager) *Handler {
	return &Handler{sessions: sessions}
}

// RegisterRoutes mounts the pages on e.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	e.GET("/sessions/:id", h.Transcript)
}

// Transcript renders the transcript and cart of a live session. Viewing a
// session does not count as activity for the idle sweeper.
func (h *Handler) Transcript(c echo.Context) error {
	id := c.Param("id")

	s, err := h.sessions.Get(id)
	if errors.Is(err, session.ErrNotFound) {
		return render(c, http.StatusNotFound, NotFoundPage(id))
	}
	if err != nil {
		return err
	}

	return render(c, http.StatusOK, TranscriptPage(TranscriptView{
		SessionID: s.ID(),
		CreatedAt: s.CreatedAt(),
		Messages:  s.Messages(),
		Cart:      s.CartSummary(),
		Typing:    s.Typing(),
	}))
}

func render(c echo.Context, status int, page templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(status)
	return page.Render(c.Request().Context(), c.Response())
}
