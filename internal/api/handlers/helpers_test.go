package handlers_test

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/donaldgifford/vitam-chat/internal/engine"
	"github.com/donaldgifford/vitam-chat/internal/session"
	"github.com/donaldgifford/vitam-chat/internal/upstream"
	"github.com/donaldgifford/vitam-chat/pkg/normalize"
)

var fixedNow = time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestEngine builds an engine around a fresh session registry whose only
// session id is "s1".
func newTestEngine(client upstream.Client, opts ...engine.EngineOption) *engine.Engine {
	mgr := session.NewManager(
		session.WithNowFunc(func() time.Time { return fixedNow }),
		session.WithIDFunc(func() string { return "s1" }),
		session.WithLogger(quietLogger()),
	)
	opts = append([]engine.EngineOption{
		engine.WithLogger(quietLogger()),
		engine.WithNowFunc(func() time.Time { return fixedNow }),
	}, opts...)
	return engine.NewEngine(mgr, client, normalize.New(), opts...)
}

func okResponse(body string) *upstream.Response {
	return &upstream.Response{StatusCode: http.StatusOK, Body: []byte(body), Latency: 120 * time.Millisecond}
}
