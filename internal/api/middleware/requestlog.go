package middleware

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const requestIDHeader = "X-Request-ID"

// probePaths are logged on their first success only; failures always log.
var probePaths = map[string]struct{}{
	"/healthz": {},
	"/readyz":  {},
}

// RequestLog returns Echo middleware that logs requests with structured fields.
// It generates a request ID if none is provided and propagates it through
// the response header and echo context. Repeated successful probes are
// logged once per middleware instance.
func RequestLog(log *slog.Logger) echo.MiddlewareFunc {
	var (
		mu        sync.Mutex
		probeSeen = make(map[string]bool)
	)

	// quiet reports whether a probe success was already logged and marks
	// it as logged otherwise.
	quiet := func(path string) bool {
		mu.Lock()
		defer mu.Unlock()
		if probeSeen[path] {
			return true
		}
		probeSeen[path] = true
		return false
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			reqID := c.Request().Header.Get(requestIDHeader)
			if reqID == "" {
				reqID = uuid.NewString()
			}

			c.Set("request_id", reqID)
			c.Response().Header().Set(requestIDHeader, reqID)

			err := next(c)

			path := c.Request().URL.Path
			status := responseStatus(c, err)
			_, probe := probePaths[path]

			level := slog.LevelInfo
			switch {
			case probe && status >= 300:
				level = slog.LevelWarn
			case probe:
				if quiet(path) {
					return err
				}
			case status >= 500:
				level = slog.LevelError
			case status >= 400:
				level = slog.LevelWarn
			}

			log.Log(c.Request().Context(), level, "request",
				"method", c.Request().Method,
				"path", path,
				"status", status,
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", reqID,
			)

			return err
		}
	}
}
