package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime"

	"github.com/labstack/echo/v4"
)

// Recovery returns Echo middleware that recovers from panics, logs the stack
// trace, and returns a 500 Internal Server Error to the client. The request
// id, when present, is echoed so a visitor's report can be matched to the log.
func Recovery(log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					buf := make([]byte, 4096)
					n := runtime.Stack(buf, false)
					reqID := c.Response().Header().Get(echo.HeaderXRequestID)

					log.Error("panic recovered",
						"error", fmt.Sprint(r),
						"method", c.Request().Method,
						"path", c.Request().URL.Path,
						"request_id", reqID,
						"stack", string(buf[:n]),
					)

					body := map[string]string{"error": "internal server error"}
					if reqID != "" {
						body["request_id"] = reqID
					}
					err = c.JSON(http.StatusInternalServerError, body)
				}
			}()
			return next(c)
		}
	}
}
