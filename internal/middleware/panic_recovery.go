package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"bunq-wrapped/internal/errors"

	"github.com/labstack/echo/v4"
)

// PanicRecovery converts a panicking handler into a 500 with the
// standard error envelope. The panic value and stack go to the log
// under the request's trace ID; the client only ever sees the opaque
// system error.
func PanicRecovery() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer func() {
				r := recover()
				if r == nil {
					return
				}

				traceID := GetTraceID(c)
				if traceID == "" {
					traceID = "unknown"
				}

				slog.Error("panic recovered",
					"trace_id", traceID,
					"panic", fmt.Sprintf("%v", r),
					"stack", string(debug.Stack()),
					"method", c.Request().Method,
					"path", c.Request().URL.Path,
				)

				resp := errors.NewErrorResponse(errors.SystemInternalError, traceID)
				if err := c.JSON(http.StatusInternalServerError, resp); err != nil {
					slog.Error("failed to write panic response",
						"trace_id", traceID,
						"error", err.Error(),
					)
				}
			}()

			return next(c)
		}
	}
}
