package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TraceIDHeader carries the trace ID on both the request and the response.
const TraceIDHeader = "X-Trace-ID"

// TraceIDContextKey is where RequestID stores the trace ID in the echo context.
const TraceIDContextKey = "trace_id"

// RequestID tags every request with a trace ID. A caller-supplied
// X-Trace-ID is honored so IDs survive proxy hops; otherwise a fresh
// UUID is minted. The ID ends up in the context for handlers and in the
// response header for clients.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			traceID := c.Request().Header.Get(TraceIDHeader)
			if traceID == "" {
				traceID = uuid.NewString()
			}

			c.Set(TraceIDContextKey, traceID)
			c.Response().Header().Set(TraceIDHeader, traceID)
			return next(c)
		}
	}
}

// GetTraceID returns the trace ID set by RequestID, or "" when the
// middleware did not run for this request.
func GetTraceID(c echo.Context) string {
	id, _ := c.Get(TraceIDContextKey).(string)
	return id
}
