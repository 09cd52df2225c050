package handlers

import (
	"net/http"

	"bunq-wrapped/internal/errors"
	"bunq-wrapped/internal/middleware"

	"github.com/labstack/echo/v4"
)

// getTraceID reads the trace ID the RequestID middleware put on the context.
func getTraceID(c echo.Context) string {
	return middleware.GetTraceID(c)
}

// SendError sends a standardized error response with trace ID from context
func SendError(c echo.Context, code errors.ErrorCode, opts ...errors.ErrorOption) error {
	traceID := getTraceID(c)
	errorResponse := errors.NewErrorResponse(code, traceID, opts...)
	return c.JSON(errorResponse.GetHTTPStatus(), errorResponse)
}

// SendSystemError wraps a system error with a generic message so
// internal details never reach the client
func SendSystemError(c echo.Context, err error) error {
	traceID := getTraceID(c)
	errorResponse, _ := errors.WrapSystemError(err, traceID)
	return c.JSON(http.StatusInternalServerError, errorResponse)
}
