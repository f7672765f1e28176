package http

import (
	"errors"
	"log/slog"
	"net/http"

	"orderflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

const internalErrorMessage = "internal server error"

// statusFor maps an error from the core to an HTTP status.
func statusFor(err error) int {
	switch {
	case errs.IsValidation(err),
		errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrUnavailable):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// writeError answers with the mapped status. Server errors are logged and
// their details kept out of the body.
func writeError(c echo.Context, logger *slog.Logger, err error) error {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err)
		return c.JSON(status, ErrorResponse{Error: internalErrorMessage})
	}
	return c.JSON(status, ErrorResponse{Error: err.Error()})
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}
