package http

import (
	"errors"
	"log/slog"
	"net/http"

	"carrierlink/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Errors  []errs.FieldError `json:"errors,omitempty"`
}

// NewHTTPErrorHandler maps domain error kinds to status codes. Anything it
// does not recognize is logged and answered with a generic 500.
func NewHTTPErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		resp := toErrorResponse(err)
		if resp.Code >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
				"error", err,
			)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(resp.Code)
		} else {
			writeErr = c.JSON(resp.Code, resp)
		}
		if writeErr != nil {
			logger.ErrorContext(c.Request().Context(), "write error response", "error", writeErr)
		}
	}
}

func toErrorResponse(err error) ErrorResponse {
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		msg := http.StatusText(httpErr.Code)
		if s, ok := httpErr.Message.(string); ok {
			msg = s
		}
		return ErrorResponse{Code: httpErr.Code, Message: msg}
	case errors.Is(err, errs.ErrObjectNotFound):
		return ErrorResponse{Code: http.StatusNotFound, Message: err.Error()}
	case errors.Is(err, errs.ErrForbidden):
		return ErrorResponse{Code: http.StatusForbidden, Message: err.Error()}
	case errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrInvalidState),
		errors.Is(err, errs.ErrConflict):
		return ErrorResponse{Code: http.StatusConflict, Message: err.Error()}
	case errs.IsValidation(err):
		return ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "validation failed",
			Errors:  errs.FieldErrors(err),
		}
	default:
		return ErrorResponse{Code: http.StatusInternalServerError, Message: "internal server error"}
	}
}
