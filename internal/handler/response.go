package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/royi-klein/ClinicalTrial/internal/domain"
)

// ErrorBody is the JSON body of every failed request.
type ErrorBody struct {
	Success bool         `json:"success"`
	Error   string       `json:"error"`
	Message string       `json:"message,omitempty"`
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a field-level validation error.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// OperationError ties an underlying error to the operation that failed.
// The error handler reports it as 500 with Summary as the error text and
// the cause as the message.
type OperationError struct {
	Summary string
	Err     error
}

func (e *OperationError) Error() string { return e.Summary + ": " + e.Err.Error() }

func (e *OperationError) Unwrap() error { return e.Err }

// HTTPErrorHandler is the global error handler for echo.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, body := mapError(err)
	if jsonErr := c.JSON(status, body); jsonErr != nil {
		slog.Error("failed to send error response", "error", jsonErr)
	}
}

func mapError(err error) (int, ErrorBody) {
	// Handle echo's own HTTP errors (404, 405, 413, etc.)
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		msg, _ := echoErr.Message.(string)
		if msg == "" {
			msg = http.StatusText(echoErr.Code)
		}
		return echoErr.Code, ErrorBody{
			Error:   http.StatusText(echoErr.Code),
			Message: msg,
		}
	}

	var opErr *OperationError
	if errors.As(err, &opErr) {
		slog.Error("operation failed", "operation", opErr.Summary, "error", opErr.Err)
		return http.StatusInternalServerError, ErrorBody{
			Error:   opErr.Summary,
			Message: opErr.Err.Error(),
		}
	}

	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, ErrorBody{
			Error:   "Unauthorized",
			Message: unauthorizedMessage(err),
		}
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrorBody{
			Error:   "Bad Request",
			Message: err.Error(),
		}
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, ErrorBody{
			Error:   "Conflict",
			Message: "The resource already exists or conflicts with current state",
		}
	default:
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			return http.StatusBadRequest, ErrorBody{
				Error:   "Validation failed",
				Message: validationErr.Error(),
				Details: []FieldError{
					{Field: validationErr.Field, Message: validationErr.Message},
				},
			}
		}

		slog.Error("unhandled error", "error", err)
		return http.StatusInternalServerError, ErrorBody{
			Error:   "Internal Server Error",
			Message: "An unexpected error occurred",
		}
	}
}

// Messages for the two ways a bearer token can be refused.
var (
	errMissingToken = errors.New("missing or invalid authorization header")
	errInvalidToken = errors.New("invalid or expired token")
)

func unauthorizedMessage(err error) string {
	switch {
	case errors.Is(err, errMissingToken):
		return "Missing or invalid authorization header"
	case errors.Is(err, errInvalidToken):
		return "Invalid or expired token"
	default:
		return "Invalid credentials"
	}
}
