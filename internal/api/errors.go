// errors.go - Structured error handling for API responses
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/job-intake/backend/internal/upload"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// APIError represents a structured API error response
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewBadRequestError creates a 400 Bad Request error
func NewBadRequestError(message string, cause error) *APIError {
	err := &APIError{
		Status:  http.StatusBadRequest,
		Code:    "BAD_REQUEST",
		Message: message,
	}
	if cause != nil {
		err.Details = cause.Error()
	}
	return err
}

// NewInternalError creates a 500 Internal Server Error
func NewInternalError(message string, cause error) *APIError {
	err := &APIError{
		Status:  http.StatusInternalServerError,
		Code:    "INTERNAL_ERROR",
		Message: message,
	}
	if cause != nil {
		err.Details = cause.Error()
	}
	return err
}

// uploadStatus maps submission rejection codes to HTTP status codes.
var uploadStatus = map[upload.Code]int{
	upload.CodeInvalidDocumentType: http.StatusBadRequest,
	upload.CodeInvalidVideoType:    http.StatusBadRequest,
	upload.CodeUnexpectedFile:      http.StatusBadRequest,
	upload.CodeFieldTooLong:        http.StatusBadRequest,
	upload.CodeMalformed:           http.StatusBadRequest,
	upload.CodeFileTooLarge:        http.StatusRequestEntityTooLarge,
	upload.CodeStaging:             http.StatusInternalServerError,
}

func fromUploadError(err *upload.Error) *APIError {
	status, ok := uploadStatus[err.Code]
	if !ok {
		status = http.StatusBadRequest
	}

	apiErr := &APIError{
		Status:  status,
		Code:    string(err.Code),
		Message: err.Message,
	}
	if err.Field != "" {
		apiErr.Details = fmt.Sprintf("field: %s", err.Field)
	}
	return apiErr
}

// toAPIError converts any handler error into an APIError. Errors raised by
// echo itself (body limit, routing) keep their status even when wrapped by
// the submission processor.
func toAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return &APIError{
			Status:  httpErr.Code,
			Code:    "HTTP_ERROR",
			Message: fmt.Sprintf("%v", httpErr.Message),
		}
	}

	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return &APIError{
			Status:  http.StatusRequestEntityTooLarge,
			Code:    "HTTP_ERROR",
			Message: http.StatusText(http.StatusRequestEntityTooLarge),
		}
	}

	var upErr *upload.Error
	if errors.As(err, &upErr) {
		return fromUploadError(upErr)
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &APIError{
			Status:  http.StatusRequestTimeout,
			Code:    "REQUEST_ABORTED",
			Message: "request aborted before the upload completed",
		}
	}

	return &APIError{
		Status:  http.StatusInternalServerError,
		Code:    "UNKNOWN_ERROR",
		Message: "An unexpected error occurred",
	}
}

// ErrorHandler returns the echo error handler.
// Usage: e.HTTPErrorHandler = api.ErrorHandler(logger)
func ErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		apiErr := toAPIError(err)
		if apiErr.Status >= http.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", apiErr.Status),
				zap.Error(err),
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(apiErr.Status)
		} else {
			err = c.JSON(apiErr.Status, apiErr)
		}
		if err != nil {
			logger.Warn("writing error response", zap.Error(err))
		}
	}
}
