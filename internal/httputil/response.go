// Package httputil provides HTTP utility functions for request and response handling.
package httputil

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/paywall/internal/errors"
)

// ErrorResponse represents a structured error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

// errorStatus maps error codes to HTTP status codes. Codes missing here are 500.
var errorStatus = map[string]int{
	apperrors.CodeNotFound:     http.StatusNotFound,
	apperrors.CodeConflict:     http.StatusConflict,
	apperrors.CodeInvalidInput: http.StatusUnprocessableEntity,
	apperrors.CodeIntegrity:    http.StatusUnprocessableEntity,
	apperrors.CodeUnauthorized: http.StatusUnauthorized,
	apperrors.CodeForbidden:    http.StatusForbidden,
	apperrors.CodeUnavailable:  http.StatusBadGateway,
}

// fixedMessages replace err.Error() for codes whose details must not reach the client.
var fixedMessages = map[string]string{
	apperrors.CodeIntegrity:     "Content may be corrupted or tampered with",
	apperrors.CodeUnauthorized:  "Authentication is required",
	apperrors.CodeUnavailable:   "The ledger could not be reached",
	apperrors.CodeInternalError: "An internal error occurred",
}

// HandleErrorGin maps domain errors to HTTP status codes and returns a JSON response using Gin.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	code := apperrors.Code(err)
	statusCode, ok := errorStatus[code]
	if !ok {
		statusCode = http.StatusInternalServerError
	}

	message, fixed := fixedMessages[code]
	if !fixed {
		message = err.Error()
	}

	if logger != nil {
		logger.Error("request failed",
			slog.Int("status_code", statusCode),
			slog.String("error_code", code),
			slog.Any("error", err),
		)
	}

	c.JSON(statusCode, ErrorResponse{Error: code, Message: message})
}

// HandleBadRequestGin writes a 400 Bad Request response for malformed JSON or parameters using Gin.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("bad request", slog.Any("error", err))
	}

	errorResponse := ErrorResponse{
		Error:   "bad_request",
		Message: err.Error(),
	}

	c.JSON(http.StatusBadRequest, errorResponse)
}

// HandleValidationErrorGin writes a 422 Unprocessable Entity response for validation errors using Gin.
func HandleValidationErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("validation failed", slog.Any("error", err))
	}

	errorResponse := ErrorResponse{
		Error:   "validation_error",
		Message: err.Error(),
	}

	c.JSON(http.StatusUnprocessableEntity, errorResponse)
}
