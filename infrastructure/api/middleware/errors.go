package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/helixml/chickenrescue/application/service"
	"github.com/helixml/chickenrescue/domain/boss"
	"github.com/helixml/chickenrescue/domain/bounded"
	"github.com/helixml/chickenrescue/domain/rescue"
	"github.com/helixml/chickenrescue/infrastructure/transaction"
)

// Sentinel errors for errors.Is matching.
var (
	ErrAuthentication = errors.New("authentication failed")
	ErrServer         = errors.New("server error")
)

// APIError is an error with an HTTP status code.
type APIError struct {
	code    int
	message string
	cause   error
}

// NewAPIError creates an APIError.
func NewAPIError(code int, message string, cause error) *APIError {
	return &APIError{code: code, message: message, cause: cause}
}

// BadRequest creates a 400 APIError.
func BadRequest(message string, cause error) *APIError {
	return NewAPIError(http.StatusBadRequest, message, cause)
}

// Code returns the HTTP status code.
func (e *APIError) Code() int { return e.code }

// Message returns the client-facing message.
func (e *APIError) Message() string { return e.message }

// Error implements error.
func (e *APIError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("api error %d: %s: %v", e.code, e.message, e.cause)
	}
	return fmt.Sprintf("api error %d: %s", e.code, e.message)
}

// Unwrap returns the cause.
func (e *APIError) Unwrap() error { return e.cause }

// AuthenticationError reports a missing or invalid API key.
type AuthenticationError struct {
	reason string
}

// NewAuthenticationError creates an AuthenticationError.
func NewAuthenticationError(reason string) *AuthenticationError {
	return &AuthenticationError{reason: reason}
}

// Error implements error.
func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication failed: %s", e.reason)
}

// Is matches ErrAuthentication.
func (e *AuthenticationError) Is(target error) bool {
	return target == ErrAuthentication
}

// ServerError reports a failure on our side or upstream.
type ServerError struct {
	statusCode int
	message    string
}

// NewServerError creates a ServerError.
func NewServerError(statusCode int, message string) *ServerError {
	return &ServerError{statusCode: statusCode, message: message}
}

// StatusCode returns the HTTP status code.
func (e *ServerError) StatusCode() int { return e.statusCode }

// Message returns the message.
func (e *ServerError) Message() string { return e.message }

// Error implements error.
func (e *ServerError) Error() string {
	return fmt.Sprintf("server error %d: %s", e.statusCode, e.message)
}

// Is matches ErrServer.
func (e *ServerError) Is(target error) bool {
	return target == ErrServer
}

// ErrorResponse is the JSON body of every error response.
type ErrorResponse struct {
	Error     string   `json:"error"`
	Details   []string `json:"details,omitempty"`
	RequestID string   `json:"request_id,omitempty"`
}

// WriteError maps err to a status code and writes it as JSON.
// Server-side failures are logged; client errors are not.
func WriteError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	status, body := classify(err)
	body.RequestID = middleware.GetReqID(r.Context())

	if status >= http.StatusInternalServerError {
		logger.Error("request failed",
			slog.String("request_id", body.RequestID),
			slog.String("path", r.URL.Path),
			slog.Int("status", status),
			slog.Any("error", err),
		)
	}

	WriteJSON(w, status, body)
}

func classify(err error) (int, ErrorResponse) {
	var (
		apiErr        *APIError
		serverErr     *ServerError
		validationErr validator.ValidationErrors
		statusErr     *transaction.StatusError
		requestErr    *transaction.RequestError
	)

	switch {
	case errors.As(err, &validationErr):
		details := make([]string, 0, len(validationErr))
		for _, fe := range validationErr {
			details = append(details, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
		return http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: details}
	case errors.As(err, &apiErr):
		if apiErr.cause != nil && apiErr.code < http.StatusInternalServerError {
			return apiErr.code, ErrorResponse{Error: apiErr.message, Details: []string{apiErr.cause.Error()}}
		}
		return apiErr.code, ErrorResponse{Error: apiErr.message}
	case errors.Is(err, ErrAuthentication):
		return http.StatusUnauthorized, ErrorResponse{Error: err.Error()}
	case errors.As(err, &serverErr):
		return serverErr.statusCode, ErrorResponse{Error: serverErr.message}
	case isInvalidInput(err):
		return http.StatusBadRequest, ErrorResponse{Error: err.Error()}
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, ErrorResponse{Error: "request timed out"}
	case errors.As(err, &statusErr), errors.As(err, &requestErr),
		errors.Is(err, transaction.ErrInvalidResponseBody):
		return http.StatusBadGateway, ErrorResponse{Error: "transaction node error"}
	}
	return http.StatusInternalServerError, ErrorResponse{Error: "internal server error"}
}

var invalidInput = []error{
	bounded.ErrUnderRange,
	bounded.ErrOverRange,
	rescue.ErrPositionLength,
	rescue.ErrPositionOutOfRange,
	rescue.ErrPositionNotUnique,
	rescue.ErrCountMismatch,
	service.ErrUnsortedPositions,
	service.ErrUnknownStrategy,
	boss.ErrInvalidAction,
	transaction.ErrSymbolLength,
	transaction.ErrSymbolCharacter,
	transaction.ErrZeroPrice,
	transaction.ErrEmptyHash,
}

func isInvalidInput(err error) bool {
	for _, target := range invalidInput {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// WriteJSON writes v as JSON with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
