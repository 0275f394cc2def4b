package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserAlreadyExists is returned on duplicate signup.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUnauthenticated is returned when no session or API key resolves.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrSessionNotFound is returned for unknown or expired session tokens.
	ErrSessionNotFound = errors.New("session not found or expired")
	// ErrUserBanned is returned when the user is banned.
	ErrUserBanned = errors.New("user is banned")
	// ErrVerificationNotFound is returned for unknown or expired verification tokens.
	ErrVerificationNotFound = errors.New("verification token not found or expired")
	// ErrAPIKeyInvalid is returned for unknown, disabled or expired API keys.
	ErrAPIKeyInvalid = errors.New("invalid API key")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrUserAlreadyExists):
		return NewHTTPError(http.StatusConflict, err.Error(), "USER_ALREADY_EXISTS")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrUnauthenticated):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "UNAUTHENTICATED")
	case errors.Is(err, ErrSessionNotFound):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "SESSION_NOT_FOUND")
	case errors.Is(err, ErrUserBanned):
		return NewHTTPError(http.StatusForbidden, err.Error(), "USER_BANNED")
	case errors.Is(err, ErrVerificationNotFound):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "VERIFICATION_NOT_FOUND")
	case errors.Is(err, ErrAPIKeyInvalid):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "API_KEY_INVALID")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
