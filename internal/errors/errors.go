package errors

import (
	"errors"
	"net/http"
)

// AppError is a request-local failure with a fixed HTTP status.
type AppError struct {
	Status  int
	Message string
	Code    string
}

func (e *AppError) Error() string {
	return e.Message
}

var (
	// ErrMissingFields is returned when a required request field is empty.
	ErrMissingFields = &AppError{Status: http.StatusBadRequest, Message: "Missing fields", Code: "MISSING_FIELDS"}
	// ErrEmailTaken is returned when registering an email that already exists.
	ErrEmailTaken = &AppError{Status: http.StatusConflict, Message: "Email already in use", Code: "EMAIL_TAKEN"}
	// ErrAccountNotFound is returned when no account matches the email or id.
	ErrAccountNotFound = &AppError{Status: http.StatusNotFound, Message: "User not found", Code: "USER_NOT_FOUND"}
	// ErrInvalidCode is returned when no OTP matches the submitted code.
	ErrInvalidCode = &AppError{Status: http.StatusBadRequest, Message: "Invalid code", Code: "INVALID_CODE"}
	// ErrExpiredCode is returned when the matched OTP is past its expiry.
	ErrExpiredCode = &AppError{Status: http.StatusBadRequest, Message: "OTP expired", Code: "OTP_EXPIRED"}
	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	ErrInvalidCredentials = &AppError{Status: http.StatusBadRequest, Message: "Invalid credentials", Code: "INVALID_CREDENTIALS"}
	// ErrNotVerified is returned on login before the email is verified.
	ErrNotVerified = &AppError{Status: http.StatusForbidden, Message: "Email not verified", Code: "EMAIL_NOT_VERIFIED"}
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
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

// MapErrorToHTTP maps domain errors to HTTP errors. Anything outside the
// taxonomy becomes a generic 500.
func MapErrorToHTTP(err error) *HTTPError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return NewHTTPError(appErr.Status, appErr.Message, appErr.Code)
	}
	return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
}

// IsInternal reports whether err falls outside the taxonomy.
func IsInternal(err error) bool {
	var appErr *AppError
	return !errors.As(err, &appErr)
}
