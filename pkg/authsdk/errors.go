package authsdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/carefinder/carefinder/pkg/httpx"
)

// Error codes shared between the server handlers and the SDK client.
const (
	ErrorCodeInvalidRequest    = "invalid_request"
	ErrorCodeInvalidGrant      = "invalid_grant"
	ErrorCodeInvalidToken      = "invalid_token"
	ErrorCodeDuplicateEmail    = "duplicate_email"
	ErrorCodeEmailNotConfirmed = "email_not_confirmed"
	ErrorCodeInsufficientRole  = "insufficient_role"
	ErrorCodeServerError       = "server_error"
)

// APIError is the error envelope used by every endpoint. It implements the
// error interface so the SDK client can surface server errors directly.
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the machine-readable error code
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             e.Code,
		"error_description": e.Description,
	})
}

var (
	// ErrInvalidRequest is returned when the request body is malformed or
	// missing required fields.
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	// ErrInvalidGrant is returned when login credentials do not match.
	// The same response covers unknown accounts and wrong passwords.
	ErrInvalidGrant = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidGrant,
		Description: "invalid credentials",
	}

	// ErrInvalidToken is returned when a bearer token is missing, malformed,
	// expired, or fails signature verification.
	ErrInvalidToken = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidToken,
		Description: "the access token is invalid or expired",
	}

	// ErrDuplicateEmail is returned when registering an email that already
	// has an account.
	ErrDuplicateEmail = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeDuplicateEmail,
		Description: "an account with this email already exists",
	}

	// ErrEmailNotConfirmed is returned when credentials are correct but the
	// account's email has not been confirmed yet.
	ErrEmailNotConfirmed = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeEmailNotConfirmed,
		Description: "email address has not been confirmed",
	}

	// ErrInsufficientRole is returned when the authenticated user lacks the
	// role an endpoint requires.
	ErrInsufficientRole = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeInsufficientRole,
		Description: "the authenticated user lacks the required role",
	}

	// ErrServerError is returned for unexpected internal failures.
	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}
)
