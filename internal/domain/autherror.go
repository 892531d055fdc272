package domain

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
)

// AuthErrorKind classifies an authentication failure from its transport
// status so callers can show one fixed message per class.
type AuthErrorKind string

const (
	ErrorNetwork            AuthErrorKind = "network"
	ErrorInvalidCredentials AuthErrorKind = "invalid_credentials"
	ErrorSessionExpired     AuthErrorKind = "session_expired"
	ErrorUnauthorized       AuthErrorKind = "unauthorized"
	ErrorServer             AuthErrorKind = "server_error"
	ErrorUnknown            AuthErrorKind = "unknown"
)

// errorMessages maps each classification to its fixed user-facing message.
var errorMessages = map[AuthErrorKind]string{
	ErrorNetwork:            "Network problem. Please try again.",
	ErrorInvalidCredentials: "Incorrect username or password.",
	ErrorSessionExpired:     "Your session has expired. Please sign in again.",
	ErrorUnauthorized:       "You do not have permission to perform this action.",
	ErrorServer:             "Server error. Please try again later.",
	ErrorUnknown:            "An unexpected error occurred.",
}

// AuthError is the structured error surfaced by the session manager. Raw
// transport errors never cross the manager boundary; they are wrapped here
// with a classification and display message.
type AuthError struct {
	Kind    AuthErrorKind
	Message string
	Status  int
	Err     error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return string(e.Kind) + ": " + e.Err.Error()
	}
	return string(e.Kind) + ": " + e.Message
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// IsAuthStatus reports whether the error carries an authorization-failure
// status (401 or 403).
func (e *AuthError) IsAuthStatus() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

// NewAuthError builds an AuthError of the given kind with its fixed message.
func NewAuthError(kind AuthErrorKind, status int, err error) *AuthError {
	return &AuthError{
		Kind:    kind,
		Message: errorMessages[kind],
		Status:  status,
		Err:     err,
	}
}

// ClassifyStatus maps an HTTP status to an error kind. A 401 means invalid
// credentials when it comes from the login endpoint and an expired session
// anywhere else.
func ClassifyStatus(status int, login bool) AuthErrorKind {
	switch {
	case status == http.StatusUnauthorized && login:
		return ErrorInvalidCredentials
	case status == http.StatusUnauthorized:
		return ErrorSessionExpired
	case status == http.StatusForbidden:
		return ErrorUnauthorized
	case status >= 500:
		return ErrorServer
	default:
		return ErrorUnknown
	}
}

// ClassifyTransportError maps a failed round trip (no HTTP response at all)
// to an error kind. Timeouts and connection failures are network errors.
func ClassifyTransportError(err error) AuthErrorKind {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, os.ErrDeadlineExceeded),
		errors.As(err, &netErr):
		return ErrorNetwork
	default:
		return ErrorUnknown
	}
}

// AsAuthError extracts an *AuthError from err, if present.
func AsAuthError(err error) (*AuthError, bool) {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
