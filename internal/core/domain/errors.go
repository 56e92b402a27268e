package domain

import (
	"errors"
	"fmt"
)

// ErrorType distinguishes the two kinds of structured server errors.
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "Validation"
	ErrorTypeFailure    ErrorType = "Failure"
)

// APIError is the unwrapped server error envelope. The transport layer is
// the only place that translates HTTP failures into this shape; callers never
// see raw status codes or response bodies, only APIError or a success value.
type APIError struct {
	Code    string    `json:"code"`
	Message string    `json:"message"`
	Type    ErrorType `json:"type"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsValidation reports whether the error is user-displayable input feedback
// rather than an operational failure.
func (e *APIError) IsValidation() bool {
	return e.Type == ErrorTypeValidation
}

var (
	// ErrNoRefreshToken indicates a refresh was requested with no stored
	// refresh token; the session cannot be recovered without a new login.
	ErrNoRefreshToken = errors.New("no refresh token available")

	// ErrNoAuthGateway indicates the session was asked to authenticate but
	// was constructed without an auth gateway.
	ErrNoAuthGateway = errors.New("no auth gateway configured")
)
