// Package apperrors defines the error taxonomy shared by module clients,
// the orchestrator and the HTTP adapter. All types are errors.As-friendly
// so callers can map them to transport-level responses.
package apperrors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ValidationError reports bad or missing caller input. It is user-correctable
// and surfaced verbatim.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError with a formatted message.
func NewValidationError(field, format string, a ...any) error {
	return ValidationError{Field: field, Message: fmt.Sprintf(format, a...)}
}

// UpstreamError reports a non-success response from a wrapped external API.
// Status is the upstream HTTP status; Message carries the upstream detail
// when available.
type UpstreamError struct {
	Service string
	Status  int
	Message string
}

func (e UpstreamError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: upstream returned status %d", e.Service, e.Status)
	}
	return fmt.Sprintf("%s: upstream error (status %d): %s", e.Service, e.Status, e.Message)
}

// TimeoutError reports an external call that exceeded its budget. Surfaced to
// the user as a retryable condition.
type TimeoutError struct {
	Operation string
	Limit     time.Duration
}

func (e TimeoutError) Error() string {
	if e.Limit > 0 {
		return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
	}
	return fmt.Sprintf("operation %q timed out", e.Operation)
}

// NetworkError reports a transport-level failure reaching an external API.
type NetworkError struct {
	Service string
	Cause   error
}

func (e NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %v", e.Service, e.Cause)
}

func (e NetworkError) Unwrap() error { return e.Cause }

// FromTransport classifies an outbound-call failure into the taxonomy:
// deadline errors become TimeoutError, everything else NetworkError.
func FromTransport(service, operation string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return TimeoutError{Operation: operation}
	}
	return NetworkError{Service: service, Cause: err}
}

// HTTPStatus maps a taxonomy error onto the status code the API surfaces.
// Unknown errors map to 500.
func HTTPStatus(err error) int {
	var ve ValidationError
	var ue UpstreamError
	var te TimeoutError
	var ne NetworkError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.As(err, &ue):
		if ue.Status >= 400 && ue.Status < 600 {
			return ue.Status
		}
		return http.StatusBadGateway
	case errors.As(err, &te):
		return http.StatusGatewayTimeout
	case errors.As(err, &ne):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
