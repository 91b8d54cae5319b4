package domain

import (
	"errors"
	"fmt"
	"strings"
)

// FallbackMessage is shown when the backend gives no usable detail.
const FallbackMessage = "An error occurred. Please try again."

// SessionExpiredMessage is shown after a 401 clears the stored session.
const SessionExpiredMessage = "Session expired. Please log in again."

// Sentinel errors for broad classification.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidConfig   = errors.New("invalid config")
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrNotSupported    = errors.New("operation not supported by resource")
	ErrExecution       = errors.New("execution error")
	ErrUnknownResource = errors.New("unknown resource")
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindNotFound      ErrorKind = "not_found"
	KindInvalidConfig ErrorKind = "invalid_config"
	KindInvalidInput  ErrorKind = "invalid_input"
	KindUnauthorized  ErrorKind = "unauthorized"
	KindAPI           ErrorKind = "api"
	KindExecution     ErrorKind = "execution"
)

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op   string
	Kind ErrorKind
	Path string // Optional: relevant file path or API path
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind helps callers classify errors without depending on infra packages.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}

// APIError is a non-2xx response from the backend.
// Detail holds the message decoded from the body's "detail" field, or FallbackMessage.
type APIError struct {
	Status int
	Detail string

	// SessionCleared is set when a 401 on an authenticated call dropped the stored session.
	SessionCleared bool
}

func (e *APIError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("api status %d: %s", e.Status, e.Detail)
}

// Is lets errors.Is(err, ErrUnauthorized) match 401 responses.
func (e *APIError) Is(target error) bool {
	if e == nil {
		return false
	}
	return target == ErrUnauthorized && e.Status == 401
}

// FieldError reports a single invalid form field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError aggregates field errors found before any call is made.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// Message returns the text a view should display for err.
// Backend details are shown verbatim; anything else gets a generic message.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var ae *APIError
	if errors.As(err, &ae) {
		if ae.SessionCleared {
			return SessionExpiredMessage
		}
		if strings.TrimSpace(ae.Detail) == "" {
			return FallbackMessage
		}
		return ae.Detail
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		if len(ve.Fields) == 0 {
			return "Please check the form and try again."
		}
		f := ve.Fields[0]
		return f.Field + ": " + f.Message
	}

	if errors.Is(err, ErrUnauthorized) {
		return "Please log in first."
	}

	var te *TransportError
	if errors.As(err, &te) {
		return te.UserMessage()
	}

	return FallbackMessage
}
