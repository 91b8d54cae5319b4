package domain

import (
	"context"
	"errors"
	"net"
	"net/url"
	"os"
	"syscall"
)

// TransportErrorKind is a high-level classification of failures that happen
// before a response is received.
type TransportErrorKind string

const (
	TransportUnknown TransportErrorKind = "unknown"
	TransportTimeout TransportErrorKind = "timeout"
	TransportDNS     TransportErrorKind = "dns"
	TransportConn    TransportErrorKind = "connection"
	TransportCancel  TransportErrorKind = "canceled"
)

// TransportError is a structured error produced when the backend could not be reached.
type TransportError struct {
	Kind TransportErrorKind
	Err  error
}

func (e *TransportError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err == nil {
		return "transport " + string(e.Kind)
	}
	return "transport " + string(e.Kind) + ": " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// UserMessage is the short text shown in an error banner.
func (e *TransportError) UserMessage() string {
	switch e.Kind {
	case TransportTimeout:
		return "The server took too long to respond. Please try again."
	case TransportDNS:
		return "Could not resolve the server address. Check BACKEND_URL."
	case TransportConn:
		return "Could not connect to the server. Please try again."
	case TransportCancel:
		return "Request canceled."
	default:
		return FallbackMessage
	}
}

// NewTransportError wraps err with its classification.
func NewTransportError(err error) *TransportError {
	return &TransportError{Kind: ClassifyTransportError(err), Err: err}
}

// ClassifyTransportError maps net/http client errors onto TransportErrorKind.
func ClassifyTransportError(err error) TransportErrorKind {
	if err == nil {
		return TransportUnknown
	}

	if errors.Is(err, context.Canceled) {
		return TransportCancel
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return TransportTimeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		if dnsErr.IsTimeout {
			return TransportTimeout
		}
		return TransportDNS
	}

	var ue *url.Error
	if errors.As(err, &ue) && ue.Timeout() {
		return TransportTimeout
	}

	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return TransportTimeout
	}

	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ETIMEDOUT) ||
		errors.Is(err, syscall.EPIPE) {
		return TransportConn
	}

	var oe *net.OpError
	if errors.As(err, &oe) {
		return TransportConn
	}

	return TransportUnknown
}
