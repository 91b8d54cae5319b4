package domain

import (
	"net/http"
	"net/url"
	"time"
)

// Call is one request against the backend API. Path is relative to the API base ("/ddex/messages").
type Call struct {
	Method string
	Path   string
	Query  url.Values

	// JSON is marshalled as the body. Ignored when Files is non-empty,
	// in which case JSON's scalar values are sent as multipart text parts.
	JSON  map[string]any
	Files map[string]string

	// Anonymous skips the Authorization header (login, register).
	Anonymous bool
}

// Multipart reports whether the call must be encoded as multipart/form-data.
func (c Call) Multipart() bool { return len(c.Files) > 0 }

// GetCall builds a read call.
func GetCall(path string, q url.Values) Call {
	return Call{Method: http.MethodGet, Path: path, Query: q}
}

// WriteCall builds the call for a create/update submission.
func WriteCall(op Operation, path string, p Payload) Call {
	method := http.MethodPost
	if op == OpUpdate {
		method = http.MethodPut
	}
	return Call{Method: method, Path: path, JSON: p.JSON, Files: p.Files}
}

// Response is a 2xx answer from the backend. Body is capped at the client's read limit.
type Response struct {
	Status    int
	Body      []byte
	Truncated bool
	Duration  time.Duration
	RequestID string
}
