package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestOpErrorWrapUnwrap(t *testing.T) {
	root := errors.New("root")
	err := &OpError{
		Op:   "config.load",
		Kind: KindInvalidConfig,
		Path: "bmectl.yaml",
		Err:  root,
	}

	if !errors.Is(err, root) {
		t.Fatalf("expected errors.Is to match cause")
	}
	if !IsKind(err, KindInvalidConfig) {
		t.Fatalf("expected IsKind to match")
	}
	if IsKind(err, KindNotFound) {
		t.Fatalf("expected IsKind to reject other kinds")
	}
	want := "config.load: invalid_config (path=bmectl.yaml): root"
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}

func TestAPIError_UnauthorizedMatchesSentinel(t *testing.T) {
	err := fmt.Errorf("list: %w", &APIError{Status: 401, Detail: "Not authenticated"})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected 401 to match ErrUnauthorized")
	}

	other := &APIError{Status: 403, Detail: "Forbidden"}
	if errors.Is(other, ErrUnauthorized) {
		t.Fatalf("expected 403 not to match ErrUnauthorized")
	}
}

func TestMessage(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"detail verbatim", &APIError{Status: 400, Detail: "UPC already exists"}, "UPC already exists"},
		{"blank detail", &APIError{Status: 500, Detail: "  "}, FallbackMessage},
		{"session expired", &APIError{Status: 401, Detail: "Could not validate credentials", SessionCleared: true}, SessionExpiredMessage},
		{"bad credentials", &APIError{Status: 401, Detail: "Invalid email or password"}, "Invalid email or password"},
		{"validation", &ValidationError{Fields: []FieldError{{Field: "title", Message: "is required"}}}, "title: is required"},
		{"no session", ErrUnauthorized, "Please log in first."},
		{"generic", errors.New("boom"), FallbackMessage},
	}
	for _, c := range cases {
		if got := Message(c.err); got != c.want {
			t.Errorf("%s: Message() = %q, want %q", c.name, got, c.want)
		}
	}
}

func TestValidationError_IsInvalidInput(t *testing.T) {
	err := &ValidationError{Fields: []FieldError{{Field: "a", Message: "bad"}, {Field: "b", Message: "worse"}}}
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ValidationError to unwrap to ErrInvalidInput")
	}
	if err.Error() != "validation failed: a: bad; b: worse" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
