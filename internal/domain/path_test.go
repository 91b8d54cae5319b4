package domain

import (
	"errors"
	"testing"
)

func TestExpandPath_NoPlaceholders(t *testing.T) {
	got, err := ExpandPath("/licensing/licenses", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "/licensing/licenses" {
		t.Fatalf("expected unchanged path, got %q", got)
	}
}

func TestExpandPath_ID(t *testing.T) {
	got, err := ExpandPath("/ddex/messages/{{ id }}", PathVars{"id": "abc-123"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "/ddex/messages/abc-123" {
		t.Fatalf("expected %q, got %q", "/ddex/messages/abc-123", got)
	}
}

func TestExpandPath_EscapesValue(t *testing.T) {
	got, err := ExpandPath("/gs1/products/{{id}}", PathVars{"id": "../admin"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "/gs1/products/..%2Fadmin" {
		t.Fatalf("expected escaped id, got %q", got)
	}
}

func TestExpandPath_Errors(t *testing.T) {
	cases := []struct {
		name string
		tmpl string
		vars PathVars
		kind ErrorKind
	}{
		{"missing", "/x/{{id}}", PathVars{}, KindInvalidInput},
		{"blank value", "/x/{{id}}", PathVars{"id": "  "}, KindInvalidInput},
		{"unclosed", "/x/{{id", PathVars{"id": "1"}, KindInvalidConfig},
		{"empty name", "/x/{{}}", nil, KindInvalidConfig},
		{"dot", "/business/products/{{id}}", PathVars{"id": "."}, KindInvalidInput},
		{"dot dot", "/business/products/{{id}}", PathVars{"id": ".."}, KindInvalidInput},
	}
	for _, c := range cases {
		_, err := ExpandPath(c.tmpl, c.vars)
		if err == nil {
			t.Fatalf("%s: expected error", c.name)
		}
		var oe *OpError
		if !errors.As(err, &oe) || oe.Kind != c.kind {
			t.Fatalf("%s: expected kind %s, got %v", c.name, c.kind, err)
		}
	}
}

func TestNeedsID(t *testing.T) {
	if !NeedsID("/licensing/licenses/{{id}}") {
		t.Fatalf("expected template to need id")
	}
	if NeedsID("/tax/business-info") {
		t.Fatalf("expected static path not to need id")
	}
}
