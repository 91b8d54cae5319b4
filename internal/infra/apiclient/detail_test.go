package apiclient

import (
	"testing"

	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/domain"
)

func TestDecodeDetail(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"string", `{"detail":"Deal not found"}`, "Deal not found"},
		{"validation list", `{"detail":[{"loc":["body","email"],"msg":"field required"},{"msg":"value is not a valid date"}]}`,
			"field required; value is not a valid date"},
		{"string list", `{"detail":["a","b"]}`, "a; b"},
		{"blank", `{"detail":"  "}`, domain.FallbackMessage},
		{"object", `{"detail":{"code":7}}`, domain.FallbackMessage},
		{"missing", `{"error":"nope"}`, domain.FallbackMessage},
		{"html", `<html>502 Bad Gateway</html>`, domain.FallbackMessage},
		{"empty", ``, domain.FallbackMessage},
	}
	for _, c := range cases {
		if got := DecodeDetail([]byte(c.body)); got != c.want {
			t.Errorf("%s: expected %q, got %q", c.name, c.want, got)
		}
	}
}
