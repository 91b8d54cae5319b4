package domain

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// PathVars are the values substituted into {{name}} placeholders of an endpoint path.
type PathVars map[string]string

// ExpandPath resolves {{name}} placeholders in an endpoint path template.
// Values are path-escaped and dot segments are rejected, so an id can never
// introduce or remove segments.
func ExpandPath(tmpl string, vars PathVars) (string, error) {
	if !strings.Contains(tmpl, "{{") {
		return tmpl, nil
	}

	var b strings.Builder
	b.Grow(len(tmpl) + 16)

	for i := 0; i < len(tmpl); {
		if i+1 < len(tmpl) && tmpl[i] == '{' && tmpl[i+1] == '{' {
			start := i + 2
			end := strings.Index(tmpl[start:], "}}")
			if end < 0 {
				return "", &OpError{
					Op:   "path.expand",
					Kind: KindInvalidConfig,
					Path: tmpl,
					Err:  errors.New("unclosed placeholder"),
				}
			}
			end = start + end

			name := strings.TrimSpace(tmpl[start:end])
			if name == "" {
				return "", &OpError{
					Op:   "path.expand",
					Kind: KindInvalidConfig,
					Path: tmpl,
					Err:  errors.New("empty placeholder"),
				}
			}

			val := strings.TrimSpace(vars[name])
			if val == "" {
				return "", &OpError{
					Op:   "path.expand",
					Kind: KindInvalidInput,
					Path: tmpl,
					Err:  fmt.Errorf("missing value for %s", name),
				}
			}

			if val == "." || val == ".." {
				return "", &OpError{
					Op:   "path.expand",
					Kind: KindInvalidInput,
					Path: tmpl,
					Err:  fmt.Errorf("invalid value %q for %s", val, name),
				}
			}

			b.WriteString(url.PathEscape(val))
			i = end + 2
			continue
		}

		b.WriteByte(tmpl[i])
		i++
	}

	return b.String(), nil
}

// NeedsID reports whether the path template has an {{id}} placeholder.
func NeedsID(tmpl string) bool {
	return strings.Contains(strings.ReplaceAll(tmpl, " ", ""), "{{id}}")
}
