package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ISOLayout matches JavaScript's Date.prototype.toISOString.
const ISOLayout = "2006-01-02T15:04:05.000Z"

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339Nano,
}

// ParseDate accepts a calendar date, a datetime-local value or RFC 3339.
// Values without a zone are read as UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// ToISO renders a date input value as an ISO-8601 UTC timestamp with milliseconds.
func ToISO(s string) (string, error) {
	t, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	return t.Format(ISOLayout), nil
}

// ParseBool accepts the usual strconv spellings plus yes/no and on/off.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "on":
		return true, nil
	case "no", "n", "off":
		return false, nil
	}
	return strconv.ParseBool(strings.TrimSpace(s))
}

// ParseNumber parses a decimal number input.
func ParseNumber(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// Payload is a transformed write-view submission.
// Files maps file-field names to local paths; they are only sent as multipart parts.
type Payload struct {
	JSON  map[string]any
	Files map[string]string
}

// TransformForm converts raw input values into the request payload.
// Empty values are omitted, dates become ISO timestamps, numbers and bools become JSON scalars.
// Values for names that are not fields are dropped.
func TransformForm(fields []Field, values map[string]string) (Payload, error) {
	out := Payload{JSON: map[string]any{}}

	for _, f := range fields {
		raw, ok := values[f.Name]
		if !ok || strings.TrimSpace(raw) == "" {
			continue
		}

		switch f.Kind {
		case FieldDate:
			iso, err := ToISO(raw)
			if err != nil {
				return Payload{}, transformErr(f, err)
			}
			out.JSON[f.Name] = iso

		case FieldNumber:
			n, err := ParseNumber(raw)
			if err != nil {
				return Payload{}, transformErr(f, err)
			}
			out.JSON[f.Name] = n

		case FieldBool:
			b, err := ParseBool(raw)
			if err != nil {
				return Payload{}, transformErr(f, err)
			}
			out.JSON[f.Name] = b

		case FieldFile:
			if out.Files == nil {
				out.Files = map[string]string{}
			}
			out.Files[f.Name] = strings.TrimSpace(raw)

		default:
			out.JSON[f.Name] = raw
		}
	}

	return out, nil
}

func transformErr(f Field, err error) error {
	return &ValidationError{Fields: []FieldError{{Field: f.Name, Message: err.Error()}}}
}
