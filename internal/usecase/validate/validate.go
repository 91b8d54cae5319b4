package validate

import (
	"fmt"
	"net/mail"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/domain"
)

// Form checks raw values against field rules. It returns *domain.ValidationError
// listing every failing field in declaration order, or nil.
//
// Partial is used for updates: required fields may be left empty.
func Form(fields []domain.Field, values map[string]string, partial bool) error {
	var errs []domain.FieldError

	known := make(map[string]bool, len(fields))
	for _, f := range fields {
		known[f.Name] = true
		if msg := Field(f, values[f.Name], partial); msg != "" {
			errs = append(errs, domain.FieldError{Field: f.Name, Message: msg})
		}
	}

	var unknown []string
	for k := range values {
		if !known[k] {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	for _, k := range unknown {
		errs = append(errs, domain.FieldError{Field: k, Message: "unknown field"})
	}

	if len(errs) == 0 {
		return nil
	}
	return &domain.ValidationError{Fields: errs}
}

// Field checks one value and returns a message, or "" when valid.
func Field(f domain.Field, raw string, partial bool) string {
	v := strings.TrimSpace(raw)
	if v == "" {
		if f.Required && !partial {
			return "is required"
		}
		return ""
	}

	switch f.Kind {
	case domain.FieldEmail:
		if a, err := mail.ParseAddress(v); err != nil || a.Address != v {
			return "must be a valid email address"
		}
	case domain.FieldDate:
		if _, err := domain.ParseDate(v); err != nil {
			return "must be a date (YYYY-MM-DD)"
		}
	case domain.FieldNumber:
		if _, err := domain.ParseNumber(v); err != nil {
			return "must be a number"
		}
	case domain.FieldBool:
		if _, err := domain.ParseBool(v); err != nil {
			return "must be yes or no"
		}
	case domain.FieldSelect:
		if len(f.Options) > 0 && !contains(f.Options, v) {
			return fmt.Sprintf("must be one of %s", strings.Join(f.Options, ", "))
		}
	case domain.FieldFile:
		st, err := os.Stat(v)
		if err != nil {
			return "file not found"
		}
		if st.IsDir() {
			return "must be a file, not a directory"
		}
	}

	if f.Pattern != "" {
		re, err := regexp.Compile(f.Pattern)
		if err != nil {
			return "has an invalid pattern rule"
		}
		if !re.MatchString(v) {
			return "has an invalid format"
		}
	}
	return ""
}

func contains(opts []string, v string) bool {
	for _, o := range opts {
		if o == v {
			return true
		}
	}
	return false
}
