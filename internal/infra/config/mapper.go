package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/domain"
)

const maxPageSize = 200

// MapConfig applies the parsed file on top of base.
func MapConfig(path string, y YAMLConfig, base domain.Config) (domain.Config, error) {
	cfg := base
	b := y.Bmectl

	if s := strings.TrimSpace(b.API.BackendURL); s != "" {
		u, err := parseBackendURL(s)
		if err != nil {
			return base, invalidField(path, "bmectl.api.backend_url", err.Error())
		}
		cfg.API.BackendURL = u
	}
	if s := strings.TrimSpace(b.API.Timeout); s != "" {
		d, err := parseTimeout(s)
		if err != nil {
			return base, invalidField(path, "bmectl.api.timeout", err.Error())
		}
		cfg.API.Timeout = d
	}
	if b.API.PageSize != nil {
		if err := checkPageSize(*b.API.PageSize); err != nil {
			return base, invalidField(path, "bmectl.api.page_size", err.Error())
		}
		cfg.API.PageSize = *b.API.PageSize
	}
	if s := strings.TrimSpace(b.Output.Format); s != "" {
		f, err := parseFormat(s)
		if err != nil {
			return base, invalidField(path, "bmectl.output.format", err.Error())
		}
		cfg.Output.Format = f
	}
	if s := strings.TrimSpace(b.Session.File); s != "" {
		cfg.Session.File = s
	}
	if b.Masking.Enabled != nil {
		cfg.Masking.Enabled = *b.Masking.Enabled
	}
	if b.Log.Debug != nil {
		cfg.LogDebug = *b.Log.Debug
	}

	return cfg, nil
}

// ApplyEnv overrides cfg from environment-style lookups.
func ApplyEnv(cfg domain.Config, lookup func(string) (string, bool)) (domain.Config, error) {
	if v, key := firstSet(lookup, "BMECTL_BACKEND_URL", "BACKEND_URL", "REACT_APP_BACKEND_URL"); key != "" {
		u, err := parseBackendURL(v)
		if err != nil {
			return cfg, invalidField(key, key, err.Error())
		}
		cfg.API.BackendURL = u
	}
	if v, ok := lookup("BMECTL_TIMEOUT"); ok && strings.TrimSpace(v) != "" {
		d, err := parseTimeout(v)
		if err != nil {
			return cfg, invalidField("env", "BMECTL_TIMEOUT", err.Error())
		}
		cfg.API.Timeout = d
	}
	if v, ok := lookup("BMECTL_PAGE_SIZE"); ok && strings.TrimSpace(v) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err == nil {
			err = checkPageSize(n)
		}
		if err != nil {
			return cfg, invalidField("env", "BMECTL_PAGE_SIZE", err.Error())
		}
		cfg.API.PageSize = n
	}
	if v, ok := lookup("BMECTL_OUTPUT"); ok && strings.TrimSpace(v) != "" {
		f, err := parseFormat(v)
		if err != nil {
			return cfg, invalidField("env", "BMECTL_OUTPUT", err.Error())
		}
		cfg.Output.Format = f
	}
	if v, ok := lookup("BMECTL_SESSION_FILE"); ok && strings.TrimSpace(v) != "" {
		cfg.Session.File = strings.TrimSpace(v)
	}
	if v, ok := lookup("BMECTL_DEBUG"); ok {
		if b, err := domain.ParseBool(v); err == nil {
			cfg.LogDebug = b
		}
	}
	return cfg, nil
}

func firstSet(lookup func(string) (string, bool), keys ...string) (string, string) {
	for _, k := range keys {
		if v, ok := lookup(k); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v), k
		}
	}
	return "", ""
}

func parseBackendURL(s string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return "", err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("host is required")
	}
	return strings.TrimRight(u.String(), "/"), nil
}

func parseTimeout(s string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive")
	}
	return d, nil
}

func checkPageSize(n int) error {
	if n < 1 || n > maxPageSize {
		return fmt.Errorf("must be between 1 and %d", maxPageSize)
	}
	return nil
}

func parseFormat(s string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(s))
	switch f {
	case "table", "json":
		return f, nil
	}
	return "", fmt.Errorf("unsupported format %q (use table|json)", s)
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "config.map",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, domain.ErrInvalidConfig),
	}
}
