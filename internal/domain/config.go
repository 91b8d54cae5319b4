package domain

import "time"

// Config represents the console configuration loaded from bmectl.yaml,
// .env and the process environment.
type Config struct {
	API      APIConfig
	Output   OutputConfig
	Session  SessionConfig
	Masking  MaskingConfig
	LogDebug bool
}

type APIConfig struct {
	// BackendURL is the server origin; requests go to BackendURL + "/api".
	BackendURL string
	Timeout    time.Duration
	PageSize   int
}

type OutputConfig struct {
	Format string // table|json
}

type SessionConfig struct {
	// File is the session store path. Empty means the user config dir.
	File string
}

type MaskingConfig struct {
	Enabled bool
}

// DefaultConfig provides sane defaults if bmectl.yaml is partially missing.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			BackendURL: "http://localhost:8001",
			Timeout:    30 * time.Second,
			PageSize:   20,
		},
		Output:  OutputConfig{Format: "table"},
		Masking: MaskingConfig{Enabled: true},
	}
}

// APIBase returns the base URL every endpoint path is appended to.
func (c Config) APIBase() string {
	return trimTrailingSlash(c.API.BackendURL) + "/api"
}

func trimTrailingSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}
