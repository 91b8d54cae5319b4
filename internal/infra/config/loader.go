package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/domain"
	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/ports"
)

const (
	FileName   = "bmectl.yaml"
	DotEnvName = ".env"
)

// Loader resolves configuration as defaults < bmectl.yaml < .env < process environment.
type Loader struct {
	lookupEnv func(string) (string, bool)
}

type Option func(*Loader)

// WithLookupEnv replaces os.LookupEnv.
func WithLookupEnv(fn func(string) (string, bool)) Option {
	return func(l *Loader) { l.lookupEnv = fn }
}

func NewLoader(opts ...Option) *Loader {
	l := &Loader{lookupEnv: os.LookupEnv}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var _ ports.ConfigLoader = (*Loader)(nil)

func (l *Loader) Load(root string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	dotenv := map[string]string{}
	if root != "" {
		var err error
		cfg, err = LoadFile(filepath.Join(root, FileName), cfg)
		if err != nil && !domain.IsKind(err, domain.KindNotFound) {
			return cfg, err
		}

		dotenv, err = readDotEnv(filepath.Join(root, DotEnvName))
		if err != nil {
			return cfg, err
		}
	}

	lookup := func(k string) (string, bool) {
		if v, ok := l.lookupEnv(k); ok {
			return v, true
		}
		v, ok := dotenv[k]
		return v, ok
	}
	return ApplyEnv(cfg, lookup)
}

// LoadFile reads bmectl.yaml at path and applies it on top of base.
func LoadFile(path string, base domain.Config) (domain.Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		kind := domain.KindExecution
		if errors.Is(err, os.ErrNotExist) {
			kind = domain.KindNotFound
		}
		return base, &domain.OpError{
			Op:   "config.load",
			Kind: kind,
			Path: path,
			Err:  err,
		}
	}

	var dto YAMLConfig
	if err := yaml.Unmarshal(b, &dto); err != nil {
		return base, &domain.OpError{
			Op:   "config.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	return MapConfig(path, dto, base)
}

func readDotEnv(path string) (map[string]string, error) {
	vals, err := godotenv.Read(path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, &domain.OpError{
			Op:   "config.dotenv",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}
	return vals, nil
}
