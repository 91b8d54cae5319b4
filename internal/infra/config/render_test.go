package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/domain"
)

func TestRender_LoadsBackIdentically(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.API.BackendURL = "https://api.bigmann.example"
	cfg.API.Timeout = 45 * time.Second
	cfg.API.PageSize = 50
	cfg.Output.Format = "json"
	cfg.Masking.Enabled = false

	b, err := Render(cfg)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, FileName), b, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := NewLoader(WithLookupEnv(noEnv)).Load(root)
	if err != nil {
		t.Fatalf("load rendered config: %v\n%s", err, b)
	}
	if got != cfg {
		t.Fatalf("expected %+v, got %+v", cfg, got)
	}
}
