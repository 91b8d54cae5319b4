package fsworkspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/domain"
)

func TestInitializer_Init_CreatesWorkspaceFiles(t *testing.T) {
	tmp := t.TempDir()

	if err := NewInitializer().Init(tmp, domain.DefaultConfig(), false); err != nil {
		t.Fatalf("Init error: %v", err)
	}

	assertFileExists(t, filepath.Join(tmp, "bmectl.yaml"))
	assertFileExists(t, filepath.Join(tmp, ".env.example"))
	assertFileExists(t, filepath.Join(tmp, ".gitignore"))

	info, err := os.Stat(filepath.Join(tmp, ".bmectl", "logs"))
	if err != nil || !info.IsDir() {
		t.Fatalf("expected logs dir, err=%v", err)
	}

	b, _ := os.ReadFile(filepath.Join(tmp, "bmectl.yaml"))
	if !strings.Contains(string(b), "backend_url: http://localhost:8001") {
		t.Fatalf("expected default backend in bmectl.yaml, got:\n%s", b)
	}
}

func TestInitializer_Init_SkipsExistingFilesUnlessForce(t *testing.T) {
	tmp := t.TempDir()

	cfgPath := filepath.Join(tmp, "bmectl.yaml")
	if err := os.WriteFile(cfgPath, []byte("custom\n"), 0o644); err != nil {
		t.Fatalf("write existing bmectl.yaml: %v", err)
	}

	i := NewInitializer()
	if err := i.Init(tmp, domain.DefaultConfig(), false); err != nil {
		t.Fatalf("Init (force=false) error: %v", err)
	}

	b, err := os.ReadFile(cfgPath)
	if err != nil {
		t.Fatalf("read bmectl.yaml: %v", err)
	}
	if string(b) != "custom\n" {
		t.Fatalf("expected bmectl.yaml preserved, got %q", string(b))
	}

	if err := i.Init(tmp, domain.DefaultConfig(), true); err != nil {
		t.Fatalf("Init (force=true) error: %v", err)
	}

	b, err = os.ReadFile(cfgPath)
	if err != nil {
		t.Fatalf("read bmectl.yaml after force: %v", err)
	}
	if !strings.Contains(string(b), "bmectl:") {
		t.Fatalf("expected bmectl.yaml overwritten, got %q", string(b))
	}
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file %s, stat err=%v", path, err)
	}
}
