package workspacefinder

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/domain"
)

func TestFindRoot_FindsWorkspaceFromNestedDir(t *testing.T) {
	tmp := t.TempDir()
	root := filepath.Join(tmp, "label")
	nested := filepath.Join(root, "releases", "2024", "q1")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "bmectl.yaml"), []byte("bmectl: {}\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	got, err := NewFinder().FindRoot(nested)
	if err != nil {
		t.Fatalf("FindRoot returned error: %v", err)
	}
	if got != root {
		t.Fatalf("expected root=%s, got=%s", root, got)
	}
}

func TestFindRoot_FromFilePath(t *testing.T) {
	root := t.TempDir()
	cfg := filepath.Join(root, "bmectl.yaml")
	if err := os.WriteFile(cfg, []byte("bmectl: {}\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := NewFinder().FindRoot(cfg)
	if err != nil || got != root {
		t.Fatalf("expected %s, got %s (%v)", root, got, err)
	}
}

func TestFindRoot_NotFound(t *testing.T) {
	tmp := t.TempDir()
	_ = os.MkdirAll(filepath.Join(tmp, "a", "b"), 0o755)

	_, err := NewFinder().FindRoot(filepath.Join(tmp, "a", "b"))
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected KindNotFound, got: %v", err)
	}
}

func TestFindOrEmpty(t *testing.T) {
	got, err := NewFinder().FindOrEmpty(t.TempDir())
	if err != nil || got != "" {
		t.Fatalf("expected empty root without error, got %q %v", got, err)
	}
}

func TestFindRoot_EmptyStart(t *testing.T) {
	_, err := NewFinder().FindRoot("")
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid config, got %v", err)
	}
}
