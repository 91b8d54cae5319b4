package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetupWritesUnderWorkspace(t *testing.T) {
	root := t.TempDir()

	cleanup, err := Setup(Config{Root: root, Debug: true})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	want := filepath.Join(root, ".bmectl", "logs", "bmectl.log")
	if Path() != want {
		t.Fatalf("expected %s, got %s", want, Path())
	}
	if err := isReady(); err != nil {
		t.Fatalf("expected ready logger: %v", err)
	}

	L().Debug("view.load.started", "resource", "ddex.messages")

	if err := cleanup(); err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if isReady() == nil {
		t.Fatalf("expected logger reset after cleanup")
	}

	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	for _, s := range []string{`"msg":"logger.initialized"`, `"msg":"view.load.started"`, `"app":"bmectl"`} {
		if !strings.Contains(out, s) {
			t.Fatalf("expected %s in log, got:\n%s", s, out)
		}
	}
}

func TestSetupDirOverride(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "custom")
	cleanup, err := Setup(Config{Dir: dir})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	defer cleanup()

	if Path() != filepath.Join(dir, "bmectl.log") {
		t.Fatalf("unexpected path %s", Path())
	}
}

func TestLNeverNil(t *testing.T) {
	if L() == nil {
		t.Fatalf("expected a discard logger before setup")
	}
}
