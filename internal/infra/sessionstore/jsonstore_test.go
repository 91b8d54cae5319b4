package sessionstore

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/domain"
)

func signed(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"exp": exp.Unix(),
	}).SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return tok
}

func TestLoad_MissingFileIsEmptySession(t *testing.T) {
	s := NewJSONStore(filepath.Join(t.TempDir(), "session.json"))
	sess, err := s.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sess.Empty() {
		t.Fatalf("expected empty session, got %+v", sess)
	}
}

func TestSaveLoadRoundTripAndPerms(t *testing.T) {
	now := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	exp := now.Add(time.Hour)
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	s := NewJSONStore(path, WithNow(func() time.Time { return now }))

	in := domain.Session{
		AccessToken:  signed(t, exp),
		RefreshToken: "refresh",
		User:         domain.Record{"email": "ceo@bigmann.example"},
	}
	if err := s.Save(in); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out.AccessToken != in.AccessToken || out.RefreshToken != "refresh" {
		t.Fatalf("tokens not preserved: %+v", out)
	}
	if !out.ExpiresAt.Equal(exp.Truncate(time.Second)) {
		t.Fatalf("expected exp %s, got %s", exp, out.ExpiresAt)
	}
	if !out.SavedAt.Equal(now) {
		t.Fatalf("expected savedAt %s, got %s", now, out.SavedAt)
	}
	if out.User["email"] != "ceo@bigmann.example" {
		t.Fatalf("expected user record, got %#v", out.User)
	}

	if runtime.GOOS != "windows" {
		st, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat: %v", err)
		}
		if st.Mode().Perm() != 0o600 {
			t.Fatalf("expected 0600, got %o", st.Mode().Perm())
		}
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("expected no leftover tmp file")
	}
}

func TestClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s := NewJSONStore(path)
	if err := s.Save(domain.Session{Token: "t"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("second clear should be a no-op: %v", err)
	}
	sess, _ := s.Load()
	if !sess.Empty() {
		t.Fatalf("expected empty session after clear")
	}
}

func TestLoad_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := NewJSONStore(path).Load()
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid config, got %v", err)
	}
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	if got := TokenExpiry(signed(t, exp)); !got.Equal(exp) {
		t.Fatalf("expected %s, got %s", exp, got)
	}
	if !TokenExpiry("opaque-token").IsZero() {
		t.Fatalf("expected zero expiry for opaque token")
	}
	if !TokenExpiry("a.b.c").IsZero() {
		t.Fatalf("expected zero expiry for malformed jwt")
	}
}

func TestPathFor(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Session.File = ".bmectl/session.json"
	got, err := PathFor("/work", cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != filepath.Join("/work", ".bmectl", "session.json") {
		t.Fatalf("unexpected path %s", got)
	}
}
